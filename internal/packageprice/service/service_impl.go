package service

import (
	"context"
	"fmt"
	"sort"

	bathroomdomain "github.com/renolab/bathquote/internal/bathroom/domain"
	catalogdomain "github.com/renolab/bathquote/internal/catalog/domain"
	"github.com/renolab/bathquote/internal/observability/metrics"
	packagepricedomain "github.com/renolab/bathquote/internal/packageprice/domain"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	metrics *metrics.Metrics

	catalogRepo catalogdomain.Repository
	configSvc   ratecarddomain.Service
}

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Metrics     *metrics.Metrics `optional:"true"`
	CatalogRepo catalogdomain.Repository
	ConfigSvc   ratecarddomain.Service
}

func NewService(p ServiceParam) packagepricedomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("packageprice.service"),
		metrics: p.Metrics,

		catalogRepo: p.CatalogRepo,
		configSvc:   p.ConfigSvc,
	}
}

func (s *Service) Price(ctx context.Context, packageCode string, cfg packagepricedomain.Configuration) (*packagepricedomain.Result, error) {
	pkg, err := s.catalogRepo.FindPackageByCode(ctx, s.db, packageCode)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, packagepricedomain.ErrPackageNotFound
	}

	snapshot, err := s.configSvc.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.PriceWith(ctx, *pkg, cfg, snapshot)
}

// PriceWith prices a package's selections against an injected snapshot.
// Tile items price per resolved square foot, flat items price directly;
// only items the inclusion map marks included for the bathroom type count.
func (s *Service) PriceWith(ctx context.Context, pkg catalogdomain.Package, cfg packagepricedomain.Configuration, snapshot *ratecarddomain.ConfigSnapshot) (*packagepricedomain.Result, error) {
	footage, ok := snapshot.SquareFootage[cfg.Size]
	if !ok {
		return nil, fmt.Errorf("%w: %s", packagepricedomain.ErrUnknownSize, cfg.Size)
	}

	result := &packagepricedomain.Result{Total: decimal.Zero}
	included := s.inclusionFor(ctx, snapshot, cfg.Type, result)
	selections := pkg.Selections()

	for _, itemType := range catalogdomain.TileItemTypes {
		sku, assigned := selections[itemType]
		if !assigned || !included[itemType] {
			continue
		}
		material, ok := snapshot.Materials[sku]
		if !ok {
			s.recordMissingSKU(ctx, pkg.Code, sku, result)
			continue
		}

		sqft, err := s.resolveSqft(footage, itemType, cfg)
		if err != nil {
			return nil, err
		}
		unitPrice := material.PerSqftPrice()
		amount := unitPrice.Mul(decimal.NewFromFloat(sqft)).Round(2)
		result.Included = append(result.Included, packagepricedomain.ItemPrice{
			ItemType:  itemType,
			SKU:       sku,
			Sqft:      sqft,
			UnitPrice: unitPrice,
			Amount:    amount,
		})
		result.Total = result.Total.Add(amount)
	}

	for _, itemType := range catalogdomain.FlatItemTypes {
		sku, assigned := selections[itemType]
		if !assigned || !included[itemType] {
			continue
		}
		material, ok := snapshot.Materials[sku]
		if !ok {
			s.recordMissingSKU(ctx, pkg.Code, sku, result)
			continue
		}

		amount := material.FlatPrice().Round(2)
		result.Included = append(result.Included, packagepricedomain.ItemPrice{
			ItemType:  itemType,
			SKU:       sku,
			UnitPrice: amount,
			Amount:    amount,
		})
		result.Total = result.Total.Add(amount)
	}

	result.Total = result.Total.Round(2)
	sort.Slice(result.Included, func(i, j int) bool {
		return result.Included[i].ItemType < result.Included[j].ItemType
	})
	return result, nil
}

// inclusionFor returns the per-type inclusion flags. When no configuration
// exists for the bathroom type every item is included and a warning is
// raised, so a missing admin row overstates a package price instead of
// blocking it.
func (s *Service) inclusionFor(
	ctx context.Context,
	snapshot *ratecarddomain.ConfigSnapshot,
	bathroomType bathroomdomain.BathroomType,
	result *packagepricedomain.Result,
) map[catalogdomain.ItemType]bool {
	if included, ok := snapshot.Inclusions[bathroomType]; ok {
		return included
	}

	s.metrics.RecordInclusionGap(ctx, string(bathroomType))
	s.log.Warn("no inclusion configuration for bathroom type, including all items",
		zap.String("bathroom_type", string(bathroomType)),
	)
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("no inclusion configuration for bathroom type %q; including all items", bathroomType),
	)

	all := make(map[catalogdomain.ItemType]bool)
	for _, itemType := range catalogdomain.AllItemTypes() {
		all[itemType] = true
	}
	return all
}

func (s *Service) resolveSqft(
	footage bathroomdomain.SquareFootage,
	itemType catalogdomain.ItemType,
	cfg packagepricedomain.Configuration,
) (float64, error) {
	if itemType == catalogdomain.ItemWallTile {
		sqft, substituted, err := footage.WallTileSqft(cfg.Type, cfg.Coverage)
		if err != nil {
			return 0, err
		}
		if substituted {
			s.log.Warn("wall tile matrix missing bathroom type, substituted walk-in shower entry",
				zap.String("bathroom_type", string(cfg.Type)),
				zap.String("size", string(cfg.Size)),
			)
		}
		return sqft, nil
	}
	return footage.ItemSqft(itemType)
}

func (s *Service) recordMissingSKU(ctx context.Context, packageCode, sku string, result *packagepricedomain.Result) {
	s.metrics.RecordMissingSKU(ctx, sku)
	s.log.Warn("package references SKU absent from material catalog",
		zap.String("package", packageCode),
		zap.String("sku", sku),
	)
	result.MissingSKUs = append(result.MissingSKUs, sku)
}
