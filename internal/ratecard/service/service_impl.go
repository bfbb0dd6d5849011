package service

import (
	"context"
	"encoding/json"
	"fmt"

	bathroomdomain "github.com/renolab/bathquote/internal/bathroom/domain"
	catalogdomain "github.com/renolab/bathquote/internal/catalog/domain"
	"github.com/renolab/bathquote/internal/clock"
	"github.com/renolab/bathquote/internal/config"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	defaults *config.PricingDefaultsHolder

	ratecardRepo ratecarddomain.Repository
	bathroomRepo bathroomdomain.Repository
	catalogRepo  catalogdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Clock        clock.Clock
	Defaults     *config.PricingDefaultsHolder `optional:"true"`
	RatecardRepo ratecarddomain.Repository
	BathroomRepo bathroomdomain.Repository
	CatalogRepo  catalogdomain.Repository
}

func NewService(p ServiceParam) ratecarddomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("ratecard.service"),
		clock:    p.Clock,
		defaults: p.Defaults,

		ratecardRepo: p.RatecardRepo,
		bathroomRepo: p.BathroomRepo,
		catalogRepo:  p.CatalogRepo,
	}
}

// LoadSnapshot reads every pricing table once and returns an immutable
// snapshot tagged with the current configuration revision. Calculations
// only ever see this value, so a concurrent admin edit cannot change an
// in-flight quote.
func (s *Service) LoadSnapshot(ctx context.Context) (*ratecarddomain.ConfigSnapshot, error) {
	revision, err := s.ratecardRepo.CurrentRevision(ctx, s.db)
	if err != nil {
		return nil, err
	}

	lines, err := s.ratecardRepo.ListRateLines(ctx, s.db)
	if err != nil {
		return nil, err
	}
	multipliers, err := s.ratecardRepo.ListMultipliers(ctx, s.db)
	if err != nil {
		return nil, err
	}

	sqftRows, err := s.bathroomRepo.ListSquareFootage(ctx, s.db)
	if err != nil {
		return nil, err
	}

	typeRows, err := s.bathroomRepo.ListTypeConfigs(ctx, s.db)
	if err != nil {
		return nil, err
	}

	materials, err := s.catalogRepo.ListMaterials(ctx, s.db)
	if err != nil {
		return nil, err
	}

	snapshot := &ratecarddomain.ConfigSnapshot{
		Version:       revision,
		LoadedAt:      s.clock.Now(),
		RateLines:     make(map[string]ratecarddomain.RateLine, len(lines)),
		Multipliers:   make(map[string]ratecarddomain.ProjectMultiplier, len(multipliers)),
		SquareFootage: make(map[bathroomdomain.Size]bathroomdomain.SquareFootage, len(sqftRows)),
		Inclusions:    make(map[bathroomdomain.BathroomType]map[catalogdomain.ItemType]bool, len(typeRows)),
		Materials:     make(map[string]catalogdomain.Material, len(materials)),
	}

	for _, line := range lines {
		snapshot.RateLines[line.Code] = line
	}
	for _, m := range multipliers {
		snapshot.Multipliers[m.Code] = m
	}
	for _, row := range sqftRows {
		normalized, err := row.Normalize()
		if err != nil {
			return nil, fmt.Errorf("normalize square footage for size %s: %w", row.Size, err)
		}
		snapshot.SquareFootage[row.Size] = normalized
	}
	if s.defaults != nil {
		// Shipped defaults back any size the admin tables have not
		// covered. The holder is read exactly once here, so a reload
		// cannot change a snapshot that is already built.
		for size, entry := range s.defaults.Get().SquareFootage {
			key := bathroomdomain.Size(size)
			if _, ok := snapshot.SquareFootage[key]; ok {
				continue
			}
			fallback, err := defaultFootage(key, entry)
			if err != nil {
				return nil, fmt.Errorf("normalize default footage for size %s: %w", size, err)
			}
			snapshot.SquareFootage[key] = fallback
			s.log.Warn("square footage size missing from admin tables, shipped default used",
				zap.String("size", size),
			)
		}
	}
	if len(snapshot.SquareFootage) == 0 {
		return nil, ratecarddomain.ErrSquareFootageEmpty
	}
	for _, row := range typeRows {
		snapshot.Inclusions[row.Type] = row.InclusionMap()
	}
	for _, material := range materials {
		snapshot.Materials[material.SKU] = material
	}

	s.log.Debug("configuration snapshot loaded",
		zap.Int64("revision", revision),
		zap.Int("rate_lines", len(lines)),
		zap.Int("multipliers", len(multipliers)),
		zap.Int("materials", len(materials)),
	)
	return snapshot, nil
}

// defaultFootage builds a normalized footage entry from the shipped
// defaults, going through the same wall-tile decoding as a stored row.
func defaultFootage(size bathroomdomain.Size, entry config.SquareFootageDefaults) (bathroomdomain.SquareFootage, error) {
	raw, err := json.Marshal(entry.WallTile)
	if err != nil {
		return bathroomdomain.SquareFootage{}, err
	}
	row := bathroomdomain.SquareFootageConfig{
		Size:            size,
		FloorTile:       entry.FloorTile,
		ShowerFloorTile: entry.ShowerFloorTile,
		AccentTile:      entry.AccentTile,
		WallTile:        datatypes.JSON(raw),
	}
	return row.Normalize()
}
