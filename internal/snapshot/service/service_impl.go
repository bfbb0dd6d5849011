package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/renolab/bathquote/internal/catalog/domain"
	"github.com/renolab/bathquote/internal/clock"
	"github.com/renolab/bathquote/internal/observability/metrics"
	packagepricedomain "github.com/renolab/bathquote/internal/packageprice/domain"
	quotedomain "github.com/renolab/bathquote/internal/quote/domain"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
	snapshotdomain "github.com/renolab/bathquote/internal/snapshot/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	genID   *snowflake.Node
	metrics *metrics.Metrics

	repo        snapshotdomain.Repository
	configSvc   ratecarddomain.Service
	quoteSvc    quotedomain.Service
	packageSvc  packagepricedomain.Service
	catalogRepo domain.Repository
}

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	GenID       *snowflake.Node
	Metrics     *metrics.Metrics `optional:"true"`
	Repo        snapshotdomain.Repository
	ConfigSvc   ratecarddomain.Service
	QuoteSvc    quotedomain.Service
	PackageSvc  packagepricedomain.Service
	CatalogRepo domain.Repository
}

func NewService(p ServiceParam) snapshotdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("snapshot.service"),
		clock:   p.Clock,
		genID:   p.GenID,
		metrics: p.Metrics,

		repo:        p.Repo,
		configSvc:   p.ConfigSvc,
		quoteSvc:    p.QuoteSvc,
		packageSvc:  p.PackageSvc,
		catalogRepo: p.CatalogRepo,
	}
}

// Create prices both sides under one configuration snapshot and persists
// an immutable record. Identical inputs under the same configuration
// version hash to the same checksum, so re-running returns the existing
// snapshot instead of writing a second one.
func (s *Service) Create(ctx context.Context, req snapshotdomain.CreateRequest) (*snapshotdomain.CreateResult, error) {
	if strings.TrimSpace(req.QuoteRef) == "" {
		return nil, fmt.Errorf("%w: quote_ref is required", quotedomain.ErrInvalidForm)
	}

	pkg, err := s.catalogRepo.FindPackageByCode(ctx, s.db, req.PackageCode)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, packagepricedomain.ErrPackageNotFound
	}

	// One configuration read feeds both sides of the calculation.
	configSnapshot, err := s.configSvc.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	checksum, err := buildChecksum(req, *pkg, configSnapshot.Version)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByChecksum(ctx, s.db, checksum); err != nil {
		return nil, err
	} else if existing != nil {
		return &snapshotdomain.CreateResult{Snapshot: existing, Reused: true}, nil
	}

	quote, err := s.quoteSvc.CalculateWith(ctx, req.Form, configSnapshot)
	if err != nil {
		return nil, err
	}

	materials, err := s.packageSvc.PriceWith(ctx, *pkg, req.Configuration, configSnapshot)
	if err != nil {
		return nil, err
	}

	lineItems, err := json.Marshal(quote.LineItems)
	if err != nil {
		return nil, err
	}
	rawForm, err := json.Marshal(req.Form)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	snapshot := &snapshotdomain.PricingSnapshot{
		ID:             s.genID.Generate(),
		QuoteRef:       req.QuoteRef,
		Status:         snapshotdomain.StatusDraft,
		LabourTotal:    quote.Totals.GrandTotal,
		MaterialsTotal: materials.Total,
		GrandTotal:     quote.Totals.GrandTotal.Add(materials.Total).Round(2),
		ConfigVersion:  configSnapshot.Version,
		PackageCode:    pkg.Code,
		LineItems:      lineItems,
		RawFormData:    rawForm,
		Checksum:       checksum,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, snapshot); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, findErr := s.repo.FindByChecksum(ctx, s.db, checksum)
			if findErr != nil {
				return nil, findErr
			}
			if existing != nil {
				return &snapshotdomain.CreateResult{Snapshot: existing, Reused: true}, nil
			}
		}
		return nil, err
	}

	s.metrics.RecordSnapshotWritten(ctx)
	s.log.Info("pricing snapshot written",
		zap.String("quote_ref", req.QuoteRef),
		zap.Int64("config_version", configSnapshot.Version),
		zap.String("grand_total", snapshot.GrandTotal.String()),
	)

	return &snapshotdomain.CreateResult{
		Snapshot:    snapshot,
		MissingSKUs: materials.MissingSKUs,
		Warnings:    materials.Warnings,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*snapshotdomain.PricingSnapshot, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, snapshotdomain.ErrInvalidID
	}
	snapshot, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, snapshotdomain.ErrNotFound
	}
	return snapshot, nil
}

// Transition advances the customer-facing status. Priced numbers are
// frozen; only the status column moves.
func (s *Service) Transition(ctx context.Context, id string, to snapshotdomain.Status) (*snapshotdomain.PricingSnapshot, error) {
	snapshot, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !snapshotdomain.CanTransition(snapshot.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", snapshotdomain.ErrInvalidTransition, snapshot.Status, to)
	}
	// The update is filtered on the status just read, so a concurrent
	// transition on the same snapshot cannot both win.
	if err := s.repo.UpdateStatus(ctx, s.db, snapshot.ID, snapshot.Status, to); err != nil {
		return nil, err
	}
	snapshot.Status = to
	return snapshot, nil
}

// buildChecksum canonicalizes the full pricing input. Field order is
// fixed and package selections are sorted so identical inputs always
// produce the same digest.
func buildChecksum(req snapshotdomain.CreateRequest, pkg domain.Package, configVersion int64) (string, error) {
	form, err := json.Marshal(req.Form)
	if err != nil {
		return "", err
	}

	selections := pkg.Selections()
	keys := make([]string, 0, len(selections))
	for itemType := range selections {
		keys = append(keys, string(itemType))
	}
	sort.Strings(keys)
	var items strings.Builder
	for _, key := range keys {
		items.WriteString(key)
		items.WriteString("=")
		items.WriteString(selections[domain.ItemType(key)])
		items.WriteString(";")
	}

	payload := fmt.Sprintf(
		"%s|%d|%s|%s|%s|%s|%s|%s",
		req.QuoteRef,
		configVersion,
		form,
		pkg.Code,
		items.String(),
		req.Configuration.Size,
		req.Configuration.Type,
		req.Configuration.Coverage,
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:]), nil
}
