package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/renolab/bathquote/internal/clock"
	"github.com/renolab/bathquote/internal/observability/metrics"
	quotedomain "github.com/renolab/bathquote/internal/quote/domain"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log     *zap.Logger
	clock   clock.Clock
	metrics *metrics.Metrics

	configSvc ratecarddomain.Service
}

type ServiceParam struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	Metrics   *metrics.Metrics `optional:"true"`
	ConfigSvc ratecarddomain.Service
}

func NewService(p ServiceParam) quotedomain.Service {
	return &Service{
		log:     p.Log.Named("quote.service"),
		clock:   p.Clock,
		metrics: p.Metrics,

		configSvc: p.ConfigSvc,
	}
}

func (s *Service) Calculate(ctx context.Context, form quotedomain.QuoteFormData) (*quotedomain.CalculatedQuote, error) {
	snapshot, err := s.configSvc.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.CalculateWith(ctx, form, snapshot)
}

// CalculateWith prices the intake against an explicitly injected
// configuration snapshot. Identical form and snapshot version always
// yield identical output.
func (s *Service) CalculateWith(ctx context.Context, form quotedomain.QuoteFormData, snapshot *ratecarddomain.ConfigSnapshot) (*quotedomain.CalculatedQuote, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}
	if err := validateRequiredCodes(snapshot); err != nil {
		return nil, err
	}

	quantities, meta := MapQuantities(form)

	lineItems, err := resolveLineItems(quantities, snapshot)
	if err != nil {
		return nil, err
	}

	totals := aggregateTotals(lineItems, form.BuildingType, snapshot)

	s.metrics.RecordQuotePriced(ctx, string(form.BathroomType))
	s.log.Info("quote priced",
		zap.String("bathroom_type", string(form.BathroomType)),
		zap.Int64("config_version", snapshot.Version),
		zap.String("grand_total", totals.GrandTotal.String()),
	)

	return &quotedomain.CalculatedQuote{
		LineItems:   lineItems,
		Totals:      totals,
		RawFormData: form,
		Meta: quotedomain.CalculationMeta{
			PlumbingPoints: meta.PlumbingPoints,
			TotalFloorSqft: meta.TotalFloorSqft,
			ConfigVersion:  snapshot.Version,
			CalculatedAt:   s.clock.Now(),
		},
	}, nil
}

func validateForm(form quotedomain.QuoteFormData) error {
	switch form.BathroomType {
	case quotedomain.BathroomWalkIn, quotedomain.BathroomTubShower, quotedomain.BathroomTubOnly, quotedomain.BathroomPowder:
	default:
		return fmt.Errorf("%w: bathroom_type %q", quotedomain.ErrInvalidForm, form.BathroomType)
	}
	switch form.BuildingType {
	case quotedomain.BuildingHouse, quotedomain.BuildingCondo:
	default:
		return fmt.Errorf("%w: building_type %q", quotedomain.ErrInvalidForm, form.BuildingType)
	}
	return nil
}

// validateRequiredCodes checks the fixed required code set is present
// and active before any quantity is resolved. Estimating around a gap in
// the rate card is forbidden.
func validateRequiredCodes(snapshot *ratecarddomain.ConfigSnapshot) error {
	var missing []string
	for _, code := range ratecarddomain.RequiredCodes {
		if snapshot.ActiveRate(code) == nil {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", quotedomain.ErrRateCardIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

// resolveLineItems prices every mapped quantity. A non-zero quantity with
// no matching active rate line aborts the whole calculation, naming the
// code; partial totals are never returned.
func resolveLineItems(quantities quotedomain.Quantities, snapshot *ratecarddomain.ConfigSnapshot) ([]quotedomain.LineItem, error) {
	codes := make([]string, 0, len(quantities))
	for code := range quantities {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	items := make([]quotedomain.LineItem, 0, len(codes))
	for _, code := range codes {
		quantity := quantities[code]
		if quantity <= 0 {
			continue
		}
		line := snapshot.ActiveRate(code)
		if line == nil {
			return nil, fmt.Errorf("%w: %s", quotedomain.ErrMissingRateCode, code)
		}

		extended := line.BasePrice.Add(line.PricePerUnit.Mul(decimal.NewFromFloat(quantity))).Round(2)
		items = append(items, quotedomain.LineItem{
			Code:         line.Code,
			Name:         line.Name,
			Unit:         line.Unit,
			Quantity:     quantity,
			BasePrice:    line.BasePrice,
			PricePerUnit: line.PricePerUnit,
			Extended:     extended,
			BaseApplied:  line.BasePrice.IsPositive(),
		})
	}
	return items, nil
}
