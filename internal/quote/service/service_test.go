package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/renolab/bathquote/internal/clock"
	quotedomain "github.com/renolab/bathquote/internal/quote/domain"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
)

func rateLine(code, base, perUnit string) ratecarddomain.RateLine {
	return ratecarddomain.RateLine{
		Code:         code,
		Name:         code,
		Unit:         "unit",
		BasePrice:    decimal.RequireFromString(base),
		PricePerUnit: decimal.RequireFromString(perUnit),
		Active:       true,
	}
}

func fullSnapshot() *ratecarddomain.ConfigSnapshot {
	snapshot := multiplierSnapshot("10", "10", "15")
	snapshot.Version = 7
	snapshot.RateLines = map[string]ratecarddomain.RateLine{
		ratecarddomain.CodeDemolition:    rateLine(ratecarddomain.CodeDemolition, "1850", "0"),
		ratecarddomain.CodePlumbing:      rateLine(ratecarddomain.CodePlumbing, "0", "425"),
		ratecarddomain.CodeElectrical:    rateLine(ratecarddomain.CodeElectrical, "0", "265"),
		ratecarddomain.CodeFloorTile:     rateLine(ratecarddomain.CodeFloorTile, "0", "18.50"),
		ratecarddomain.CodeDisposal:      rateLine(ratecarddomain.CodeDisposal, "350", "2.25"),
		ratecarddomain.CodeSubstrate:     rateLine(ratecarddomain.CodeSubstrate, "1400", "0"),
		ratecarddomain.CodeWaterproofing: rateLine(ratecarddomain.CodeWaterproofing, "975", "0"),
		ratecarddomain.CodeWetWallTile:   rateLine(ratecarddomain.CodeWetWallTile, "0", "21"),
		ratecarddomain.CodeDryWallTile:   rateLine(ratecarddomain.CodeDryWallTile, "0", "19"),
	}
	return snapshot
}

func newTestService() quotedomain.Service {
	return NewService(ServiceParam{
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	})
}

func TestCalculateWith_PowderRoom(t *testing.T) {
	svc := newTestService()

	quote, err := svc.CalculateWith(context.Background(), quotedomain.QuoteFormData{
		BathroomType:    quotedomain.BathroomPowder,
		BuildingType:    quotedomain.BuildingHouse,
		FloorSqft:       40,
		ElectricalItems: 2,
	}, fullSnapshot())
	assert.NoError(t, err)

	byCode := make(map[string]quotedomain.LineItem, len(quote.LineItems))
	for _, item := range quote.LineItems {
		byCode[item.Code] = item
	}

	assert.Equal(t, "1850", byCode[ratecarddomain.CodeDemolition].Extended.String())
	assert.Equal(t, "850", byCode[ratecarddomain.CodePlumbing].Extended.String())
	assert.Equal(t, "530", byCode[ratecarddomain.CodeElectrical].Extended.String())
	assert.Equal(t, "740", byCode[ratecarddomain.CodeFloorTile].Extended.String())
	// DUMP carries a base charge plus the per-sqft rate.
	assert.Equal(t, "440", byCode[ratecarddomain.CodeDisposal].Extended.String())
	assert.True(t, byCode[ratecarddomain.CodeDisposal].BaseApplied)

	assert.NotContains(t, byCode, ratecarddomain.CodeWetWallTile)
	assert.Equal(t, "4410", quote.Totals.LabourSubtotal.String())
	assert.Equal(t, int64(7), quote.Meta.ConfigVersion)
	assert.Equal(t, 2, quote.Meta.PlumbingPoints)
}

func TestCalculateWith_Deterministic(t *testing.T) {
	svc := newTestService()
	form := quotedomain.QuoteFormData{
		BathroomType: quotedomain.BathroomTubShower,
		BuildingType: quotedomain.BuildingCondo,
		FloorSqft:    60,
		WetWallSqft:  85,
		DryWallSqft:  30,
		TileDryWalls: true,
		VanityWidth:  36,
	}
	snapshot := fullSnapshot()
	snapshot.RateLines[ratecarddomain.CodeVanity] = rateLine(ratecarddomain.CodeVanity, "250", "6.50")

	first, err := svc.CalculateWith(context.Background(), form, snapshot)
	assert.NoError(t, err)
	second, err := svc.CalculateWith(context.Background(), form, snapshot)
	assert.NoError(t, err)

	assert.Equal(t, first.Totals, second.Totals)
	assert.Equal(t, first.LineItems, second.LineItems)
}

func TestCalculateWith_MissingRequiredCode(t *testing.T) {
	svc := newTestService()
	snapshot := fullSnapshot()
	delete(snapshot.RateLines, ratecarddomain.CodeWaterproofing)

	_, err := svc.CalculateWith(context.Background(), quotedomain.QuoteFormData{
		BathroomType: quotedomain.BathroomPowder,
		BuildingType: quotedomain.BuildingHouse,
	}, snapshot)

	assert.ErrorIs(t, err, quotedomain.ErrRateCardIncomplete)
	assert.Contains(t, err.Error(), ratecarddomain.CodeWaterproofing)
}

func TestCalculateWith_MissingFloorTileCode(t *testing.T) {
	svc := newTestService()
	snapshot := fullSnapshot()
	delete(snapshot.RateLines, ratecarddomain.CodeFloorTile)

	_, err := svc.CalculateWith(context.Background(), quotedomain.QuoteFormData{
		BathroomType: quotedomain.BathroomPowder,
		BuildingType: quotedomain.BuildingHouse,
	}, snapshot)

	assert.ErrorIs(t, err, quotedomain.ErrRateCardIncomplete)
	assert.Contains(t, err.Error(), ratecarddomain.CodeFloorTile)
}

func TestCalculateWith_InactiveRequiredCode(t *testing.T) {
	svc := newTestService()
	snapshot := fullSnapshot()
	line := snapshot.RateLines[ratecarddomain.CodeSubstrate]
	line.Active = false
	snapshot.RateLines[ratecarddomain.CodeSubstrate] = line

	_, err := svc.CalculateWith(context.Background(), quotedomain.QuoteFormData{
		BathroomType: quotedomain.BathroomPowder,
		BuildingType: quotedomain.BuildingHouse,
	}, snapshot)

	assert.ErrorIs(t, err, quotedomain.ErrRateCardIncomplete)
}

func TestCalculateWith_MissingMappedCode(t *testing.T) {
	svc := newTestService()

	// VanityWidth maps VAN=1 but the rate card has no VAN line.
	_, err := svc.CalculateWith(context.Background(), quotedomain.QuoteFormData{
		BathroomType: quotedomain.BathroomPowder,
		BuildingType: quotedomain.BuildingHouse,
		VanityWidth:  36,
	}, fullSnapshot())

	assert.ErrorIs(t, err, quotedomain.ErrMissingRateCode)
	assert.Contains(t, err.Error(), ratecarddomain.CodeVanity)
}

func TestCalculateWith_InvalidForm(t *testing.T) {
	svc := newTestService()

	_, err := svc.CalculateWith(context.Background(), quotedomain.QuoteFormData{
		BathroomType: "sauna",
		BuildingType: quotedomain.BuildingHouse,
	}, fullSnapshot())

	assert.ErrorIs(t, err, quotedomain.ErrInvalidForm)
}
