package service

import (
	quotedomain "github.com/renolab/bathquote/internal/quote/domain"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// aggregateTotals rolls priced line items up into the labor totals.
// Ordering matters: contingency on labor, condo uplift on labor, then the
// PM fee on labor plus contingency only. Every value is rounded to two
// decimal places on its own, not just the final sum.
func aggregateTotals(
	lineItems []quotedomain.LineItem,
	buildingType quotedomain.BuildingType,
	snapshot *ratecarddomain.ConfigSnapshot,
) quotedomain.Totals {
	subtotal := decimal.Zero
	for _, item := range lineItems {
		subtotal = subtotal.Add(item.Extended)
	}
	subtotal = subtotal.Round(2)

	contingency := applyPercent(subtotal, snapshot.MultiplierPercent(ratecarddomain.MultiplierContingency))

	condoUplift := decimal.Zero
	if buildingType == quotedomain.BuildingCondo {
		condoUplift = applyPercent(subtotal, snapshot.MultiplierPercent(ratecarddomain.MultiplierCondoFactor))
	}

	// The PM fee base excludes the condo uplift.
	pmFee := applyPercent(subtotal.Add(contingency), snapshot.MultiplierPercent(ratecarddomain.MultiplierPMFee))

	grand := subtotal.Add(contingency).Add(condoUplift).Add(pmFee).Round(2)

	return quotedomain.Totals{
		LabourSubtotal: subtotal,
		Contingency:    contingency,
		CondoUplift:    condoUplift,
		PMFee:          pmFee,
		GrandTotal:     grand,
	}
}

func applyPercent(base, percent decimal.Decimal) decimal.Decimal {
	return base.Mul(percent).Div(oneHundred).Round(2)
}
