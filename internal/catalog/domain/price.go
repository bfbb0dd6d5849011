package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice turns a display price string into a decimal amount. Catalog
// prices originate from free-form admin input, so stray currency symbols
// and thousands separators are stripped before parsing. Anything that
// still fails to parse contributes zero rather than failing the
// calculation; absent catalog data is a data-quality issue, not a
// calculation fault.
func ParsePrice(raw string) decimal.Decimal {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return price
}

// FlatPrice returns the parsed flat price.
func (m Material) FlatPrice() decimal.Decimal {
	return ParsePrice(m.PriceRaw)
}

// PerSqftPrice returns the parsed per-square-foot price.
func (m Material) PerSqftPrice() decimal.Decimal {
	return ParsePrice(m.PricePerSqftRaw)
}
