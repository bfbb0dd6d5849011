// Package domain defines the materials-side pricing request and result.
package domain

import (
	"context"
	"errors"

	bathroomdomain "github.com/renolab/bathquote/internal/bathroom/domain"
	catalogdomain "github.com/renolab/bathquote/internal/catalog/domain"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
	"github.com/shopspring/decimal"
)

// Configuration selects a bathroom shape for a package price.
type Configuration struct {
	Size     bathroomdomain.Size             `json:"size" binding:"required"`
	Type     bathroomdomain.BathroomType     `json:"type" binding:"required"`
	Coverage bathroomdomain.WallTileCoverage `json:"wall_tile_coverage" binding:"required"`
}

// ItemPrice is one included item's contribution to the package total.
type ItemPrice struct {
	ItemType  catalogdomain.ItemType `json:"item_type"`
	SKU       string                 `json:"sku"`
	Sqft      float64                `json:"sqft,omitempty"`
	UnitPrice decimal.Decimal        `json:"unit_price"`
	Amount    decimal.Decimal        `json:"amount"`
}

// Result is the materials total plus the diagnostics the caller must
// surface. Missing catalog data understates the total instead of failing;
// the MissingSKUs list exists for operator remediation.
type Result struct {
	Total       decimal.Decimal `json:"total"`
	Included    []ItemPrice     `json:"included"`
	MissingSKUs []string        `json:"missing_skus,omitempty"`
	Warnings    []string        `json:"warnings,omitempty"`
}

// Service prices a package against a bathroom configuration.
type Service interface {
	Price(ctx context.Context, packageCode string, cfg Configuration) (*Result, error)
	PriceWith(ctx context.Context, pkg catalogdomain.Package, cfg Configuration, snapshot *ratecarddomain.ConfigSnapshot) (*Result, error)
}

var (
	ErrPackageNotFound = errors.New("package_not_found")
	ErrUnknownSize     = errors.New("unknown_bathroom_size")
)
