// Package domain defines the labor intake and the calculated quote.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BathroomType is the labor-intake bathroom configuration.
type BathroomType string

const (
	BathroomWalkIn    BathroomType = "walk_in"
	BathroomTubShower BathroomType = "tub_shower"
	BathroomTubOnly   BathroomType = "tub_only"
	BathroomPowder    BathroomType = "powder"
)

type BuildingType string

const (
	BuildingHouse BuildingType = "house"
	BuildingCondo BuildingType = "condo"
)

type YearBuiltBucket string

const (
	YearPre1980  YearBuiltBucket = "pre_1980"
	YearPost1980 YearBuiltBucket = "post_1980"
	YearUnknown  YearBuiltBucket = "unknown"
)

// UpgradeFlags are the optional labor upgrades, each mapping 1:1 to a
// fixed rate code with quantity 1 when enabled.
type UpgradeFlags struct {
	HeatedFloor     bool `json:"heated_floor"`
	HeatedTowelRack bool `json:"heated_towel_rack"`
	Niche           bool `json:"niche"`
	DoorUpgrade     bool `json:"door_upgrade"`
	SmartToilet     bool `json:"smart_toilet"`
	SteamShower     bool `json:"steam_shower"`
	InWallCistern   bool `json:"in_wall_cistern"`
	GrabBars        bool `json:"grab_bars"`
}

// QuoteFormData is the raw labor intake produced by the survey wizard.
type QuoteFormData struct {
	BathroomType    BathroomType    `json:"bathroom_type" binding:"required"`
	BuildingType    BuildingType    `json:"building_type" binding:"required"`
	YearBuilt       YearBuiltBucket `json:"year_built"`
	FloorSqft       float64         `json:"floor_sqft"`
	ShowerFloorSqft float64         `json:"shower_floor_sqft"`
	WetWallSqft     float64         `json:"wet_wall_sqft"`
	DryWallSqft     float64         `json:"dry_wall_sqft"`
	AccentSqft      float64         `json:"accent_sqft"`
	TileDryWalls    bool            `json:"tile_dry_walls"`
	AccentFeature   bool            `json:"accent_feature"`
	VanityWidth     float64         `json:"vanity_width"`
	ElectricalItems int             `json:"electrical_items"`
	Upgrades        UpgradeFlags    `json:"upgrades"`
}

// Quantities maps rate code -> quantity. Zero-quantity codes are never
// present.
type Quantities map[string]float64

// QuantityMeta carries derived values alongside the quantities.
type QuantityMeta struct {
	PlumbingPoints int     `json:"plumbing_points"`
	TotalFloorSqft float64 `json:"total_floor_sqft"`
}

// LineItem is one priced unit of labor.
type LineItem struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Quantity     float64         `json:"quantity"`
	BasePrice    decimal.Decimal `json:"base_price"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Extended     decimal.Decimal `json:"extended"`
	BaseApplied  bool            `json:"base_applied"`
}

// Totals is the labor-side roll-up. Every value is independently rounded
// to two decimal places to match currency-cent semantics.
type Totals struct {
	LabourSubtotal decimal.Decimal `json:"labour_subtotal"`
	Contingency    decimal.Decimal `json:"contingency"`
	CondoUplift    decimal.Decimal `json:"condo_uplift"`
	PMFee          decimal.Decimal `json:"pm_fee"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// CalculationMeta records how a quote was priced.
type CalculationMeta struct {
	PlumbingPoints int       `json:"plumbing_points"`
	TotalFloorSqft float64   `json:"total_floor_sqft"`
	ConfigVersion  int64     `json:"config_version"`
	CalculatedAt   time.Time `json:"calculated_at"`
}

// CalculatedQuote is the labor-side output: priced line items, totals,
// the raw intake they were derived from, and calculation metadata.
type CalculatedQuote struct {
	LineItems   []LineItem      `json:"line_items"`
	Totals      Totals          `json:"totals"`
	RawFormData QuoteFormData   `json:"raw_form_data"`
	Meta        CalculationMeta `json:"calculation_meta"`
}
