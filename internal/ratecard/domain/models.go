// Package domain contains the labor rate card and the versioned
// configuration snapshot handed to calculations.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	bathroomdomain "github.com/renolab/bathquote/internal/bathroom/domain"
	catalogdomain "github.com/renolab/bathquote/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// RateLine is one billable unit of labor work with a fixed and/or
// per-unit price.
type RateLine struct {
	ID           snowflake.ID    `json:"id" gorm:"primaryKey"`
	Code         string          `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name         string          `json:"name" gorm:"type:text;not null"`
	Unit         string          `json:"unit" gorm:"type:text;not null"`
	BasePrice    decimal.Decimal `json:"base_price" gorm:"type:numeric;not null"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" gorm:"type:numeric;not null"`
	Active       bool            `json:"active" gorm:"not null;default:true"`
	CreatedAt    time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (RateLine) TableName() string { return "rate_lines" }

// MultiplierBasis names the base a percentage multiplier applies to.
type MultiplierBasis string

const (
	BasisPercentOfLabour MultiplierBasis = "percent_of_labour"
	BasisPercentOfSell   MultiplierBasis = "percent_of_sell"
)

// ProjectMultiplier applies a percentage surcharge to a computed base.
type ProjectMultiplier struct {
	ID             snowflake.ID    `json:"id" gorm:"primaryKey"`
	Code           string          `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Basis          MultiplierBasis `json:"basis" gorm:"type:text;not null"`
	DefaultPercent decimal.Decimal `json:"default_percent" gorm:"type:numeric;not null"`
	Active         bool            `json:"active" gorm:"not null;default:true"`
	CreatedAt      time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ProjectMultiplier) TableName() string { return "project_multipliers" }

// ConfigRevision is a monotonic counter bumped by every admin write to
// any pricing table. Snapshots carry the revision they were priced under.
type ConfigRevision struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Revision  int64     `json:"revision" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ConfigRevision) TableName() string { return "config_revisions" }

// Well-known rate codes.
const (
	CodeDemolition      = "DEM"
	CodePlumbing        = "PLM"
	CodeElectrical      = "ELE"
	CodeFloorTile       = "TILE-FLR"
	CodeDisposal        = "DUMP"
	CodeSubstrate       = "SUB-GRB"
	CodeWaterproofing   = "WPF-KER"
	CodeWetWallTile     = "TILE-WET"
	CodeDryWallTile     = "TILE-DRY"
	CodeVanity          = "VAN"
	CodeRecess          = "RECESS"
	CodeAsbestosTest    = "ASB-T"
	CodeHeatedFloor     = "HEAT-FLR"
	CodeHeatedTowelRack = "HEAT-TWL"
	CodeNiche           = "NICHE"
	CodeDoorUpgrade     = "DOOR-UPG"
	CodeSmartToilet     = "SMART-WC"
	CodeSteamShower     = "STEAM"
	CodeInWallCistern   = "CISTERN"
	CodeGrabBars        = "GRAB-BAR"
)

// Multiplier codes.
const (
	MultiplierContingency = "CONTINGENCY"
	MultiplierCondoFactor = "CONDO-FACTOR"
	MultiplierPMFee       = "PM-FEE"
)

// RequiredCodes must be present and active in every loaded rate card.
// A gap here is a fatal configuration error, never a soft default.
var RequiredCodes = []string{
	CodeDemolition,
	CodePlumbing,
	CodeElectrical,
	CodeSubstrate,
	CodeWaterproofing,
	CodeWetWallTile,
	CodeDryWallTile,
	CodeFloorTile,
	CodeDisposal,
}

// ConfigSnapshot is an immutable read of every pricing table, taken once
// at the start of a calculation. Concurrent admin edits never affect an
// in-flight calculation because the engine only ever sees this value.
type ConfigSnapshot struct {
	Version       int64
	LoadedAt      time.Time
	RateLines     map[string]RateLine
	Multipliers   map[string]ProjectMultiplier
	SquareFootage map[bathroomdomain.Size]bathroomdomain.SquareFootage
	Inclusions    map[bathroomdomain.BathroomType]map[catalogdomain.ItemType]bool
	Materials     map[string]catalogdomain.Material
}

// ActiveRate returns the active rate line for a code, or nil when the
// code is absent or inactive.
func (s ConfigSnapshot) ActiveRate(code string) *RateLine {
	line, ok := s.RateLines[code]
	if !ok || !line.Active {
		return nil
	}
	return &line
}

// MultiplierPercent returns the configured percent for a multiplier code,
// zero when the multiplier is absent or inactive.
func (s ConfigSnapshot) MultiplierPercent(code string) decimal.Decimal {
	m, ok := s.Multipliers[code]
	if !ok || !m.Active {
		return decimal.Zero
	}
	return m.DefaultPercent
}
