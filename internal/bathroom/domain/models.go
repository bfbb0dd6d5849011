// Package domain holds bathroom configuration: sizes, types, wall-tile
// coverage, the square-footage matrix and per-type item inclusion.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/renolab/bathquote/internal/catalog/domain"
	"gorm.io/datatypes"
)

type Size string

const (
	SizeSmall  Size = "small"
	SizeNormal Size = "normal"
	SizeLarge  Size = "large"
)

// BathroomType is the package-side bathroom configuration label.
type BathroomType string

const (
	TypeBathtub       BathroomType = "Bathtub"
	TypeWalkInShower  BathroomType = "Walk-in Shower"
	TypeTubAndShower  BathroomType = "Tub & Shower"
	TypeSinkAndToilet BathroomType = "Sink & Toilet"
)

type WallTileCoverage string

const (
	CoverageNone           WallTileCoverage = "None"
	CoverageHalfwayUp      WallTileCoverage = "Half way up"
	CoverageFloorToCeiling WallTileCoverage = "Floor to ceiling"
)

var (
	ErrUnknownSize     = errors.New("unknown_bathroom_size")
	ErrUnknownItemType = errors.New("unknown_item_type")
	ErrInvalidWallTile = errors.New("invalid_wall_tile_config")
	ErrUnknownCoverage = errors.New("unknown_wall_tile_coverage")
)

// SquareFootageConfig is one admin-editable row per bathroom size. The
// wall-tile column has gone through three historical shapes (a single
// number, a coverage map, and the current type+coverage matrix), so it is
// stored as raw JSON and normalized once at load time.
type SquareFootageConfig struct {
	ID              snowflake.ID   `json:"id" gorm:"primaryKey"`
	Size            Size           `json:"size" gorm:"type:text;not null;uniqueIndex"`
	FloorTile       float64        `json:"floor_tile" gorm:"not null"`
	ShowerFloorTile float64        `json:"shower_floor_tile" gorm:"not null"`
	AccentTile      float64        `json:"accent_tile" gorm:"not null"`
	WallTile        datatypes.JSON `json:"wall_tile" gorm:"type:jsonb"`
	CreatedAt       time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (SquareFootageConfig) TableName() string { return "square_footage_configs" }

// BathroomTypeConfig marks which item categories are priced at all for a
// bathroom type. It is the single source of truth for inclusion; UI
// toggles never override it.
type BathroomTypeConfig struct {
	ID        snowflake.ID      `json:"id" gorm:"primaryKey"`
	Type      BathroomType      `json:"type" gorm:"type:text;not null;uniqueIndex"`
	Included  datatypes.JSONMap `json:"included" gorm:"type:jsonb"`
	CreatedAt time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (BathroomTypeConfig) TableName() string { return "bathroom_type_configs" }

// InclusionMap returns the item type -> included flags for one bathroom type.
func (c BathroomTypeConfig) InclusionMap() map[catalogdomain.ItemType]bool {
	out := make(map[catalogdomain.ItemType]bool, len(c.Included))
	for key, value := range c.Included {
		flag, ok := value.(bool)
		if !ok {
			continue
		}
		out[catalogdomain.ItemType(key)] = flag
	}
	return out
}
