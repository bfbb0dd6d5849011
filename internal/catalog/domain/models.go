// Package domain contains the material catalog and package models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ItemType is the canonical key for a priceable item category. Every
// component that touches item categories (inclusion maps, package
// selections, square-footage lookups) shares this table so the keys
// cannot drift between code paths.
type ItemType string

const (
	ItemFloorTile         ItemType = "floorTile"
	ItemShowerFloorTile   ItemType = "showerFloorTile"
	ItemWallTile          ItemType = "wallTile"
	ItemAccentTile        ItemType = "accentTile"
	ItemVanity            ItemType = "vanity"
	ItemTub               ItemType = "tub"
	ItemTubFiller         ItemType = "tubFiller"
	ItemToilet            ItemType = "toilet"
	ItemShower            ItemType = "shower"
	ItemFaucet            ItemType = "faucet"
	ItemGlazing           ItemType = "glazing"
	ItemMirror            ItemType = "mirror"
	ItemTowelBar          ItemType = "towelBar"
	ItemToiletPaperHolder ItemType = "toiletPaperHolder"
	ItemHook              ItemType = "hook"
	ItemLighting          ItemType = "lighting"
)

// TileItemTypes are priced per square foot; the footage comes from the
// square-footage resolver.
var TileItemTypes = []ItemType{
	ItemFloorTile,
	ItemShowerFloorTile,
	ItemWallTile,
	ItemAccentTile,
}

// FlatItemTypes carry a flat catalog price.
var FlatItemTypes = []ItemType{
	ItemVanity,
	ItemTub,
	ItemTubFiller,
	ItemToilet,
	ItemShower,
	ItemFaucet,
	ItemGlazing,
	ItemMirror,
	ItemTowelBar,
	ItemToiletPaperHolder,
	ItemHook,
	ItemLighting,
}

// AllItemTypes returns every known category, tiles first.
func AllItemTypes() []ItemType {
	out := make([]ItemType, 0, len(TileItemTypes)+len(FlatItemTypes))
	out = append(out, TileItemTypes...)
	out = append(out, FlatItemTypes...)
	return out
}

// Material is one purchasable fixture or finish. Prices are stored as the
// raw strings admins type in ("$1,234.00"); parsing is lenient and happens
// at calculation time.
type Material struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey"`
	SKU             string       `json:"sku" gorm:"type:text;not null;uniqueIndex"`
	Name            string       `json:"name" gorm:"type:text;not null"`
	ItemType        ItemType     `json:"item_type" gorm:"type:text;not null;index"`
	PriceRaw        string       `json:"price,omitempty" gorm:"column:price;type:text"`
	PricePerSqftRaw string       `json:"price_sqf,omitempty" gorm:"column:price_sqf;type:text"`
	Active          bool         `json:"active" gorm:"not null;default:true"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Material) TableName() string { return "materials" }

// Package is a named bundle of item type -> material SKU representing a
// pre-designed bathroom look.
type Package struct {
	ID        snowflake.ID      `json:"id" gorm:"primaryKey"`
	Code      string            `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name      string            `json:"name" gorm:"type:text;not null"`
	Items     datatypes.JSONMap `json:"items" gorm:"type:jsonb"`
	Active    bool              `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Package) TableName() string { return "packages" }

// Selections returns the item type -> SKU map with blank entries dropped.
func (p Package) Selections() map[ItemType]string {
	out := make(map[ItemType]string, len(p.Items))
	for key, value := range p.Items {
		sku, ok := value.(string)
		if !ok || sku == "" {
			continue
		}
		out[ItemType(key)] = sku
	}
	return out
}
