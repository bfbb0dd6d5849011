// Package seed populates a fresh database with a working pricing
// configuration so the service is usable out of the box.
package seed

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	bathroomdomain "github.com/renolab/bathquote/internal/bathroom/domain"
	catalogdomain "github.com/renolab/bathquote/internal/catalog/domain"
	"github.com/renolab/bathquote/internal/config"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
)

// EnsureDefaults seeds the rate card, multipliers, square-footage matrix,
// inclusion maps, material catalog and demo packages. Every step is a
// find-or-create keyed on the row's natural key, so reruns are no-ops.
func EnsureDefaults(db *gorm.DB, defaults config.PricingDefaults) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureRateLines(ctx, tx, node); err != nil {
			return err
		}
		if err := ensureMultipliers(ctx, tx, node, defaults.Multipliers); err != nil {
			return err
		}
		if err := ensureSquareFootage(ctx, tx, node, defaults.SquareFootage); err != nil {
			return err
		}
		if err := ensureInclusions(ctx, tx, node); err != nil {
			return err
		}
		if err := ensureMaterials(ctx, tx, node); err != nil {
			return err
		}
		if err := ensurePackages(ctx, tx, node); err != nil {
			return err
		}
		return ensureRevision(ctx, tx)
	})
}

type rateSeed struct {
	code         string
	name         string
	unit         string
	basePrice    string
	pricePerUnit string
}

var defaultRateLines = []rateSeed{
	{ratecarddomain.CodeDemolition, "Demolition & removal", "job", "1850", "0"},
	{ratecarddomain.CodePlumbing, "Plumbing rough-in", "point", "0", "425"},
	{ratecarddomain.CodeElectrical, "Electrical work", "item", "0", "265"},
	{ratecarddomain.CodeFloorTile, "Floor tile install", "sqft", "0", "18.50"},
	{ratecarddomain.CodeDisposal, "Debris disposal", "sqft", "350", "2.25"},
	{ratecarddomain.CodeSubstrate, "Substrate and backer board", "job", "1400", "0"},
	{ratecarddomain.CodeWaterproofing, "Waterproofing membrane", "job", "975", "0"},
	{ratecarddomain.CodeWetWallTile, "Wet area wall tile", "sqft", "0", "21"},
	{ratecarddomain.CodeDryWallTile, "Dry area wall tile", "sqft", "0", "19"},
	{ratecarddomain.CodeVanity, "Vanity installation", "inch", "250", "6.50"},
	{ratecarddomain.CodeRecess, "Recessed shaving cabinet", "item", "485", "0"},
	{ratecarddomain.CodeAsbestosTest, "Asbestos testing", "job", "550", "0"},
	{ratecarddomain.CodeHeatedFloor, "Heated floor system", "job", "1650", "0"},
	{ratecarddomain.CodeHeatedTowelRack, "Heated towel rack", "item", "420", "0"},
	{ratecarddomain.CodeNiche, "Shower niche", "item", "385", "0"},
	{ratecarddomain.CodeDoorUpgrade, "Bathroom door upgrade", "item", "680", "0"},
	{ratecarddomain.CodeSmartToilet, "Smart toilet install", "item", "540", "0"},
	{ratecarddomain.CodeSteamShower, "Steam shower system", "job", "3200", "0"},
	{ratecarddomain.CodeInWallCistern, "In-wall cistern carrier", "item", "890", "0"},
	{ratecarddomain.CodeGrabBars, "Grab bar set", "item", "310", "0"},
}

func ensureRateLines(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	for _, seed := range defaultRateLines {
		var existing ratecarddomain.RateLine
		err := tx.WithContext(ctx).Where("code = ?", seed.code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		line := ratecarddomain.RateLine{
			ID:           node.Generate(),
			Code:         seed.code,
			Name:         seed.name,
			Unit:         seed.unit,
			BasePrice:    decimal.RequireFromString(seed.basePrice),
			PricePerUnit: decimal.RequireFromString(seed.pricePerUnit),
			Active:       true,
		}
		if err := tx.WithContext(ctx).Create(&line).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureMultipliers(ctx context.Context, tx *gorm.DB, node *snowflake.Node, defaults config.MultiplierDefaults) error {
	seeds := []ratecarddomain.ProjectMultiplier{
		{
			Code:           ratecarddomain.MultiplierContingency,
			Basis:          ratecarddomain.BasisPercentOfLabour,
			DefaultPercent: decimal.NewFromFloat(defaults.ContingencyPercent),
		},
		{
			Code:           ratecarddomain.MultiplierCondoFactor,
			Basis:          ratecarddomain.BasisPercentOfLabour,
			DefaultPercent: decimal.NewFromFloat(defaults.CondoFactorPercent),
		},
		{
			Code:           ratecarddomain.MultiplierPMFee,
			Basis:          ratecarddomain.BasisPercentOfSell,
			DefaultPercent: decimal.NewFromFloat(defaults.PMFeePercent),
		},
	}
	for _, seed := range seeds {
		var existing ratecarddomain.ProjectMultiplier
		err := tx.WithContext(ctx).Where("code = ?", seed.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		seed.ID = node.Generate()
		seed.Active = true
		if err := tx.WithContext(ctx).Create(&seed).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureSquareFootage(ctx context.Context, tx *gorm.DB, node *snowflake.Node, defaults map[string]config.SquareFootageDefaults) error {
	for size, entry := range defaults {
		var existing bathroomdomain.SquareFootageConfig
		err := tx.WithContext(ctx).Where("size = ?", size).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		wallTile, err := json.Marshal(entry.WallTile)
		if err != nil {
			return err
		}
		row := bathroomdomain.SquareFootageConfig{
			ID:              node.Generate(),
			Size:            bathroomdomain.Size(size),
			FloorTile:       entry.FloorTile,
			ShowerFloorTile: entry.ShowerFloorTile,
			AccentTile:      entry.AccentTile,
			WallTile:        datatypes.JSON(wallTile),
		}
		if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func inclusionJSON(excluded ...catalogdomain.ItemType) datatypes.JSONMap {
	skip := make(map[catalogdomain.ItemType]bool, len(excluded))
	for _, item := range excluded {
		skip[item] = true
	}
	out := make(datatypes.JSONMap, len(catalogdomain.AllItemTypes()))
	for _, item := range catalogdomain.AllItemTypes() {
		out[string(item)] = !skip[item]
	}
	return out
}

func ensureInclusions(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	seeds := []bathroomdomain.BathroomTypeConfig{
		{
			Type:     bathroomdomain.TypeBathtub,
			Included: inclusionJSON(catalogdomain.ItemShower, catalogdomain.ItemGlazing),
		},
		{
			Type:     bathroomdomain.TypeWalkInShower,
			Included: inclusionJSON(catalogdomain.ItemTub, catalogdomain.ItemTubFiller),
		},
		{
			Type:     bathroomdomain.TypeTubAndShower,
			Included: inclusionJSON(),
		},
		{
			Type: bathroomdomain.TypeSinkAndToilet,
			Included: inclusionJSON(
				catalogdomain.ItemShowerFloorTile,
				catalogdomain.ItemAccentTile,
				catalogdomain.ItemTub,
				catalogdomain.ItemTubFiller,
				catalogdomain.ItemShower,
				catalogdomain.ItemGlazing,
			),
		},
	}
	for _, seed := range seeds {
		var existing bathroomdomain.BathroomTypeConfig
		err := tx.WithContext(ctx).Where("type = ?", seed.Type).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		seed.ID = node.Generate()
		if err := tx.WithContext(ctx).Create(&seed).Error; err != nil {
			return err
		}
	}
	return nil
}

type materialSeed struct {
	sku          string
	name         string
	itemType     catalogdomain.ItemType
	price        string
	pricePerSqft string
}

var defaultMaterials = []materialSeed{
	{"TIL-PRC-001", "Porcelain floor tile 12x24", catalogdomain.ItemFloorTile, "", "$6.50"},
	{"TIL-MOS-001", "Mosaic shower floor tile", catalogdomain.ItemShowerFloorTile, "", "$14.00"},
	{"TIL-SUB-001", "Subway wall tile 3x6", catalogdomain.ItemWallTile, "", "$5.25"},
	{"TIL-ACC-001", "Accent feature tile", catalogdomain.ItemAccentTile, "", "$22.00"},
	{"VAN-036-OAK", "36in oak vanity with quartz top", catalogdomain.ItemVanity, "$1,450.00", ""},
	{"TUB-ALC-060", "60in alcove soaker tub", catalogdomain.ItemTub, "$895.00", ""},
	{"TFL-CHR-001", "Chrome tub filler", catalogdomain.ItemTubFiller, "$385.00", ""},
	{"WC-DF-001", "Dual flush toilet", catalogdomain.ItemToilet, "$465.00", ""},
	{"SHW-RAIN-01", "Rain shower system", catalogdomain.ItemShower, "$720.00", ""},
	{"FCT-CHR-001", "Single hole chrome faucet", catalogdomain.ItemFaucet, "$295.00", ""},
	{"GLZ-FRM-060", "60in framed glass panel", catalogdomain.ItemGlazing, "$1,150.00", ""},
	{"MIR-LED-036", "36in LED mirror", catalogdomain.ItemMirror, "$340.00", ""},
	{"ACC-TWB-024", "24in towel bar", catalogdomain.ItemTowelBar, "$65.00", ""},
	{"ACC-TPH-001", "Toilet paper holder", catalogdomain.ItemToiletPaperHolder, "$42.00", ""},
	{"ACC-HOK-001", "Robe hook", catalogdomain.ItemHook, "$28.00", ""},
	{"LGT-VAN-003", "3-light vanity fixture", catalogdomain.ItemLighting, "$215.00", ""},
}

func ensureMaterials(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	for _, seed := range defaultMaterials {
		var existing catalogdomain.Material
		err := tx.WithContext(ctx).Where("sku = ?", seed.sku).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		material := catalogdomain.Material{
			ID:              node.Generate(),
			SKU:             seed.sku,
			Name:            seed.name,
			ItemType:        seed.itemType,
			PriceRaw:        seed.price,
			PricePerSqftRaw: seed.pricePerSqft,
			Active:          true,
		}
		if err := tx.WithContext(ctx).Create(&material).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensurePackages(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	seeds := []catalogdomain.Package{
		{
			Code: "CLASSIC",
			Name: "Classic",
			Items: datatypes.JSONMap{
				string(catalogdomain.ItemFloorTile):         "TIL-PRC-001",
				string(catalogdomain.ItemShowerFloorTile):   "TIL-MOS-001",
				string(catalogdomain.ItemWallTile):          "TIL-SUB-001",
				string(catalogdomain.ItemVanity):            "VAN-036-OAK",
				string(catalogdomain.ItemTub):               "TUB-ALC-060",
				string(catalogdomain.ItemTubFiller):         "TFL-CHR-001",
				string(catalogdomain.ItemToilet):            "WC-DF-001",
				string(catalogdomain.ItemShower):            "SHW-RAIN-01",
				string(catalogdomain.ItemFaucet):            "FCT-CHR-001",
				string(catalogdomain.ItemGlazing):           "GLZ-FRM-060",
				string(catalogdomain.ItemMirror):            "MIR-LED-036",
				string(catalogdomain.ItemTowelBar):          "ACC-TWB-024",
				string(catalogdomain.ItemToiletPaperHolder): "ACC-TPH-001",
				string(catalogdomain.ItemHook):              "ACC-HOK-001",
				string(catalogdomain.ItemLighting):          "LGT-VAN-003",
			},
		},
		{
			Code: "SIGNATURE",
			Name: "Signature",
			Items: datatypes.JSONMap{
				string(catalogdomain.ItemFloorTile):  "TIL-PRC-001",
				string(catalogdomain.ItemWallTile):   "TIL-SUB-001",
				string(catalogdomain.ItemAccentTile): "TIL-ACC-001",
				string(catalogdomain.ItemVanity):     "VAN-036-OAK",
				string(catalogdomain.ItemToilet):     "WC-DF-001",
				string(catalogdomain.ItemFaucet):     "FCT-CHR-001",
				string(catalogdomain.ItemMirror):     "MIR-LED-036",
				string(catalogdomain.ItemLighting):   "LGT-VAN-003",
			},
		},
	}
	for _, seed := range seeds {
		var existing catalogdomain.Package
		err := tx.WithContext(ctx).Where("code = ?", seed.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		seed.ID = node.Generate()
		seed.Active = true
		if err := tx.WithContext(ctx).Create(&seed).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureRevision(ctx context.Context, tx *gorm.DB) error {
	var existing ratecarddomain.ConfigRevision
	err := tx.WithContext(ctx).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.WithContext(ctx).Create(&ratecarddomain.ConfigRevision{ID: 1, Revision: 1}).Error
}
