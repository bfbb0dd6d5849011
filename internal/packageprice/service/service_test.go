package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	bathroomdomain "github.com/renolab/bathquote/internal/bathroom/domain"
	catalogdomain "github.com/renolab/bathquote/internal/catalog/domain"
	packagepricedomain "github.com/renolab/bathquote/internal/packageprice/domain"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
)

func testSnapshot() *ratecarddomain.ConfigSnapshot {
	matrix := map[bathroomdomain.BathroomType]map[bathroomdomain.WallTileCoverage]float64{
		bathroomdomain.TypeWalkInShower: {
			bathroomdomain.CoverageNone:           0,
			bathroomdomain.CoverageHalfwayUp:      55,
			bathroomdomain.CoverageFloorToCeiling: 110,
		},
		bathroomdomain.TypeSinkAndToilet: {
			bathroomdomain.CoverageNone:           0,
			bathroomdomain.CoverageHalfwayUp:      35,
			bathroomdomain.CoverageFloorToCeiling: 70,
		},
	}

	return &ratecarddomain.ConfigSnapshot{
		Version: 3,
		SquareFootage: map[bathroomdomain.Size]bathroomdomain.SquareFootage{
			bathroomdomain.SizeSmall: {
				Size:            bathroomdomain.SizeSmall,
				FloorTile:       40,
				ShowerFloorTile: 9,
				AccentTile:      10,
				WallTile: bathroomdomain.WallTileSpec{
					Shape:  bathroomdomain.ShapeByTypeAndCoverage,
					ByType: matrix,
				},
			},
		},
		Inclusions: map[bathroomdomain.BathroomType]map[catalogdomain.ItemType]bool{
			bathroomdomain.TypeSinkAndToilet: {
				catalogdomain.ItemFloorTile: true,
				catalogdomain.ItemWallTile:  true,
				catalogdomain.ItemVanity:    true,
				catalogdomain.ItemToilet:    true,
				catalogdomain.ItemShower:    false,
				catalogdomain.ItemGlazing:   false,
			},
		},
		Materials: map[string]catalogdomain.Material{
			"TIL-FLR": {SKU: "TIL-FLR", ItemType: catalogdomain.ItemFloorTile, PricePerSqftRaw: "$6.50", Active: true},
			"TIL-WAL": {SKU: "TIL-WAL", ItemType: catalogdomain.ItemWallTile, PricePerSqftRaw: "$5.25", Active: true},
			"VAN-036": {SKU: "VAN-036", ItemType: catalogdomain.ItemVanity, PriceRaw: "$1,450.00", Active: true},
			"WC-001":  {SKU: "WC-001", ItemType: catalogdomain.ItemToilet, PriceRaw: "$465.00", Active: true},
			"SHW-001": {SKU: "SHW-001", ItemType: catalogdomain.ItemShower, PriceRaw: "$720.00", Active: true},
		},
	}
}

func testPackage() catalogdomain.Package {
	return catalogdomain.Package{
		Code: "CLASSIC",
		Name: "Classic",
		Items: datatypes.JSONMap{
			string(catalogdomain.ItemFloorTile): "TIL-FLR",
			string(catalogdomain.ItemWallTile):  "TIL-WAL",
			string(catalogdomain.ItemVanity):    "VAN-036",
			string(catalogdomain.ItemToilet):    "WC-001",
			string(catalogdomain.ItemShower):    "SHW-001",
		},
	}
}

func newTestService() *Service {
	return &Service{log: zap.NewNop()}
}

func TestPriceWith_SmallSinkAndToilet(t *testing.T) {
	svc := newTestService()

	result, err := svc.PriceWith(context.Background(), testPackage(), packagepricedomain.Configuration{
		Size:     bathroomdomain.SizeSmall,
		Type:     bathroomdomain.TypeSinkAndToilet,
		Coverage: bathroomdomain.CoverageFloorToCeiling,
	}, testSnapshot())
	assert.NoError(t, err)

	byType := make(map[catalogdomain.ItemType]packagepricedomain.ItemPrice, len(result.Included))
	for _, item := range result.Included {
		byType[item.ItemType] = item
	}

	// floor 40 x 6.50, wall 70 x 5.25, vanity 1450, toilet 465.
	assert.Equal(t, "260", byType[catalogdomain.ItemFloorTile].Amount.String())
	assert.Equal(t, 70.0, byType[catalogdomain.ItemWallTile].Sqft)
	assert.Equal(t, "367.5", byType[catalogdomain.ItemWallTile].Amount.String())
	assert.Equal(t, "1450", byType[catalogdomain.ItemVanity].Amount.String())
	assert.Equal(t, "465", byType[catalogdomain.ItemToilet].Amount.String())
	assert.Equal(t, "2542.5", result.Total.String())

	// The shower SKU is assigned but the inclusion map excludes it.
	assert.NotContains(t, byType, catalogdomain.ItemShower)
	assert.Empty(t, result.MissingSKUs)
	assert.Empty(t, result.Warnings)
}

func TestPriceWith_MissingSKU(t *testing.T) {
	svc := newTestService()
	snapshot := testSnapshot()
	delete(snapshot.Materials, "VAN-036")

	result, err := svc.PriceWith(context.Background(), testPackage(), packagepricedomain.Configuration{
		Size:     bathroomdomain.SizeSmall,
		Type:     bathroomdomain.TypeSinkAndToilet,
		Coverage: bathroomdomain.CoverageFloorToCeiling,
	}, snapshot)
	assert.NoError(t, err)

	// The absent SKU contributes zero and is reported, not fatal.
	assert.Equal(t, "1092.5", result.Total.String())
	assert.Equal(t, []string{"VAN-036"}, result.MissingSKUs)
}

func TestPriceWith_InclusionGapIncludesAll(t *testing.T) {
	svc := newTestService()

	result, err := svc.PriceWith(context.Background(), testPackage(), packagepricedomain.Configuration{
		Size:     bathroomdomain.SizeSmall,
		Type:     bathroomdomain.TypeWalkInShower,
		Coverage: bathroomdomain.CoverageHalfwayUp,
	}, testSnapshot())
	assert.NoError(t, err)

	byType := make(map[catalogdomain.ItemType]packagepricedomain.ItemPrice, len(result.Included))
	for _, item := range result.Included {
		byType[item.ItemType] = item
	}

	// No inclusion row for walk-in showers: everything assigned prices.
	assert.Contains(t, byType, catalogdomain.ItemShower)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "including all items")
	assert.Equal(t, 55.0, byType[catalogdomain.ItemWallTile].Sqft)
}

func TestPriceWith_UnknownSize(t *testing.T) {
	svc := newTestService()

	_, err := svc.PriceWith(context.Background(), testPackage(), packagepricedomain.Configuration{
		Size:     "palatial",
		Type:     bathroomdomain.TypeSinkAndToilet,
		Coverage: bathroomdomain.CoverageNone,
	}, testSnapshot())

	assert.ErrorIs(t, err, packagepricedomain.ErrUnknownSize)
}
