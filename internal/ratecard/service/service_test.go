package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	bathroomdomain "github.com/renolab/bathquote/internal/bathroom/domain"
	bathroomrepo "github.com/renolab/bathquote/internal/bathroom/repository"
	catalogdomain "github.com/renolab/bathquote/internal/catalog/domain"
	catalogrepo "github.com/renolab/bathquote/internal/catalog/repository"
	"github.com/renolab/bathquote/internal/clock"
	"github.com/renolab/bathquote/internal/config"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
	ratecardrepo "github.com/renolab/bathquote/internal/ratecard/repository"
	"github.com/renolab/bathquote/internal/seed"
)

func setupService(t *testing.T, seeded bool) (ratecarddomain.Service, *gorm.DB) {
	t.Helper()
	return setupServiceWithDefaults(t, seeded, nil)
}

func setupServiceWithDefaults(t *testing.T, seeded bool, defaults *config.PricingDefaultsHolder) (ratecarddomain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&ratecarddomain.RateLine{},
		&ratecarddomain.ProjectMultiplier{},
		&ratecarddomain.ConfigRevision{},
		&bathroomdomain.SquareFootageConfig{},
		&bathroomdomain.BathroomTypeConfig{},
		&catalogdomain.Material{},
		&catalogdomain.Package{},
	)
	assert.NoError(t, err)

	if seeded {
		assert.NoError(t, seed.EnsureDefaults(db, config.DefaultPricingDefaults()))
	}

	svc := NewService(ServiceParam{
		DB:           db,
		Log:          zap.NewNop(),
		Clock:        clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		Defaults:     defaults,
		RatecardRepo: ratecardrepo.Provide(),
		BathroomRepo: bathroomrepo.Provide(),
		CatalogRepo:  catalogrepo.Provide(),
	})
	return svc, db
}

func TestLoadSnapshot_Seeded(t *testing.T) {
	svc, _ := setupService(t, true)

	snapshot, err := svc.LoadSnapshot(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, int64(1), snapshot.Version)
	for _, code := range ratecarddomain.RequiredCodes {
		assert.NotNil(t, snapshot.ActiveRate(code), code)
	}
	assert.Equal(t, "10", snapshot.MultiplierPercent(ratecarddomain.MultiplierContingency).String())
	assert.Equal(t, "15", snapshot.MultiplierPercent(ratecarddomain.MultiplierPMFee).String())

	// Square footage rows normalize into the matrix shape.
	small, ok := snapshot.SquareFootage[bathroomdomain.SizeSmall]
	assert.True(t, ok)
	assert.Equal(t, bathroomdomain.ShapeByTypeAndCoverage, small.WallTile.Shape)
	sqft, substituted, err := small.WallTileSqft(bathroomdomain.TypeSinkAndToilet, bathroomdomain.CoverageFloorToCeiling)
	assert.NoError(t, err)
	assert.False(t, substituted)
	assert.Equal(t, 70.0, sqft)

	// Inclusion maps: a powder-style layout has no tub to price.
	sinkToilet := snapshot.Inclusions[bathroomdomain.TypeSinkAndToilet]
	assert.False(t, sinkToilet[catalogdomain.ItemTub])
	assert.True(t, sinkToilet[catalogdomain.ItemVanity])

	assert.NotEmpty(t, snapshot.Materials)
}

func TestLoadSnapshot_RevisionTracksEdits(t *testing.T) {
	svc, db := setupService(t, true)
	ctx := context.Background()

	before, err := svc.LoadSnapshot(ctx)
	assert.NoError(t, err)

	_, err = ratecardrepo.Provide().BumpRevision(ctx, db)
	assert.NoError(t, err)

	after, err := svc.LoadSnapshot(ctx)
	assert.NoError(t, err)
	assert.Equal(t, before.Version+1, after.Version)
}

func TestLoadSnapshot_EmptyDatabase(t *testing.T) {
	svc, _ := setupService(t, false)

	_, err := svc.LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, ratecarddomain.ErrRevisionMissing)
}

func TestLoadSnapshot_MissingSquareFootage(t *testing.T) {
	svc, db := setupService(t, true)

	assert.NoError(t, db.Where("1 = 1").Delete(&bathroomdomain.SquareFootageConfig{}).Error)

	_, err := svc.LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, ratecarddomain.ErrSquareFootageEmpty)
}

func TestLoadSnapshot_DefaultsBackfillMissingSize(t *testing.T) {
	holder := config.NewStaticPricingDefaultsHolder(config.DefaultPricingDefaults())
	svc, db := setupServiceWithDefaults(t, true, holder)

	assert.NoError(t, db.Where("size = ?", bathroomdomain.SizeLarge).Delete(&bathroomdomain.SquareFootageConfig{}).Error)

	snapshot, err := svc.LoadSnapshot(context.Background())
	assert.NoError(t, err)

	large, ok := snapshot.SquareFootage[bathroomdomain.SizeLarge]
	assert.True(t, ok)
	assert.Equal(t, 85.0, large.FloorTile)
	sqft, substituted, err := large.WallTileSqft(bathroomdomain.TypeBathtub, bathroomdomain.CoverageFloorToCeiling)
	assert.NoError(t, err)
	assert.False(t, substituted)
	assert.Equal(t, 190.0, sqft)
}

func TestLoadSnapshot_AdminRowsWinOverDefaults(t *testing.T) {
	modified := config.DefaultPricingDefaults()
	entry := modified.SquareFootage["large"]
	entry.FloorTile = 999
	modified.SquareFootage["large"] = entry

	svc, _ := setupServiceWithDefaults(t, true, config.NewStaticPricingDefaultsHolder(modified))

	snapshot, err := svc.LoadSnapshot(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 85.0, snapshot.SquareFootage[bathroomdomain.SizeLarge].FloorTile)
}

func TestLoadSnapshot_ReloadDoesNotChangeLoadedSnapshot(t *testing.T) {
	holder := config.NewStaticPricingDefaultsHolder(config.DefaultPricingDefaults())
	svc, db := setupServiceWithDefaults(t, true, holder)
	ctx := context.Background()

	assert.NoError(t, db.Where("size = ?", bathroomdomain.SizeLarge).Delete(&bathroomdomain.SquareFootageConfig{}).Error)

	before, err := svc.LoadSnapshot(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 85.0, before.SquareFootage[bathroomdomain.SizeLarge].FloorTile)

	updated := config.DefaultPricingDefaults()
	entry := updated.SquareFootage["large"]
	entry.FloorTile = 120
	updated.SquareFootage["large"] = entry
	assert.NoError(t, holder.Replace(updated))

	// The snapshot handed out before the reload keeps its values.
	assert.Equal(t, 85.0, before.SquareFootage[bathroomdomain.SizeLarge].FloorTile)

	after, err := svc.LoadSnapshot(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 120.0, after.SquareFootage[bathroomdomain.SizeLarge].FloorTile)
}

func TestPricingDefaultsHolder_RejectsInvalidReplacement(t *testing.T) {
	holder := config.NewStaticPricingDefaultsHolder(config.DefaultPricingDefaults())

	err := holder.Replace(config.PricingDefaults{})
	assert.Error(t, err)
	assert.NotEmpty(t, holder.Get().SquareFootage)
}
