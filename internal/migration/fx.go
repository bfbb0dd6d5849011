package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	bathroomdomain "github.com/renolab/bathquote/internal/bathroom/domain"
	catalogdomain "github.com/renolab/bathquote/internal/catalog/domain"
	"github.com/renolab/bathquote/internal/config"
	ratecarddomain "github.com/renolab/bathquote/internal/ratecard/domain"
	"github.com/renolab/bathquote/internal/seed"
	snapshotdomain "github.com/renolab/bathquote/internal/snapshot/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, defaults *config.PricingDefaultsHolder) error {
		switch cfg.DBType {
		case "postgres":
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		default:
			// sqlite has no migrate driver wired; the schema is small
			// enough that AutoMigrate keeps dev databases current.
			if err := conn.AutoMigrate(
				&ratecarddomain.RateLine{},
				&ratecarddomain.ProjectMultiplier{},
				&ratecarddomain.ConfigRevision{},
				&bathroomdomain.SquareFootageConfig{},
				&bathroomdomain.BathroomTypeConfig{},
				&catalogdomain.Material{},
				&catalogdomain.Package{},
				&snapshotdomain.PricingSnapshot{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDefaults {
			return seed.EnsureDefaults(conn, defaults.Get())
		}
		return nil
	}),
)
