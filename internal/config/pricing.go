package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// SquareFootageDefaults is the shipped footage for one bathroom size.
// WallTile is keyed by bathroom type then coverage level.
type SquareFootageDefaults struct {
	FloorTile       float64                       `mapstructure:"floorTile"`
	ShowerFloorTile float64                       `mapstructure:"showerFloorTile"`
	AccentTile      float64                       `mapstructure:"accentTile"`
	WallTile        map[string]map[string]float64 `mapstructure:"wallTile"`
}

// MultiplierDefaults is the shipped percentage for each project multiplier.
type MultiplierDefaults struct {
	ContingencyPercent float64 `mapstructure:"contingencyPercent"`
	CondoFactorPercent float64 `mapstructure:"condoFactorPercent"`
	PMFeePercent       float64 `mapstructure:"pmFeePercent"`
}

// PricingDefaults seeds the database on first boot and backs any size the
// admin tables have not covered yet. Snapshot loading reads the holder at
// most once per load; a reload never alters a snapshot already handed to
// a calculation.
type PricingDefaults struct {
	SquareFootage map[string]SquareFootageDefaults `mapstructure:"squareFootage"`
	Multipliers   MultiplierDefaults               `mapstructure:"multipliers"`
}

// DefaultPricingDefaults returns the compiled-in defaults used when no
// pricing.yml is present.
func DefaultPricingDefaults() PricingDefaults {
	wall := func(bathtub, walkIn, tubShower, sinkToilet float64) map[string]map[string]float64 {
		entry := func(full float64) map[string]float64 {
			return map[string]float64{
				"none":           0,
				"halfwayUp":      full / 2,
				"floorToCeiling": full,
			}
		}
		return map[string]map[string]float64{
			"Bathtub":        entry(bathtub),
			"Walk-in Shower": entry(walkIn),
			"Tub & Shower":   entry(tubShower),
			"Sink & Toilet":  entry(sinkToilet),
		}
	}

	return PricingDefaults{
		SquareFootage: map[string]SquareFootageDefaults{
			"small": {
				FloorTile:       40,
				ShowerFloorTile: 9,
				AccentTile:      10,
				WallTile:        wall(120, 110, 130, 70),
			},
			"normal": {
				FloorTile:       60,
				ShowerFloorTile: 12,
				AccentTile:      15,
				WallTile:        wall(150, 140, 165, 90),
			},
			"large": {
				FloorTile:       85,
				ShowerFloorTile: 16,
				AccentTile:      20,
				WallTile:        wall(190, 175, 210, 115),
			},
		},
		Multipliers: MultiplierDefaults{
			ContingencyPercent: 10,
			CondoFactorPercent: 10,
			PMFeePercent:       15,
		},
	}
}

// PricingDefaultsHolder hands out the current defaults and hot-reloads
// them when pricing.yml changes on disk.
type PricingDefaultsHolder struct {
	current atomic.Value // holds PricingDefaults
}

func NewPricingDefaultsHolder() (*PricingDefaultsHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/bathquote")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BATHQUOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &PricingDefaultsHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultPricingDefaults())
		return holder, nil
	}

	var cfg PricingDefaults
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	if err := validatePricingDefaults(cfg); err != nil {
		return nil, err
	}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingDefaults
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := holder.Replace(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticPricingDefaultsHolder wraps fixed defaults without watching
// any file.
func NewStaticPricingDefaultsHolder(cfg PricingDefaults) *PricingDefaultsHolder {
	holder := &PricingDefaultsHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *PricingDefaultsHolder) Get() PricingDefaults {
	return h.current.Load().(PricingDefaults)
}

// Replace validates and swaps the current defaults. The file watcher
// calls it on every change event; invalid content is rejected and the
// previous defaults stay in effect.
func (h *PricingDefaultsHolder) Replace(cfg PricingDefaults) error {
	if err := validatePricingDefaults(cfg); err != nil {
		return err
	}
	h.current.Store(cfg)
	return nil
}

func validatePricingDefaults(cfg PricingDefaults) error {
	if len(cfg.SquareFootage) == 0 {
		return errors.New("pricing.squareFootage cannot be empty")
	}
	for size, entry := range cfg.SquareFootage {
		if len(entry.WallTile) == 0 {
			return errors.New("pricing.squareFootage." + size + ".wallTile cannot be empty")
		}
	}
	return nil
}
