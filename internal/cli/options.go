// Package cli holds command line options shared by the commands.
package cli

import (
	"github.com/ardesh/lancelet-gh/internal/config"
)

// Anchor overrides configuration file values; nil fields keep the file value.
type Anchor struct {
	ConfigFile string   `short:"c" long:"config"     env:"CONFIG_FILE" description:"Path to configuration file"`
	Unit       string   `short:"u" long:"unit"       env:"UNIT"        description:"Design unit (inches, feet, meters)"`
	Latitude   *float64 `long:"lat"                  env:"ANCHOR_LAT"  description:"Anchor latitude in degrees"`
	Longitude  *float64 `long:"lon"                  env:"ANCHOR_LON"  description:"Anchor longitude in degrees"`
	Elevation  *float64 `long:"elevation"            env:"ANCHOR_ELEV" description:"Anchor elevation in design units"`
	TrueNorth  *float64 `long:"true-north"           env:"TRUE_NORTH"  description:"True north angle in degrees"`
	Policy     string   `short:"P" long:"policy"     env:"POLICY"      description:"Malformed feature policy" choice:"abort" choice:"skip"`
	Workers    int      `short:"w" long:"workers"    env:"WORKERS"     description:"Parallel feature workers"`
}

// Load reads the configuration file (if any) and applies the overrides.
func (a *Anchor) Load() (*config.Config, error) {
	cfg := config.Default()
	if a.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(a.ConfigFile); err != nil {
			return nil, err
		}
	}

	if a.Unit != "" {
		cfg.Unit = a.Unit
	}
	if a.Latitude != nil {
		cfg.Anchor.Latitude = *a.Latitude
	}
	if a.Longitude != nil {
		cfg.Anchor.Longitude = *a.Longitude
	}
	if a.Elevation != nil {
		cfg.Anchor.Elevation = *a.Elevation
	}
	if a.TrueNorth != nil {
		cfg.Anchor.TrueNorth = *a.TrueNorth
	}
	if a.Policy != "" {
		cfg.Walk.Policy = a.Policy
	}
	if a.Workers > 0 {
		cfg.Walk.Workers = a.Workers
	}

	return cfg, cfg.Validate()
}
