// Package config handles configuration loading and resolution into core types.
package config

import (
	"fmt"
	"os"

	"github.com/ardesh/lancelet-gh/internal/geo"
	"github.com/ardesh/lancelet-gh/internal/walker"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Unit   string     `yaml:"unit" json:"unit"`
	Walk   Walk       `yaml:"walk,omitempty" json:"walk"`
	Render Render     `yaml:"render,omitempty" json:"render"`
	Anchor geo.Anchor `yaml:"anchor" json:"anchor"`
}

// Walk configures the feature walker.
type Walk struct {
	// defines a geographic clip box, features outside it are ignored
	Clip    *geo.Bounds `yaml:"clip,omitempty" json:"clip,omitempty"`
	Policy  string      `yaml:"policy,omitempty" json:"policy,omitempty"` // abort | skip
	Workers int         `yaml:"workers,omitempty" json:"workers,omitempty"`
}

// Render configures plan-view previews.
type Render struct {
	Width   int     `yaml:"width,omitempty" json:"width,omitempty"`
	Height  int     `yaml:"height,omitempty" json:"height,omitempty"`
	Padding int     `yaml:"padding,omitempty" json:"padding,omitempty"`
	Stroke  float64 `yaml:"stroke,omitempty" json:"stroke,omitempty"`
}

// Default returns a configuration anchored at 0,0 in meters.
func Default() *Config {
	return &Config{
		Unit: string(geo.UnitMeters),
		Walk: Walk{Policy: walker.AbortOnShapeError.String(), Workers: 1},
		Render: Render{
			Width:   1024,
			Height:  1024,
			Padding: 16,
			Stroke:  1.5,
		},
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Transformer resolves the unit and builds the coordinate transformer. An
// unknown unit is a configuration error.
func (c *Config) Transformer() (*geo.Transformer, error) {
	unit, err := geo.ParseUnit(c.Unit)
	if err != nil {
		return nil, err
	}
	return geo.NewTransformer(c.Anchor, unit.Scale()), nil
}

// WalkOptions resolves walker options.
func (c *Config) WalkOptions() (walker.Options, error) {
	policy, err := walker.ParseShapePolicy(c.Walk.Policy)
	if err != nil {
		return walker.Options{}, err
	}
	if c.Walk.Clip != nil && c.Walk.Clip.Empty() {
		return walker.Options{}, fmt.Errorf("%w: clip box has min greater than max", geo.ErrInvalidConfig)
	}

	return walker.Options{
		Policy:  policy,
		Workers: c.Walk.Workers,
		Clip:    c.Walk.Clip,
	}, nil
}

// Validate checks every value that can be rejected before processing starts.
func (c *Config) Validate() error {
	if _, err := c.Transformer(); err != nil {
		return err
	}
	if _, err := c.WalkOptions(); err != nil {
		return err
	}
	if c.Render.Width < 0 || c.Render.Height < 0 || c.Render.Padding < 0 || c.Render.Stroke < 0 {
		return fmt.Errorf("%w: render sizes must not be negative", geo.ErrInvalidConfig)
	}
	return nil
}
