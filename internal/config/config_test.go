package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardesh/lancelet-gh/internal/geo"
	"github.com/ardesh/lancelet-gh/internal/walker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
anchor:
  latitude: 39.1
  longitude: -77.5
  elevation: 12
  true_north: 30
unit: feet
walk:
  policy: skip
  workers: 4
  clip: {min_lon: -78, max_lon: -77, min_lat: 39, max_lat: 40}
render:
  width: 800
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, geo.Anchor{Latitude: 39.1, Longitude: -77.5, Elevation: 12, TrueNorth: 30}, cfg.Anchor)
	assert.Equal(t, "feet", cfg.Unit)
	assert.Equal(t, 800, cfg.Render.Width)
	assert.Equal(t, 1024, cfg.Render.Height, "defaults survive partial files")
	require.NoError(t, cfg.Validate())

	tr, err := cfg.Transformer()
	require.NoError(t, err)
	assert.Equal(t, 3.28084, tr.Scale())
	assert.Equal(t, cfg.Anchor, tr.Anchor())

	opts, err := cfg.WalkOptions()
	require.NoError(t, err)
	assert.Equal(t, walker.SkipMalformed, opts.Policy)
	assert.Equal(t, 4, opts.Workers)
	require.NotNil(t, opts.Clip)
	assert.Equal(t, -78.0, opts.Clip.MinLon)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "anchor: [1, 2"))
	assert.Error(t, err)
}

func TestUnknownUnitIsConfigError(t *testing.T) {
	cfg := Default()
	cfg.Unit = "parsecs"

	tr, err := cfg.Transformer()
	assert.Nil(t, tr)
	assert.ErrorIs(t, err, geo.ErrUnknownUnit)
	assert.Equal(t, geo.KindConfig, geo.KindOf(cfg.Validate()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad policy", func(c *Config) { c.Walk.Policy = "retry" }},
		{"inverted clip", func(c *Config) { c.Walk.Clip = &geo.Bounds{MinLon: 1, MaxLon: 0, MinLat: 0, MaxLat: 1} }},
		{"negative width", func(c *Config) { c.Render.Width = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, geo.ErrInvalidConfig)
			assert.Equal(t, geo.KindConfig, geo.KindOf(err))
		})
	}

	assert.NoError(t, Default().Validate())
}
