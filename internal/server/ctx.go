package server

import (
	"github.com/ardesh/lancelet-gh/internal/config"
	"github.com/ardesh/lancelet-gh/internal/geo"
	"github.com/ardesh/lancelet-gh/internal/render"

	"github.com/rs/zerolog/log"
)

// DefaultMaxBody caps request bodies.
const DefaultMaxBody = 32 << 20

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config      *config.Config
	Transformer *geo.Transformer
	Render      render.Options
	MaxBody     int64
}

// NewServerContext validates the configuration once so every request can
// reuse the resolved transformer.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tr, err := cfg.Transformer()
	if err != nil {
		return nil, err
	}

	log.Info().
		Float64("lat", cfg.Anchor.Latitude).
		Float64("lon", cfg.Anchor.Longitude).
		Float64("elevation", cfg.Anchor.Elevation).
		Float64("true_north", cfg.Anchor.TrueNorth).
		Str("unit", cfg.Unit).
		Msg("Server context initialized")

	return &ServerContext{
		Config:      cfg,
		Transformer: tr,
		Render:      render.FromConfig(cfg.Render),
		MaxBody:     DefaultMaxBody,
	}, nil
}
