// Package importer wires configuration, GeoJSON decoding and the feature
// walker into one call per input document.
package importer

import (
	"time"

	"github.com/ardesh/lancelet-gh/internal/config"
	"github.com/ardesh/lancelet-gh/internal/geo"
	"github.com/ardesh/lancelet-gh/internal/walker"

	"github.com/rs/zerolog/log"
)

// Import converts a GeoJSON document into design space. Configuration is
// resolved before the document is touched, so a bad unit fails with no output.
func Import(data []byte, cfg *config.Config) (*walker.Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	tr, opts, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	fc, err := geo.Parse(data)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := walker.Walk(fc, tr, opts)
	if err != nil {
		log.Error().
			Err(err).
			Str("kind", geo.KindOf(err).String()).
			Msg("Walk aborted")
		return nil, err
	}

	for _, issue := range res.Skipped {
		log.Warn().
			Int("feature", issue.Feature).
			Str("reason", issue.Reason).
			Msg("Skipped malformed feature")
	}

	log.Info().
		Int("features", len(fc.Features)).
		Int("curves", len(res.Curves)).
		Int("points", len(res.Points)).
		Int("skipped", len(res.Skipped)).
		Str("unit", cfg.Unit).
		Dur("duration", time.Since(start)).
		Msg("GeoJSON imported")

	return res, nil
}

// Info summarizes a GeoJSON document without transforming it. The unit is
// still validated so the same configuration fails the same way in both paths.
func Info(data []byte, cfg *config.Config) (*walker.Summary, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	_, opts, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	fc, err := geo.Parse(data)
	if err != nil {
		return nil, err
	}

	s, err := walker.Summarize(fc, opts)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("features", s.Features).
		Int("attribute_keys", len(s.AttributeKeys)).
		Msg("GeoJSON summarized")

	return s, nil
}

func resolve(cfg *config.Config) (*geo.Transformer, walker.Options, error) {
	tr, err := cfg.Transformer()
	if err != nil {
		log.Error().Err(err).Str("unit", cfg.Unit).Msg("Invalid unit")
		return nil, walker.Options{}, err
	}

	opts, err := cfg.WalkOptions()
	if err != nil {
		return nil, walker.Options{}, err
	}

	return tr, opts, nil
}
