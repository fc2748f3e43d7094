package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"time"

	"github.com/ardesh/lancelet-gh/internal/cli"
	"github.com/ardesh/lancelet-gh/internal/geo"
	"github.com/ardesh/lancelet-gh/internal/importer"
	"github.com/ardesh/lancelet-gh/internal/logger"
	"github.com/ardesh/lancelet-gh/internal/render"
	"github.com/ardesh/lancelet-gh/internal/report"
	"github.com/ardesh/lancelet-gh/internal/walker"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`
	Anchor cli.Anchor    `group:"Anchor options"`

	Input   string        `short:"i" long:"in"      description:"GeoJSON file path or http(s) URL. Reads from stdin if empty"`
	Output  string        `short:"o" long:"out"     description:"Output file path. Writes to stdout if empty"`
	Format  string        `short:"f" long:"format"  description:"Output format" choice:"json" choice:"yaml" choice:"text" default:"json"`
	Compact bool          `long:"compact"           description:"Minify JSON output"`
	SVG     string        `long:"svg"               description:"Write an SVG preview to this path"`
	WebP    string        `long:"webp"              description:"Write a WebP preview to this path"`
	Timeout time.Duration `short:"t" long:"timeout" env:"FETCH_TIMEOUT" description:"Remote source timeout" default:"30s"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := opts.Anchor.Load()
	if err != nil {
		log.Fatal().Err(err).Str("kind", geo.KindOf(err).String()).Msg("Invalid configuration")
	}

	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid output format")
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	data, err := importer.Read(ctx, &http.Client{Timeout: opts.Timeout}, opts.Input, os.Stdin)
	if err != nil {
		log.Fatal().Err(err).Str("source", opts.Input).Msg("Failed to read GeoJSON")
	}

	res, err := importer.Import(data, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("kind", geo.KindOf(err).String()).Msg("Import failed")
	}

	var buf bytes.Buffer
	if err := (report.Writer{Format: format, Compact: opts.Compact}).WriteResult(&buf, res); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode result")
	}
	writeOutput(opts.Output, buf.Bytes())

	writePreviews(opts, res, render.FromConfig(cfg.Render))

	log.Info().
		Int("curves", len(res.Curves)).
		Int("points", len(res.Points)).
		Int("skipped", len(res.Skipped)).
		Str("unit", cfg.Unit).
		Msg("Import finished")
}

func writePreviews(opts Options, res *walker.Result, ro render.Options) {
	if opts.SVG != "" {
		out, err := render.SVG(res, ro)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to render SVG preview")
		}
		writeOutput(opts.SVG, out)
	}

	if opts.WebP != "" {
		var buf bytes.Buffer
		if err := render.WebP(&buf, res, ro); err != nil {
			log.Fatal().Err(err).Msg("Failed to render WebP preview")
		}
		writeOutput(opts.WebP, buf.Bytes())
	}
}

func writeOutput(path string, data []byte) {
	if path == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatal().Err(err).Msg("Failed to write stdout")
		}
		return
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write output file")
	}
	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("Output written")
}
