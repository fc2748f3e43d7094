package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ardesh/lancelet-gh/internal/cli"
	"github.com/ardesh/lancelet-gh/internal/geo"
	"github.com/ardesh/lancelet-gh/internal/importer"
	"github.com/ardesh/lancelet-gh/internal/logger"
	"github.com/ardesh/lancelet-gh/internal/report"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`
	Anchor cli.Anchor    `group:"Anchor options"`

	Input   string        `short:"i" long:"in"      description:"GeoJSON file path or http(s) URL. Reads from stdin if empty"`
	Output  string        `short:"o" long:"out"     description:"Output file path. Writes to stdout if empty"`
	Format  string        `short:"f" long:"format"  description:"Output format" choice:"json" choice:"yaml" choice:"text" default:"text"`
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

	summary, err := importer.Info(data, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("kind", geo.KindOf(err).String()).Msg("Summary failed")
	}

	out := os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to create output file")
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := (report.Writer{Format: format}).WriteSummary(out, summary); err != nil {
		log.Fatal().Err(err).Msg("Failed to write summary")
	}

	if opts.Output != "" {
		fmt.Fprintf(os.Stderr, "Summary of %d features written to %s (format: %s)\n", summary.Features, opts.Output, format)
	}
}
