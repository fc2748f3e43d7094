package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ardesh/lancelet-gh/internal/cli"
	"github.com/ardesh/lancelet-gh/internal/geo"
	"github.com/ardesh/lancelet-gh/internal/logger"
	"github.com/ardesh/lancelet-gh/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`
	Anchor cli.Anchor    `group:"Anchor options"`

	Addr    string `short:"a" long:"addr"     env:"LISTEN_ADDRESS" description:"Address to listen on"         default:"0.0.0.0"`
	Port    int    `short:"p" long:"port"     env:"LISTEN_PORT"    description:"Port to listen on"            default:"8080"`
	MaxBody int64  `long:"max-body"           env:"MAX_BODY"       description:"Request body limit in bytes"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := opts.Anchor.Load()
	if err != nil {
		log.Fatal().Err(err).Str("kind", geo.KindOf(err).String()).Msg("Failed to load configuration")
	}

	srvCtx, err := server.NewServerContext(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server context")
	}
	if opts.MaxBody > 0 {
		srvCtx.MaxBody = opts.MaxBody
	}

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           server.RequestLogger(srvCtx.Routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", listenAddr).
		Str("unit", cfg.Unit).
		Float64("lat", cfg.Anchor.Latitude).
		Float64("lon", cfg.Anchor.Longitude).
		Float64("true_north", cfg.Anchor.TrueNorth).
		Msg("Web server started")

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
