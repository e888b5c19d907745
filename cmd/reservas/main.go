package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/matheusbarney/ess-hotel-project/internal/cli"
	"github.com/matheusbarney/ess-hotel-project/internal/config"
	"github.com/matheusbarney/ess-hotel-project/internal/listing"
	"github.com/matheusbarney/ess-hotel-project/internal/platform/logger"
	"github.com/matheusbarney/ess-hotel-project/internal/search"
	"github.com/matheusbarney/ess-hotel-project/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	theme := flag.String("theme", "", "color theme: classic, neon or mono (default $THEME or classic)")
	noColor := flag.Bool("no-color", false, "disable colors")
	flag.Parse()
	args := flag.Args()

	ui.SetTheme(*theme)
	if *noColor {
		ui.DisableColor()
	}

	// Help runs without config.
	if !cli.NeedsService(args) {
		app := &cli.App{Log: logger.NewNop(), Out: os.Stdout, Err: os.Stderr}
		os.Exit(app.Run(args))
	}

	cfg, err := config.Load()
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(1)
	}
	if *theme == "" {
		*theme = cfg.Theme
		ui.SetTheme(*theme)
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputFile: cfg.LogOutputFile,
	})
	if err != nil {
		ui.Fail(os.Stderr, "logger: "+err.Error())
		os.Exit(1)
	}
	log.Debug("config loaded",
		zap.String("listings_api_url", cfg.ListingsAPIURL),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.String("theme", *theme),
	)

	app := &cli.App{
		Client: search.New(cfg.ListingsAPIURL, cfg.RequestTimeout, log),
		Log:    log,
		Cards: listing.CardOptions{
			ImageBasePath:    cfg.ImageBasePath,
			PlaceholderImage: cfg.PlaceholderImageURL,
		},
		Timeout: cfg.RequestTimeout,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}

	// Hand the remaining args to the CLI runner.
	code := app.Run(args)
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	_ = log.Sync()
	os.Exit(code)
}
