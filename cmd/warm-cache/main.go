// Command warm-cache pre-fills the option list catalog so the API can serve
// countries, states and cities without calling the upstream directory.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"storefront-location/internal/catalog"
	"storefront-location/internal/config"
	"storefront-location/internal/location"
)

func main() {
	flags := pflag.NewFlagSet("warm-cache", pflag.ExitOnError)
	states := flags.StringSlice("states", nil, "ISO2 codes of countries whose states are cached, e.g. IN,US")
	cities := flags.Bool("cities", false, "also cache the cities of every cached state")
	purge := flags.Bool("purge", false, "delete expired entries before warming")
	flags.String("cache-path", "", "sqlite catalog file (overrides cache.path)")
	flags.String("log-level", "", "debug, info, warn or error (overrides log.level)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	if err := viper.BindPFlag("cache.path", flags.Lookup("cache-path")); err != nil {
		log.Fatalf("Failed to bind flag: %v", err)
	}
	if err := viper.BindPFlag("log.level", flags.Lookup("log-level")); err != nil {
		log.Fatalf("Failed to bind flag: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Cache.Path == "" {
		log.Fatal("cache.path is required")
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := catalog.Open(cfg.Cache.Path, cfg.Cache.TTL, logger)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer store.Close()

	if *purge {
		removed, err := store.Purge(ctx)
		if err != nil {
			logger.Error("failed to purge catalog", "error", err)
		} else {
			logger.Info("purged expired entries", "removed", removed)
		}
	}

	directory := location.NewDirectoryService(cfg, store, logger)
	report, err := warm(ctx, directory, normalizeCodes(*states), *cities, logger)
	if err != nil {
		logger.Error("warming failed", "error", err)
		os.Exit(1)
	}

	logger.Info("catalog warmed",
		"path", cfg.Cache.Path,
		"countries", report.Countries,
		"states", report.States,
		"cities", report.Cities,
		"failed", strings.Join(report.Failed, ","),
	)
}

func normalizeCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
			out = append(out, code)
		}
	}
	return out
}
