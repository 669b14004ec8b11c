// Command catalog lists, creates and deletes products through the catalog API,
// falling back to a local bbolt store when the API cannot be reached.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"product-catalog/internal/catalog"
	"product-catalog/internal/config"
	"product-catalog/internal/localstore"
	"product-catalog/internal/model"
	"product-catalog/internal/remote"
	"product-catalog/internal/seed"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLoggerTo(cfg.Logger, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	products := loadSeed(ctx, cfg, logger)

	backend, err := localstore.NewBoltBackend(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer backend.Close()

	store := localstore.New(backend, products, logger)
	client := remote.New(cfg.API.BaseURL, cfg.API.Timeout(), logger)
	controller := catalog.NewController(client, store, logger)

	a := newApp(controller, os.Stdout)
	return a.run(ctx, args)
}

// loadSeed resolves the seed set from S3 or a local file, defaulting to the
// built-in products.
func loadSeed(ctx context.Context, cfg *config.ClientConfig, logger zerolog.Logger) []model.Product {
	var s3Loader seed.Loader
	if cfg.S3.Enabled {
		l, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to create S3 seed loader, using local file only")
		} else {
			s3Loader = l
		}
	}

	loader := seed.NewFallbackLoader(s3Loader, seed.NewFileLoader(logger), cfg.S3.Prefix, cfg.S3.Enabled, logger)
	return seed.LoadOrDefault(ctx, loader, cfg.Seed.File, logger)
}
