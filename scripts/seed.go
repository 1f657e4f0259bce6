//go:build ignore

// This script imports transfers and their records into MongoDB from a JSON
// dataset with the collections uoms, products, packagings, locations, lots,
// package_types, packages, quants, pickings and lines.
// Run with: go run scripts/seed.go dataset.json
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/guttosm/picking-service/config"
	"github.com/guttosm/picking-service/internal/logger"
	"github.com/guttosm/picking-service/internal/repository"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init("info", true)

	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: go run scripts/seed.go dataset.json")
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Str("file", os.Args[1]).Msg("Failed to read dataset")
	}
	var ds repository.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse dataset")
	}

	cfg := config.Load().Database
	mongoCfg := repository.DefaultMongoConfig()
	mongoCfg.UseTransactions = cfg.UseTransactions
	db, err := repository.NewMongoDBWithConfig(cfg.URI, cfg.DatabaseName, mongoCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() { _ = db.Close(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := repository.NewPickingRepository(db).Import(ctx, ds); err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	log.Info().
		Str("database", cfg.DatabaseName).
		Int("products", len(ds.Products)).
		Int("locations", len(ds.Locations)).
		Int("pickings", len(ds.Pickings)).
		Int("lines", len(ds.Lines)).
		Msg("Dataset imported")
}
