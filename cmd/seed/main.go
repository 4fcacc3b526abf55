// seed loads the demo hostels into the configured store.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/meshackowase-commits/HOSTESserch/internal/config"
	"github.com/meshackowase-commits/HOSTESserch/internal/seed"
	"github.com/meshackowase-commits/HOSTESserch/internal/store"
)

func main() {
	cfg := config.Load()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var (
		s   store.DataStore
		err error
	)
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if err := store.RunMigrations(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
		s, err = store.NewPostgresStore(ctx, cfg.DatabaseURL)
	case config.DriverSQLite:
		s, err = store.NewSQLiteStore(ctx, cfg.SQLitePath)
	default:
		fmt.Fprintln(os.Stderr, "seed needs a persistent store, set STORE_DRIVER to postgres or sqlite")
		os.Exit(1)
	}
	if err != nil {
		logger.Fatal().Err(err).Str("store", cfg.StoreDriver).Msg("store connection failed")
	}
	defer s.Close()

	n, err := seed.Seed(ctx, s, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}
	fmt.Printf("Seeded %d hostels\n", n)
}
