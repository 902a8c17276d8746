package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rfwilliams11/pool-table-finder/config"
	"github.com/rfwilliams11/pool-table-finder/internal/db"
	"github.com/rfwilliams11/pool-table-finder/util/logger"
)

func main() {
	down := flag.Bool("down", false, "revert every migration instead of applying them")
	flag.Parse()

	cfg := config.New()
	log := logger.New("pool-table-finder-migrate", cfg.LogLevel, cfg.IsProduction())
	defer func() { _ = log.Sync() }()

	if cfg.Dsn == "" {
		log.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	if err := run(cfg, log, *down); err != nil {
		log.Error("migration failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.ILogger, down bool) error {
	m, err := db.NewMigrator(cfg.Dsn)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if down {
		if err := db.MigrateDown(m); err != nil {
			return err
		}
		log.Info("migrations reverted")
		return nil
	}

	applied, err := db.MigrateUp(m)
	if err != nil {
		return err
	}
	if applied {
		log.Info("migrations applied")
	} else {
		log.Info("schema already up to date")
	}

	database, err := db.New(cfg.Dsn, cfg.RequireDBTLS())
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := database.Ping(ctx); err != nil {
		return err
	}

	count, err := db.CountLocations(ctx, database.Pool())
	if err != nil {
		return err
	}
	log.Info("database ready", logger.Int64("locations", count))
	return nil
}
