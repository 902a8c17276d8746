package deps

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rfwilliams11/pool-table-finder/config"
	"github.com/rfwilliams11/pool-table-finder/internal/db"
	"github.com/rfwilliams11/pool-table-finder/util/logger"
)

const serviceName = "pool-table-finder"

type Dependencies struct {
	DB       *db.DB
	Logger   logger.ILogger
	Registry *prometheus.Registry
}

func New(cfg *config.Config) (*Dependencies, error) {
	log := logger.New(serviceName, cfg.LogLevel, cfg.IsProduction())

	database, err := db.New(cfg.Dsn, cfg.RequireDBTLS())
	if err != nil {
		log.Error("failed to connect to database", logger.Error(err))
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps := Dependencies{
		DB:       database,
		Logger:   log,
		Registry: registry,
	}
	return &deps, nil
}

func (d *Dependencies) Pool() *pgxpool.Pool {
	return d.DB.Pool()
}

func (d *Dependencies) Close() {
	d.DB.Close()
	_ = d.Logger.Sync()
}
