package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTimeout = 3 * time.Second

// Querier is the subset of *pgxpool.Pool the request handlers use.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type DB struct {
	pool *pgxpool.Pool
}

// New opens the process-wide connection pool. When requireTLS is set the
// plaintext fallbacks that sslmode=prefer adds are removed.
func New(dsn string, requireTLS bool) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	config, err := ParseConfig(dsn, requireTLS)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	return &DB{pool: pool}, nil
}

func ParseConfig(dsn string, requireTLS bool) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	// Configure pool settings
	config.MaxConns = 25
	config.MinConns = 0
	config.MaxConnLifetime = 2 * time.Hour
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = time.Minute

	if requireTLS {
		requireTLSFallbacks(config.ConnConfig)
	}

	return config, nil
}

// requireTLSFallbacks drops every fallback connection attempt that would go
// out without TLS. sslmode=disable leaves TLSConfig nil and is respected.
func requireTLSFallbacks(cc *pgx.ConnConfig) {
	if cc.TLSConfig == nil {
		return
	}

	fallbacks := cc.Fallbacks[:0]
	for _, fb := range cc.Fallbacks {
		if fb.TLSConfig != nil {
			fallbacks = append(fallbacks, fb)
		}
	}
	cc.Fallbacks = fallbacks
}

func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Close closes the database pool
func (db *DB) Close() {
	db.pool.Close()
}

// CountLocations returns the number of stored locations regardless of status.
func CountLocations(ctx context.Context, q Querier) (int64, error) {
	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM locations`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
