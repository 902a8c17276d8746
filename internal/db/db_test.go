package db

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = pgxmock.PgxPoolIface(nil)
)

func TestParseConfigPool(t *testing.T) {
	cfg, err := ParseConfig("postgres://u:p@localhost:5432/pool?sslmode=disable", false)
	require.NoError(t, err)

	assert.Equal(t, int32(25), cfg.MaxConns)
	assert.Equal(t, int32(0), cfg.MinConns)
}

func TestParseConfigRequireTLS(t *testing.T) {
	t.Run("prefer drops plaintext fallback", func(t *testing.T) {
		cfg, err := ParseConfig("postgres://u:p@db.example.com:5432/pool?sslmode=prefer", true)
		require.NoError(t, err)

		require.NotNil(t, cfg.ConnConfig.TLSConfig)
		for _, fb := range cfg.ConnConfig.Fallbacks {
			assert.NotNil(t, fb.TLSConfig)
		}
	})

	t.Run("prefer keeps fallback when not required", func(t *testing.T) {
		cfg, err := ParseConfig("postgres://u:p@db.example.com:5432/pool?sslmode=prefer", false)
		require.NoError(t, err)

		var plaintext int
		for _, fb := range cfg.ConnConfig.Fallbacks {
			if fb.TLSConfig == nil {
				plaintext++
			}
		}
		assert.Equal(t, 1, plaintext)
	})

	t.Run("explicit disable wins", func(t *testing.T) {
		cfg, err := ParseConfig("postgres://u:p@localhost:5432/pool?sslmode=disable", true)
		require.NoError(t, err)

		assert.Nil(t, cfg.ConnConfig.TLSConfig)
	})
}

func TestParseConfigInvalid(t *testing.T) {
	_, err := ParseConfig("postgres://u:p@localhost:notaport/pool", false)
	assert.Error(t, err)
}

func TestCountLocations(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM locations`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(42)))

	count, err := CountLocations(context.Background(), mock)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountLocationsError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM locations`).
		WillReturnError(errors.New(`relation "locations" does not exist`))

	_, err = CountLocations(context.Background(), mock)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"migrations/000001_create_locations.down.sql",
		"migrations/000001_create_locations.up.sql",
	}, names)

	up, err := fs.ReadFile(migrationFiles, "migrations/000001_create_locations.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CONSTRAINT locations_external_place_id_key UNIQUE (external_place_id)")
	assert.Contains(t, string(up), "CHECK (pool_table_count > 0)")
	assert.Contains(t, string(up), "CHECK (status IN ('pending', 'approved', 'rejected'))")
}
