package rest

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rfwilliams11/pool-table-finder/internal/model"
)

const (
	uniqueViolationCode = "23505"
	externalPlaceIDKey  = "locations_external_place_id_key"

	locationColumns = `id, external_place_id, name, address, lat, lng, pool_table_count, notes, status, created_at`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (model.Location, error) {
	var loc model.Location
	err := row.Scan(
		&loc.ID, &loc.ExternalPlaceID, &loc.Name, &loc.Address, &loc.Lat, &loc.Lng,
		&loc.PoolTableCount, &loc.Notes, &loc.Status, &loc.CreatedAt,
	)
	return loc, err
}

// ListLocationsRepo returns every location with the given status, newest first.
func (api *API) ListLocationsRepo(ctx context.Context, status model.Status) ([]model.Location, error) {
	query := `
        SELECT ` + locationColumns + `
        FROM locations
        WHERE status = $1
        ORDER BY created_at DESC, id DESC
    `
	rows, err := api.DB.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	locations := make([]model.Location, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating locations: %w", err)
	}
	return locations, nil
}

// CreateLocationRepo inserts loc and returns the stored row.
func (api *API) CreateLocationRepo(ctx context.Context, loc model.NewLocation) (model.Location, error) {
	query := `
        INSERT INTO locations (
            external_place_id, name, address, lat, lng, pool_table_count, notes, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + locationColumns + `
    `
	created, err := scanLocation(api.DB.QueryRow(ctx, query,
		loc.ExternalPlaceID, loc.Name, loc.Address, loc.Lat, loc.Lng,
		loc.PoolTableCount, loc.Notes, string(loc.Status),
	))
	if err != nil {
		if isUniqueViolation(err, externalPlaceIDKey) {
			return model.Location{}, fmt.Errorf("%w: %w", model.ErrLocationExists, err)
		}
		return model.Location{}, fmt.Errorf("%w: %w", model.ErrCreateFailed, err)
	}
	return created, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == constraint
}
