package rest

import (
	"context"
	"errors"

	"github.com/rfwilliams11/pool-table-finder/internal/model"
	"github.com/rfwilliams11/pool-table-finder/util/values"
)

func (api *API) ListLocationsHelper(ctx context.Context, status model.Status) ([]model.Location, string, string, error) {
	locations, err := api.ListLocationsRepo(ctx, status)
	if err != nil {
		return nil, values.Error, "Failed to fetch locations", err
	}
	return locations, values.Success, "locations fetched", nil
}

func (api *API) CreateLocationHelper(ctx context.Context, loc model.NewLocation) (model.Location, string, string, error) {
	created, err := api.CreateLocationRepo(ctx, loc)
	if err != nil {
		if errors.Is(err, model.ErrLocationExists) {
			return model.Location{}, values.Conflict, "Location already exists", err
		}
		return model.Location{}, values.Error, "Failed to create location", err
	}
	return created, values.Created, "location created", nil
}
