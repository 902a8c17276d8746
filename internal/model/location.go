package model

import (
	"errors"
	"time"

	"github.com/rfwilliams11/pool-table-finder/util"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

const DefaultPoolTableCount = 1

var (
	// ErrLocationExists is returned when the external place id is already stored.
	ErrLocationExists = errors.New("location already exists")
	// ErrCreateFailed covers every other storage failure on insert.
	ErrCreateFailed = errors.New("failed to create location")
)

type Location struct {
	ID              int64     `json:"id"`
	ExternalPlaceID string    `json:"external_place_id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	PoolTableCount  int       `json:"pool_table_count"`
	Notes           string    `json:"notes"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateLocationRequest is the public submission payload. Required fields are
// nullable so that omitted values reach storage as NULL.
type CreateLocationRequest struct {
	ExternalPlaceID *string     `json:"external_place_id" validate:"required,min=1"`
	Name            *string     `json:"name" validate:"required,min=1"`
	Address         *string     `json:"address" validate:"required,min=1"`
	Lat             util.Number `json:"lat" validate:"required,latitude"`
	Lng             util.Number `json:"lng" validate:"required,longitude"`
	PoolTableCount  util.Number `json:"pool_table_count,omitempty" validate:"omitempty,min=0,integer"`
	Notes           *string     `json:"notes,omitempty"`
}

// NewLocation is a normalised submission ready for insertion.
type NewLocation struct {
	ExternalPlaceID *string
	Name            *string
	Address         *string
	Lat             *float64
	Lng             *float64
	PoolTableCount  int
	Notes           string
	Status          Status
}

// Normalize applies the submission defaults: a falsy table count becomes 1,
// missing notes become empty and every record is approved. A table count
// that does not fit an integer column is an error.
func (r CreateLocationRequest) Normalize() (NewLocation, error) {
	count, err := r.PoolTableCount.IntOr(DefaultPoolTableCount)
	if err != nil {
		return NewLocation{}, err
	}

	notes := ""
	if r.Notes != nil {
		notes = *r.Notes
	}

	return NewLocation{
		ExternalPlaceID: r.ExternalPlaceID,
		Name:            r.Name,
		Address:         r.Address,
		Lat:             r.Lat.Ptr(),
		Lng:             r.Lng.Ptr(),
		PoolTableCount:  count,
		Notes:           notes,
		Status:          StatusApproved,
	}, nil
}
