package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type coordinates struct {
	Lat   Number `validate:"required,latitude"`
	Lng   Number `validate:"required,longitude"`
	Count Number `validate:"omitempty,min=0,integer"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name  string
		in    coordinates
		valid bool
	}{
		{name: "valid", in: coordinates{Lat: NewNumber(37.77), Lng: NewNumber(-122.42)}, valid: true},
		{name: "bounds", in: coordinates{Lat: NewNumber(-90), Lng: NewNumber(180)}, valid: true},
		{name: "zero is a value", in: coordinates{Lat: NewNumber(0), Lng: NewNumber(0)}, valid: true},
		{name: "missing lat", in: coordinates{Lng: NewNumber(1)}},
		{name: "lat out of range", in: coordinates{Lat: NewNumber(90.5), Lng: NewNumber(1)}},
		{name: "lng out of range", in: coordinates{Lat: NewNumber(1), Lng: NewNumber(-181)}},
		{name: "whole count", in: coordinates{Lat: NewNumber(1), Lng: NewNumber(1), Count: NewNumber(3)}, valid: true},
		{name: "fractional count", in: coordinates{Lat: NewNumber(1), Lng: NewNumber(1), Count: NewNumber(2.7)}},
		{name: "huge count", in: coordinates{Lat: NewNumber(1), Lng: NewNumber(1), Count: NewNumber(1e20)}},
		{name: "negative count", in: coordinates{Lat: NewNumber(1), Lng: NewNumber(1), Count: NewNumber(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
