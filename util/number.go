package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// Number is a JSON number that also accepts numeric strings and booleans,
// the same inputs a text parameter would be coerced from by the database.
// Absent or null values leave Valid false.
type Number struct {
	Value float64
	Valid bool
}

func NewNumber(v float64) Number {
	return Number{Value: v, Valid: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*n = Number{}
		return nil
	}

	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", string(data), err)
	}
	*n = Number{Value: v, Valid: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns nil for an absent value so it reaches storage as NULL.
func (n Number) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// ErrNotInteger is returned when a Number cannot be stored in an integer column.
var ErrNotInteger = errors.New("number is not a 32-bit integer")

// IsInt32 reports whether v is integral and fits a Postgres integer.
func IsInt32(v float64) bool {
	return v == math.Trunc(v) && v >= math.MinInt32 && v <= math.MaxInt32
}

// IntOr returns the value as an int, or def when the value is absent or zero.
// Fractional and out-of-range values are rejected rather than truncated.
func (n Number) IntOr(def int) (int, error) {
	if !n.Valid || n.Value == 0 {
		return def, nil
	}
	if !IsInt32(n.Value) {
		return 0, fmt.Errorf("%w: %v", ErrNotInteger, n.Value)
	}
	return int(n.Value), nil
}
