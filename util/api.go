package util

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rfwilliams11/pool-table-finder/util/tracing"
	"github.com/rfwilliams11/pool-table-finder/util/values"
)

// StatusCode returns the status code represented
// by the specified status. Note that this function
// returns a status code of 200 by default
func StatusCode(status string) int {
	switch status {
	case values.Error, values.SystemErr:
		return http.StatusInternalServerError
	case values.Created:
		return http.StatusCreated
	case values.BadRequestBody:
		return http.StatusBadRequest
	case values.Unprocessable:
		return http.StatusUnprocessableEntity
	case values.NotAllowed:
		return http.StatusForbidden
	case values.Conflict:
		return http.StatusConflict
	case values.NotFound:
		return http.StatusNotFound
	case values.MethodNotAllowed:
		return http.StatusMethodNotAllowed
	case values.PayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case values.TooManyRequests:
		return http.StatusTooManyRequests
	case values.NotAuthorised:
		return http.StatusUnauthorized
	default:
		return http.StatusOK
	}
}

// ErrTrailingData is returned when a JSON body holds more than one value.
var ErrTrailingData = errors.New("unexpected data after json body")

// DecodeJSONBody decodes a single JSON value from body into target.
func DecodeJSONBody(tc *tracing.Context, body io.ReadCloser, target interface{}) error {
	if body == nil {
		return fmt.Errorf("missing request body for request: %v", tc)
	}

	defer func() {
		_ = body.Close()
	}()

	dec := json.NewDecoder(body)
	if err := dec.Decode(target); err != nil {
		return errors.Wrapf(err, "Error parsing json body for request: %v", tc)
	}

	switch _, err := dec.Token(); {
	case err == nil:
		return errors.Wrapf(ErrTrailingData, "Error parsing json body for request: %v", tc)
	case err != io.EOF:
		return errors.Wrapf(err, "Error parsing json body for request: %v", tc)
	}

	return nil
}
