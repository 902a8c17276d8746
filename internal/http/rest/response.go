package rest

import (
	"encoding/json"
	"net/http"

	"github.com/rfwilliams11/pool-table-finder/util"
	"github.com/rfwilliams11/pool-table-finder/util/logger"
	"github.com/rfwilliams11/pool-table-finder/util/tracing"
	"github.com/rfwilliams11/pool-table-finder/util/values"
)

// ServerResponse is what every Handler returns. Successful responses encode
// Data as the whole body; failures encode {"error": Message, "details": ...}.
type ServerResponse struct {
	Err        error       `json:"-"`
	Message    string      `json:"error"`
	Details    string      `json:"details,omitempty"`
	Status     string      `json:"-"`
	StatusCode int         `json:"-"`
	Data       interface{} `json:"-"`
}

func (s *ServerResponse) payload() interface{} {
	if s.Err == nil && s.Data != nil {
		return s.Data
	}
	return s
}

// withDetails exposes the underlying error text to the client.
func (s *ServerResponse) withDetails() *ServerResponse {
	if s.Err != nil {
		s.Details = s.Err.Error()
	}
	return s
}

// respondWithError logs err against the request and builds the failure
// response. Server errors are logged at error level, client errors as warnings.
func (api *API) respondWithError(err error, message, status string, tc *tracing.Context) *ServerResponse {
	fields := []logger.Field{
		logger.String("request_id", tc.RequestID),
		logger.String("request_source", tc.RequestSource),
		logger.String("status", status),
		logger.Error(err),
	}
	if util.StatusCode(status) >= http.StatusInternalServerError {
		api.Logger.Error(message, fields...)
	} else {
		api.Logger.Warning(message, fields...)
	}

	return &ServerResponse{
		Err:        err,
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func writeJSONResponse(w http.ResponseWriter, content []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(content)
}

func writeErrorResponse(w http.ResponseWriter, err error, status, message string) {
	resp := ServerResponse{
		Err:        err,
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
	data, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		data = []byte(`{"error":"` + values.Error + `"}`)
	}
	writeJSONResponse(w, data, resp.StatusCode)
}
