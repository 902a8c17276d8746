package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"

	"github.com/rfwilliams11/pool-table-finder/internal/mapview"
	"github.com/rfwilliams11/pool-table-finder/internal/model"
	"github.com/rfwilliams11/pool-table-finder/util"
	"github.com/rfwilliams11/pool-table-finder/util/tracing"
	"github.com/rfwilliams11/pool-table-finder/util/values"
)

// maxBodyBytes caps a location submission body.
const maxBodyBytes = 100 << 10

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

func (api *API) LocationRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodGet, "/locations", Handler(api.GetLocations))
	mux.With(api.RateLimit).Method(http.MethodPost, "/locations", Handler(api.CreateLocation))
	mux.Method(http.MethodGet, "/markers", Handler(api.GetMarkers))

	return mux
}

func (api *API) GetLocations(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := tracing.FromContext(r.Context())

	locations, status, message, err := api.ListLocationsHelper(r.Context(), model.StatusApproved)
	if err != nil {
		return api.respondWithError(err, message, status, &tc).withDetails()
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       locations,
	}
}

func (api *API) CreateLocation(w http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := tracing.FromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	// An empty body is treated like an empty object and left for storage to reject.
	var req model.CreateLocationRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(decodeErr, &tooLarge) {
			return api.respondWithError(decodeErr, "Request body too large", values.PayloadTooLarge, &tc)
		}
		return api.respondWithError(decodeErr, "Invalid request body", values.BadRequestBody, &tc)
	}

	if api.Config.StrictValidation {
		if err := util.ValidateStruct(req); err != nil {
			api.Metrics.observeSubmission(values.BadRequestBody)
			return api.respondWithError(err, "Invalid location", values.BadRequestBody, &tc).withDetails()
		}
	}

	// A table count that cannot be stored as an integer fails like the insert would.
	newLocation, err := req.Normalize()
	if err != nil {
		api.Metrics.observeSubmission(values.Error)
		return api.respondWithError(err, "Failed to create location", values.Error, &tc)
	}

	location, status, message, err := api.CreateLocationHelper(r.Context(), newLocation)
	api.Metrics.observeSubmission(status)
	if err != nil {
		return api.respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       location,
	}
}

// GetMarkers returns the approved locations already shaped for the map at
// the requested zoom level. A missing or malformed zoom uses the default.
func (api *API) GetMarkers(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := tracing.FromContext(r.Context())

	var query mapview.MarkersQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		query.Zoom = mapview.DefaultZoom
	}

	locations, status, message, err := api.ListLocationsHelper(r.Context(), model.StatusApproved)
	if err != nil {
		return api.respondWithError(err, message, status, &tc).withDetails()
	}

	return &ServerResponse{
		Message:    "markers built",
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       mapview.BuildMarkers(locations, query.Zoom),
	}
}
