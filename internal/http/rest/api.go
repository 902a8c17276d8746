package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rfwilliams11/pool-table-finder/config"
	deps "github.com/rfwilliams11/pool-table-finder/internal/debs"
	"github.com/rfwilliams11/pool-table-finder/internal/db"
	"github.com/rfwilliams11/pool-table-finder/internal/mapview"
	"github.com/rfwilliams11/pool-table-finder/util/logger"
	"github.com/rfwilliams11/pool-table-finder/util/tracing"
	"github.com/rfwilliams11/pool-table-finder/util/values"
)

const (
	defaultIdleTimeout    = time.Minute
	defaultReadTimeout    = 5 * time.Second
	defaultWriteTimeout   = 10 * time.Second
	defaultShutdownPeriod = 30 * time.Second
)

// Handler is an endpoint that reports its outcome as a ServerResponse.
// Handlers that write the response themselves return nil.
type Handler func(w http.ResponseWriter, r *http.Request) *ServerResponse

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := h(w, r)
	if resp == nil {
		return
	}

	respByte, err := json.Marshal(resp.payload())
	if err != nil {
		writeErrorResponse(w, err, values.Error, "unable to marshal server response")
		return
	}
	writeJSONResponse(w, respByte, resp.StatusCode)
}

type API struct {
	Server  *http.Server
	Config  *config.Config
	Deps    *deps.Dependencies
	DB      db.Querier
	Logger  logger.ILogger
	Metrics *Metrics

	limiter *rateLimiter
	page    *mapview.Page
}

// Init fills in everything the router needs that was not injected.
// Tests build an API with only Config, DB and Logger set.
func (api *API) Init() {
	if api.Logger == nil {
		if api.Deps != nil {
			api.Logger = api.Deps.Logger
		} else {
			api.Logger = logger.NewNop()
		}
	}
	if api.DB == nil && api.Deps != nil {
		api.DB = api.Deps.Pool()
	}
	if api.Metrics == nil {
		registry := prometheus.NewRegistry()
		if api.Deps != nil && api.Deps.Registry != nil {
			registry = api.Deps.Registry
		}
		api.Metrics = NewMetrics(registry)
	}
	if api.limiter == nil && api.Config.RateLimitEnabled() {
		api.limiter = newRateLimiter(api.Config.RateLimitRPS, api.Config.RateLimitBurst)
	}
	if api.page == nil {
		api.page = mapview.NewPage(api.Config.GoogleMapsAPIKey)
	}
}

func (api *API) Serve() error {
	api.Init()

	api.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", api.Config.Port),
		IdleTimeout:  defaultIdleTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		Handler:      api.setUpServerHandler(),
	}

	api.Logger.Info("starting server", logger.String("addr", api.Server.Addr))
	return api.Server.ListenAndServe()
}

func (api *API) setUpServerHandler() http.Handler {
	mux := chi.NewRouter()
	// RealIP takes the client address from forwarding headers. Deploy behind
	// a proxy that sets them, or clients can rotate their rate-limit key.
	mux.Use(middleware.RealIP)
	mux.Use(RequestTracing)
	mux.Use(api.Monitor)
	mux.Use(middleware.Recoverer)
	mux.Use(api.Cors())

	mux.NotFound(Handler(api.NotFound).ServeHTTP)
	mux.MethodNotAllowed(Handler(api.MethodNotAllowed).ServeHTTP)

	mux.Method(http.MethodGet, "/health", Handler(api.HealthCheck))
	mux.Handle("/metrics", api.MetricsHandler())
	mux.Mount("/api", api.LocationRoutes())
	mux.Mount("/", api.MapRoutes())

	return mux
}

func (api *API) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownPeriod)
	defer cancel()

	if api.limiter != nil {
		api.limiter.Stop()
	}

	return api.Server.Shutdown(ctx)
}

func (api *API) NotFound(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := tracing.FromContext(r.Context())
	return api.respondWithError(errors.New(r.URL.Path), "Not found", values.NotFound, &tc)
}

func (api *API) MethodNotAllowed(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := tracing.FromContext(r.Context())
	return api.respondWithError(errors.New(r.Method+" "+r.URL.Path), "Method not allowed", values.MethodNotAllowed, &tc)
}
