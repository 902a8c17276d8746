package rest

import (
	"crypto/subtle"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/lucsky/cuid"
	"golang.org/x/time/rate"

	"github.com/rfwilliams11/pool-table-finder/util/logger"
	"github.com/rfwilliams11/pool-table-finder/util/tracing"
	"github.com/rfwilliams11/pool-table-finder/util/values"
)

const unmatchedRoute = "unmatched"

// RequestTracing attaches a tracing context to the request and echoes the
// request id back to the caller.
func RequestTracing(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		requestSource := r.Header.Get(values.HeaderRequestSource)
		if requestSource == "" {
			requestSource = values.DefaultRequestSource
		}

		requestID := r.Header.Get(values.HeaderRequestID)
		if requestID == "" {
			requestID = cuid.New()
		}

		tracingContext := tracing.Context{
			RequestID:     requestID,
			RequestSource: requestSource,
		}

		w.Header().Set(values.HeaderRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(tracing.WithContext(r.Context(), tracingContext)))
	}

	return http.HandlerFunc(fn)
}

// Monitor logs one line per request and records the request metrics.
func (api *API) Monitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		api.Metrics.observeRequest(route, r.Method, status, elapsed)

		tc := tracing.FromContext(r.Context())
		api.Logger.Info("request completed",
			logger.String("request_id", tc.RequestID),
			logger.String("method", r.Method),
			logger.String("route", route),
			logger.Int("status", status),
			logger.Duration("duration", elapsed),
		)
	})
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Content-Type", "Authorization", values.HeaderRequestID, values.HeaderRequestSource}
)

// Cors decorates responses with the allowed origin. Every OPTIONS request is
// answered here with 200, whatever method or headers it asks for.
func (api *API) Cors() func(http.Handler) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(api.Config.AllowedOrigins),
		handlers.AllowedMethods(corsMethods),
		handlers.AllowedHeaders(corsHeaders),
		handlers.ExposedHeaders([]string{values.HeaderRequestID}),
	)

	return func(next http.Handler) http.Handler {
		h := cors(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodOptions {
				h.ServeHTTP(w, r)
				return
			}

			if origin := api.allowedOrigin(r.Header.Get("Origin")); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				if origin != "*" {
					w.Header().Add("Vary", "Origin")
				}
			}
			w.Header().Set("Access-Control-Allow-Methods", strings.Join(corsMethods, ", "))
			w.Header().Set("Access-Control-Allow-Headers", strings.Join(corsHeaders, ", "))
			w.WriteHeader(http.StatusOK)
		})
	}
}

// allowedOrigin is the Access-Control-Allow-Origin value for origin, or empty
// when the origin is not allowed.
func (api *API) allowedOrigin(origin string) string {
	for _, o := range api.Config.AllowedOrigins {
		if o == "*" {
			return "*"
		}
		if origin != "" && o == origin {
			return origin
		}
	}
	return ""
}

// BasicAuth guards the metrics endpoint.
func (api *API) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(api.Config.MetricsUser)) != 1 ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(api.Config.MetricsPass)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="Metrics"`)
			writeErrorResponse(w, errors.New(values.NotAuthorised), values.NotAuthorised, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit throttles each client address when a limit is configured.
func (api *API) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		if !api.limiter.Allow(clientIP(r)) {
			writeErrorResponse(w, errors.New(values.TooManyRequests), values.TooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP reads the address RealIP has already resolved. RealIP trusts
// X-Forwarded-For and X-Real-IP, so the limiter is only sound behind a proxy
// that overwrites those headers.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

const (
	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int

	stop     chan struct{}
	stopOnce sync.Once
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		stop:     make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (rl *rateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (rl *rateLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evict(time.Now())
		}
	}
}

func (rl *rateLimiter) evict(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *rateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}
