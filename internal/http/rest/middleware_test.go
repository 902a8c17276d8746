package rest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfwilliams11/pool-table-finder/util/tracing"
	"github.com/rfwilliams11/pool-table-finder/util/values"
)

func TestRequestTracing(t *testing.T) {
	var got tracing.Context
	h := RequestTracing(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = tracing.FromContext(r.Context())
	}))

	t.Run("defaults", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, values.DefaultRequestSource, got.RequestSource)
		require.NotEmpty(t, got.RequestID)
		assert.Equal(t, got.RequestID, rec.Header().Get(values.HeaderRequestID))
	})

	t.Run("from headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(values.HeaderRequestSource, "ios")
		req.Header.Set(values.HeaderRequestID, "abc")

		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, tracing.Context{RequestID: "abc", RequestSource: "ios"}, got)
	})
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(0.001, 2)
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// limits are per client
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiterEvict(t *testing.T) {
	rl := newRateLimiter(1, 1)
	defer rl.Stop()

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")
	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-2 * visitorTTL)

	rl.evict(time.Now())

	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRateLimiterStopIsIdempotent(t *testing.T) {
	rl := newRateLimiter(1, 1)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	assert.Equal(t, "203.0.113.9", clientIP(req))

	req.RemoteAddr = "203.0.113.9"
	assert.Equal(t, "203.0.113.9", clientIP(req))
}

func TestRateLimitKeysOnForwardedAddress(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	_, mock, h := newTestAPI(t, cfg)

	mock.ExpectQuery(insertQuery).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("boom"))

	// The proxy hop differs but the forwarded client is the same.
	codes := make([]int, 0, 2)
	for _, hop := range []string{"10.0.0.1:4000", "10.0.0.2:4000"} {
		req := httptest.NewRequest(http.MethodPost, "/api/locations", strings.NewReader(`{"name":"The Rack"}`))
		req.RemoteAddr = hop
		req.Header.Set("X-Forwarded-For", "198.51.100.7")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusInternalServerError, http.StatusTooManyRequests}, codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
