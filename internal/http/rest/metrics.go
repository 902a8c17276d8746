package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	submissions     *prometheus.CounterVec
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "location_submissions_total",
				Help: "Location submissions by outcome",
			},
			[]string{"result"},
		),
	}
	registry.MustRegister(m.requestsTotal, m.requestDuration, m.submissions)
	return m
}

func (m *Metrics) observeRequest(route, method string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// observeSubmission records the outcome of a create, labelled by status kind.
func (m *Metrics) observeSubmission(status string) {
	m.submissions.WithLabelValues(status).Inc()
}

// MetricsHandler exposes the registry, behind basic auth when credentials are configured.
func (api *API) MetricsHandler() http.Handler {
	h := promhttp.HandlerFor(api.Metrics.registry, promhttp.HandlerOpts{})
	if !api.Config.MetricsAuthEnabled() {
		return h
	}
	return api.BasicAuth(h)
}
