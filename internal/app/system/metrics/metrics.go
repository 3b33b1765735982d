// Package metrics holds the Prometheus collectors for content changes,
// uploads, logins and HTTP requests.
//
// A Metrics built with enabled=false is a no-op: every recorder is safe to
// call and Handler returns 404.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ngohub"

// Mutation ops.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Login results.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginLimited = "rate_limited"
)

// Metrics owns a private registry and the application collectors.
type Metrics struct {
	enabled  bool
	registry *prometheus.Registry

	mutations    *prometheus.CounterVec
	uploads      *prometheus.CounterVec
	uploadBytes  *prometheus.CounterVec
	logins       *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New builds the collectors and registers them (plus Go and process
// collectors) on a fresh registry.
func New(enabled bool) *Metrics {
	if !enabled {
		return &Metrics{}
	}

	m := &Metrics{
		enabled:  true,
		registry: prometheus.NewRegistry(),

		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "content_mutations_total",
				Help:      "Admin content changes by area and operation",
			},
			[]string{"area", "op"},
		),
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Images stored by area",
			},
			[]string{"area"},
		),
		uploadBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upload_bytes_total",
				Help:      "Bytes of images stored by area",
			},
			[]string{"area"},
		),
		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "login_attempts_total",
				Help:      "Admin login attempts by result",
			},
			[]string{"result"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route pattern",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "code"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.mutations,
		m.uploads,
		m.uploadBytes,
		m.logins,
		m.httpDuration,
	)
	return m
}

// Enabled reports whether collectors are registered.
func (m *Metrics) Enabled() bool { return m != nil && m.enabled }

// Registry exposes the registry (nil when disabled).
func (m *Metrics) Registry() *prometheus.Registry {
	if !m.Enabled() {
		return nil
	}
	return m.registry
}

// Mutation counts one admin change in area (about, media, home, projects).
func (m *Metrics) Mutation(area, op string) {
	if !m.Enabled() {
		return
	}
	m.mutations.WithLabelValues(area, op).Inc()
}

// Upload counts a stored image of size bytes.
func (m *Metrics) Upload(area string, size int64) {
	if !m.Enabled() {
		return
	}
	m.uploads.WithLabelValues(area).Inc()
	m.uploadBytes.WithLabelValues(area).Add(float64(size))
}

// Login counts a login attempt with the given result.
func (m *Metrics) Login(result string) {
	if !m.Enabled() {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if !m.Enabled() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request latency labelled by the matched chi route
// pattern, so /admin/projects/{id} is one series rather than one per id.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if !m.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
