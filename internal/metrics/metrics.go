// Package metrics holds the Prometheus collectors for the HTTP transport,
// the session manager and tool calls.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ggoodman/zendesk-mcp-server-go/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "zendesk_mcp"

// Metrics holds every collector. Create one per registry.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ToolCalls       *prometheus.CounterVec
	SessionsCreated prometheus.Counter
	SessionsClosed  *prometheus.CounterVec
	ActiveSessions  prometheus.Gauge

	gatherer prometheus.Gatherer
}

var _ sessions.Observer = (*Metrics)(nil)

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests to the MCP endpoint by method and status code",
			},
			[]string{"method", "status"},
		),
		RequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		ToolCalls: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Tool invocations by tool and result (ok / error / fail)",
			},
			[]string{"tool", "result"},
		),
		SessionsCreated: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_created_total",
				Help:      "Sessions created",
			},
		),
		SessionsClosed: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_closed_total",
				Help:      "Sessions removed by reason (closed / stale / shutdown)",
			},
			[]string{"reason"},
		),
		ActiveSessions: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_sessions",
				Help:      "Sessions currently in the session map",
			},
		),
		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) SessionCreated(*sessions.Session) {
	m.SessionsCreated.Inc()
	m.ActiveSessions.Inc()
}

func (m *Metrics) SessionClosed(_ *sessions.Session, reason sessions.CloseReason) {
	m.SessionsClosed.WithLabelValues(string(reason)).Inc()
	m.ActiveSessions.Dec()
}

// ToolCall records one tool invocation. Its signature matches
// engine.ToolCallFunc.
func (m *Metrics) ToolCall(_ context.Context, name string, isError bool, err error, _ time.Duration) {
	result := "ok"
	switch {
	case err != nil:
		result = "fail"
	case isError:
		result = "error"
	}
	m.ToolCalls.WithLabelValues(name, result).Inc()
}

// Middleware records request count and duration for next.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.RequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		m.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE responses streaming through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
