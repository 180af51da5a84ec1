package server

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/stream"
)

var histogramBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// metrics holds the server's collectors on a private registry so several
// servers can coexist in one process.
type metrics struct {
	registry       *prometheus.Registry
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	sources        prometheus.Gauge
	readFailures   prometheus.Counter
}

func newMetrics(hub *stream.Hub) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logboard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "logboard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		sources: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "logboard",
			Name:      "snapshot_sources",
			Help:      "Number of log sources in the most recent snapshot",
		}),
		readFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "logboard",
			Name:      "source_read_failures_total",
			Help:      "Log files left out of a snapshot because they could not be read",
		}),
	}

	m.registry.MustRegister(m.requestTotal, m.requestLatency, m.sources, m.readFailures)
	if hub != nil {
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "logboard",
			Name:      "stream_subscribers",
			Help:      "Connected websocket viewers",
		}, func() float64 { return float64(hub.Len()) }))
	}
	return m
}

func (m *metrics) recordRequest(method, route string, status int, duration time.Duration) {
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	m.requestTotal.With(labels).Inc()
	m.requestLatency.With(labels).Observe(duration.Seconds())
}

func (m *metrics) recordSnapshot(s *core.Snapshot) {
	m.sources.Set(float64(s.Len()))
	m.readFailures.Add(float64(len(s.Skipped())))
}

// instrument wraps h so every request is counted under route.
func (m *metrics) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, req)
		m.recordRequest(req.Method, route, rec.status, time.Since(start))
	}
}

// statusRecorder captures the response status. It passes Hijack through
// so websocket upgrades keep working.
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

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
