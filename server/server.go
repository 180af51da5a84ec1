// Package server serves log snapshots over HTTP: the JSON API, the live
// viewer page, the websocket change stream and operational endpoints.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sonnes/logboard/reader"
	htmlrender "github.com/sonnes/logboard/render/html"
	"github.com/sonnes/logboard/stream"
)

const (
	// StreamPath is the websocket route pushing snapshots on change.
	StreamPath = "/api/logs/stream"

	shutdownTimeout = 5 * time.Second
)

// Config configures a Server.
type Config struct {
	// Reader provides snapshots, already transformed if redaction or tail
	// trimming is enabled.
	Reader reader.Reader
	// Interval is the viewer refresh period and the watcher poll period.
	Interval time.Duration
	// Stream enables the websocket route and the change watcher.
	Stream bool
	// Title is shown on the viewer page.
	Title string
	// Notes is markdown shown under the viewer page header.
	Notes string
	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Server serves log snapshots over HTTP.
type Server struct {
	reader   reader.Reader
	interval time.Duration
	logger   *log.Logger
	page     *htmlrender.Renderer
	hub      *stream.Hub
	metrics  *metrics
	mux      *http.ServeMux
}

// New builds a Server and its routes. When streaming is enabled the hub
// starts immediately; call Close to release it.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = htmlrender.DefaultInterval
	}

	page := htmlrender.New()
	page.Live = true
	page.Interval = interval
	page.Endpoint = "/api/logs"
	if cfg.Title != "" {
		page.Title = cfg.Title
	}
	page.Notes = cfg.Notes

	s := &Server{
		reader:   cfg.Reader,
		interval: interval,
		logger:   logger,
		page:     page,
		mux:      http.NewServeMux(),
	}
	if cfg.Stream {
		s.hub = stream.NewHub(logger)
		page.StreamEndpoint = StreamPath
	}
	s.metrics = newMetrics(s.hub)
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.mux.ServeHTTP(w, req)
}

// Registry returns the server's Prometheus registry.
func (s *Server) Registry() *prometheus.Registry {
	return s.metrics.registry
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. With streaming enabled a watcher polls the reader for
// changes for the lifetime of the call.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.hub != nil {
		w := stream.NewWatcher(s.reader, s.hub, s.interval, s.logger)
		go w.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", "http://"+displayAddr(ln.Addr()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	if s.hub != nil {
		s.hub.Close()
	}
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	return srv.Shutdown(shutdownCtx)
}

// Close releases the stream hub, if any.
func (s *Server) Close() {
	if s.hub != nil {
		s.hub.Close()
	}
}

// displayAddr turns a wildcard listen address into a clickable one.
func displayAddr(a net.Addr) string {
	host, port, err := net.SplitHostPort(a.String())
	if err != nil {
		return a.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
