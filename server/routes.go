package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/reader"
	"github.com/sonnes/logboard/stream"
)

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.metrics.instrument("/", s.handlePage))
	s.mux.HandleFunc("GET /api/logs", s.metrics.instrument("/api/logs", s.handleLogs))
	s.mux.HandleFunc("GET /healthz", s.metrics.instrument("/healthz", s.handleHealthz))
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	if s.hub != nil {
		ws := stream.NewHandler(s.hub, s.logger)
		s.mux.HandleFunc("GET "+StreamPath, s.metrics.instrument(StreamPath, ws.ServeHTTP))
	}
}

// handleLogs serves the snapshot as a flat JSON object in display order.
// Unreadable files are reported in a header, never in the body.
func (s *Server) handleLogs(w http.ResponseWriter, req *http.Request) {
	snap, err := s.reader.Snapshot(req.Context())
	if err != nil {
		s.logSnapshotError(err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.recordSnapshot(snap)

	if skipped := snap.Skipped(); len(skipped) > 0 {
		w.Header().Set(reader.SkippedHeader, reader.EncodeSkipped(skipped))
	}
	w.Header().Set(reader.SourcesHeader, strconv.Itoa(snap.Len()))
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, snap)
}

// handlePage renders the live viewer with the current snapshot so content
// shows before the first poll. If the snapshot fails the page still renders
// empty and the script keeps polling.
func (s *Server) handlePage(w http.ResponseWriter, req *http.Request) {
	snap, err := s.reader.Snapshot(req.Context())
	if err != nil {
		s.logSnapshotError(err)
		snap = core.Empty()
	} else {
		s.metrics.recordSnapshot(snap)
	}

	var buf bytes.Buffer
	if err := s.page.Render(&buf, snap); err != nil {
		s.logger.Error("render page", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHealthz(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logSnapshotError(err error) {
	var de *reader.DirectoryError
	if errors.As(err, &de) {
		s.logger.Error("log directory unreadable", "dir", de.Dir, "err", de.Err)
		return
	}
	s.logger.Error("snapshot failed", "err", err)
}
