package stream

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/reader"
)

// DefaultInterval is the watcher poll period.
const DefaultInterval = 5 * time.Second

// Broadcaster receives encoded snapshots.
type Broadcaster interface {
	Broadcast(payload []byte)
}

// Watcher polls a reader and broadcasts the snapshot whenever its sources
// or skipped names differ from the previous one.
type Watcher struct {
	reader   reader.Reader
	out      Broadcaster
	interval time.Duration
	logger   *log.Logger

	prev *core.Snapshot
}

// NewWatcher creates a watcher. A zero interval means DefaultInterval.
func NewWatcher(r reader.Reader, out Broadcaster, interval time.Duration, logger *log.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{reader: r, out: out, interval: interval, logger: logger}
}

// Run polls once immediately and then on every tick. Blocks until ctx is
// cancelled.
func (w *Watcher) Run(ctx context.Context) {
	w.poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// poll takes one snapshot and reports whether it was broadcast.
func (w *Watcher) poll(ctx context.Context) bool {
	snap, err := w.reader.Snapshot(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn("watch snapshot failed", "err", err)
		}
		return false
	}
	if w.prev != nil && w.prev.SameView(snap) {
		return false
	}

	payload, err := Encode(snap)
	if err != nil {
		w.logger.Error("encode snapshot", "err", err)
		return false
	}
	w.prev = snap
	w.logger.Debug("logs changed", "sources", snap.Len())
	w.out.Broadcast(payload)
	return true
}
