// Package viewer holds the client-side refresh state machine shared by the
// terminal viewer and the headless watch command.
//
// A viewer is Idle or Fetching. A refresh may only start from Idle, so
// fetches never overlap and a slow response can never overwrite a newer
// one. A failed fetch leaves the displayed snapshot untouched and is
// reported to the diagnostic logger only.
package viewer

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnes/logboard/core"
)

// State is the viewer's refresh state.
type State int

const (
	Idle State = iota
	Fetching
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	default:
		return "unknown"
	}
}

// Viewer tracks the displayed snapshot and the refresh state. It is safe
// for concurrent use.
type Viewer struct {
	mu        sync.Mutex
	state     State
	snap      *core.Snapshot
	updatedAt time.Time
	lastErr   error
	diag      *log.Logger
}

// New returns an Idle viewer displaying an empty snapshot. Fetch failures
// and skipped ticks are written to diag; nil discards them.
func New(diag *log.Logger) *Viewer {
	if diag == nil {
		diag = log.New(io.Discard)
	}
	return &Viewer{snap: core.Empty(), diag: diag}
}

// Begin moves the viewer from Idle to Fetching and reports whether it did.
// A false result means a fetch is already in flight and this tick is
// skipped.
func (v *Viewer) Begin() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == Fetching {
		v.diag.Debug("refresh skipped, previous fetch still running")
		return false
	}
	v.state = Fetching
	return true
}

// Complete settles the in-flight fetch and returns the viewer to Idle. On
// success s replaces the displayed snapshot wholesale; on failure the
// displayed snapshot is kept and err goes to the diagnostic logger. The
// result reports whether the displayed content or skipped names changed.
func (v *Viewer) Complete(s *core.Snapshot, err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != Fetching {
		v.diag.Warn("refresh completed while idle, result dropped")
		return false
	}
	v.state = Idle

	if err != nil {
		v.lastErr = err
		v.diag.Error("refresh failed", "err", err)
		return false
	}
	if s == nil {
		s = core.Empty()
	}
	v.lastErr = nil
	v.updatedAt = s.TakenAt()
	changed := !v.snap.SameView(s)
	v.snap = s
	return changed
}

// Snapshot returns the displayed snapshot.
func (v *Viewer) Snapshot() *core.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap
}

// State returns the current refresh state.
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// UpdatedAt returns the poll time of the displayed snapshot, zero before
// the first successful fetch.
func (v *Viewer) UpdatedAt() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.updatedAt
}

// LastError returns the error of the most recent fetch, nil if it
// succeeded.
func (v *Viewer) LastError() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}
