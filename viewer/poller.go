package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/reader"
)

// DefaultInterval is the refresh period used when none is configured.
const DefaultInterval = 5 * time.Second

// Poller drives a Viewer from a Reader on a fixed interval. Ticks fire
// independently of fetch duration; the Viewer's state decides whether a
// tick starts a fetch.
type Poller struct {
	Viewer   *Viewer
	Reader   reader.Reader
	Interval time.Duration
	// OnChange, when set, is called with the new snapshot after a fetch
	// changes the displayed content. Calls never overlap and arrive in the
	// order the fetches completed.
	OnChange func(*core.Snapshot)

	wg   sync.WaitGroup
	emit sync.Mutex
}

// Run refreshes at once and then on every tick until ctx is cancelled. It
// waits for an in-flight fetch before returning.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	p.Tick(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer p.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick starts one fetch in the background unless one is already running,
// and reports whether it started.
func (p *Poller) Tick(ctx context.Context) bool {
	if !p.Viewer.Begin() {
		return false
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		s, err := p.Reader.Snapshot(ctx)

		// The viewer is Idle once Complete returns, so the next fetch may
		// finish while OnChange is still running.
		p.emit.Lock()
		defer p.emit.Unlock()
		if p.Viewer.Complete(s, err) && p.OnChange != nil {
			p.OnChange(p.Viewer.Snapshot())
		}
	}()
	return true
}

// Wait blocks until no fetch started by Tick is running.
func (p *Poller) Wait() {
	p.wg.Wait()
}
