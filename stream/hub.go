// Package stream pushes snapshots to websocket viewers whenever the log
// directory changes.
package stream

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Subscriber abstracts a streaming client.
type Subscriber interface {
	ID() string
	Send([]byte) error
	Close()
}

// Hub fans snapshot payloads out to subscribers. All subscriber bookkeeping
// happens on the hub's own goroutine. A subscriber that fails a send is
// closed and dropped.
type Hub struct {
	register  chan Subscriber
	unreg     chan Subscriber
	broadcast chan []byte
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	count  atomic.Int64
	logger *log.Logger
}

// NewHub creates a Hub and starts its loop. Call Close to stop it.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	h := &Hub{
		register:  make(chan Subscriber),
		unreg:     make(chan Subscriber),
		broadcast: make(chan []byte),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.done)

	clients := make(map[Subscriber]struct{})
	var latest []byte

	drop := func(c Subscriber) {
		if _, ok := clients[c]; !ok {
			return
		}
		delete(clients, c)
		c.Close()
		h.count.Store(int64(len(clients)))
	}

	for {
		select {
		case <-h.quit:
			for c := range clients {
				c.Close()
			}
			h.count.Store(0)
			return
		case c := <-h.register:
			clients[c] = struct{}{}
			h.count.Store(int64(len(clients)))
			h.logger.Debug("stream subscriber joined", "id", c.ID(), "subscribers", len(clients))
			if latest != nil {
				if err := c.Send(latest); err != nil {
					drop(c)
				}
			}
		case c := <-h.unreg:
			drop(c)
			h.logger.Debug("stream subscriber left", "id", c.ID(), "subscribers", len(clients))
		case payload := <-h.broadcast:
			latest = payload
			for c := range clients {
				if err := c.Send(payload); err != nil {
					h.logger.Warn("stream send failed", "id", c.ID(), "err", err)
					drop(c)
				}
			}
		}
	}
}

// Register adds a client. It immediately receives the latest payload, if any.
func (h *Hub) Register(c Subscriber) {
	select {
	case h.register <- c:
	case <-h.quit:
		c.Close()
	}
}

// Unregister removes and closes a client.
func (h *Hub) Unregister(c Subscriber) {
	select {
	case h.unreg <- c:
	case <-h.quit:
	}
}

// Broadcast sends payload to all clients and remembers it for new ones.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case h.broadcast <- payload:
	case <-h.quit:
	}
}

// Len returns the number of connected subscribers.
func (h *Hub) Len() int {
	return int(h.count.Load())
}

// Close stops the hub and closes every subscriber. It waits for the loop to
// exit and is safe to call more than once.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.quit) })
	<-h.done
}
