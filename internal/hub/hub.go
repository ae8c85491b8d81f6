// Package hub manages WebSocket clients: snapshot ingest from the feeder
// client, device-state broadcast to everyone, preference mutations and
// haptics command round-trips.
package hub

import (
	"log/slog"
	"sync"

	"github.com/soar/gamepadlab/internal/haptics"
	"github.com/soar/gamepadlab/internal/prefs"
	"github.com/soar/gamepadlab/internal/registry"
	"github.com/soar/gamepadlab/internal/source"
)

// Deps are the collaborators the hub routes client messages to.
type Deps struct {
	Feed       *source.Feed
	Prefs      *prefs.Store
	Registry   *registry.Registry
	Dispatcher *haptics.Dispatcher
	Log        *slog.Logger
}

// Hub tracks connected clients. Exactly one ready client at a time is the
// input feeder; the others are view-only.
type Hub struct {
	deps       Deps
	register   chan *Client
	unregister chan *Client

	mu      sync.RWMutex
	clients map[*Client]bool
	feeder  *Client
}

func New(deps Deps) *Hub {
	return &Hub{
		deps:       deps,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Register adds a new client to the hub.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Broadcast sends a marshaled message to every client. A client whose send
// buffer is full gets dropped from the hub.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if !client.enqueue(msg) {
			go func(c *Client) {
				h.unregister <- c
			}(client)
		}
	}
}

// Run starts the hub's main loop. Should be run in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.deps.Log.Info("client connected", "total", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
			}
			wasFeeder := h.feeder == client
			if wasFeeder {
				h.feeder = nil
				for c := range h.clients {
					if c.ready {
						h.feeder = c
						break
					}
				}
			}
			feeder := h.feeder
			total := len(h.clients)
			h.mu.Unlock()

			if wasFeeder {
				if feeder == nil {
					h.deps.Feed.SetAvailable(false)
				}
				h.deps.Log.Info("input feeder changed", "attached", feeder != nil)
			}
			h.deps.Log.Info("client disconnected", "total", total)
		}
	}
}

// markReady records that a client completed its hello and promotes it to
// feeder if the role is vacant.
func (h *Hub) markReady(c *Client) {
	h.mu.Lock()
	c.ready = true
	promoted := false
	if h.feeder == nil {
		h.feeder = c
		promoted = true
	}
	h.mu.Unlock()
	if promoted {
		h.deps.Feed.SetAvailable(true)
		h.deps.Log.Info("input feeder attached")
	}
}

func (h *Hub) isFeeder(c *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.feeder == c
}
