package hub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/soar/gamepadlab/internal/gamepad"
	"github.com/soar/gamepadlab/internal/prefs"
	"github.com/soar/gamepadlab/internal/registry"
)

const fullSyncInterval = 5 * time.Second

// LatencySource exposes the poller's smoothed latency estimate.
type LatencySource interface {
	Latency() time.Duration
}

// Broadcaster turns registry and preference changes into hub broadcasts,
// with a periodic full sync so late or lossy clients reconverge.
type Broadcaster struct {
	hub     *Hub
	reg     *registry.Registry
	store   *prefs.Store
	latency LatencySource
	seq     int64
}

func NewBroadcaster(h *Hub, reg *registry.Registry, store *prefs.Store, latency LatencySource) *Broadcaster {
	return &Broadcaster{hub: h, reg: reg, store: store, latency: latency}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	regCh, cancelReg := b.reg.Subscribe()
	defer cancelReg()
	prefsCh, cancelPrefs := b.store.Subscribe()
	defer cancelPrefs()

	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-regCh:
			b.broadcastDevices()
		case <-prefsCh:
			b.broadcast(NewPrefsMessage(b.store.Current()))
			// The dead-zone threshold feeds the derived stick views, so a
			// preference change also refreshes devices.
			b.broadcastDevices()
		case <-ticker.C:
			b.broadcastDevices()
		}
	}
}

// SendInitial pushes current state to a newly connected client.
func (b *Broadcaster) SendInitial(c *Client) {
	c.Send(b.devicesMessage())
}

func (b *Broadcaster) broadcastDevices() {
	b.broadcast(b.devicesMessage())
}

func (b *Broadcaster) devicesMessage() *ServerMessage {
	threshold := b.store.Current().DeadZone
	states := b.reg.All()
	views := make([]DeviceView, len(states))
	for i, s := range states {
		views[i] = DeviceView{
			DeviceState: s,
			Sticks:      gamepad.FilterSticks(s.Axes, threshold),
		}
	}
	var active *int
	if slot, ok := b.reg.ActiveSlot(); ok {
		active = &slot
	}
	b.seq++
	return NewDevicesMessage(b.seq, views, active, b.latency.Latency())
}

func (b *Broadcaster) broadcast(msg *ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.hub.deps.Log.Error("marshal broadcast", "type", msg.Type, "error", err)
		return
	}
	b.hub.Broadcast(data)
}
