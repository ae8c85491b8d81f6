package hub

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/soar/gamepadlab/internal/compat"
	"github.com/soar/gamepadlab/internal/gamepad"
	"github.com/soar/gamepadlab/internal/haptics"
)

const (
	sendBuffer = 256
	// ackGrace pads the wait for a haptics ack beyond the effect's own
	// duration.
	ackGrace = 3 * time.Second
)

// Client represents one connected WebSocket client.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	ready bool // hello received; guarded by hub.mu

	// sendMu guards send against a late enqueue racing teardown: haptics
	// replies and actuator commands run in goroutines that outlive the read
	// loop, so they can fire after the hub has unregistered this client.
	sendMu     sync.Mutex
	send       chan []byte
	sendClosed bool

	ackMu   sync.Mutex
	pending map[int64]chan ackResult
	nextID  int64
}

type ackResult struct {
	ok  bool
	err string
}

// NewClient creates a new Client attached to the hub.
func NewClient(h *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		pending: make(map[int64]chan ackResult),
	}
}

// WritePump sends messages from the send channel to the WebSocket
// connection.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// ReadPump reads and routes client messages until the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		c.failPending("client disconnected")
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.hub.deps.Log.Warn("unparseable client message", "error", err)
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg ClientMessage) {
	deps := c.hub.deps
	switch msg.Type {
	case "hello":
		info := compat.ClientInfo{}
		if msg.Client != nil {
			info = *msg.Client
		}
		c.Send(NewCompatMessage(compat.BuildReport(info)))
		c.Send(NewPrefsMessage(deps.Prefs.Current()))
		c.hub.markReady(c)

	case "snapshots":
		if c.hub.isFeeder(c) {
			deps.Feed.Publish(c.toRawSnapshots(msg.Snapshots))
		}

	case "connected":
		if c.hub.isFeeder(c) && msg.Snapshot != nil {
			deps.Feed.Connect(c.toRawSnapshot(*msg.Snapshot))
		}

	case "disconnected":
		if c.hub.isFeeder(c) && msg.Slot != nil {
			deps.Feed.Disconnect(*msg.Slot)
		}

	case "setActive":
		if msg.Slot != nil {
			if !deps.Registry.SetActive(*msg.Slot) {
				deps.Log.Warn("cannot activate empty slot", "slot", *msg.Slot)
			}
		}

	case "setPrefs":
		if msg.DeadZone != nil {
			deps.Prefs.SetDeadZone(*msg.DeadZone)
		}
		if msg.SimulationMode != nil {
			deps.Prefs.SetSimulationMode(*msg.SimulationMode)
		}
		if msg.ReducedMotion != nil {
			deps.Prefs.SetReducedMotion(*msg.ReducedMotion)
		}

	case "haptics":
		// Dispatch asynchronously: the actuator ack arrives on this same
		// read loop, so waiting here would deadlock.
		go c.handleHaptics(msg)

	case "hapticsAck":
		c.resolveAck(msg.ID, ackResult{ok: msg.OK, err: msg.Error})

	default:
		deps.Log.Warn("unknown client message type", "type", msg.Type)
	}
}

func (c *Client) handleHaptics(msg ClientMessage) {
	deps := c.hub.deps
	slot := 0
	if msg.Slot != nil {
		slot = *msg.Slot
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var res haptics.Result
	switch msg.Action {
	case "play":
		effect := gamepad.Effect{}
		if msg.Effect != nil {
			effect = fromWireEffect(*msg.Effect)
		}
		res = deps.Dispatcher.Play(ctx, slot, effect)
	case "pulse":
		res = deps.Dispatcher.Pulse(ctx, slot, haptics.Strength(msg.Strength))
	case "stop":
		res = deps.Dispatcher.Stop(ctx, slot)
	default:
		res = haptics.Result{Reason: "unknown haptics action"}
	}
	c.Send(NewHapticsResultMessage(msg.ID, res))
}

// Send marshals and queues a message. Dropped if the buffer is full or the
// client is already torn down; a stale reply must never take the process
// down.
func (c *Client) Send(msg *ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.hub.deps.Log.Error("marshal server message", "type", msg.Type, "error", err)
		return
	}
	c.enqueue(data)
}

// enqueue queues raw bytes for the write pump. Returns false only when the
// client is alive but its buffer is full, which is the hub's cue to drop the
// client; a closed client swallows the message and reports true.
func (c *Client) enqueue(data []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// closeSend shuts the send channel down exactly once, after which every
// enqueue is a no-op. Called by the hub on unregister.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return
	}
	c.sendClosed = true
	close(c.send)
}

// command sends a haptics command to this client and waits for its ack.
func (c *Client) command(ctx context.Context, msg *ServerMessage, wait time.Duration) error {
	ch := make(chan ackResult, 1)
	c.ackMu.Lock()
	c.nextID++
	msg.ID = c.nextID
	c.pending[msg.ID] = ch
	c.ackMu.Unlock()
	defer func() {
		c.ackMu.Lock()
		delete(c.pending, msg.ID)
		c.ackMu.Unlock()
	}()

	c.Send(msg)

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case res := <-ch:
		if !res.ok {
			if res.err == "" {
				return errors.New("haptics command rejected")
			}
			return errors.New(res.err)
		}
		return nil
	case <-timer.C:
		return errors.New("haptics command timed out")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) resolveAck(id int64, res ackResult) {
	c.ackMu.Lock()
	ch, ok := c.pending[id]
	delete(c.pending, id)
	c.ackMu.Unlock()
	if ok {
		ch <- res
	}
}

func (c *Client) failPending(reason string) {
	c.ackMu.Lock()
	for id, ch := range c.pending {
		delete(c.pending, id)
		select {
		case ch <- ackResult{err: reason}:
		default:
		}
	}
	c.ackMu.Unlock()
}

func (c *Client) toRawSnapshots(wire []WireSnapshot) []gamepad.RawSnapshot {
	out := make([]gamepad.RawSnapshot, 0, len(wire))
	for _, w := range wire {
		out = append(out, c.toRawSnapshot(w))
	}
	return out
}

func (c *Client) toRawSnapshot(w WireSnapshot) gamepad.RawSnapshot {
	raw := gamepad.RawSnapshot{
		Slot:      w.Slot,
		ID:        w.ID,
		Mapping:   w.Mapping,
		Timestamp: w.Timestamp,
		Connected: w.Connected,
		Axes:      w.Axes,
	}
	raw.Buttons = make([]gamepad.RawButton, len(w.Buttons))
	for i, b := range w.Buttons {
		raw.Buttons[i] = gamepad.RawButton{Pressed: b.Pressed, Value: b.Value}
	}
	if w.CanVibrate {
		typ := w.ActuatorType
		if typ == "" {
			typ = "dual-rumble"
		}
		raw.Actuator = &wsActuator{client: c, slot: w.Slot, typ: typ}
	}
	return raw
}

// wsActuator forwards vibration calls to the browser that owns the physical
// actuator, treating a missing or negative ack as an ordinary error.
type wsActuator struct {
	client *Client
	slot   int
	typ    string
}

func (a *wsActuator) Play(ctx context.Context, e gamepad.Effect) error {
	msg := &ServerMessage{
		Type:      "hapticsPlay",
		Timestamp: time.Now().UnixMilli(),
		Slot:      a.slot,
		Effect:    toWireEffect(e),
	}
	return a.client.command(ctx, msg, e.StartDelay+e.Duration+ackGrace)
}

func (a *wsActuator) Reset(ctx context.Context) error {
	msg := &ServerMessage{
		Type:      "hapticsReset",
		Timestamp: time.Now().UnixMilli(),
		Slot:      a.slot,
	}
	return a.client.command(ctx, msg, ackGrace)
}

func (a *wsActuator) Type() string { return a.typ }
