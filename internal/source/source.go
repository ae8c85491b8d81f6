// Package source abstracts where raw gamepad snapshots come from. The
// production implementation is Feed, filled by whichever browser client
// currently forwards Gamepad API readings over the WebSocket.
package source

import (
	"sync"
	"time"

	"github.com/soar/gamepadlab/internal/gamepad"
)

// EventKind discriminates connect/disconnect edges.
type EventKind int

const (
	Connected EventKind = iota
	Disconnected
)

// Event is an edge-triggered device event, delivered independently of the
// polling cadence.
type Event struct {
	Kind     EventKind
	Snapshot gamepad.RawSnapshot // valid for Connected
	Slot     int
}

// Source is the raw input contract: a query for the current snapshots plus
// connect/disconnect events. When no platform capability is attached all
// calls degrade to empty results, never a fault.
type Source interface {
	// Available reports whether an input feeder is currently attached.
	Available() bool
	// Poll returns the latest set of raw snapshots, one per connected slot.
	Poll() []gamepad.RawSnapshot
	// Events delivers connect/disconnect edges.
	Events() <-chan Event
}

// Feed is a Source fed externally via Publish. It keeps only the latest
// snapshot set; the poller samples it at its own cadence.
type Feed struct {
	mu        sync.RWMutex
	latest    []gamepad.RawSnapshot
	available bool
	events    chan Event
}

func NewFeed() *Feed {
	return &Feed{events: make(chan Event, 16)}
}

func (f *Feed) Available() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.available
}

// SetAvailable marks whether a feeder is attached. Detaching clears the
// snapshot set so the next poll prunes everything.
func (f *Feed) SetAvailable(ok bool) {
	f.mu.Lock()
	f.available = ok
	if !ok {
		f.latest = nil
	}
	f.mu.Unlock()
}

// Publish replaces the current snapshot set, stamping receive time.
func (f *Feed) Publish(snaps []gamepad.RawSnapshot) {
	now := time.Now()
	for i := range snaps {
		snaps[i].ReceivedAt = now
	}
	f.mu.Lock()
	f.latest = snaps
	f.mu.Unlock()
}

// Poll returns a copy of the latest snapshot set.
func (f *Feed) Poll() []gamepad.RawSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.latest) == 0 {
		return nil
	}
	out := make([]gamepad.RawSnapshot, len(f.latest))
	copy(out, f.latest)
	return out
}

func (f *Feed) Events() <-chan Event {
	return f.events
}

// Connect pushes a connect edge. Dropped if the event buffer is full; the
// next poll cycle picks the device up anyway.
func (f *Feed) Connect(s gamepad.RawSnapshot) {
	s.ReceivedAt = time.Now()
	select {
	case f.events <- Event{Kind: Connected, Snapshot: s, Slot: s.Slot}:
	default:
	}
}

// Disconnect pushes a disconnect edge for a slot.
func (f *Feed) Disconnect(slot int) {
	select {
	case f.events <- Event{Kind: Disconnected, Slot: slot}:
	default:
	}
}
