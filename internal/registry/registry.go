// Package registry holds the latest normalized state per device slot and
// notifies subscribers on change. It is an explicit, injectable container:
// consumers hold a reference to a Registry instance, there are no package
// globals, and each test can run against its own instance.
package registry

import (
	"sort"
	"sync"

	"github.com/soar/gamepadlab/internal/gamepad"
)

const unsetSlot = -1

// Registry maps slot index to the latest normalized device state. All
// mutations happen from poll ticks or connect/disconnect handlers, which the
// poller serializes, but the container is still safe for concurrent reads
// from the broadcast side.
type Registry struct {
	mu      sync.RWMutex
	devices map[int]gamepad.DeviceState
	active  int
	subs    map[chan struct{}]struct{}
}

func New() *Registry {
	return &Registry{
		devices: make(map[int]gamepad.DeviceState),
		active:  unsetSlot,
		subs:    make(map[chan struct{}]struct{}),
	}
}

// Patch stores the latest state for each given slot and notifies.
func (r *Registry) Patch(states ...gamepad.DeviceState) {
	if len(states) == 0 {
		return
	}
	r.mu.Lock()
	for _, s := range states {
		r.devices[s.Slot] = s
	}
	r.mu.Unlock()
	r.notify()
}

// Get returns the latest state for a slot.
func (r *Registry) Get(slot int) (gamepad.DeviceState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.devices[slot]
	return s, ok
}

// All returns every stored state ordered by slot.
func (r *Registry) All() []gamepad.DeviceState {
	r.mu.RLock()
	out := make([]gamepad.DeviceState, 0, len(r.devices))
	for _, s := range r.devices {
		out = append(out, s)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// ActiveSlot returns the slot driving single-device views: the explicitly
// selected slot while it still holds data, otherwise the lowest slot with
// data. The second return is false when the registry is empty.
func (r *Registry) ActiveSlot() (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.active != unsetSlot {
		if _, ok := r.devices[r.active]; ok {
			return r.active, true
		}
	}
	return lowestSlot(r.devices)
}

// SetActive selects the slot for single-device views. Returns false if the
// slot has no data.
func (r *Registry) SetActive(slot int) bool {
	r.mu.Lock()
	_, ok := r.devices[slot]
	if ok {
		r.active = slot
	}
	r.mu.Unlock()
	if ok {
		r.notify()
	}
	return ok
}

// Prune drops every slot not present in the connected set. A pruned active
// slot falls back to default selection.
func (r *Registry) Prune(connected map[int]bool) {
	r.mu.Lock()
	changed := false
	for slot := range r.devices {
		if !connected[slot] {
			delete(r.devices, slot)
			changed = true
		}
	}
	if r.active != unsetSlot {
		if _, ok := r.devices[r.active]; !ok {
			r.active = unsetSlot
		}
	}
	r.mu.Unlock()
	if changed {
		r.notify()
	}
}

// Remove drops a single slot, for edge-triggered disconnects.
func (r *Registry) Remove(slot int) {
	r.mu.Lock()
	_, ok := r.devices[slot]
	delete(r.devices, slot)
	if r.active == slot {
		r.active = unsetSlot
	}
	r.mu.Unlock()
	if ok {
		r.notify()
	}
}

// Subscribe returns a channel that receives a signal after every mutation,
// and a cancel func. The channel has a one-slot buffer; signals coalesce
// rather than block the mutating side.
func (r *Registry) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	r.mu.Lock()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()
	cancel := func() {
		r.mu.Lock()
		delete(r.subs, ch)
		r.mu.Unlock()
	}
	return ch, cancel
}

func (r *Registry) notify() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for ch := range r.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func lowestSlot(devices map[int]gamepad.DeviceState) (int, bool) {
	best, found := 0, false
	for slot := range devices {
		if !found || slot < best {
			best, found = slot, true
		}
	}
	return best, found
}
