// Package haptics dispatches vibration effects to registered device
// actuators. Every operation returns a Result; platform faults never
// propagate past this package.
package haptics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/soar/gamepadlab/internal/gamepad"
	"github.com/soar/gamepadlab/internal/registry"
)

// Fixed failure reasons. Anything else in Result.Reason is the underlying
// platform error text.
const (
	ReasonNotFound    = "device not found"
	ReasonUnsupported = "haptics not supported on this device"
)

// Result is the outcome of a haptics operation.
type Result struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

func success() Result              { return Result{OK: true} }
func failure(reason string) Result { return Result{Reason: reason} }

// Strength selects a pulse preset.
type Strength string

const (
	Low    Strength = "low"
	Medium Strength = "medium"
	High   Strength = "high"
)

const pulseDuration = 250 * time.Millisecond

var pulsePresets = map[Strength]struct{ weak, strong float64 }{
	Low:    {0.3, 0.2},
	Medium: {0.65, 0.5},
	High:   {1.0, 1.0},
}

// Dispatcher routes effects to the actuator bound to a slot. Bindings are
// maintained by the poller as devices come and go.
type Dispatcher struct {
	mu   sync.RWMutex
	reg  *registry.Registry
	acts map[int]gamepad.Actuator
	log  *slog.Logger
}

func NewDispatcher(reg *registry.Registry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		reg:  reg,
		acts: make(map[int]gamepad.Actuator),
		log:  logger,
	}
}

// Bind associates an actuator with a slot. A nil actuator unbinds.
func (d *Dispatcher) Bind(slot int, act gamepad.Actuator) {
	d.mu.Lock()
	if act == nil {
		delete(d.acts, slot)
	} else {
		d.acts[slot] = act
	}
	d.mu.Unlock()
}

// Unbind removes any actuator for a slot.
func (d *Dispatcher) Unbind(slot int) {
	d.mu.Lock()
	delete(d.acts, slot)
	d.mu.Unlock()
}

// Play issues a dual-motor effect to the device in the given slot and awaits
// completion.
func (d *Dispatcher) Play(ctx context.Context, slot int, e gamepad.Effect) Result {
	act, res := d.lookup(slot)
	if !res.OK {
		return res
	}
	e.WeakMagnitude = clamp01(e.WeakMagnitude)
	e.StrongMagnitude = clamp01(e.StrongMagnitude)
	if err := act.Play(ctx, e); err != nil {
		d.log.Warn("haptics effect failed", "slot", slot, "error", err)
		return failure(err.Error())
	}
	return success()
}

// Pulse applies a fixed preset for a short burst. Unknown strengths fall
// back to medium.
func (d *Dispatcher) Pulse(ctx context.Context, slot int, s Strength) Result {
	preset, ok := pulsePresets[s]
	if !ok {
		preset = pulsePresets[Medium]
	}
	return d.Play(ctx, slot, gamepad.Effect{
		Duration:        pulseDuration,
		WeakMagnitude:   preset.weak,
		StrongMagnitude: preset.strong,
	})
}

// Stop resets any in-flight effect on the slot's device.
func (d *Dispatcher) Stop(ctx context.Context, slot int) Result {
	act, res := d.lookup(slot)
	if !res.OK {
		return res
	}
	if err := act.Reset(ctx); err != nil {
		d.log.Warn("haptics reset failed", "slot", slot, "error", err)
		return failure(err.Error())
	}
	return success()
}

func (d *Dispatcher) lookup(slot int) (gamepad.Actuator, Result) {
	if _, ok := d.reg.Get(slot); !ok {
		return nil, failure(ReasonNotFound)
	}
	d.mu.RLock()
	act := d.acts[slot]
	d.mu.RUnlock()
	if act == nil {
		return nil, failure(ReasonUnsupported)
	}
	return act, success()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
