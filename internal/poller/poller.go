// Package poller drives the sampling cadence: full-rate sampling while any
// device is active, throttled sampling while idle, with connect/disconnect
// edges handled in the same serialized loop as frame ticks.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soar/gamepadlab/internal/gamepad"
	"github.com/soar/gamepadlab/internal/prefs"
	"github.com/soar/gamepadlab/internal/registry"
	"github.com/soar/gamepadlab/internal/sim"
	"github.com/soar/gamepadlab/internal/source"
)

const (
	// FrameInterval approximates a 60 Hz display refresh signal.
	FrameInterval = 16 * time.Millisecond

	// IdleInterval is the minimum time between samples while no device is
	// connected and simulation is off.
	IdleInterval = time.Second

	latencyAlpha = 0.1
)

// Clock is the frame-synchronized timing source. The production clock is a
// ticker; tests inject their own.
type Clock interface {
	C() <-chan time.Time
	Stop()
}

type tickerClock struct{ t *time.Ticker }

func NewTickerClock(interval time.Duration) Clock {
	return &tickerClock{t: time.NewTicker(interval)}
}

func (c *tickerClock) C() <-chan time.Time { return c.t.C }
func (c *tickerClock) Stop()               { c.t.Stop() }

// ActuatorBinder receives actuator bindings as devices come and go. The
// haptics dispatcher implements it.
type ActuatorBinder interface {
	Bind(slot int, act gamepad.Actuator)
	Unbind(slot int)
}

// SimFunc produces a synthetic device state for an elapsed time. Defaults
// to the virtual device simulator.
type SimFunc func(elapsed time.Duration) gamepad.DeviceState

// Poller owns the cooperative sampling loop.
type Poller struct {
	src    source.Source
	reg    *registry.Registry
	store  *prefs.Store
	binder ActuatorBinder
	clock  Clock
	log    *slog.Logger
	simFn  SimFunc

	active     atomic.Bool
	stopOnce   sync.Once
	stopCh     chan struct{}
	idle       bool
	lastSample time.Time
	start      time.Time

	latencyMu sync.RWMutex
	latency   time.Duration
}

// Option configures a Poller.
type Option func(*Poller)

// WithClock overrides the frame clock.
func WithClock(c Clock) Option { return func(p *Poller) { p.clock = c } }

// WithSimFunc overrides the synthetic state generator.
func WithSimFunc(fn SimFunc) Option { return func(p *Poller) { p.simFn = fn } }

// WithBinder attaches an actuator binder.
func WithBinder(b ActuatorBinder) Option { return func(p *Poller) { p.binder = b } }

func New(src source.Source, reg *registry.Registry, store *prefs.Store, logger *slog.Logger, opts ...Option) *Poller {
	p := &Poller{
		src:    src,
		reg:    reg,
		store:  store,
		log:    logger,
		simFn:  sim.State,
		idle:   true,
		stopCh: make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	if p.clock == nil {
		p.clock = NewTickerClock(FrameInterval)
	}
	return p
}

// Latency returns the current smoothed estimate of snapshot age at sample
// time. Zero until real input has been sampled.
func (p *Poller) Latency() time.Duration {
	p.latencyMu.RLock()
	defer p.latencyMu.RUnlock()
	return p.latency
}

// Run executes the loop until ctx is done or Stop is called. Frame ticks and
// connect/disconnect events are handled in one select, so their ordering is
// strictly serialized: an edge arriving between two ticks is reflected
// before the next sample.
func (p *Poller) Run(ctx context.Context) {
	p.active.Store(true)
	p.start = time.Now()
	defer p.clock.Stop()

	for {
		if !p.active.Load() {
			return
		}
		select {
		case <-ctx.Done():
			p.active.Store(false)
			return
		case <-p.stopCh:
			return
		case ev := <-p.src.Events():
			p.handleEvent(ev)
		case now := <-p.clock.C():
			p.tick(now)
		}
	}
}

// Stop clears the active flag, unblocks the loop, and stops the clock so no
// further frame callbacks are issued after teardown.
func (p *Poller) Stop() {
	p.active.Store(false)
	p.stopOnce.Do(func() { close(p.stopCh) })
	p.clock.Stop()
}

func (p *Poller) handleEvent(ev source.Event) {
	switch ev.Kind {
	case source.Connected:
		state := gamepad.Normalize(ev.Snapshot)
		p.reg.Patch(state)
		if p.binder != nil {
			p.binder.Bind(ev.Slot, ev.Snapshot.Actuator)
		}
		p.idle = false
		p.log.Info("device connected", "slot", ev.Slot, "id", state.ID, "vendor", state.Vendor)
	case source.Disconnected:
		p.reg.Remove(ev.Slot)
		if p.binder != nil {
			p.binder.Unbind(ev.Slot)
		}
		p.log.Info("device disconnected", "slot", ev.Slot)
	}
}

func (p *Poller) tick(now time.Time) {
	if !p.active.Load() {
		return
	}
	simOn := p.store.Current().SimulationMode
	if p.idle && !simOn && now.Sub(p.lastSample) < IdleInterval {
		return
	}
	p.lastSample = now
	p.sample(now, simOn)
}

func (p *Poller) sample(now time.Time, simOn bool) {
	if simOn {
		state := p.simFn(now.Sub(p.start))
		p.reg.Patch(state)
		p.reg.Prune(map[int]bool{state.Slot: true})
		p.idle = false
		return
	}

	// No feeder attached: nothing to sample, drain any stale state.
	if !p.src.Available() {
		p.reg.Prune(nil)
		p.idle = true
		return
	}

	snaps := p.src.Poll()
	if len(snaps) == 0 {
		p.reg.Prune(nil)
		p.idle = true
		return
	}

	connected := make(map[int]bool, len(snaps))
	states := make([]gamepad.DeviceState, 0, len(snaps))
	for _, raw := range snaps {
		if !raw.Connected {
			continue
		}
		connected[raw.Slot] = true
		states = append(states, gamepad.Normalize(raw))
		if p.binder != nil {
			p.binder.Bind(raw.Slot, raw.Actuator)
		}
		if !raw.ReceivedAt.IsZero() {
			p.observeLatency(now.Sub(raw.ReceivedAt))
		}
	}

	if len(states) == 0 {
		p.reg.Prune(nil)
		p.idle = true
		return
	}
	p.reg.Patch(states...)
	p.reg.Prune(connected)
	p.idle = false
}

func (p *Poller) observeLatency(d time.Duration) {
	if d < 0 {
		d = 0
	}
	p.latencyMu.Lock()
	if p.latency == 0 {
		p.latency = d
	} else {
		p.latency = time.Duration(float64(p.latency)*(1-latencyAlpha) + float64(d)*latencyAlpha)
	}
	p.latencyMu.Unlock()
}
