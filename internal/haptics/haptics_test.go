package haptics_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/gamepadlab/internal/gamepad"
	"github.com/soar/gamepadlab/internal/haptics"
	"github.com/soar/gamepadlab/internal/registry"
)

type fakeActuator struct {
	played []gamepad.Effect
	resets int
	err    error
}

func (f *fakeActuator) Play(ctx context.Context, e gamepad.Effect) error {
	f.played = append(f.played, e)
	return f.err
}

func (f *fakeActuator) Reset(ctx context.Context) error {
	f.resets++
	return f.err
}

func (f *fakeActuator) Type() string { return "dual-rumble" }

func newDispatcher(t *testing.T) (*haptics.Dispatcher, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	return haptics.NewDispatcher(reg, slog.New(slog.NewTextHandler(io.Discard, nil))), reg
}

func TestPlayDeviceNotFound(t *testing.T) {
	d, _ := newDispatcher(t)
	res := d.Play(context.Background(), 3, gamepad.Effect{Duration: time.Second})
	assert.False(t, res.OK)
	assert.Equal(t, haptics.ReasonNotFound, res.Reason)
}

func TestPlayUnsupported(t *testing.T) {
	d, reg := newDispatcher(t)
	reg.Patch(gamepad.DeviceState{Slot: 0, Connected: true})
	res := d.Play(context.Background(), 0, gamepad.Effect{Duration: time.Second})
	assert.False(t, res.OK)
	assert.Equal(t, haptics.ReasonUnsupported, res.Reason)
}

func TestPlaySuccessClampsMagnitudes(t *testing.T) {
	d, reg := newDispatcher(t)
	reg.Patch(gamepad.DeviceState{Slot: 0, Connected: true})
	act := &fakeActuator{}
	d.Bind(0, act)

	res := d.Play(context.Background(), 0, gamepad.Effect{
		Duration:        time.Second,
		WeakMagnitude:   1.7,
		StrongMagnitude: -0.3,
	})
	require.True(t, res.OK)
	require.Len(t, act.played, 1)
	assert.Equal(t, 1.0, act.played[0].WeakMagnitude)
	assert.Equal(t, 0.0, act.played[0].StrongMagnitude)
}

func TestPlayPlatformFaultBecomesResult(t *testing.T) {
	d, reg := newDispatcher(t)
	reg.Patch(gamepad.DeviceState{Slot: 0, Connected: true})
	d.Bind(0, &fakeActuator{err: errors.New("actuator busy")})

	res := d.Play(context.Background(), 0, gamepad.Effect{Duration: time.Second})
	assert.False(t, res.OK)
	assert.Equal(t, "actuator busy", res.Reason)
}

func TestPulsePresets(t *testing.T) {
	d, reg := newDispatcher(t)
	reg.Patch(gamepad.DeviceState{Slot: 0, Connected: true})
	act := &fakeActuator{}
	d.Bind(0, act)

	for _, s := range []haptics.Strength{haptics.Low, haptics.Medium, haptics.High} {
		res := d.Pulse(context.Background(), 0, s)
		require.True(t, res.OK, "strength %s", s)
	}
	require.Len(t, act.played, 3)
	assert.Equal(t, 250*time.Millisecond, act.played[0].Duration)
	// Presets scale monotonically.
	assert.Less(t, act.played[0].StrongMagnitude, act.played[1].StrongMagnitude)
	assert.Less(t, act.played[1].StrongMagnitude, act.played[2].StrongMagnitude)

	// Unknown strength falls back to medium.
	res := d.Pulse(context.Background(), 0, haptics.Strength("extreme"))
	require.True(t, res.OK)
	assert.Equal(t, act.played[1].WeakMagnitude, act.played[3].WeakMagnitude)
}

func TestStop(t *testing.T) {
	d, reg := newDispatcher(t)
	reg.Patch(gamepad.DeviceState{Slot: 0, Connected: true})
	act := &fakeActuator{}
	d.Bind(0, act)

	res := d.Stop(context.Background(), 0)
	require.True(t, res.OK)
	assert.Equal(t, 1, act.resets)
}

func TestUnbind(t *testing.T) {
	d, reg := newDispatcher(t)
	reg.Patch(gamepad.DeviceState{Slot: 0, Connected: true})
	d.Bind(0, &fakeActuator{})
	d.Unbind(0)

	res := d.Stop(context.Background(), 0)
	assert.Equal(t, haptics.ReasonUnsupported, res.Reason)
}

func TestBindNilUnbinds(t *testing.T) {
	d, reg := newDispatcher(t)
	reg.Patch(gamepad.DeviceState{Slot: 0, Connected: true})
	d.Bind(0, &fakeActuator{})
	d.Bind(0, nil)

	res := d.Pulse(context.Background(), 0, haptics.Low)
	assert.Equal(t, haptics.ReasonUnsupported, res.Reason)
}
