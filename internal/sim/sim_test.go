package sim_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/gamepadlab/internal/gamepad"
	"github.com/soar/gamepadlab/internal/sim"
)

func TestStateShape(t *testing.T) {
	s := sim.State(3 * time.Second)

	assert.Equal(t, sim.Slot, s.Slot)
	assert.Equal(t, sim.DeviceID, s.ID)
	assert.Equal(t, gamepad.VendorGeneric, s.Vendor)
	assert.True(t, s.Connected)
	assert.False(t, s.Haptics.Supported)

	require.Len(t, s.Buttons, 16)
	assert.Equal(t, "A", s.Buttons[0].Label)
	assert.Equal(t, "B", s.Buttons[1].Label)
	assert.Equal(t, "X", s.Buttons[2].Label)
	assert.Equal(t, "Y", s.Buttons[3].Label)
	assert.Equal(t, "Button 5", s.Buttons[4].Label)

	require.Len(t, s.Axes, 4)
	for i, a := range s.Axes {
		assert.Equal(t, i, a.Index)
		assert.Equal(t, gamepad.AxisLabel(i), a.Label)
		assert.GreaterOrEqual(t, a.Value, -1.0)
		assert.LessOrEqual(t, a.Value, 1.0)
	}
}

func TestStateDeterministic(t *testing.T) {
	a := sim.State(1234 * time.Millisecond)
	b := sim.State(1234 * time.Millisecond)
	assert.Equal(t, a, b)
}

func TestAxesDecorrelated(t *testing.T) {
	s := sim.State(500 * time.Millisecond)
	// Phase offsets keep the four axes from all reporting the same value.
	values := map[float64]bool{}
	for _, a := range s.Axes {
		values[a.Value] = true
	}
	assert.Greater(t, len(values), 1)
}

func TestPrimaryButtonSparse(t *testing.T) {
	pressed := 0
	samples := 2000
	for i := 0; i < samples; i++ {
		s := sim.State(time.Duration(i) * 16 * time.Millisecond)
		if s.Buttons[0].Pressed {
			pressed++
			assert.Equal(t, 1.0, s.Buttons[0].Value)
		}
	}
	// Sparse: active, but well under a quarter of the time.
	assert.Greater(t, pressed, 0)
	assert.Less(t, pressed, samples/4)
}

func TestTimestampTracksElapsed(t *testing.T) {
	s := sim.State(2500 * time.Millisecond)
	assert.Equal(t, 2500.0, s.Timestamp)
}
