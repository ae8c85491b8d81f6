// Package sim generates a synthetic periodic device-state stream, a drop-in
// replacement for physical input during development and testing.
package sim

import (
	"math"
	"time"

	"github.com/soar/gamepadlab/internal/gamepad"
)

const (
	// DeviceID is the identifier the virtual pad reports. Intentionally
	// free of vendor keywords so it classifies as generic.
	DeviceID = "Virtual Diagnostics Pad"

	Slot        = 0
	buttonCount = 16
	axisFreqHz  = 0.25
)

// Phase offsets decorrelate the four axes so the sticks trace circles
// instead of a diagonal line.
var axisPhases = [4]float64{0, math.Pi / 2, math.Pi / 4, 3 * math.Pi / 4}

var faceLabels = [4]string{"A", "B", "X", "Y"}

// State produces the virtual device's state for a given elapsed time.
// Deterministic: the same elapsed value always yields the same state. The
// result conforms exactly to the normalized shape so downstream consumers
// cannot structurally distinguish it from real input.
func State(elapsed time.Duration) gamepad.DeviceState {
	t := elapsed.Seconds()

	axes := make([]gamepad.AxisReading, len(axisPhases))
	for i, phase := range axisPhases {
		axes[i] = gamepad.AxisReading{
			Index: i,
			Label: gamepad.AxisLabel(i),
			Value: gamepad.Round3(math.Sin(2*math.Pi*axisFreqHz*t + phase)),
		}
	}

	buttons := make([]gamepad.ButtonReading, buttonCount)
	for i := range buttons {
		label := gamepad.ButtonLabel(gamepad.VendorGeneric, i)
		if i < len(faceLabels) {
			label = faceLabels[i]
		}
		buttons[i] = gamepad.ButtonReading{Index: i, Label: label}
	}
	if primaryPressed(t) {
		buttons[0].Pressed = true
		buttons[0].Value = 1
	}

	return gamepad.DeviceState{
		Slot:      Slot,
		ID:        DeviceID,
		Vendor:    gamepad.VendorGeneric,
		Mapping:   "standard",
		Timestamp: float64(elapsed.Milliseconds()),
		Connected: true,
		Buttons:   buttons,
		Axes:      axes,
		Haptics:   gamepad.HapticsInfo{Supported: false},
	}
}

// primaryPressed sparsely activates the primary button: two incommensurate
// sine waves only line up near their peaks a few percent of the time, which
// reads as pseudo-random tapping.
func primaryPressed(t float64) bool {
	return math.Sin(t*5.3)*math.Sin(t*7.1) > 0.93
}
