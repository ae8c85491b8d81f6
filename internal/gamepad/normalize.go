package gamepad

import "math"

// ButtonReading is one labeled button in a normalized state.
type ButtonReading struct {
	Index   int     `json:"index"`
	Label   string  `json:"label"`
	Pressed bool    `json:"pressed"`
	Value   float64 `json:"value"`
}

// AxisReading is one labeled axis in a normalized state.
type AxisReading struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// HapticsInfo describes a device's vibration capability.
type HapticsInfo struct {
	Supported    bool   `json:"supported"`
	ActuatorType string `json:"actuatorType,omitempty"`
}

// DeviceState is the canonical per-frame record for one device. Button and
// axis ordering always matches the raw snapshot ordering.
type DeviceState struct {
	Slot      int             `json:"slot"`
	ID        string          `json:"id"`
	Vendor    Vendor          `json:"vendor"`
	Mapping   string          `json:"mapping"`
	Timestamp float64         `json:"timestamp"`
	Connected bool            `json:"connected"`
	Buttons   []ButtonReading `json:"buttons"`
	Axes      []AxisReading   `json:"axes"`
	Haptics   HapticsInfo     `json:"haptics"`
}

// Round3 rounds to 3 decimal places. Applied to every analog value so that
// state comparisons are stable and sensor noise doesn't churn downstream
// consumers.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Normalize transforms one raw snapshot into a canonical device state. Pure
// and total: malformed or missing fields default safely (nil actuator means
// haptics unsupported, nil slices mean zero controls), never a fault.
func Normalize(raw RawSnapshot) DeviceState {
	vendor := Classify(raw.ID)

	buttons := make([]ButtonReading, len(raw.Buttons))
	for i, b := range raw.Buttons {
		buttons[i] = ButtonReading{
			Index:   i,
			Label:   ButtonLabel(vendor, i),
			Pressed: b.Pressed,
			Value:   Round3(b.Value),
		}
	}

	axes := make([]AxisReading, len(raw.Axes))
	for i, v := range raw.Axes {
		axes[i] = AxisReading{
			Index: i,
			Label: AxisLabel(i),
			Value: Round3(v),
		}
	}

	haptics := HapticsInfo{}
	if raw.Actuator != nil {
		haptics.Supported = true
		haptics.ActuatorType = raw.Actuator.Type()
	}

	return DeviceState{
		Slot:      raw.Slot,
		ID:        raw.ID,
		Vendor:    vendor,
		Mapping:   raw.Mapping,
		Timestamp: raw.Timestamp,
		Connected: raw.Connected,
		Buttons:   buttons,
		Axes:      axes,
		Haptics:   haptics,
	}
}
