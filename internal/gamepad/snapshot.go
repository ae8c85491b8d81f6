// Package gamepad holds the canonical gamepad data model: raw snapshots as
// delivered by the browser's Gamepad API, vendor classification, button/axis
// labeling, normalization into per-frame device states, and dead-zone math.
package gamepad

import (
	"context"
	"time"
)

// RawButton is one button reading as reported by the input source.
type RawButton struct {
	Pressed bool
	Value   float64
}

// RawSnapshot is one frame's reading of a single device, before
// normalization. Slots are assigned by the platform, not by us; a reused
// slot may host a different physical device after a reconnect.
type RawSnapshot struct {
	Slot      int
	ID        string
	Mapping   string
	Timestamp float64 // hardware timestamp, milliseconds, monotonic per device
	Connected bool
	Buttons   []RawButton
	Axes      []float64
	Actuator  Actuator // nil when the device exposes no vibration capability

	// ReceivedAt is when the snapshot entered this process, used for
	// latency estimation. Zero for synthetic snapshots.
	ReceivedAt time.Time
}

// Effect describes one dual-motor vibration request.
type Effect struct {
	Duration        time.Duration `json:"duration"`
	StartDelay      time.Duration `json:"startDelay,omitempty"`
	WeakMagnitude   float64       `json:"weakMagnitude"`
	StrongMagnitude float64       `json:"strongMagnitude"`
}

// Actuator is the per-device vibration capability. Implementations wrap a
// platform handle; both calls are async on the platform side and return any
// platform fault as an ordinary error.
type Actuator interface {
	Play(ctx context.Context, e Effect) error
	Reset(ctx context.Context) error
	Type() string
}
