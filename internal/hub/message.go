package hub

import (
	"time"

	"github.com/soar/gamepadlab/internal/compat"
	"github.com/soar/gamepadlab/internal/gamepad"
	"github.com/soar/gamepadlab/internal/haptics"
	"github.com/soar/gamepadlab/internal/prefs"
)

// WireButton is one button reading as sent by the browser.
type WireButton struct {
	Pressed bool    `json:"pressed"`
	Value   float64 `json:"value"`
}

// WireSnapshot is the browser's serialization of one Gamepad API reading.
type WireSnapshot struct {
	Slot         int          `json:"slot"`
	ID           string       `json:"id"`
	Mapping      string       `json:"mapping"`
	Timestamp    float64      `json:"timestamp"`
	Connected    bool         `json:"connected"`
	Buttons      []WireButton `json:"buttons"`
	Axes         []float64    `json:"axes"`
	CanVibrate   bool         `json:"canVibrate"`
	ActuatorType string       `json:"actuatorType,omitempty"`
}

// WireEffect carries effect parameters with millisecond durations, which is
// what the browser's playEffect call wants.
type WireEffect struct {
	DurationMS      float64 `json:"durationMs"`
	StartDelayMS    float64 `json:"startDelayMs,omitempty"`
	WeakMagnitude   float64 `json:"weakMagnitude"`
	StrongMagnitude float64 `json:"strongMagnitude"`
}

func toWireEffect(e gamepad.Effect) *WireEffect {
	return &WireEffect{
		DurationMS:      float64(e.Duration.Milliseconds()),
		StartDelayMS:    float64(e.StartDelay.Milliseconds()),
		WeakMagnitude:   e.WeakMagnitude,
		StrongMagnitude: e.StrongMagnitude,
	}
}

func fromWireEffect(w WireEffect) gamepad.Effect {
	return gamepad.Effect{
		Duration:        time.Duration(w.DurationMS * float64(time.Millisecond)),
		StartDelay:      time.Duration(w.StartDelayMS * float64(time.Millisecond)),
		WeakMagnitude:   w.WeakMagnitude,
		StrongMagnitude: w.StrongMagnitude,
	}
}

// ClientMessage is any message sent from the browser to the server. Type
// selects which fields are meaningful.
type ClientMessage struct {
	Type string `json:"type"`
	ID   int64  `json:"id,omitempty"`

	// hello
	Client *compat.ClientInfo `json:"client,omitempty"`

	// snapshots / connected / disconnected / setActive
	Snapshots []WireSnapshot `json:"snapshots,omitempty"`
	Snapshot  *WireSnapshot  `json:"snapshot,omitempty"`
	Slot      *int           `json:"slot,omitempty"`

	// setPrefs (partial update; absent fields untouched)
	DeadZone       *float64 `json:"deadZone,omitempty"`
	SimulationMode *bool    `json:"simulationMode,omitempty"`
	ReducedMotion  *bool    `json:"reducedMotion,omitempty"`

	// haptics: action is "play", "pulse" or "stop"
	Action   string      `json:"action,omitempty"`
	Effect   *WireEffect `json:"effect,omitempty"`
	Strength string      `json:"strength,omitempty"`

	// hapticsAck
	OK    bool   `json:"ok,omitempty"`
	Error string `json:"error,omitempty"`
}

// DeviceView is one device in a broadcast: the normalized state plus
// dead-zone filtered stick vectors derived with the current threshold.
type DeviceView struct {
	gamepad.DeviceState
	Sticks []gamepad.FilteredStick `json:"sticks"`
}

// ServerMessage is any message sent from the server to a browser client.
type ServerMessage struct {
	Type      string `json:"type"`
	Seq       int64  `json:"seq,omitempty"`
	Timestamp int64  `json:"timestamp"`

	// devices
	Devices    []DeviceView `json:"devices,omitempty"`
	ActiveSlot *int         `json:"activeSlot,omitempty"`
	LatencyMS  float64      `json:"latencyMs,omitempty"`

	// prefs / compat
	Prefs  *prefs.Prefs   `json:"prefs,omitempty"`
	Compat *compat.Report `json:"compat,omitempty"`

	// hapticsResult
	ID     int64           `json:"id,omitempty"`
	Result *haptics.Result `json:"result,omitempty"`

	// hapticsPlay / hapticsReset commands to the feeder client
	Slot   int         `json:"slot,omitempty"`
	Effect *WireEffect `json:"effect,omitempty"`
}

func NewDevicesMessage(seq int64, devices []DeviceView, activeSlot *int, latency time.Duration) *ServerMessage {
	return &ServerMessage{
		Type:       "devices",
		Seq:        seq,
		Timestamp:  time.Now().UnixMilli(),
		Devices:    devices,
		ActiveSlot: activeSlot,
		LatencyMS:  float64(latency.Microseconds()) / 1000,
	}
}

func NewPrefsMessage(p prefs.Prefs) *ServerMessage {
	return &ServerMessage{Type: "prefs", Timestamp: time.Now().UnixMilli(), Prefs: &p}
}

func NewCompatMessage(r compat.Report) *ServerMessage {
	return &ServerMessage{Type: "compat", Timestamp: time.Now().UnixMilli(), Compat: &r}
}

func NewHapticsResultMessage(id int64, res haptics.Result) *ServerMessage {
	return &ServerMessage{Type: "hapticsResult", Timestamp: time.Now().UnixMilli(), ID: id, Result: &res}
}
