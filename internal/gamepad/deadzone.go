package gamepad

import "math"

// FilterDeadZone applies a radial dead zone to a 2D stick vector and returns
// the filtered vector plus its magnitude. Inside the dead zone (magnitude
// strictly below threshold) the output is the zero vector. Outside it, the
// usable range [threshold, 1] is rescaled to [0, 1] preserving the angle, so
// full deflection still reaches magnitude 1 no matter how large the dead
// zone is.
func FilterDeadZone(x, y, threshold float64) (fx, fy, magnitude float64) {
	m := math.Hypot(x, y)
	if m < threshold {
		return 0, 0, 0
	}
	magnitude = (m - threshold) / (1 - threshold)
	if magnitude > 1 {
		magnitude = 1
	}
	angle := math.Atan2(y, x)
	return magnitude * math.Cos(angle), magnitude * math.Sin(angle), magnitude
}

// IsInDeadZone reports whether a stick vector falls inside the dead zone.
// Must use the same magnitude formula and the same strict comparison as
// FilterDeadZone so display classification never disagrees with filtering;
// the dead zone is a half-open interval, magnitude == threshold is outside.
func IsInDeadZone(x, y, threshold float64) bool {
	return math.Hypot(x, y) < threshold
}

// FilteredStick is a dead-zone filtered view of one analog stick, derived
// for display alongside the raw axis readings.
type FilteredStick struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Magnitude  float64 `json:"magnitude"`
	InDeadZone bool    `json:"inDeadZone"`
}

// FilterSticks pairs consecutive axes (LX/LY, RX/RY, ...) and applies the
// dead-zone filter to each pair.
func FilterSticks(axes []AxisReading, threshold float64) []FilteredStick {
	sticks := make([]FilteredStick, 0, (len(axes)+1)/2)
	for i := 0; i+1 < len(axes); i += 2 {
		x, y := axes[i].Value, axes[i+1].Value
		fx, fy, m := FilterDeadZone(x, y, threshold)
		sticks = append(sticks, FilteredStick{
			X:          Round3(fx),
			Y:          Round3(fy),
			Magnitude:  Round3(m),
			InDeadZone: IsInDeadZone(x, y, threshold),
		})
	}
	return sticks
}
