package gamepad

import "fmt"

// Button label tables follow the W3C standard gamepad layout: four face
// buttons, two bumpers, two triggers, two menu buttons, two stick clicks,
// four D-pad directions, guide. Indices beyond the table (vendor paddles and
// the like) get a numbered fallback; we deliberately do not invent labels
// for controls the tables don't cover.
var buttonLabels = map[Vendor][]string{
	VendorXbox: {
		"A", "B", "X", "Y",
		"LB", "RB", "LT", "RT",
		"View", "Menu", "LS", "RS",
		"D-Pad Up", "D-Pad Down", "D-Pad Left", "D-Pad Right",
		"Xbox",
	},
	VendorDualShock: {
		"Cross", "Circle", "Square", "Triangle",
		"L1", "R1", "L2", "R2",
		"Share", "Options", "L3", "R3",
		"D-Pad Up", "D-Pad Down", "D-Pad Left", "D-Pad Right",
		"PS",
	},
	VendorSwitch: {
		"B", "A", "Y", "X",
		"L", "R", "ZL", "ZR",
		"Minus", "Plus", "LS", "RS",
		"D-Pad Up", "D-Pad Down", "D-Pad Left", "D-Pad Right",
		"Home",
	},
	// VendorGeneric has no table: every index falls through to "Button N".
}

var axisLabels = []string{"LX", "LY", "RX", "RY"}

// ButtonLabel resolves the display label for a button index. Labels are a
// pure function of (vendor, index) and are never absent.
func ButtonLabel(v Vendor, index int) string {
	if index >= 0 {
		if table, ok := buttonLabels[v]; ok && index < len(table) {
			return table[index]
		}
	}
	return fmt.Sprintf("Button %d", index+1)
}

// AxisLabel resolves the display label for an axis index. The standard
// layout has exactly four axes; extras get a numbered fallback.
func AxisLabel(index int) string {
	if index >= 0 && index < len(axisLabels) {
		return axisLabels[index]
	}
	return fmt.Sprintf("Axis %d", index+1)
}
