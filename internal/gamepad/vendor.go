package gamepad

import "strings"

// Vendor is the closed set of controller families we know how to label.
type Vendor string

const (
	VendorXbox      Vendor = "xbox"
	VendorDualShock Vendor = "dualshock"
	VendorSwitch    Vendor = "switch"
	VendorGeneric   Vendor = "generic"
)

// vendorKeywords is checked in order; the first group with a matching
// keyword wins. "Wireless Controller" is how DualShock 4 identifies itself
// on most browsers, so it belongs to the dualshock group even though the
// phrase looks generic.
var vendorKeywords = []struct {
	vendor   Vendor
	keywords []string
}{
	{VendorXbox, []string{"xbox", "microsoft", "xinput"}},
	{VendorDualShock, []string{"dualshock", "playstation", "wireless controller", "dualsense"}},
	{VendorSwitch, []string{"nintendo", "switch", "pro controller"}},
}

// Classify maps a raw device identifier to a vendor by case-insensitive
// substring search. Total over all strings; anything unrecognized, including
// the empty string, is generic.
func Classify(id string) Vendor {
	lower := strings.ToLower(id)
	for _, group := range vendorKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.vendor
			}
		}
	}
	return VendorGeneric
}
