package compat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soar/gamepadlab/internal/compat"
)

const (
	chromeUA  = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
	edgeUA    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36 Edg/126.0.2592.87"
	operaUA   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36 OPR/111.0.0.0"
	firefoxUA = "Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0"
	safariUA  = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15"
)

func TestDetectBrowser(t *testing.T) {
	cases := []struct {
		name, ua, want string
	}{
		{"chrome", chromeUA, "chrome"},
		{"edge outranks chrome token", edgeUA, "edge"},
		{"opera outranks chrome token", operaUA, "opera"},
		{"firefox", firefoxUA, "firefox"},
		{"safari only after chromium checks", safariUA, "safari"},
		{"unknown", "curl/8.5.0", "unknown"},
		{"empty", "", "unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, compat.DetectBrowser(tc.ua))
		})
	}
}

func TestBuildReportSupported(t *testing.T) {
	r := compat.BuildReport(compat.ClientInfo{
		UserAgent:     chromeUA,
		SecureContext: true,
		GamepadAPI:    true,
		Haptics:       true,
	})
	assert.True(t, r.Supported)
	assert.Equal(t, "chrome", r.Browser)
	assert.Empty(t, r.Warnings)
}

func TestBuildReportWarnings(t *testing.T) {
	r := compat.BuildReport(compat.ClientInfo{UserAgent: "curl/8.5.0"})
	assert.False(t, r.Supported)
	assert.Equal(t, "unknown", r.Browser)
	// Missing API, insecure context, no haptics, unknown browser.
	assert.Len(t, r.Warnings, 4)
}
