// Package compat derives a non-persisted compatibility report from what a
// client declares about its environment. Purely informational; presentation
// decides what to show.
package compat

import "strings"

// ClientInfo is what the browser reports in its hello message.
type ClientInfo struct {
	UserAgent     string `json:"userAgent"`
	SecureContext bool   `json:"secureContext"`
	GamepadAPI    bool   `json:"gamepadAPI"`
	Haptics       bool   `json:"haptics"`
}

// Report summarizes whether the diagnostics tool can work in the client's
// environment.
type Report struct {
	Supported     bool     `json:"supported"`
	SecureContext bool     `json:"secureContext"`
	GamepadAPI    bool     `json:"gamepadAPI"`
	Browser       string   `json:"browser"`
	Haptics       bool     `json:"haptics"`
	Warnings      []string `json:"warnings"`
}

// Browser token checks ordered so derived user agents match first: every
// Chromium browser also claims "Chrome" and nearly everything claims
// "Safari".
var browserTokens = []struct {
	name   string
	tokens []string
}{
	{"edge", []string{"edg/", "edge"}},
	{"opera", []string{"opr/", "opera"}},
	{"firefox", []string{"firefox", "fxios"}},
	{"chrome", []string{"chrome", "crios"}},
	{"safari", []string{"safari"}},
}

// DetectBrowser names the browser from a user-agent string, or "unknown".
func DetectBrowser(ua string) string {
	lower := strings.ToLower(ua)
	for _, b := range browserTokens {
		for _, tok := range b.tokens {
			if strings.Contains(lower, tok) {
				return b.name
			}
		}
	}
	return "unknown"
}

// BuildReport assembles the report for one client.
func BuildReport(info ClientInfo) Report {
	r := Report{
		Supported:     info.GamepadAPI && info.SecureContext,
		SecureContext: info.SecureContext,
		GamepadAPI:    info.GamepadAPI,
		Browser:       DetectBrowser(info.UserAgent),
		Haptics:       info.Haptics,
		Warnings:      []string{},
	}
	if !info.GamepadAPI {
		r.Warnings = append(r.Warnings, "Gamepad API is not available in this browser")
	}
	if !info.SecureContext {
		r.Warnings = append(r.Warnings, "not a secure context; gamepad access may be restricted")
	}
	if !info.Haptics {
		r.Warnings = append(r.Warnings, "vibration actuators are not exposed; haptics tests will be unavailable")
	}
	if r.Browser == "unknown" {
		r.Warnings = append(r.Warnings, "unrecognized browser; behavior is untested")
	}
	return r
}
