// Package popup decides whether the site-wide informational popup is shown to
// a visitor, and records when the visitor dismisses it.
package popup

import (
	"math"
	"strconv"
	"strings"
)

// Setting keys served by GET /api/settings/:key.
const (
	KeyEnabled      = "popup_enabled"
	KeyNotification = "popup_notification"
	KeyTitle        = "popup_title"
	KeyDuration     = "popup_duration"
)

// DefaultCooldownHours applies when popup_duration is unset or not a number.
const DefaultCooldownHours = 24.0

// SettingKeys lists the four settings the gate needs, in fetch order.
var SettingKeys = []string{KeyEnabled, KeyNotification, KeyTitle, KeyDuration}

// Settings is the popup configuration for one page view.
type Settings struct {
	Enabled       bool    `json:"enabled"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	CooldownHours float64 `json:"cooldown_hours"`
}

// Showable reports whether the popup has anything to show at all.
func (s Settings) Showable() bool {
	return s.Enabled && s.Content != ""
}

// ParseSettings builds Settings from raw setting values keyed by setting key.
// Missing keys read as empty strings.
func ParseSettings(values map[string]string, defaultCooldown float64) Settings {
	return Settings{
		Enabled:       values[KeyEnabled] == "true",
		Title:         values[KeyTitle],
		Content:       values[KeyNotification],
		CooldownHours: ParseCooldown(values[KeyDuration], defaultCooldown),
	}
}

// ParseCooldown parses the popup_duration value in hours. Empty, non-numeric,
// NaN and infinite values fall back to def (DefaultCooldownHours when def is 0).
func ParseCooldown(raw string, def float64) float64 {
	if def <= 0 || math.IsNaN(def) || math.IsInf(def, 0) {
		def = DefaultCooldownHours
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return def
	}
	return hours
}
