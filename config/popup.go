package config

import "time"

// PopupConfig holds the timing and client-side storage settings for the popup notice
type PopupConfig struct {
	ShowDelay            time.Duration
	HideDelay            time.Duration
	DefaultCooldownHours float64
	StoreDir             string
	APIBaseURL           string
	APITimeout           time.Duration
}

// GetPopupConfig returns popup configuration from environment variables
func GetPopupConfig() *PopupConfig {
	c := Conf()
	return &PopupConfig{
		ShowDelay:            c.GetDuration("POPUP_SHOW_DELAY"),
		HideDelay:            c.GetDuration("POPUP_HIDE_DELAY"),
		DefaultCooldownHours: c.GetFloat64("POPUP_DEFAULT_COOLDOWN_HOURS"),
		StoreDir:             getEnv("POPUP_STORE_DIR", ".suviet"),
		APIBaseURL:           getEnv("API_BASE_URL", "http://localhost:8080"),
		APITimeout:           c.GetDuration("API_TIMEOUT"),
	}
}

// TimelineConfig holds timeline presentation settings
type TimelineConfig struct {
	HeaderOffset int
}

// GetTimelineConfig returns timeline configuration from environment variables
func GetTimelineConfig() *TimelineConfig {
	return &TimelineConfig{
		HeaderOffset: Conf().GetInt("TIMELINE_HEADER_OFFSET"),
	}
}
