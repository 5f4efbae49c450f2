package config

import (
	"time"
	// Zone database for hosts without one
	_ "time/tzdata"
)

const defaultTimezone = "Asia/Ho_Chi_Minh"

var (
	// AppLocation is the application timezone, set by InitializeTimezone
	AppLocation *time.Location
)

// InitializeTimezone sets up the application timezone
func InitializeTimezone() error {
	tzName := getEnv("APP_TIMEZONE", defaultTimezone)

	location, err := time.LoadLocation(tzName)
	if err != nil {
		// Invalid name: fall back to Vietnam time
		location, err = time.LoadLocation(defaultTimezone)
		if err != nil {
			return err
		}
	}

	AppLocation = location
	return nil
}

// GetCurrentTime returns the current time in the application timezone
func GetCurrentTime() time.Time {
	if AppLocation != nil {
		return time.Now().In(AppLocation)
	}
	return time.Now()
}

// FormatTimeInTimezone formats a time in the application timezone
func FormatTimeInTimezone(t time.Time, layout string) string {
	if AppLocation != nil {
		return t.In(AppLocation).Format(layout)
	}
	return t.Format(layout)
}

// GetTimezoneString returns the timezone name
func GetTimezoneString() string {
	if AppLocation != nil {
		return AppLocation.String()
	}
	return defaultTimezone
}
