package config

import (
	"strings"
	"time"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	LogHTTP         bool
	HTTPSEnabled    bool
	CertFile        string
	KeyFile         string
	ShutdownTimeout time.Duration
	// AllowedOrigins lists the CORS origins; "*" allows any origin.
	AllowedOrigins  []string
}

// GetServerConfig returns HTTP server configuration from environment variables
func GetServerConfig() *ServerConfig {
	c := Conf()
	return &ServerConfig{
		Port:            getEnv("HTTP_PORT", "8080"),
		LogHTTP:         c.GetBool("LOG_HTTP"),
		HTTPSEnabled:    c.GetBool("HTTPS_ENABLED"),
		CertFile:        c.GetString("SSL_CERT_FILE"),
		KeyFile:         c.GetString("SSL_KEY_FILE"),
		ShutdownTimeout: c.GetDuration("SHUTDOWN_TIMEOUT"),
		AllowedOrigins:  ParseOrigins(c.GetString("ALLOWED_ORIGINS")),
	}
}

// ParseOrigins splits a comma separated origin list, dropping blanks and
// trailing slashes.
func ParseOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		origin := strings.TrimRight(strings.TrimSpace(part), "/")
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
