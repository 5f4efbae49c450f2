package config

import (
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	conf     *viper.Viper
	confOnce sync.Once
)

// Load reads .env files into the process environment. Callers treat a
// missing file as a warning; environment variables still apply.
func Load(files ...string) error {
	return godotenv.Load(files...)
}

// Conf returns the shared viper instance with defaults applied.
func Conf() *viper.Viper {
	confOnce.Do(func() {
		v := viper.New()
		v.SetTypeByDefaultValue(true)
		setDefaults(v)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		conf = v
	})
	return conf
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "suviet")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "suviet")
	v.SetDefault("DB_SSL_MODE", "disable")

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_HTTP", false)
	v.SetDefault("HTTPS_ENABLED", false)
	v.SetDefault("SSL_CERT_FILE", "")
	v.SetDefault("SSL_KEY_FILE", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("ALLOWED_ORIGINS", "*")

	v.SetDefault("APP_TIMEZONE", defaultTimezone)

	v.SetDefault("POPUP_SHOW_DELAY", time.Second)
	v.SetDefault("POPUP_HIDE_DELAY", 300*time.Millisecond)
	v.SetDefault("POPUP_DEFAULT_COOLDOWN_HOURS", 24.0)
	v.SetDefault("POPUP_STORE_DIR", ".suviet")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("API_TIMEOUT", 10*time.Second)

	v.SetDefault("TIMELINE_HEADER_OFFSET", 80)
}

// getEnv gets a string setting with fallback
func getEnv(key, fallback string) string {
	if value := Conf().GetString(key); value != "" {
		return value
	}
	return fallback
}
