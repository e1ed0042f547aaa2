package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the client settings.
type Config struct {
	BackendURL        string
	Timeout           time.Duration
	RequestsPerSecond int
	MaxRetries        int
}

// Load reads settings from an optional config file, then BOOKCTL_*
// environment variables, over built-in defaults. A .env.local file is honored
// when present.
func Load(cfgFile string) (Config, error) {
	_ = godotenv.Load(".env.local")

	v := viper.New()
	v.SetDefault("backend_url", "http://localhost:8080")
	v.SetDefault("timeout", "15s")
	v.SetDefault("requests_per_second", 10)
	v.SetDefault("max_retries", 2)

	v.SetEnvPrefix("BOOKCTL")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	} else {
		v.SetConfigName("bookctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/bookctl")
		// Missing config file is fine; env and defaults cover it.
		_ = v.ReadInConfig()
	}

	return Config{
		BackendURL:        v.GetString("backend_url"),
		Timeout:           v.GetDuration("timeout"),
		RequestsPerSecond: v.GetInt("requests_per_second"),
		MaxRetries:        v.GetInt("max_retries"),
	}, nil
}
