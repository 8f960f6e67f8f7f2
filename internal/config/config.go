package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the process configuration, read from the environment and an optional .env file
type Config struct {
	Port              string        `mapstructure:"PORT"`
	ProviderURL       string        `mapstructure:"PROVIDER_URL"`
	ProviderTimeout   time.Duration `mapstructure:"PROVIDER_TIMEOUT"`
	ProviderRateLimit float64       `mapstructure:"PROVIDER_RATE_LIMIT"`
	ProviderRateBurst int           `mapstructure:"PROVIDER_RATE_BURST"`
	IconBaseURL       string        `mapstructure:"ICON_BASE_URL"`
	Timezone          string        `mapstructure:"TIMEZONE"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	SearchLogPath     string        `mapstructure:"SEARCH_LOG_PATH"`
	ZipkinURL         string        `mapstructure:"ZIPKIN_URL"`
	Env               string        `mapstructure:"GO_ENV"`
}

var defaults = map[string]any{
	"PORT":                "8080",
	"PROVIDER_URL":        "http://localhost:8000",
	"PROVIDER_TIMEOUT":    "10s",
	"PROVIDER_RATE_LIMIT": 0.0,
	"PROVIDER_RATE_BURST": 1,
	"ICON_BASE_URL":       "http://openweathermap.org/img/wn",
	"TIMEZONE":            "Local",
	"SESSION_TTL":         "30m",
	"DATABASE_URL":        "",
	"SEARCH_LOG_PATH":     "",
	"ZIPKIN_URL":          "",
	"GO_ENV":              "development",
}

// Load reads <dir>/.env when present, then lets environment variables override it.
// Every key has a default so AutomaticEnv values are picked up by Unmarshal.
func Load(dir string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigFile(filepath.Join(dir, ".env"))
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: failed to read .env: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode: %w", err)
	}
	if cfg.ProviderRateBurst < 1 {
		cfg.ProviderRateBurst = 1
	}
	return &cfg, nil
}

// Location resolves Timezone; "Local" or empty means the process time zone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
