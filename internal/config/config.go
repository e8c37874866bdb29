// Package config loads the runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config carries every tunable the server and converter read at startup.
type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
		SentryDSN string `env:"SENTRY_DSN" env-default:""`
	}
	Uploads struct {
		MaxMB int64 `env:"UPLOAD_MAX_MB" env-default:"32"`
	}
	Sessions struct {
		TTLMinutes int `env:"SESSION_TTL_MINUTES" env-default:"240"`
	}
	Admin struct {
		Username string `env:"ADMIN_USERNAME" env-default:"admin"`
		Password string `env:"ADMIN_PASSWORD" env-default:"admin123"`
	}
}

// New reads the environment into a Config.
func New() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

// SessionTTL returns the session lifetime as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Sessions.TTLMinutes) * time.Minute
}

// MaxUploadBytes returns the multipart memory ceiling for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return c.Uploads.MaxMB << 20
}
