// Package config reads the deployment environment into an explicit
// snapshot struct. The dispatcher consumes the environment exactly once
// at startup; nothing here watches for changes.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultPort    = 8000
	DefaultWorkers = 2
)

// Config is the environment snapshot consumed by the bootstrap sequence.
//
// RedisURL and DatabaseURL are deliberately optional: an unset variable
// disables readiness gating for that dependency. DatabaseURL additionally
// controls whether schema initialization runs at all.
type Config struct {
	// RedisURL is the cache endpoint (redis:// URL). Empty disables the
	// cache readiness wait.
	RedisURL string `mapstructure:"redis_url"`

	// DatabaseURL is the Postgres connection string. Empty disables both
	// the store readiness wait and schema initialization.
	DatabaseURL string `mapstructure:"database_url"`

	// Port is the listening port handed to the web role.
	Port int `mapstructure:"port" validate:"min=1,max=65535"`

	// Workers is the web worker count and the task-worker concurrency.
	Workers int `mapstructure:"workers" validate:"min=1"`

	// LogLevel controls diagnostic verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat selects text or json diagnostics.
	LogFormat string `mapstructure:"log_format" validate:"oneof=text json"`
}

// Load builds the configuration snapshot from the process environment.
//
// Recognized variables: REDIS_URL, DATABASE_URL, PORT, WORKERS,
// LOG_LEVEL, LOG_FORMAT. The variable names are the deployment contract
// shared with the role processes, so no prefix is applied.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", DefaultPort)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	// Explicit bindings instead of AutomaticEnv: the recognized set of
	// variables is the whole point of this package being auditable.
	for key, env := range map[string]string{
		"redis_url":    "REDIS_URL",
		"database_url": "DATABASE_URL",
		"port":         "PORT",
		"workers":      "WORKERS",
		"log_level":    "LOG_LEVEL",
		"log_format":   "LOG_FORMAT",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling environment: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the snapshot against the struct validation tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("invalid configuration: field %s failed %q validation (value %v)",
				f.Field(), f.Tag(), f.Value())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
