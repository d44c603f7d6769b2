// Package config loads the server configuration from an optional YAML file
// and CIRCLECARE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/circlecare/internal/principal"
)

const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// DefaultGenesis anchors block heights when no genesis is configured.
var DefaultGenesis = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	CORSOrigin      string        `yaml:"cors_origin"`
}

type StorageConfig struct {
	Backend string `yaml:"backend" validate:"oneof=sqlite badger"`
	// Path is the SQLite file or the Badger directory.
	Path string `yaml:"path" validate:"required_without=InMemory"`
	// InMemory runs Badger without touching disk. Ignored for SQLite.
	InMemory bool `yaml:"in_memory"`
}

type LedgerConfig struct {
	Owner         string        `yaml:"owner" validate:"required,principal"`
	Genesis       time.Time     `yaml:"genesis"`
	BlockInterval time.Duration `yaml:"block_interval" validate:"gt=0"`

	MaxMembers      uint32 `yaml:"max_members" validate:"omitempty,min=1"`
	MaxParticipants int    `yaml:"max_participants" validate:"omitempty,min=1"`
	MaxBatch        int    `yaml:"max_batch" validate:"omitempty,min=1"`
	DefaultExpiry   uint64 `yaml:"default_expiry" validate:"omitempty,min=1"`
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret" validate:"required,min=16"`
	TokenDuration time.Duration `yaml:"token_duration" validate:"gt=0"`
	// APIKeys maps a principal to the bcrypt hash of its API key.
	APIKeys map[string]string `yaml:"api_keys" validate:"dive,keys,principal,endkeys,required"`
}

type RateLimitConfig struct {
	Enabled   bool    `yaml:"enabled"`
	PerSecond float64 `yaml:"per_second" validate:"required_if=Enabled true,gte=0"`
	Burst     int     `yaml:"burst" validate:"gte=0"`
}

type TelemetryConfig struct {
	// Tracing exports ledger spans to stdout.
	Tracing     bool   `yaml:"tracing"`
	ServiceName string `yaml:"service_name"`
}

// Default returns the configuration used before the file and environment
// are applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			CORSOrigin:      "*",
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    "./data/circlecare.db",
		},
		Ledger: LedgerConfig{
			Genesis:       DefaultGenesis,
			BlockInterval: 10 * time.Minute,
		},
		Auth: AuthConfig{
			TokenDuration: 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			PerSecond: 20,
			Burst:     40,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "circlecare",
		},
		LogLevel: "info",
	}
}

// Load reads path (if non-empty), applies environment overrides and validates
// the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("principal", func(fl validator.FieldLevel) bool {
		return principal.Validate(fl.Field().String()) == nil
	})
	return v
}

// Validate checks the configuration for missing or malformed values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid config: %s", verrs[0].Error())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

// applyEnv overrides fields from the environment. DB_PATH is honored for
// compatibility with older deployments.
func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
			}
		}
	}
	str(&c.Server.Addr, "CIRCLECARE_ADDR")
	str(&c.Server.CORSOrigin, "CIRCLECARE_CORS_ORIGIN")
	str(&c.Storage.Backend, "CIRCLECARE_STORAGE_BACKEND")
	str(&c.Storage.Path, "DB_PATH", "CIRCLECARE_DB_PATH")
	str(&c.Ledger.Owner, "CIRCLECARE_OWNER")
	str(&c.Auth.JWTSecret, "CIRCLECARE_JWT_SECRET")
	str(&c.LogLevel, "CIRCLECARE_LOG_LEVEL")

	if v, ok := lookup("CIRCLECARE_TOKEN_DURATION"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CIRCLECARE_TOKEN_DURATION: %w", err)
		}
		c.Auth.TokenDuration = d
	}
	if v, ok := lookup("CIRCLECARE_GENESIS"); ok && v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fmt.Errorf("CIRCLECARE_GENESIS: %w", err)
		}
		c.Ledger.Genesis = t
	}
	for key, dst := range map[string]*bool{
		"CIRCLECARE_TRACING":    &c.Telemetry.Tracing,
		"CIRCLECARE_RATE_LIMIT": &c.RateLimit.Enabled,
		"CIRCLECARE_IN_MEMORY":  &c.Storage.InMemory,
	} {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}
	return nil
}
