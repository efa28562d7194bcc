package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/catalogclient/internal/client/api"
	"github.com/go-playground/validator/v10"
)

// Environment variables read by LoadConfig.
const (
	EnvAPIURL = "CATALOG_API_URL"
	EnvDBPath = "CATALOG_DB_PATH"
)

// DefaultBaseURL is used when no source sets the backend address.
const DefaultBaseURL = "https://dotnetcrud-production.up.railway.app"

// Config holds runtime settings of the catalog CLI.
type Config struct {
	BaseURL     string        `validate:"required,url"`
	Timeout     time.Duration `validate:"gt=0"`
	DBPath      string        `validate:"required"`
	MetricsAddr string        `validate:"omitempty,hostname_port"`
	Logger      string        `validate:"oneof=zap slog"`
	LogLevel    string        `validate:"oneof=debug info warn error"`
	Breaker     bool
	Endpoints   api.Endpoints
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.Timeout = 10 * time.Second
	c.DBPath = "catalog_session.db"
	c.MetricsAddr = ""
	c.Logger = "zap"
	c.LogLevel = "info"
	c.Breaker = false
	c.Endpoints = api.DefaultEndpoints()
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Loader reads configuration from explicit sources.
type Loader struct {
	Args       []string
	LookupEnv  func(string) (string, bool)
	DotEnvPath string
}

// Load applies defaults, environment, config file and flags, then validates.
func (l Loader) Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, l.DotEnvPath, l.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseFile(cfg, l.Args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, l.Args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration for the running process.
func LoadConfig() (*Config, error) {
	return Loader{
		Args:       os.Args[1:],
		LookupEnv:  os.LookupEnv,
		DotEnvPath: ".env",
	}.Load()
}
