package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/catalogclient/internal/flagx"
	"github.com/dmitrijs2005/catalogclient/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Pointer fields distinguish absent keys
// from zero values.
type fileConfig struct {
	BaseURL     *string         `json:"base_url" yaml:"base_url"`
	Timeout     *timex.Duration `json:"timeout" yaml:"timeout"`
	DBPath      *string         `json:"db_path" yaml:"db_path"`
	MetricsAddr *string         `json:"metrics_addr" yaml:"metrics_addr"`
	Logger      *string         `json:"logger" yaml:"logger"`
	LogLevel    *string         `json:"log_level" yaml:"log_level"`
	Breaker     *bool           `json:"breaker" yaml:"breaker"`
	Endpoints   *fileEndpoints  `json:"endpoints" yaml:"endpoints"`
}

type fileEndpoints struct {
	Login      *string `json:"login" yaml:"login"`
	Register   *string `json:"register" yaml:"register"`
	Validate   *string `json:"validate" yaml:"validate"`
	Products   *string `json:"products" yaml:"products"`
	Categories *string `json:"categories" yaml:"categories"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.BaseURL, fc.BaseURL)
	setString(&cfg.DBPath, fc.DBPath)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)
	setString(&cfg.Logger, fc.Logger)
	setString(&cfg.LogLevel, fc.LogLevel)
	if fc.Timeout != nil {
		cfg.Timeout = fc.Timeout.Duration
	}
	if fc.Breaker != nil {
		cfg.Breaker = *fc.Breaker
	}

	if e := fc.Endpoints; e != nil {
		setString(&cfg.Endpoints.Login, e.Login)
		setString(&cfg.Endpoints.Register, e.Register)
		setString(&cfg.Endpoints.Validate, e.Validate)
		setString(&cfg.Endpoints.Products, e.Products)
		setString(&cfg.Endpoints.Categories, e.Categories)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
