package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the .env file at path (if it exists) and
// then from lookup, which wins over the file.
func parseEnv(cfg *Config, path string, lookup func(string) (string, bool)) error {
	dotenv := map[string]string{}
	if path != "" {
		m, err := godotenv.Read(path)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", path, err)
		}
	}

	get := func(key string) (string, bool) {
		if lookup != nil {
			if v, ok := lookup(key); ok && v != "" {
				return v, true
			}
		}
		v, ok := dotenv[key]
		return v, ok && v != ""
	}

	if v, ok := get(EnvAPIURL); ok {
		cfg.BaseURL = v
	}
	if v, ok := get(EnvDBPath); ok {
		cfg.DBPath = v
	}
	return nil
}
