package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// parseFlags overlays cfg with command-line flags. -c/-config are accepted
// here and handled by parseFile.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var ignored string
	fs.StringVar(&ignored, "c", "", "path to config file")
	fs.StringVar(&ignored, "config", "", "path to config file")

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	timeout := fs.Int("t", int(cfg.Timeout/time.Second), "request timeout (in seconds)")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "session database path")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")
	fs.StringVar(&cfg.Logger, "l", cfg.Logger, "logger: zap or slog")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.Breaker, "b", cfg.Breaker, "enable circuit breaker")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// keep sub-second timeouts from a file unless -t was given
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.Timeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
