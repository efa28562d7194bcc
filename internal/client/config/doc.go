// Package config loads runtime configuration for the catalog CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, then the process environment:
//     CATALOG_API_URL and CATALOG_DB_PATH.
//  3. A config file selected with -c or -config; .yaml/.yml files are read
//     as YAML, anything else as JSON. Absent keys keep their value.
//  4. Command-line flags.
//
// Flags
//
//	-a string   backend base URL
//	-t int      request timeout in seconds
//	-d string   session database path (":memory:" keeps nothing)
//	-m string   serve Prometheus metrics on this address
//	-l string   logger implementation: zap or slog
//	-v string   log level: debug, info, warn or error
//	-b          enable the circuit breaker
//
// Config file
//
//	base_url: https://catalog.example.com
//	timeout: 5s            # or a number of seconds
//	db_path: /var/lib/catalog/session.db
//	metrics_addr: ":9090"
//	logger: slog
//	log_level: debug
//	breaker: true
//	endpoints:
//	  login: /api/auth/login
package config
