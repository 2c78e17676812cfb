// Package config provides configuration management for GNmodel.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts the config back into the options that reproduce it
//
// Loading configuration from files or environment belongs to embedding
// applications; this package only defines the settings surface of the
// library.
package config

import (
	"fmt"
	"runtime"
)

// Config represents the complete GNmodel configuration.
type Config struct {
	// Database contains PostgreSQL connection settings used by the
	// postgres-backed store.
	Database DatabaseConfig `yaml:"database"`

	Log LogConfig `yaml:"log"`

	// JobsNumber is the number of concurrent workers for bulk operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `yaml:"jobs_number"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `yaml:"port"`

	// User is the PostgreSQL database username.
	User string `yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `yaml:"ssl_mode"`
}

// DSN returns the connection string in URL format, suitable as the
// address argument of a connection manager backed by the postgres store.
func (dc DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		dc.User, dc.Password, dc.Host, dc.Port, dc.Database, dc.SSLMode,
	)
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `yaml:"level"`
	// Destination can be STDERR or STDOUT.
	Destination string `yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "gnmodel",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "stdout",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
