// Package iotesting provides shared helpers for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"

	"github.com/gnames/gnmodel/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all PostgreSQL
	// integration tests. This ensures tests never accidentally run
	// against production databases.
	TestDatabaseName = "gnmodel_test"

	// DefaultRedisURL is the Redis database used for integration
	// tests when GNMODEL_TEST_REDIS_URL is not set. Database 15 keeps
	// test keys away from default application data.
	DefaultRedisURL = "redis://localhost:6379/15"
)

// GetTestConfig returns a configuration suitable for integration
// tests: library defaults, optionally overridden from the environment,
// with the database name forced to TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... dial cfg.Database.DSN()
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()

	var opts []config.Option
	if host := os.Getenv("GNMODEL_TEST_PG_HOST"); host != "" {
		opts = append(opts, config.OptDatabaseHost(host))
	}
	if user := os.Getenv("GNMODEL_TEST_PG_USER"); user != "" {
		opts = append(opts, config.OptDatabaseUser(user))
	}
	if pass := os.Getenv("GNMODEL_TEST_PG_PASSWORD"); pass != "" {
		opts = append(opts, config.OptDatabasePassword(pass))
	}
	cfg.Update(opts)

	// Always use the test database for safety.
	cfg.Database.Database = TestDatabaseName
	return cfg
}

// PostgresDSN returns the connection string integration tests dial.
func PostgresDSN() string {
	return GetTestConfig().Database.DSN()
}

// RedisURL returns the Redis URL integration tests dial.
func RedisURL() string {
	if url := os.Getenv("GNMODEL_TEST_REDIS_URL"); url != "" {
		return url
	}
	return DefaultRedisURL
}
