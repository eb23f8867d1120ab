package testutil

import (
	"os"

	"github.com/web420/web420"
)

const (
	// TestDatabase keeps test data apart from a developer's data.
	TestDatabase = "web420_test"

	// SkipIntegrationEnvVar, when set to any value, skips tests that
	// need a running mongod.
	SkipIntegrationEnvVar = "SKIP_INTEGRATION_TESTS"
)

// TestConfig returns settings suitable for tests: the test database at
// the configured URL, short timeouts and a single connection attempt.
func TestConfig() *web420.Settings {
	settings := web420.DefaultSettings()
	settings.Database.DB = TestDatabase
	settings.Database.QueryTimeoutSecs = 5
	settings.Database.ConnectAttempts = 1
	if url := os.Getenv(web420.MongoURLEnvVar); url != "" {
		settings.Database.Url = url
	}
	return settings
}
