package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/web420/web420"
)

// SkipIntegration skips the test when integration tests are disabled.
func SkipIntegration(t *testing.T) {
	if os.Getenv(SkipIntegrationEnvVar) != "" {
		t.Skipf("%s is set", SkipIntegrationEnvVar)
	}
}

// NewEnvironment connects to the test database, skipping the test when
// no server answers. The environment is closed when the test ends.
func NewEnvironment(ctx context.Context, t *testing.T) web420.Environment {
	SkipIntegration(t)

	env, err := web420.NewEnvironmentWithSettings(ctx, TestConfig())
	if err != nil {
		t.Skipf("no database available: %s", err)
	}

	t.Cleanup(func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		require.NoError(t, env.Close(closeCtx))
	})

	return env
}
