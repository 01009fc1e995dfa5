//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smc-go/smc/pkg/smc"
	"github.com/smc-go/smc/pkg/smcclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Endpoint      string
	APIKey        string
	APIVersion    string
	Domain        string
	SkipTLSVerify bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Endpoint:      os.Getenv("SMC_URL"),
		APIKey:        os.Getenv("SMC_API_KEY"),
		APIVersion:    os.Getenv("SMC_API_VERSION"),
		Domain:        os.Getenv("SMC_DOMAIN"),
		SkipTLSVerify: os.Getenv("SMC_SKIP_TLS_VERIFY") == "true",
	}
}

// SkipIfMissingConfig skips the test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.Endpoint == "" {
		t.Skip("SMC_URL not set, skipping integration test")
	}

	if config.APIKey == "" {
		t.Skip("SMC_API_KEY not set, skipping integration test")
	}
}

// NewClient logs in against the configured SMC and registers a logout on
// test cleanup.
func (config *TestConfig) NewClient(t *testing.T) smc.Client {
	t.Helper()

	ctx := context.Background()

	client, err := smcclient.New(ctx, &smc.Config{
		Endpoint:      config.Endpoint,
		APIKey:        config.APIKey,
		APIVersion:    config.APIVersion,
		Domain:        config.Domain,
		SkipTLSVerify: config.SkipTLSVerify,
	})
	require.NoError(t, err, "Failed to create SMC client")

	t.Cleanup(func() {
		if err := client.Logout(context.Background()); err != nil {
			t.Logf("Logout failed: %v", err)
		}
	})

	return client
}

// GenerateTestName creates a unique resource name so concurrent test runs
// do not collide on the shared SMC.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// CleanupElement removes a test element, tolerating its absence.
func CleanupElement(t *testing.T, client smc.Client, name, elementType string) {
	t.Helper()

	err := client.Elements().Remove(context.Background(), name, &smc.RemoveOptions{Type: elementType})
	if err != nil && !smc.IsNotFound(err) {
		t.Logf("Cleanup of %s failed: %v", name, err)
	}
}
