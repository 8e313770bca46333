//go:build integration

package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumexa/product-sdk/internal/adapters/clients"
	"github.com/lumexa/product-sdk/internal/platform/config"
	"github.com/lumexa/product-sdk/pkg/catalog"
)

// loadedClient builds an SDK client the way catalogctl does, from a loaded
// configuration.
func loadedClient(t *testing.T, cfg *config.Config) *catalog.Client {
	t.Helper()

	transport, err := clients.New(clients.ConfigFrom(cfg, discardLogger()))
	require.NoError(t, err)

	client, err := catalog.New(catalog.Config{
		BaseURL:          cfg.Catalog.BaseURL,
		StoreToken:       cfg.Catalog.StoreToken,
		Transport:        transport,
		Logger:           discardLogger(),
		MaxResponseBytes: cfg.Catalog.MaxResponseBytes,
	})
	require.NoError(t, err)

	return client
}

// TestConfig_FileDrivesClient verifies that a config file alone is enough
// to reach the sandbox.
func TestConfig_FileDrivesClient(t *testing.T) {
	server, err := startSandbox(true)
	require.NoError(t, err)
	defer server.Close()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "catalog:\n  base_url: " + server.URL + "\n  store_token: " + sandboxToken + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load("", path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	products, err := loadedClient(t, cfg).ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, products)
}

// TestConfig_EnvOverridesFile verifies that APP_ variables win over files.
func TestConfig_EnvOverridesFile(t *testing.T) {
	server, err := startSandbox(false)
	require.NoError(t, err)
	defer server.Close()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "catalog:\n  base_url: " + server.URL + "\n  store_token: wrong-token\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("APP_CATALOG__STORE_TOKEN", sandboxToken)
	t.Setenv("APP_CLIENT__RETRY__MAX_ATTEMPTS", "1")

	cfg, err := config.Load("", path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, sandboxToken, cfg.Catalog.StoreToken)
	assert.Equal(t, 1, cfg.Client.Retry.MaxAttempts)

	types, err := loadedClient(t, cfg).ListProductTypes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, types)
}

// TestConfig_ResponseLimit verifies that max_response_bytes caps what the
// SDK will read.
func TestConfig_ResponseLimit(t *testing.T) {
	server, err := startSandbox(true)
	require.NoError(t, err)
	defer server.Close()

	t.Setenv("APP_CATALOG__BASE_URL", server.URL)
	t.Setenv("APP_CATALOG__STORE_TOKEN", sandboxToken)
	t.Setenv("APP_CATALOG__MAX_RESPONSE_BYTES", "64")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	_, err = loadedClient(t, cfg).ListProducts(context.Background())
	require.Error(t, err)
	assert.True(t, catalog.IsAPI(err))
}
