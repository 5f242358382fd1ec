package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bhindi/internal/config"
)

func TestOpen_FileKeyring(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(dir, "bhindi.db")
	cfg.KeyringBackend = "file"
	cfg.KeyringDir = filepath.Join(dir, "keys")
	cfg.KeyringPassword = "test"
	cfg.APIKey = "sk-config"

	rt, err := Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	require.NotNil(t, rt.Services.Keyring)
	require.NoError(t, rt.Services.Startup(context.Background()))
	assert.True(t, rt.Services.Dispatcher.HasCredential())
	assert.True(t, rt.Services.Settings.Get().AI.APIKeyConfigured)
}

func TestOpen_UnknownKeyringBackendTolerated(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "bhindi.db")
	cfg.KeyringBackend = "no-such-backend"

	rt, err := Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	assert.Nil(t, rt.Services.Keyring)
}
