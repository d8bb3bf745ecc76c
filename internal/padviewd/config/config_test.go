package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())
	assert.Equal(t, 480, cfg.Display.Width)
	assert.Equal(t, 7, cfg.Strip.Zones)
	assert.Equal(t, 30*time.Second, cfg.Launch.RetryDelay)
}

func TestLoadFileLayersOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "padview.yaml")
	data := `
display:
  width: 800
  height: 480
launch:
  retryDelay: 10s
cache:
  enabled: true
  addr: localhost:6379
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Display.Width)
	assert.Equal(t, 10*time.Second, cfg.Launch.RetryDelay)
	assert.True(t, cfg.Cache.Enabled)
	// Untouched sections keep their defaults.
	assert.Equal(t, 200*time.Millisecond, cfg.Display.FrameInterval)
	assert.Equal(t, "https://ll.thespacedevs.com/2.3.0", cfg.Launch.BaseURL)
}

func TestLoadFileRejectsWrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "padview.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestEnvOverlayWins(t *testing.T) {
	t.Setenv("PADVIEW_LAUNCH_RETRY_DELAY", "5s")
	t.Setenv("PADVIEW_STRIP_ZONES", "12")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Launch.RetryDelay)
	assert.Equal(t, 12, cfg.Strip.Zones)
}

func TestEnvOverlayIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PADVIEW_SERVER_PORT", "not-a-port")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestValidateCatchesBadCacheConfig(t *testing.T) {
	cfg := Default()
	cfg.Cache.Enabled = true
	cfg.Cache.Addr = ""
	assert.Error(t, cfg.validate())
}
