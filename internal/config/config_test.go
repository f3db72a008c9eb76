package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// useTempConfig points the package at a fresh config file for one test
func useTempConfig(t *testing.T) string {
	t.Helper()
	prev := configPath
	configPath = filepath.Join(t.TempDir(), "config.json")
	t.Cleanup(func() { configPath = prev })
	return configPath
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	useTempConfig(t)

	c := Default()
	require.NoError(t, c.Load())
	require.Equal(t, Default(), c)
}

func TestSaveThenLoad(t *testing.T) {
	useTempConfig(t)

	c := Default()
	require.NoError(t, c.SetURLs("https://example.com/photo.jpg", "https://example.com/default.png"))

	loaded := Default()
	require.NoError(t, loaded.Load())
	require.Equal(t, "https://example.com/photo.jpg", loaded.SourceURL)
	require.Equal(t, "https://example.com/default.png", loaded.TargetURL)
	require.Equal(t, 500, loaded.LongPressMillis)
}

func TestPartialFileAndEnvOverride(t *testing.T) {
	path := useTempConfig(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"long_press_ms": 750}`), 0600))
	t.Setenv("DRAGDROP_TARGET_URL", "https://example.com/env.png")

	c := Default()
	require.NoError(t, c.Load())
	require.Equal(t, 750, c.LongPressMillis)
	require.Equal(t, "https://example.com/env.png", c.TargetURL)
	require.Equal(t, Default().SourceURL, c.SourceURL)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := useTempConfig(t)
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

	require.Error(t, Default().Load())
}

func TestDurationsAndCachePath(t *testing.T) {
	c := Default()
	require.Equal(t, 500*time.Millisecond, c.LongPress())
	c.LongPressMillis = 10
	require.Equal(t, 100*time.Millisecond, c.LongPress())

	c.FetchTimeout = 0
	require.Equal(t, 30*time.Second, c.Timeout())

	c.CachePath = "/tmp/x.db"
	require.Equal(t, "/tmp/x.db", c.ResolvedCachePath())
	c.CacheEnabled = false
	require.Empty(t, c.ResolvedCachePath())
}
