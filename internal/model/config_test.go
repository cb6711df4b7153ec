package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", cfg.Server.BaseURL)
	assert.Equal(t, 1000, cfg.Server.DelayMS)
	assert.Equal(t, 120, cfg.Sync.PollIntervalSec)
	assert.Equal(t, "INBOX", cfg.Mail.Mailbox)
	assert.True(t, cfg.Mail.TLS)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigAppliesDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  base_url: https://example.test/api
  delay_ms: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "https://example.test/api", cfg.Server.BaseURL)
	assert.Equal(t, 0, cfg.Server.DelayMS)
	assert.Equal(t, 30, cfg.Server.TimeoutSec)
	assert.Equal(t, 120, cfg.Sync.PollIntervalSec)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: closed"), 0o644))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}

func TestSaveAndLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := defaultAppConfig()
	want.Server.BaseURL = "https://api.example.test"
	want.Server.DelayMS = 250
	want.Mail.Enabled = true
	want.Mail.Host = "imap.example.test"

	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.test", got.Server.BaseURL)
	assert.Equal(t, 250, got.Server.DelayMS)
	assert.True(t, got.Mail.Enabled)
	assert.Equal(t, "imap.example.test", got.Mail.Host)
}
