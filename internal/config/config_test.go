package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	require.Equal(t, "localhost", cfg.Server.Host)
	require.Equal(t, 8420, cfg.Server.Port)
	require.Equal(t, 5, cfg.Aggregation.MaxBreakMinutes)
	require.Equal(t, 0.65, cfg.Aggregation.MinTitleSimilarity)
	require.Equal(t, 120, cfg.Aggregation.MinSessionDurationSeconds)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9000
aggregation:
  max_break_minutes: 10
privacy:
  blacklist:
    - keepass.exe
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, "localhost", cfg.Server.Host)
	require.Equal(t, 10, cfg.Aggregation.MaxBreakMinutes)
	require.Equal(t, []string{"keepass.exe"}, cfg.Privacy.Blacklist)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600))

	t.Setenv("TIMETRACK_SERVER_PORT", "9001")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9001, cfg.Server.Port)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestPrivacyActive(t *testing.T) {
	now := time.Date(2024, 3, 18, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		until string
		want  bool
	}{
		{"unset", "", false},
		{"indefinite", "indefinite", true},
		{"future", "2024-03-18T13:00:00Z", true},
		{"expired", "2024-03-18T11:00:00Z", false},
		{"garbage", "not-a-timestamp", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := PrivacyConfig{PrivacyModeUntil: tc.until}
			require.Equal(t, tc.want, p.PrivacyActive(now))
		})
	}
}

func TestIsProcessPrivate(t *testing.T) {
	p := PrivacyConfig{
		Blacklist: []string{"keepass.exe"},
		Whitelist: []string{"acad.exe"},
	}

	require.True(t, p.IsProcessPrivate("KeePass.exe"))
	require.False(t, p.IsProcessPrivate("acad.exe"))
	// Not whitelisted while a whitelist exists
	require.True(t, p.IsProcessPrivate("chrome.exe"))

	open := PrivacyConfig{}
	require.False(t, open.IsProcessPrivate("chrome.exe"))
}
