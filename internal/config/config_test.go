package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/walletsync/internal/config"
)

func TestInitConfig(t *testing.T) {
	datadir := t.TempDir()
	t.Setenv("WALLETSYNC_DATADIR", datadir)
	t.Setenv("WALLETSYNC_REMOTE_URL", "http://localhost:8081")
	t.Setenv("WALLETSYNC_ADDRESS_POLICY", "imported")
	t.Setenv("WALLETSYNC_ENABLE_METRICS", "true")

	require.NoError(t, config.InitConfig())

	require.Equal(t, datadir, config.GetDatadir())
	require.Equal(t, config.DBBadger, config.GetString(config.DBTypeKey))
	require.Equal(t, filepath.Join(datadir, config.DbLocation), config.GetDbDir())
	require.Equal(t, 15*time.Second, config.GetRemoteTimeout())
	require.Equal(t, uint32(5000), config.GetUint32(config.PBKDF2IterationsKey))
	require.Equal(t, "en", config.GetString(config.LanguageKey))
	require.Equal(t, config.AddressPolicyImported, config.GetString(config.AddressPolicyKey))

	for _, dir := range []string{config.DbLocation, config.MetricsLocation} {
		info, err := os.Stat(filepath.Join(datadir, dir))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}

func TestInitConfigInMemory(t *testing.T) {
	datadir := t.TempDir()
	t.Setenv("WALLETSYNC_DATADIR", datadir)
	t.Setenv("WALLETSYNC_REMOTE_URL", "https://wallet.example.com")
	t.Setenv("WALLETSYNC_DB_TYPE", "inmemory")

	require.NoError(t, config.InitConfig())
	require.Empty(t, config.GetDbDir())
	require.Equal(t, config.AddressPolicyNone, config.GetString(config.AddressPolicyKey))

	_, err := os.Stat(filepath.Join(datadir, config.DbLocation))
	require.True(t, os.IsNotExist(err))
}

func TestFailingInitConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing remote url", map[string]string{}},
		{"invalid remote url", map[string]string{"WALLETSYNC_REMOTE_URL": "localhost"}},
		{"unknown db type", map[string]string{"WALLETSYNC_DB_TYPE": "postgres"}},
		{"invalid timeout", map[string]string{"WALLETSYNC_REMOTE_TIMEOUT": "0"}},
		{"invalid rate limit", map[string]string{"WALLETSYNC_REMOTE_RATE_LIMIT": "-1"}},
		{"invalid iterations", map[string]string{"WALLETSYNC_PBKDF2_ITERATIONS": "0"}},
		{"unknown address policy", map[string]string{"WALLETSYNC_ADDRESS_POLICY": "some"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WALLETSYNC_DATADIR", t.TempDir())
			if _, ok := tt.env["WALLETSYNC_REMOTE_URL"]; !ok && tt.name != "missing remote url" {
				t.Setenv("WALLETSYNC_REMOTE_URL", "http://localhost:8081")
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			require.Error(t, config.InitConfig())
		})
	}
}
