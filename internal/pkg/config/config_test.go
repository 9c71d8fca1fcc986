package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := GetDefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2, cfg.Swap.MinFreeGB)
	assert.Equal(t, 4, cfg.Swap.MaxFreeGB)
	assert.Equal(t, 1, cfg.Swap.SwapSizeGB)
	assert.Equal(t, 1, cfg.Swap.SleepTime)
	assert.Equal(t, 20, cfg.Swap.DeviceLimit)
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
swap:
  min_free_gb: 3
  max_free_gb: 6
logs:
  level: debug
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Swap.MinFreeGB)
	assert.Equal(t, 6, cfg.Swap.MaxFreeGB)
	assert.Equal(t, 1, cfg.Swap.SwapSizeGB)
	assert.Equal(t, "/usr/sbin/zramctl", cfg.Swap.Commands.Zramctl)
	assert.Equal(t, "debug", cfg.Logs.Level)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("swap: [unterminated"), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := GetDefaultConfig()
	cfg.Swap.DeviceLimit = 8

	require.NoError(t, SaveConfig(cfg, path))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Swap, loaded.Swap)
	assert.Equal(t, cfg.Logs, loaded.Logs)
	assert.Equal(t, cfg.Server, loaded.Server)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"inverted band", func(c *Config) { c.Swap.MaxFreeGB = c.Swap.MinFreeGB }, "Swap.MaxFreeGB must be greater than MinFreeGB"},
		{"zero swap size", func(c *Config) { c.Swap.SwapSizeGB = 0 }, "Swap.SwapSizeGB"},
		{"zero sleep", func(c *Config) { c.Swap.SleepTime = 0 }, "Swap.SleepTime"},
		{"zero device limit", func(c *Config) { c.Swap.DeviceLimit = 0 }, "Swap.DeviceLimit"},
		{"zero cache threshold", func(c *Config) { c.Swap.MaxCacheGB = 0 }, "Swap.MaxCacheGB"},
		{"zero backend timeout", func(c *Config) { c.Swap.BackendTimeout = 0 }, "Swap.BackendTimeout"},
		{"missing command", func(c *Config) { c.Swap.Commands.Swapoff = "" }, "Swap.Commands.Swapoff is required"},
		{"bad log level", func(c *Config) { c.Logs.Level = "verbose" }, "Logs.Level must be one of"},
		{"auth without secret", func(c *Config) { c.API.Auth.Enabled = true }, "JWTSecret is required"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "Server.Port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvMinFree, "5")
	t.Setenv(EnvMaxFree, "9")
	t.Setenv(EnvSleepTime, "")
	t.Setenv(EnvLogLevel, "warn")

	cfg := GetDefaultConfig()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 5, cfg.Swap.MinFreeGB)
	assert.Equal(t, 9, cfg.Swap.MaxFreeGB)
	assert.Equal(t, 1, cfg.Swap.SleepTime)
	assert.Equal(t, "warn", cfg.Logs.Level)
}

func TestApplyEnvRejectsNonInteger(t *testing.T) {
	t.Setenv(EnvSwapSize, "1.5")

	err := GetDefaultConfig().ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvSwapSize)
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "absent")))

	path := filepath.Join(t.TempDir(), "env")
	require.NoError(t, os.WriteFile(path, []byte("ZRAM_MANAGER_SWAP_SIZE=3\n"), 0600))
	t.Setenv(EnvSwapSize, "")
	os.Unsetenv(EnvSwapSize)

	require.NoError(t, LoadEnvFile(path))

	cfg := GetDefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 3, cfg.Swap.SwapSizeGB)
}
