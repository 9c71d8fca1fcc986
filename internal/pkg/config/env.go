package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultEnvFilePath is the optional environment file read at startup
const DefaultEnvFilePath = "/etc/zram_manager/env"

// Environment variables overriding the configuration file
const (
	EnvMinFree    = "ZRAM_MANAGER_MIN_FREE"
	EnvMaxFree    = "ZRAM_MANAGER_MAX_FREE"
	EnvSwapSize   = "ZRAM_MANAGER_SWAP_SIZE"
	EnvSleepTime  = "ZRAM_MANAGER_SLEEP_TIME"
	EnvLogLevel   = "ZRAM_MANAGER_LOG_LEVEL"
	EnvJWTSecret  = "ZRAM_MANAGER_JWT_SECRET"
	EnvListenPort = "ZRAM_MANAGER_PORT"
)

// LoadEnvFile loads variables from path into the process environment.
// A missing file is not an error and variables already set are kept.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides configuration values with the ZRAM_MANAGER_* variables
func (c *Config) ApplyEnv() error {
	ints := []struct {
		name   string
		target *int
	}{
		{EnvMinFree, &c.Swap.MinFreeGB},
		{EnvMaxFree, &c.Swap.MaxFreeGB},
		{EnvSwapSize, &c.Swap.SwapSizeGB},
		{EnvSleepTime, &c.Swap.SleepTime},
		{EnvListenPort, &c.Server.Port},
	}

	for _, v := range ints {
		raw, ok := os.LookupEnv(v.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q is not an integer", v.name, raw)
		}
		*v.target = n
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logs.Level = level
	}
	if secret := os.Getenv(EnvJWTSecret); secret != "" {
		c.API.Auth.JWTSecret = secret
	}

	return nil
}
