package swap

import (
	"fmt"
	"time"

	"ZramManager/internal/pkg/config"

	"github.com/docker/go-units"
)

const (
	// DefaultSwapDeviceLimit is the device ceiling used when none is configured
	DefaultSwapDeviceLimit = 20

	// DefaultMaxCacheThreshold is the cached-bytes threshold used when none is configured
	DefaultMaxCacheThreshold uint64 = 1 * units.GB

	// DefaultBackendTimeout bounds a single backend call
	DefaultBackendTimeout = 30 * time.Second
)

// Config holds the controller settings. It is built once at startup and never modified.
type Config struct {
	MinFreeBytes           uint64
	MaxFreeBytes           uint64
	DefaultSwapSizeBytes   uint64
	TickInterval           time.Duration
	SwapDeviceLimit        int
	MaxCacheThresholdBytes uint64
	BackendTimeout         time.Duration
}

// Validate rejects configurations the controller cannot run with
func (c Config) Validate() error {
	if c.MinFreeBytes >= c.MaxFreeBytes {
		return fmt.Errorf("minimum free memory (%d) must be lower than maximum free memory (%d)",
			c.MinFreeBytes, c.MaxFreeBytes)
	}
	if c.DefaultSwapSizeBytes == 0 {
		return fmt.Errorf("swap size must be positive")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.SwapDeviceLimit <= 0 {
		return fmt.Errorf("swap device limit must be positive, got %d", c.SwapDeviceLimit)
	}
	return nil
}

// withDefaults fills the internal defaults left unset by the caller
func (c Config) withDefaults() Config {
	if c.SwapDeviceLimit == 0 {
		c.SwapDeviceLimit = DefaultSwapDeviceLimit
	}
	if c.MaxCacheThresholdBytes == 0 {
		c.MaxCacheThresholdBytes = DefaultMaxCacheThreshold
	}
	if c.BackendTimeout == 0 {
		c.BackendTimeout = DefaultBackendTimeout
	}
	return c
}

// ConfigFromSettings converts the file configuration (whole gigabytes and seconds)
// into the byte and duration based controller configuration
func ConfigFromSettings(s config.SwapConfig) Config {
	return Config{
		MinFreeBytes:           uint64(s.MinFreeGB) * units.GB,
		MaxFreeBytes:           uint64(s.MaxFreeGB) * units.GB,
		DefaultSwapSizeBytes:   uint64(s.SwapSizeGB) * units.GB,
		TickInterval:           time.Duration(s.SleepTime) * time.Second,
		SwapDeviceLimit:        s.DeviceLimit,
		MaxCacheThresholdBytes: uint64(s.MaxCacheGB) * units.GB,
		BackendTimeout:         time.Duration(s.BackendTimeout) * time.Second,
	}
}
