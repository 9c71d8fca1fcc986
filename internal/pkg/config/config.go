package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the main application configuration
type Config struct {
	AppName string       `yaml:"app_name" validate:"required"`
	Server  ServerConfig `yaml:"server"`
	Agent   AgentConfig  `yaml:"agent"`
	Swap    SwapConfig   `yaml:"swap"`
	Logs    LogsConfig   `yaml:"logs"`
	API     API          `yaml:"api"`
}

// ServerConfig holds the status API server configuration
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port" validate:"omitempty,min=1,max=65535"`
	Host    string `yaml:"host"`
}

// AgentConfig holds the agent related configuration
type AgentConfig struct {
	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig holds the credentials accepted by the login endpoint
type AuthConfig struct {
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
}

// SwapConfig holds the swap controller settings. Sizes are whole decimal gigabytes
// (1 GB = 1000^3 bytes) and times are seconds.
type SwapConfig struct {
	MinFreeGB      int `yaml:"min_free_gb" validate:"gte=0"`
	MaxFreeGB      int `yaml:"max_free_gb" validate:"gtfield=MinFreeGB"`
	SwapSizeGB     int `yaml:"swap_size_gb" validate:"gt=0"`
	SleepTime      int `yaml:"sleep_time" validate:"gt=0"`
	DeviceLimit    int `yaml:"device_limit" validate:"gt=0"`
	MaxCacheGB     int `yaml:"max_cache_gb" validate:"gt=0"`
	BackendTimeout int `yaml:"backend_timeout" validate:"gt=0"`

	Commands       CommandsConfig `yaml:"commands"`
	DropCachesPath string         `yaml:"drop_caches_path" validate:"required"`
}

// CommandsConfig holds the paths of the utilities used to manage zram devices
type CommandsConfig struct {
	Zramctl string `yaml:"zramctl" validate:"required"`
	Mkswap  string `yaml:"mkswap" validate:"required"`
	Swapon  string `yaml:"swapon" validate:"required"`
	Swapoff string `yaml:"swapoff" validate:"required"`
}

// LogsConfig holds logging configuration
type LogsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	FilePath   string `yaml:"file_path"`
	Format     string `yaml:"format" validate:"omitempty,oneof=json console"`
	Stdout     bool   `yaml:"stdout"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
}

// LoadConfig loads the configuration from the specified file path.
// Keys missing from the file keep their default values.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := GetDefaultConfig()
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the specified file path
func SaveConfig(cfg *Config, filePath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(filePath, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		AppName: "ZramManager",
		Server: ServerConfig{
			Enabled: true,
			Port:    9105,
			Host:    "127.0.0.1",
		},
		Swap: SwapConfig{
			MinFreeGB:      2,
			MaxFreeGB:      4,
			SwapSizeGB:     1,
			SleepTime:      1,
			DeviceLimit:    20,
			MaxCacheGB:     1,
			BackendTimeout: 30,
			Commands: CommandsConfig{
				Zramctl: "/usr/sbin/zramctl",
				Mkswap:  "/usr/sbin/mkswap",
				Swapon:  "/usr/sbin/swapon",
				Swapoff: "/usr/sbin/swapoff",
			},
			DropCachesPath: "/proc/sys/vm/drop_caches",
		},
		Logs: LogsConfig{
			Enabled:    true,
			Level:      "info",
			FilePath:   "logs",
			Format:     "json",
			Stdout:     true,
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}
