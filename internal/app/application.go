package app

import (
	"fmt"

	"ZramManager/internal/pkg/config"
	"ZramManager/internal/pkg/logger"
)

// Overrides holds command line values that take precedence over the file and environment.
// Nil fields are left untouched.
type Overrides struct {
	MinFreeGB  *int
	MaxFreeGB  *int
	SwapSizeGB *int
	SleepTime  *int
}

func (o Overrides) apply(cfg *config.Config) {
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.Swap.MinFreeGB, o.MinFreeGB)
	set(&cfg.Swap.MaxFreeGB, o.MaxFreeGB)
	set(&cfg.Swap.SwapSizeGB, o.SwapSizeGB)
	set(&cfg.Swap.SleepTime, o.SleepTime)
}

// Application represents the main application
type Application struct {
	configPath string
	envFile    string
	overrides  Overrides
	config     *config.Config
	isRunning  bool
}

// New creates a new application instance. An empty configPath runs on defaults.
func New(configPath, envFile string, overrides Overrides) *Application {
	return &Application{
		configPath: configPath,
		envFile:    envFile,
		overrides:  overrides,
	}
}

// Initialize resolves the configuration and initializes the logger.
// Precedence is defaults, then the config file, then the environment, then flags.
func (a *Application) Initialize() error {
	cfg, err := ResolveConfig(a.configPath, a.envFile, a.overrides)
	if err != nil {
		return err
	}
	a.config = cfg

	if err := logger.Init(cfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application initialized successfully",
		logger.String("config", a.configPath),
		logger.Int("min_free_gb", cfg.Swap.MinFreeGB),
		logger.Int("max_free_gb", cfg.Swap.MaxFreeGB),
		logger.Int("swap_size_gb", cfg.Swap.SwapSizeGB),
		logger.Int("sleep_time", cfg.Swap.SleepTime))
	a.isRunning = true
	return nil
}

// ResolveConfig builds the validated configuration from defaults, the optional config file,
// the environment and the command line overrides
func ResolveConfig(configPath, envFile string, overrides Overrides) (*config.Config, error) {
	cfg := config.GetDefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	if envFile != "" {
		if err := config.LoadEnvFile(envFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	overrides.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfig returns the application configuration
func (a *Application) GetConfig() *config.Config {
	return a.config
}

// IsRunning reports whether Initialize succeeded and Shutdown has not run yet
func (a *Application) IsRunning() bool {
	return a.isRunning
}

// Shutdown performs cleanup and shutdown operations
func (a *Application) Shutdown() {
	logger.Info("Shutting down application...")

	a.isRunning = false
	logger.Info("Application shutdown complete")

	if err := logger.Sync(); err != nil {
		fmt.Printf("Error flushing logs: %v\n", err)
	}
}
