package startup

import (
	"os"

	"ZramManager/internal/app"
	"ZramManager/internal/pkg/config"
	"ZramManager/internal/pkg/logger"
	"ZramManager/internal/utils/finder"
)

// InitializeApplication resolves the configuration file and initializes the application.
// Without a configuration file the built-in defaults are used.
func InitializeApplication(configPath, envFile string, overrides app.Overrides) *app.Application {
	foundConfigPath, err := finder.FindConfigFile(configPath, false, finder.DefaultSearchPaths...)
	if err != nil {
		logger.Error("Failed to find configuration", logger.String("error", err.Error()))
		os.Exit(1)
	}

	if foundConfigPath == "" {
		logger.Warn("No configuration file found, using defaults", logger.String("path", configPath))
	} else {
		logger.Info("Using configuration file", logger.String("path", foundConfigPath))
	}

	application := app.New(foundConfigPath, envFile, overrides)
	if err := application.Initialize(); err != nil {
		logger.Error("Failed to initialize application", logger.String("error", err.Error()))
		os.Exit(1)
	}

	return application
}

// SetupDefaultLogger initializes a console logger for early startup
func SetupDefaultLogger() {
	cfg := config.GetDefaultConfig()
	cfg.Logs.FilePath = ""
	cfg.Logs.Format = "console"
	if err := logger.Init(cfg); err != nil {
		panic("Error initializing logger: " + err.Error())
	}
}
