package startup

import (
	"os"

	"ZramManager/internal/api/router"
	"ZramManager/internal/app"
	"ZramManager/internal/pkg/logger"
)

// StartServer builds the swap controller and HTTP server and starts them
func StartServer(application *app.Application) *router.Builder {
	builder, err := router.NewBuilder(application.GetConfig())
	if err != nil {
		logger.Error("Failed to create swap controller", logger.String("error", err.Error()))
		os.Exit(1)
	}

	builder.WithAllRoutes()

	if err := builder.Start(); err != nil {
		logger.Error("Failed to start", logger.String("error", err.Error()))
		os.Exit(1)
	}

	return builder
}
