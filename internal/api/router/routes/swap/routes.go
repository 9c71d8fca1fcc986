package swap

import (
	"ZramManager/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the swap controller routes
func RegisterRoutes(group *gin.RouterGroup, swapHandler *handlers.SwapHandler) {
	swapGroup := group.Group("/swap")
	{
		swapGroup.GET("/status", swapHandler.GetStatus)
		swapGroup.GET("/devices", swapHandler.GetDevices)
		swapGroup.GET("/memory", swapHandler.GetMemory)
	}
}
