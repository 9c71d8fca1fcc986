package system

import (
	"ZramManager/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the host information routes
func RegisterRoutes(group *gin.RouterGroup, systemHandler *handlers.SystemHandler) {
	group.GET("/system", systemHandler.GetSystemInfo)
}
