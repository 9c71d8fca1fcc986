package websocket

import (
	"net/http"

	ws "ZramManager/internal/websocket"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes registers the websocket routes
func RegisterWebSocketRoutes(group *gin.RouterGroup, registry *ws.Registry) {
	group.GET("/swap", serve(registry.GetSwapHandler()))
	group.GET("/memory", serve(registry.GetMemoryHandler()))
}

func serve(handler *ws.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if handler == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "stream not available"})
			return
		}
		ws.LogWebSocketConnection(c.ClientIP(), c.Request.URL.Path, c.GetString("username"))
		handler.ServeHTTP(c.Writer, c.Request)
	}
}
