package handlers

import (
	"ZramManager/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HandleError provides a consistent way to handle errors in route handlers
func HandleError(c *gin.Context, status int, err error) {
	logger.Error("API error",
		logger.String("path", c.Request.URL.Path),
		logger.String("error", err.Error()))
	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}
