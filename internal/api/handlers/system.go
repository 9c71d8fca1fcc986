package handlers

import (
	"context"
	"net/http"

	"ZramManager/internal/monitoring/server/sysinfo"

	"github.com/gin-gonic/gin"
)

// SystemInfoProvider returns host information and zram support
type SystemInfoProvider interface {
	GetSystemInfo(ctx context.Context) (*sysinfo.SystemInfo, error)
}

// SystemHandler serves host information
type SystemHandler struct {
	provider SystemInfoProvider
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(provider SystemInfoProvider) *SystemHandler {
	return &SystemHandler{provider: provider}
}

// GetSystemInfo returns host details and whether zram devices can be created
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info, err := h.provider.GetSystemInfo(c.Request.Context())
	if err != nil {
		HandleError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"system":     info,
		"zram_ready": info.Zram.Ready(),
	})
}
