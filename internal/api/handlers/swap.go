package handlers

import (
	"context"
	"errors"
	"net/http"

	"ZramManager/internal/monitoring/server/memory"
	"ZramManager/internal/swap"

	"github.com/docker/go-units"
	"github.com/gin-gonic/gin"
)

// MemoryInfoProvider returns the detailed memory view served by the API
type MemoryInfoProvider interface {
	GetMemoryInfo(ctx context.Context) (*memory.MemoryInfo, error)
}

// SwapHandler contains handlers for the swap controller endpoints
type SwapHandler struct {
	controller *swap.Controller
	memory     MemoryInfoProvider
	bands      *memory.StatusLogger
}

// NewSwapHandler creates a new swap handler
func NewSwapHandler(controller *swap.Controller, provider MemoryInfoProvider) *SwapHandler {
	return &SwapHandler{
		controller: controller,
		memory:     provider,
		bands:      memory.NewStatusLogger("", controller.Config()),
	}
}

// ConfigView is the controller configuration as served by the API
type ConfigView struct {
	MinFreeBytes           uint64 `json:"min_free_bytes"`
	MaxFreeBytes           uint64 `json:"max_free_bytes"`
	DefaultSwapSizeBytes   uint64 `json:"swap_size_bytes"`
	TickInterval           string `json:"tick_interval"`
	SwapDeviceLimit        int    `json:"device_limit"`
	MaxCacheThresholdBytes uint64 `json:"max_cache_bytes"`
	BackendTimeout         string `json:"backend_timeout"`
}

func newConfigView(cfg swap.Config) ConfigView {
	return ConfigView{
		MinFreeBytes:           cfg.MinFreeBytes,
		MaxFreeBytes:           cfg.MaxFreeBytes,
		DefaultSwapSizeBytes:   cfg.DefaultSwapSizeBytes,
		TickInterval:           cfg.TickInterval.String(),
		SwapDeviceLimit:        cfg.SwapDeviceLimit,
		MaxCacheThresholdBytes: cfg.MaxCacheThresholdBytes,
		BackendTimeout:         cfg.BackendTimeout.String(),
	}
}

// GetStatus returns the controller state and its last tick report
func (h *SwapHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"running": h.controller.Running(),
		"status":  h.controller.Status().Summary(),
		"config":  newConfigView(h.controller.Config()),
	})
}

// GetDevices returns the active swap devices, smallest first
func (h *SwapHandler) GetDevices(c *gin.Context) {
	devices, err := h.controller.Registry().List(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, swap.ErrBackendCommandFailed) {
			status = http.StatusBadGateway
		}
		HandleError(c, status, err)
		return
	}

	var total uint64
	for _, d := range devices {
		total += d.SizeBytes
	}

	c.JSON(http.StatusOK, gin.H{
		"devices":     devices,
		"count":       len(devices),
		"limit":       h.controller.Config().SwapDeviceLimit,
		"total_bytes": total,
		"total_human": units.HumanSize(float64(total)),
	})
}

// GetMemory returns the current memory counters and the pressure band they fall in
func (h *SwapHandler) GetMemory(c *gin.Context) {
	info, err := h.memory.GetMemoryInfo(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, swap.ErrProbeUnavailable) {
			status = http.StatusServiceUnavailable
		}
		HandleError(c, status, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"memory": info,
		"band":   h.bands.Band(info.CombinedAvailable),
	})
}
