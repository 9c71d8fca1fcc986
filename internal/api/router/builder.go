package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ZramManager/internal/api/handlers"
	"ZramManager/internal/monitoring/server/memory"
	"ZramManager/internal/monitoring/server/sysinfo"
	"ZramManager/internal/pkg/config"
	"ZramManager/internal/pkg/logger"
	"ZramManager/internal/services/cache"
	"ZramManager/internal/services/zram"
	"ZramManager/internal/swap"
	ws "ZramManager/internal/websocket"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

// Builder wires the swap controller, its observers and the HTTP router
type Builder struct {
	config     *config.Config
	router     *Router
	controller *swap.Controller
	inspector  *sysinfo.Inspector
	server     *http.Server
}

// NewBuilder creates the controller against the host zram tools and builds the router around it
func NewBuilder(cfg *config.Config) (*Builder, error) {
	probe := memory.NewProbe()
	backend := zram.NewBackend(zram.CommandsFromConfig(cfg.Swap.Commands), nil)
	reclaimer := cache.NewReclaimer(cfg.Swap.DropCachesPath)
	return NewBuilderWith(cfg, probe, backend, reclaimer)
}

// MemorySource feeds both the controller and the memory endpoint
type MemorySource interface {
	swap.MemoryProbe
	handlers.MemoryInfoProvider
}

// NewBuilderWith builds the controller and router from explicit collaborators
func NewBuilderWith(cfg *config.Config, probe MemorySource, backend swap.DeviceBackend, reclaimer swap.CacheReclaimer) (*Builder, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	wsRegistry := ws.NewRegistry()
	wsRegistry.RegisterSwapHandler(ws.NewHandler())
	wsRegistry.RegisterMemoryHandler(ws.NewHandler())

	swapCfg := swap.ConfigFromSettings(cfg.Swap)
	logDir := ""
	if cfg.Logs.Enabled {
		logDir = cfg.Logs.FilePath
	}
	bands := memory.NewStatusLogger(logDir, swapCfg)

	controller, err := swap.NewController(swapCfg, probe, backend, reclaimer,
		swap.WithMetrics(swap.NewMetrics(registry)),
		swap.WithReportHandler(wsRegistry.BroadcastSwap),
		swap.WithReportHandler(wsRegistry.BroadcastMemory),
		swap.WithReportHandler(bands.Observe),
	)
	if err != nil {
		return nil, err
	}

	inspector := sysinfo.NewInspector("")
	swapHandler := handlers.NewSwapHandler(controller, probe)
	systemHandler := handlers.NewSystemHandler(inspector)

	return &Builder{
		config:     cfg,
		router:     New(cfg, swapHandler, systemHandler, wsRegistry, registry),
		controller: controller,
		inspector:  inspector,
	}, nil
}

// WithAllRoutes adds all routes and initializes the router
func (b *Builder) WithAllRoutes() *Builder {
	b.router.Initialize()
	return b
}

// GetRouter returns the underlying router
func (b *Builder) GetRouter() *Router {
	return b.router
}

// Controller returns the swap controller
func (b *Builder) Controller() *swap.Controller {
	return b.controller
}

// Start starts the swap controller and, when enabled, the HTTP server.
// It returns once both are running.
func (b *Builder) Start() error {
	if support := b.inspector.ZramSupport(); !support.Ready() {
		logger.Warn("zram does not look available on this host, swap devices cannot be created until the zram module is loaded",
			logger.Bool("module_loaded", support.ModuleLoaded),
			logger.Bool("hot_add", support.HotAdd))
	}

	if err := b.controller.Start(); err != nil {
		return fmt.Errorf("failed to start swap controller: %w", err)
	}

	if !b.config.Server.Enabled {
		logger.Info("HTTP server disabled")
		return nil
	}

	addr := b.router.Address()
	b.server = &http.Server{
		Addr:              addr,
		Handler:           b.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", logger.String("address", addr))
		if err := b.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to start HTTP server", logger.String("error", err.Error()))
		}
	}()

	return nil
}

// Shutdown stops the HTTP server and the swap controller
func (b *Builder) Shutdown() {
	if b.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := b.server.Shutdown(ctx); err != nil {
			logger.Warn("HTTP server shutdown failed", logger.String("error", err.Error()))
		} else {
			logger.Info("Stopped HTTP server")
		}
	}

	b.controller.Stop()
}
