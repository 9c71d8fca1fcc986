package router

import (
	"fmt"
	"net/http"

	"ZramManager/internal/api/handlers"
	"ZramManager/internal/api/middleware"
	"ZramManager/internal/api/router/routes/auth"
	"ZramManager/internal/api/router/routes/metrics"
	"ZramManager/internal/api/router/routes/swap"
	"ZramManager/internal/api/router/routes/system"
	"ZramManager/internal/api/router/routes/websocket"
	"ZramManager/internal/pkg/config"
	"ZramManager/internal/pkg/jwt"
	"ZramManager/internal/pkg/logger"
	ws "ZramManager/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Router encapsulates the HTTP router functionality
type Router struct {
	config        *config.Config
	engine        *gin.Engine
	swapHandler   *handlers.SwapHandler
	systemHandler *handlers.SystemHandler
	wsRegistry    *ws.Registry
	gatherer      prometheus.Gatherer
}

// New creates a new router instance with the given configuration
func New(cfg *config.Config, swapHandler *handlers.SwapHandler, systemHandler *handlers.SystemHandler, wsRegistry *ws.Registry, gatherer prometheus.Gatherer) *Router {
	// Configure gin mode based on config
	if cfg.Logs.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	return &Router{
		config:        cfg,
		engine:        gin.New(),
		swapHandler:   swapHandler,
		systemHandler: systemHandler,
		wsRegistry:    wsRegistry,
		gatherer:      gatherer,
	}
}

// Initialize sets up the router with middlewares and routes
func (r *Router) Initialize() *Router {
	r.engine.Use(gin.Recovery())
	r.engine.Use(LoggerMiddleware())
	if r.config.API.CORS.Enabled {
		r.engine.Use(corsMiddleware(r.config))
	}

	r.registerAuthRoutes()
	r.registerAPIRoutes()
	r.registerWebSocketRoutes()
	r.registerRootAPIEndpoint()

	for _, route := range r.engine.Routes() {
		logger.Debug("Registered route",
			logger.String("method", route.Method),
			logger.String("path", route.Path))
	}

	return r
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(cfg.API.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.API.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	if len(cfg.API.CORS.AllowedMethods) > 0 {
		corsConfig.AllowMethods = cfg.API.CORS.AllowedMethods
	}
	corsConfig.AddAllowHeaders("Authorization")
	return cors.New(corsConfig)
}

// protected returns a route group guarded by JWT auth when it is enabled
func (r *Router) protected(prefix string) *gin.RouterGroup {
	group := r.engine.Group(prefix)
	if r.config.API.Auth.Enabled {
		group.Use(middleware.JWTAuthMiddleware(jwt.IssuerFromConfig(r.config)))
	}
	return group
}

func (r *Router) registerAuthRoutes() {
	if !r.config.API.Auth.Enabled {
		return
	}
	registrar := &auth.AuthRegistrar{}
	if err := registrar.Register(r.engine, r.config); err != nil {
		logger.Error("Failed to register auth routes", logger.String("error", err.Error()))
	}
}

// registerAPIRoutes registers all API-specific routes
func (r *Router) registerAPIRoutes() {
	api := r.protected("/api")
	swap.RegisterRoutes(api, r.swapHandler)
	if r.systemHandler != nil {
		system.RegisterRoutes(api, r.systemHandler)
	}
	if r.gatherer != nil {
		metrics.RegisterRoutes(r.engine, r.gatherer)
	}
}

// registerWebSocketRoutes registers all WebSocket routes
func (r *Router) registerWebSocketRoutes() {
	websocket.RegisterWebSocketRoutes(r.protected("/ws"), r.wsRegistry)
}

// registerRootAPIEndpoint provides a simple API health check endpoint
func (r *Router) registerRootAPIEndpoint() {
	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"app":     r.config.AppName,
			"version": "1.0",
		})
	})

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
		})
	})
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

// Address returns the listen address of the HTTP server
func (r *Router) Address() string {
	return fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
}

// LoggerMiddleware creates a middleware for logging HTTP requests
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Header.Get("Upgrade") == "websocket" {
			c.Next()
			return
		}

		c.Next()

		logger.Debug("HTTP Request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
		)
	}
}
