package api

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/Flowearn/Flow-data/internal/panel"
	"github.com/gin-gonic/gin"
)

// This file is the entry point for the API package: the handler struct, its
// dependencies, and the route table. The handlers, middleware, validation,
// and the websocket stream live in their own files:
// - api.go: handler struct, dependencies, routes (this file)
// - handler.go: HTTP request handlers
// - middleware.go: middleware functions
// - validator.go: request validation
// - stream.go: websocket panel stream

// Constants
const (
	DefaultTimeout      = 30 * time.Second
	ServiceVersion      = "1.0.0"
	ServiceName         = "flow-data-dashboard"
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
)

// PanelService is what the dashboard surface needs from the panel layer.
type PanelService interface {
	Views() []panel.View
	View(name string) (panel.View, bool)
	SetSymbol(symbol string)
	SetInterval(interval string)
	Symbol() string
	Interval() string
	Subscribe() (<-chan panel.View, func())
}

// AssistantService answers chat widget messages.
type AssistantService interface {
	Reply(message string) string
}

// APIHandler handles HTTP requests using Gin framework
type APIHandler struct {
	panels    PanelService
	assistant AssistantService
	validator *Validator
	logger    *slog.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(panels PanelService, assistant AssistantService, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &APIHandler{
		panels:    panels,
		assistant: assistant,
		validator: GetValidator(),
		logger:    logger,
	}
}

// StartServer starts the HTTP server
func (h *APIHandler) StartServer(port int) error {
	router := h.SetupRoutes()
	return router.Run(":" + strconv.Itoa(port))
}

// SetupRoutes configures all API routes
func (h *APIHandler) SetupRoutes() *gin.Engine {
	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add middleware
	router.Use(requestIDMiddleware())
	router.Use(ginLoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// API routes
	v1 := router.Group("/api/v1")
	v1.GET("/panels", h.GetPanels)
	v1.GET("/panels/:name", h.GetPanel)
	v1.PUT("/symbol", h.SetSymbol)
	v1.PUT("/interval", h.SetInterval)
	v1.POST("/assistant", h.Assistant)

	router.GET("/ws", h.StreamPanels)
	router.GET("/health", h.HealthCheck)

	return router
}
