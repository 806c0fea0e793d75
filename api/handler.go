package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetPanels handles GET /api/v1/panels requests
func (h *APIHandler) GetPanels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"symbol":   h.panels.Symbol(),
		"interval": h.panels.Interval(),
		"panels":   h.panels.Views(),
	})
}

// GetPanel handles GET /api/v1/panels/:name requests
func (h *APIHandler) GetPanel(c *gin.Context) {
	name := c.Param("name")

	view, ok := h.panels.View(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown panel: " + name})
		return
	}

	c.JSON(http.StatusOK, view)
}

type symbolRequest struct {
	Symbol string `json:"symbol"`
}

// SetSymbol handles PUT /api/v1/symbol requests. Changing the active symbol
// restarts every panel's fetch cycle under the new identity.
func (h *APIHandler) SetSymbol(c *gin.Context) {
	var req symbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(c, err)
		return
	}

	cleanSymbol, err := h.validator.ValidateSymbol(req.Symbol)
	if err != nil {
		h.handleValidationError(c, err)
		return
	}

	h.panels.SetSymbol(cleanSymbol)
	c.JSON(http.StatusOK, gin.H{"symbol": cleanSymbol})
}

type intervalRequest struct {
	Interval string `json:"interval"`
}

// SetInterval handles PUT /api/v1/interval requests
func (h *APIHandler) SetInterval(c *gin.Context) {
	var req intervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(c, err)
		return
	}

	cleanInterval, err := h.validator.ValidateInterval(req.Interval)
	if err != nil {
		h.handleValidationError(c, err)
		return
	}

	h.panels.SetInterval(cleanInterval)
	c.JSON(http.StatusOK, gin.H{"interval": cleanInterval})
}

type assistantRequest struct {
	Message string `json:"message"`
}

// Assistant handles POST /api/v1/assistant requests
func (h *APIHandler) Assistant(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(c, err)
		return
	}

	cleanMessage, err := h.validator.ValidateMessage(req.Message)
	if err != nil {
		h.handleValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": h.assistant.Reply(cleanMessage)})
}

// HealthCheck handles GET /health requests
func (h *APIHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   ServiceVersion,
	})
}

// handleError logs the error and sends appropriate HTTP response
func (h *APIHandler) handleError(c *gin.Context, err error, statusCode int, userMessage string) {
	requestID, exists := c.Get(RequestIDContextKey)
	requestIDStr := "unknown"
	if exists {
		if id, ok := requestID.(string); ok {
			requestIDStr = id
		}
	}

	h.logger.Error("API error",
		slog.String("request_id", requestIDStr),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()),
		slog.Int("status_code", statusCode),
	)

	c.JSON(statusCode, gin.H{
		"error":      userMessage,
		"request_id": requestIDStr,
	})
}

// handleValidationError handles validation errors specifically
func (h *APIHandler) handleValidationError(c *gin.Context, err error) {
	h.handleError(c, err, http.StatusBadRequest, err.Error())
}
