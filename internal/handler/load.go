package handler

import (
	"context"
	"errors"
	"net/http"

	"cep-loader/internal/lookup"
	"cep-loader/internal/repository"
	"cep-loader/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoadHandler handles invocation requests
type LoadHandler struct {
	service LoadService
}

// Service interface for dependency injection
type LoadService interface {
	Load(ctx context.Context, requestID string) (*service.LoadResult, error)
}

// NewLoadHandler creates a new load handler
func NewLoadHandler(svc LoadService) *LoadHandler {
	return &LoadHandler{service: svc}
}

// Load handles POST /load requests
//
//	@Summary		Load the configured postal code record
//	@Description	Fetches the configured CEP from the lookup service and persists it
//	@Produce		json
//	@Param			X-Request-ID	header	string	false	"Correlation id; generated when absent"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		404	{object}	map[string]interface{}
//	@Failure		500	{object}	map[string]interface{}
//	@Failure		502	{object}	map[string]interface{}
//	@Router			/load [post]
func (h *LoadHandler) Load(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	result, err := h.service.Load(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "postal code not found", "request_id": requestID})
			return
		}
		if errors.Is(err, repository.ErrConnection) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "request_id": requestID})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "postal code lookup failed", "request_id": requestID})
		return
	}

	resp := gin.H{
		"request_id": requestID,
		"persisted":  result.Persisted,
		"address":    result.Address,
	}
	if result.PersistErr != nil {
		resp["error"] = "address could not be persisted"
	}

	c.JSON(http.StatusOK, resp)
}
