package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/store"
)

type HealthHandler struct {
	store store.RecordStore
}

func NewHealthHandler(s store.RecordStore) *HealthHandler {
	return &HealthHandler{store: s}
}

func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)
}

// Health probes the record store with a cheap read.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if _, err := h.store.GetAll(ctx, model.CollectionPatients); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
