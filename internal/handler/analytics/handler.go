package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omermarcel/renaltrack/internal/handler"
	"github.com/omermarcel/renaltrack/internal/service/analytics"
)

type Handler struct {
	service *analytics.Service
}

func NewHandler(service *analytics.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/analytics")
	{
		group.GET("/stats", h.GetStats)
		group.GET("/charts", h.GetCharts)
	}
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}

func (h *Handler) GetCharts(c *gin.Context) {
	charts, err := h.service.Charts(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(charts))
}
