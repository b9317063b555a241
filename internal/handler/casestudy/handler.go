package casestudy

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omermarcel/renaltrack/internal/handler"
	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/service/casestudy"
)

type Handler struct {
	service casestudy.CaseStudyService
}

func NewHandler(service casestudy.CaseStudyService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	studies := r.Group("/case-studies")
	{
		studies.POST("", h.CreateCaseStudy)
		studies.GET("", h.ListCaseStudies)
		studies.GET("/:id", h.GetCaseStudy)
		studies.PUT("/:id", h.UpdateCaseStudy)
		studies.DELETE("/:id", h.DeleteCaseStudy)
	}
}

func (h *Handler) CreateCaseStudy(c *gin.Context) {
	var req model.CreateCaseStudyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateCaseStudy(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetCaseStudy(c *gin.Context) {
	found, err := h.service.GetCaseStudy(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) ListCaseStudies(c *gin.Context) {
	var filter model.CaseStudyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	studies, err := h.service.ListCaseStudies(c.Request.Context(), &filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(studies))
}

func (h *Handler) UpdateCaseStudy(c *gin.Context) {
	var req model.UpdateCaseStudyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.UpdateCaseStudy(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) DeleteCaseStudy(c *gin.Context) {
	if err := h.service.DeleteCaseStudy(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
