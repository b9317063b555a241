package exam

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/omermarcel/renaltrack/internal/handler"
	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/service/exam"
)

type Handler struct {
	service exam.ExamService
}

func NewHandler(service exam.ExamService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	exams := r.Group("/exams")
	{
		exams.POST("", h.CreateExam)
		exams.GET("", h.ListExams)
		exams.GET("/:id", h.GetExam)
		exams.GET("/:id/patient", h.ResolvePatient)
		exams.PUT("/:id", h.UpdateExam)
		exams.DELETE("/:id", h.DeleteExam)
	}
}

func (h *Handler) CreateExam(c *gin.Context) {
	var req model.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateExam(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetExam(c *gin.Context) {
	found, err := h.service.GetExam(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

// ResolvePatient returns the patient the exam refers to, resolving the
// reference whether it holds a patient id or a free-typed name.
func (h *Handler) ResolvePatient(c *gin.Context) {
	found, err := h.service.GetExam(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	ref, err := h.service.ResolvePatient(c.Request.Context(), found)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(ref))
}

func (h *Handler) ListExams(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	exams, err := h.service.ListExams(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(exams))
}

func bindFilter(c *gin.Context) (*model.ExamFilter, error) {
	filter := &model.ExamFilter{
		PatientRef: c.Query("patient_ref"),
		Type:       c.Query("type"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
		filter.Dates.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
		filter.Dates.To = t
	}
	return filter, nil
}

func (h *Handler) UpdateExam(c *gin.Context) {
	var req model.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.UpdateExam(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) DeleteExam(c *gin.Context) {
	if err := h.service.DeleteExam(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
