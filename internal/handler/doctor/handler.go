package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omermarcel/renaltrack/internal/handler"
	"github.com/omermarcel/renaltrack/internal/model"
	"github.com/omermarcel/renaltrack/internal/service/doctor"
	"github.com/omermarcel/renaltrack/internal/service/resolver"
)

type Handler struct {
	service  doctor.DoctorService
	resolver *resolver.Service
}

func NewHandler(service doctor.DoctorService, resolver *resolver.Service) *Handler {
	return &Handler{service: service, resolver: resolver}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.CreateDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
		doctors.PUT("/:id", h.UpdateDoctor)
		doctors.DELETE("/:id", h.DeleteDoctor)

		doctors.GET("/:id/patients", h.ListDoctorPatients)
		doctors.POST("/:id/patients/:patientId", h.AssignPatient)
		doctors.DELETE("/:id/patients/:patientId", h.UnassignPatient)
	}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateDoctor(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	found, err := h.service.GetDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	filter := &model.DoctorFilter{
		Search:    c.Query("search"),
		Status:    model.DoctorStatus(c.Query("status")),
		Specialty: model.DoctorSpecialty(c.Query("specialty")),
	}

	doctors, err := h.service.ListDoctors(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.UpdateDoctor(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	if err := h.service.DeleteDoctor(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

// ListDoctorPatients expands the doctor's patient references. Stale
// references come back as unknown entries instead of failing the listing.
func (h *Handler) ListDoctorPatients(c *gin.Context) {
	found, err := h.service.GetDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	refs, err := h.resolver.DoctorPatients(c.Request.Context(), found)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(refs))
}

func (h *Handler) AssignPatient(c *gin.Context) {
	updated, err := h.service.AssignPatient(c.Request.Context(), c.Param("id"), c.Param("patientId"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) UnassignPatient(c *gin.Context) {
	updated, err := h.service.UnassignPatient(c.Request.Context(), c.Param("id"), c.Param("patientId"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}
