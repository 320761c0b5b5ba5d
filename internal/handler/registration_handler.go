package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allocatr/psa-api/internal/models"
	"github.com/allocatr/psa-api/internal/service"
	appErrors "github.com/allocatr/psa-api/pkg/errors"
	"github.com/allocatr/psa-api/pkg/response"
)

type registrationService interface {
	Register(ctx context.Context, req service.RegisterRequest) (*models.Registration, error)
	ListByStudent(ctx context.Context, studentID int) ([]models.RegistrationDetail, error)
	ListByStaff(ctx context.Context, staffID int) ([]models.RegistrationDetail, error)
	Assign(ctx context.Context, registrationID int) (bool, error)
	IsAssigned(ctx context.Context, studentID int) (bool, error)
}

type exportService interface {
	StaffRegistrations(ctx context.Context, staffID int, format string) (*service.ExportResult, error)
}

// RegistrationHandler exposes the allocation workflow endpoints.
type RegistrationHandler struct {
	registrations registrationService
	exports       exportService
}

// NewRegistrationHandler constructs RegistrationHandler. The export service
// may be nil when downloads are disabled.
func NewRegistrationHandler(registrations registrationService, exports exportService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations, exports: exports}
}

// Create godoc
// @Summary Express interest in a project
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body service.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Router /registration/create [post]
func (h *RegistrationHandler) Create(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	registration, err := h.registrations.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, registration)
}

// ListByStudent godoc
// @Summary List a student's registrations
// @Tags Registrations
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /registration/student/{studentId} [get]
func (h *RegistrationHandler) ListByStudent(c *gin.Context) {
	studentID, err := intParam(c, "studentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	details, err := h.registrations.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}

// ListByStaff godoc
// @Summary List registrations on a staff member's projects
// @Tags Registrations
// @Produce json
// @Param staffId path int true "Staff ID"
// @Success 200 {object} response.Envelope
// @Router /registration/students-registration/{staffId} [get]
func (h *RegistrationHandler) ListByStaff(c *gin.Context) {
	staffID, err := intParam(c, "staffId")
	if err != nil {
		response.Error(c, err)
		return
	}
	details, err := h.registrations.ListByStaff(c.Request.Context(), staffID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}

// Assign godoc
// @Summary Approve a registration
// @Tags Registrations
// @Produce json
// @Param registrationId path int true "Registration ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registration/assign/{registrationId} [put]
func (h *RegistrationHandler) Assign(c *gin.Context) {
	registrationID, err := intParam(c, "registrationId")
	if err != nil {
		response.Error(c, err)
		return
	}
	assigned, err := h.registrations.Assign(c.Request.Context(), registrationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !assigned {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "registration not found"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"assigned": true})
}

// IsAssigned godoc
// @Summary Check whether a student holds an assignment
// @Tags Registrations
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /registration/student/{studentId}/assigned [get]
func (h *RegistrationHandler) IsAssigned(c *gin.Context) {
	studentID, err := intParam(c, "studentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	assigned, err := h.registrations.IsAssigned(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"assigned": assigned})
}

// Export godoc
// @Summary Download registrations on a staff member's projects
// @Tags Registrations
// @Produce text/csv
// @Produce application/pdf
// @Param staffId path int true "Staff ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /registration/students-registration/{staffId}/export [get]
func (h *RegistrationHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	staffID, err := intParam(c, "staffId")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.StaffRegistrations(c.Request.Context(), staffID, c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
