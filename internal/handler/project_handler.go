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

type projectService interface {
	Create(ctx context.Context, req service.CreateProjectRequest) (*models.Project, error)
	GetByID(ctx context.Context, id int) (*models.Project, error)
	Update(ctx context.Context, req service.UpdateProjectRequest) error
	Delete(ctx context.Context, id int) error
	ListAll(ctx context.Context) ([]models.Project, error)
	ListByStaff(ctx context.Context, staffID int) ([]models.Project, error)
	MakeUnavailable(ctx context.Context, projectID int) error
}

// ProjectHandler exposes the project catalog endpoints.
type ProjectHandler struct {
	projects projectService
}

// NewProjectHandler constructs ProjectHandler.
func NewProjectHandler(projects projectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// Create godoc
// @Summary Create a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param payload body service.CreateProjectRequest true "Project payload"
// @Success 201 {object} response.Envelope
// @Router /project/create [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	project, err := h.projects.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

// GetByID godoc
// @Summary Get a project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /project/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	project, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, project)
}

// Update godoc
// @Summary Update a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param payload body service.UpdateProjectRequest true "Project payload"
// @Success 200 {object} response.Envelope
// @Router /project [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req service.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.projects.Update(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}

// Delete godoc
// @Summary Delete a project
// @Tags Projects
// @Param id path int true "Project ID"
// @Success 204 "No Content"
// @Router /project/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListAll godoc
// @Summary List every project
// @Tags Projects
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /project/all [get]
func (h *ProjectHandler) ListAll(c *gin.Context) {
	projects, err := h.projects.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, projects)
}

// ListByStaff godoc
// @Summary List a staff member's projects
// @Tags Projects
// @Produce json
// @Param staffId path int true "Staff ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /project/staff/{staffId} [get]
func (h *ProjectHandler) ListByStaff(c *gin.Context) {
	staffID, err := intParam(c, "staffId")
	if err != nil {
		response.Error(c, err)
		return
	}
	projects, err := h.projects.ListByStaff(c.Request.Context(), staffID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, projects)
}

// MakeUnavailable godoc
// @Summary Mark a project unavailable
// @Tags Projects
// @Produce json
// @Param projectId path int true "Project ID"
// @Success 200 {object} response.Envelope
// @Router /project/make-unavailable/{projectId} [put]
func (h *ProjectHandler) MakeUnavailable(c *gin.Context) {
	projectID, err := intParam(c, "projectId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.projects.MakeUnavailable(c.Request.Context(), projectID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"available": false})
}
