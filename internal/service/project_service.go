package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/allocatr/psa-api/internal/models"
	appErrors "github.com/allocatr/psa-api/pkg/errors"
)

type projectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id int) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id int) error
	ListAll(ctx context.Context) ([]models.Project, error)
	FindByStaff(ctx context.Context, staffID int) ([]models.Project, error)
	MakeUnavailable(ctx context.Context, projectID int) error
}

// CreateProjectRequest describes the project creation payload.
type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	StaffID     int    `json:"staffId" validate:"required"`
	Available   int    `json:"available"`
}

// UpdateProjectRequest overwrites a project record.
type UpdateProjectRequest struct {
	ID          int    `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	StaffID     int    `json:"staffId" validate:"required"`
	Available   int    `json:"available"`
}

// ProjectService handles the project catalog.
type ProjectService struct {
	repo      projectRepository
	users     userReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProjectService constructs ProjectService.
func NewProjectService(repo projectRepository, users userReader, validate *validator.Validate, logger *zap.Logger) *ProjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{repo: repo, users: users, validator: validate, logger: logger}
}

// Create stores a new project. The staff id is taken at face value: only the
// foreign key guards it, and nothing verifies the referenced user is actually
// staff. Staff-scoped listing does check, so the two sides are asymmetric.
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid project payload")
	}
	project := &models.Project{Title: req.Title, Description: req.Description, StaffID: req.StaffID, Available: req.Available}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create project")
	}
	s.logger.Info("project created", zap.Int("project_id", project.ID), zap.Int("staff_id", project.StaffID))
	return project, nil
}

// GetByID returns a project with its owner name joined in.
func (s *ProjectService) GetByID(ctx context.Context, id int) (*models.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load project")
	}
	return project, nil
}

// Update overwrites a project record.
func (s *ProjectService) Update(ctx context.Context, req UpdateProjectRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid project payload")
	}
	project := &models.Project{ID: req.ID, Title: req.Title, Description: req.Description, StaffID: req.StaffID, Available: req.Available}
	if err := s.repo.Update(ctx, project); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update project")
	}
	return nil
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete project")
	}
	return nil
}

// ListAll returns every project.
func (s *ProjectService) ListAll(ctx context.Context) ([]models.Project, error) {
	projects, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list projects")
	}
	return projects, nil
}

// ListByStaff returns the projects owned by a staff member. Unlike creation,
// this path does verify the caller's role.
func (s *ProjectService) ListByStaff(ctx context.Context, staffID int) ([]models.Project, error) {
	user, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if user.TypeID != models.RoleStaff {
		return nil, appErrors.ErrNotAStaff
	}
	projects, err := s.repo.FindByStaff(ctx, staffID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list projects")
	}
	return projects, nil
}

// MakeUnavailable flips the availability flag off so the project stops
// taking new interest. Existing registrations are untouched.
func (s *ProjectService) MakeUnavailable(ctx context.Context, projectID int) error {
	if err := s.repo.MakeUnavailable(ctx, projectID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to make project unavailable")
	}
	return nil
}
