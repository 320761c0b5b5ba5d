package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/allocatr/psa-api/internal/models"
)

// ProjectRepository provides database access for the project catalog.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository constructs the repository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectSelect = `SELECT p.project_id, p.title, p.description, p.staff_id, p.available, u.name AS staff_name
        FROM projects p
        JOIN users u ON p.staff_id = u.user_id`

// Create inserts a project and fills in the generated id.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	const query = `INSERT INTO projects (title, description, staff_id, available) VALUES ($1, $2, $3, $4) RETURNING project_id`
	if err := r.db.GetContext(ctx, &project.ID, query, project.Title, project.Description, project.StaffID, project.Available); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// GetByID returns a project with its owner's display name joined in, or
// sql.ErrNoRows when absent.
func (r *ProjectRepository) GetByID(ctx context.Context, id int) (*models.Project, error) {
	query := projectSelect + ` WHERE p.project_id = $1`
	var project models.Project
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		return nil, err
	}
	return &project, nil
}

// Update overwrites the mutable fields of a project.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	const query = `UPDATE projects SET title = $1, description = $2, staff_id = $3, available = $4 WHERE project_id = $5`
	if _, err := r.db.ExecContext(ctx, query, project.Title, project.Description, project.StaffID, project.Available, project.ID); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// Delete removes a project row.
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM projects WHERE project_id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// ListAll returns every project with owner names joined in.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.db.SelectContext(ctx, &projects, projectSelect); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// FindByStaff returns the projects owned by a staff member.
func (r *ProjectRepository) FindByStaff(ctx context.Context, staffID int) ([]models.Project, error) {
	query := projectSelect + ` WHERE p.staff_id = $1`
	projects := []models.Project{}
	if err := r.db.SelectContext(ctx, &projects, query, staffID); err != nil {
		return nil, fmt.Errorf("find projects by staff: %w", err)
	}
	return projects, nil
}

// MakeUnavailable flips the availability flag off. One-way in practice:
// nothing in the workflow turns it back on besides a full update.
func (r *ProjectRepository) MakeUnavailable(ctx context.Context, projectID int) error {
	const query = `UPDATE projects SET available = $1 WHERE project_id = $2`
	if _, err := r.db.ExecContext(ctx, query, models.ProjectUnavailable, projectID); err != nil {
		return fmt.Errorf("make project unavailable: %w", err)
	}
	return nil
}
