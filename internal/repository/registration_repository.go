package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/allocatr/psa-api/internal/models"
)

// RegistrationRepository is the registration ledger: durable storage and
// direct queries over registration rows. It performs no business validation;
// the registration service enforces the workflow invariants around each call.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs the repository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const registrationDetailSelect = `SELECT pr.registration_id, pr.project_id, pr.student_id, pr.registration_state,
        u.name AS student_name, p.title AS project_title, uf.name AS staff_name
        FROM project_registrations pr
        JOIN users u ON pr.student_id = u.user_id
        JOIN projects p ON pr.project_id = p.project_id
        JOIN users uf ON p.staff_id = uf.user_id`

// Insert creates an interested registration and returns its generated id.
func (r *RegistrationRepository) Insert(ctx context.Context, projectID, studentID int) (int, error) {
	const query = `INSERT INTO project_registrations (project_id, student_id, registration_state)
        VALUES ($1, $2, $3) RETURNING registration_id`
	var id int
	if err := r.db.GetContext(ctx, &id, query, projectID, studentID, models.StateInterested); err != nil {
		return 0, fmt.Errorf("insert registration: %w", err)
	}
	return id, nil
}

// FindByStudent returns the joined registration views for a student.
func (r *RegistrationRepository) FindByStudent(ctx context.Context, studentID int) ([]models.RegistrationDetail, error) {
	query := registrationDetailSelect + ` WHERE pr.student_id = $1`
	details := []models.RegistrationDetail{}
	if err := r.db.SelectContext(ctx, &details, query, studentID); err != nil {
		return nil, fmt.Errorf("find registrations by student: %w", err)
	}
	return details, nil
}

// FindByStaff returns the joined registration views scoped to projects owned
// by the given staff member.
func (r *RegistrationRepository) FindByStaff(ctx context.Context, staffID int) ([]models.RegistrationDetail, error) {
	query := registrationDetailSelect + ` WHERE p.staff_id = $1`
	details := []models.RegistrationDetail{}
	if err := r.db.SelectContext(ctx, &details, query, staffID); err != nil {
		return nil, fmt.Errorf("find registrations by staff: %w", err)
	}
	return details, nil
}

// ExistsForPair reports whether any registration row exists for the
// (project, student) pair. The check deliberately ignores state: the system
// this replaces suppressed re-registration against a pair in any state, and
// callers depend on that.
func (r *RegistrationRepository) ExistsForPair(ctx context.Context, projectID, studentID int) (bool, error) {
	const query = `SELECT COUNT(*) FROM project_registrations WHERE project_id = $1 AND student_id = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, projectID, studentID); err != nil {
		return false, fmt.Errorf("check registration pair: %w", err)
	}
	return count > 0, nil
}

// ExistsAssignedForStudent reports whether the student holds an assigned
// registration on any project.
func (r *RegistrationRepository) ExistsAssignedForStudent(ctx context.Context, studentID int) (bool, error) {
	const query = `SELECT COUNT(*) FROM project_registrations WHERE student_id = $1 AND registration_state = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, studentID, models.StateAssigned); err != nil {
		return false, fmt.Errorf("check assigned registration: %w", err)
	}
	return count > 0, nil
}

// DeleteOtherInterested removes every interested row for the student except
// the one being kept. Running it again is a no-op.
func (r *RegistrationRepository) DeleteOtherInterested(ctx context.Context, studentID, keepRegistrationID int) error {
	const query = `DELETE FROM project_registrations
        WHERE student_id = $1 AND registration_state = $2 AND registration_id != $3`
	if _, err := r.db.ExecContext(ctx, query, studentID, models.StateInterested, keepRegistrationID); err != nil {
		return fmt.Errorf("delete interested registrations: %w", err)
	}
	return nil
}

// SetState overwrites a registration's state unconditionally. The
// registration service is the sole caller and only ever writes Assigned.
func (r *RegistrationRepository) SetState(ctx context.Context, registrationID int, state models.RegistrationState) error {
	const query = `UPDATE project_registrations SET registration_state = $1 WHERE registration_id = $2`
	if _, err := r.db.ExecContext(ctx, query, state, registrationID); err != nil {
		return fmt.Errorf("update registration state: %w", err)
	}
	return nil
}

// GetByID returns the raw ledger row, or sql.ErrNoRows when absent.
func (r *RegistrationRepository) GetByID(ctx context.Context, registrationID int) (*models.Registration, error) {
	const query = `SELECT registration_id, project_id, student_id, registration_state
        FROM project_registrations WHERE registration_id = $1`
	var registration models.Registration
	if err := r.db.GetContext(ctx, &registration, query, registrationID); err != nil {
		return nil, err
	}
	return &registration, nil
}
