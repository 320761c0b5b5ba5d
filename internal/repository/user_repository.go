package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/allocatr/psa-api/internal/models"
)

// UserRepository provides database access for the user directory.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID returns a user by identifier, or sql.ErrNoRows when absent.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	const query = `SELECT user_id, name, username, password, type_id FROM users WHERE user_id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername returns a user by login name, or sql.ErrNoRows when absent.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `SELECT user_id, name, username, password, type_id FROM users WHERE username = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and fills in the generated id. Username
// uniqueness is enforced by the user service, not by the table.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO users (name, username, password, type_id) VALUES ($1, $2, $3, $4) RETURNING user_id`
	if err := r.db.GetContext(ctx, &user.ID, query, user.Name, user.Username, user.Password, user.TypeID); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of a user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	const query = `UPDATE users SET name = $1, username = $2, password = $3, type_id = $4 WHERE user_id = $5`
	if _, err := r.db.ExecContext(ctx, query, user.Name, user.Username, user.Password, user.TypeID, user.ID); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete removes a user row. Rows referencing the user are not cleaned up
// here; the foreign keys decide whether the delete goes through.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM users WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ListAll returns every user record.
func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	const query = `SELECT user_id, name, username, password, type_id FROM users`
	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdatePassword overwrites a user's stored password.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, password string) error {
	const query = `UPDATE users SET password = $1 WHERE user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, password, id); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// CreateAuditLog stores an audit entry for a completed mutating request.
func (r *UserRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, user_id, action, resource, detail, ip_address, user_agent, created_at)
        VALUES (:id, :user_id, :action, :resource, :detail, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
