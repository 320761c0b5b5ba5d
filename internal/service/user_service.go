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

type userRepository interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) error
	ListAll(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id int, password string) error
}

// CreateUserRequest describes the signup payload.
type CreateUserRequest struct {
	Name     string          `json:"name" validate:"required"`
	Username string          `json:"username" validate:"required"`
	Password string          `json:"password" validate:"required"`
	TypeID   models.RoleCode `json:"typeId" validate:"required"`
}

// UpdateUserRequest overwrites a user record.
type UpdateUserRequest struct {
	ID       int             `json:"id" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Username string          `json:"username" validate:"required"`
	Password string          `json:"password" validate:"required"`
	TypeID   models.RoleCode `json:"typeId" validate:"required"`
}

// UpdatePasswordRequest changes a stored password.
type UpdatePasswordRequest struct {
	ID       int    `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserService handles the user directory CRUD.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Create signs up a new user. Username uniqueness lives here, not in the
// table, so concurrent signups for the same name can still slip through.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	taken, err := s.usernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, appErrors.ErrUsernameTaken
	}

	user := &models.User{Name: req.Name, Username: req.Username, Password: req.Password, TypeID: req.TypeID}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("user created", zap.Int("user_id", user.ID), zap.Int("type_id", int(user.TypeID)))
	return user, nil
}

// GetByID returns a user record.
func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// GetByUsername returns a user record by login name.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// GetIDByUsername resolves a login name to a user id.
func (s *UserService) GetIDByUsername(ctx context.Context, username string) (int, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Update overwrites a user record, role included.
func (s *UserService) Update(ctx context.Context, req UpdateUserRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}
	user := &models.User{ID: req.ID, Name: req.Name, Username: req.Username, Password: req.Password, TypeID: req.TypeID}
	if err := s.repo.Update(ctx, user); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}
	return nil
}

// Delete removes a user. Referencing projects or registrations are left to
// the foreign keys, which may reject the delete.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete user")
	}
	return nil
}

// ListAll returns every user.
func (s *UserService) ListAll(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, nil
}

// UpdatePassword overwrites a stored password.
func (s *UserService) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid password payload")
	}
	if err := s.repo.UpdatePassword(ctx, req.ID, req.Password); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}
	return nil
}

// VerifyPassword compares a candidate password with the stored one. Plain
// string equality, as the rest of the system expects. Lookup failures report
// as a failed verification rather than an error.
func (s *UserService) VerifyPassword(ctx context.Context, req models.VerifyPasswordRequest) bool {
	if err := s.validator.Struct(req); err != nil {
		return false
	}
	user, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return false
	}
	return user.Password == req.Password
}

func (s *UserService) usernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check username")
}
