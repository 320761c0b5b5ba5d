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

type registrationLedger interface {
	Insert(ctx context.Context, projectID, studentID int) (int, error)
	FindByStudent(ctx context.Context, studentID int) ([]models.RegistrationDetail, error)
	FindByStaff(ctx context.Context, staffID int) ([]models.RegistrationDetail, error)
	ExistsForPair(ctx context.Context, projectID, studentID int) (bool, error)
	ExistsAssignedForStudent(ctx context.Context, studentID int) (bool, error)
	DeleteOtherInterested(ctx context.Context, studentID, keepRegistrationID int) error
	SetState(ctx context.Context, registrationID int, state models.RegistrationState) error
	GetByID(ctx context.Context, registrationID int) (*models.Registration, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// RegisterRequest expresses a student's interest in a project.
type RegisterRequest struct {
	ProjectID int `json:"projectId" validate:"required"`
	StudentID int `json:"studentId" validate:"required"`
}

// RegistrationService enforces the allocation workflow around the ledger:
// one assignment per student, no duplicate interest, and role-gated reads.
// It is the only writer of registration rows.
type RegistrationService struct {
	ledger    registrationLedger
	users     userReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService constructs RegistrationService.
func NewRegistrationService(ledger registrationLedger, users userReader, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{ledger: ledger, users: users, validator: validate, logger: logger}
}

// Register creates an interested registration. The assigned check runs before
// the duplicate-interest check, so a student who is both assigned elsewhere
// and already interested in this project is told about the assignment.
func (s *RegistrationService) Register(ctx context.Context, req RegisterRequest) (*models.Registration, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	assigned, err := s.ledger.ExistsAssignedForStudent(ctx, req.StudentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignment")
	}
	if assigned {
		return nil, appErrors.ErrAlreadyAssigned
	}

	interested, err := s.ledger.ExistsForPair(ctx, req.ProjectID, req.StudentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check interest")
	}
	if interested {
		return nil, appErrors.ErrAlreadyInterested
	}

	id, err := s.ledger.Insert(ctx, req.ProjectID, req.StudentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create registration")
	}

	s.logger.Info("registration created",
		zap.Int("registration_id", id),
		zap.Int("project_id", req.ProjectID),
		zap.Int("student_id", req.StudentID))

	return &models.Registration{ID: id, ProjectID: req.ProjectID, StudentID: req.StudentID, State: models.StateInterested}, nil
}

// ListByStudent returns the student's registrations with names joined in.
// The user must exist and be a student; existence is checked first.
func (s *RegistrationService) ListByStudent(ctx context.Context, studentID int) ([]models.RegistrationDetail, error) {
	isStudent, err := s.hasRole(ctx, studentID, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	if !isStudent {
		return nil, appErrors.ErrNotAStudent
	}
	details, err := s.ledger.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	return details, nil
}

// ListByStaff returns registrations on projects owned by the staff member.
func (s *RegistrationService) ListByStaff(ctx context.Context, staffID int) ([]models.RegistrationDetail, error) {
	isStaff, err := s.hasRole(ctx, staffID, models.RoleStaff)
	if err != nil {
		return nil, err
	}
	if !isStaff {
		return nil, appErrors.ErrNotAStaff
	}
	details, err := s.ledger.FindByStaff(ctx, staffID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	return details, nil
}

// Assign approves a registration: the student's other interested rows are
// deleted, then the target row is marked assigned. Returns false, without
// error, when the registration does not exist.
//
// The delete and the state write are two independent statements. If the
// second fails after the first succeeded, the student's other interests are
// already gone while the target row is still interested; that partial outcome
// is surfaced as a storage error and is not rolled back.
func (s *RegistrationService) Assign(ctx context.Context, registrationID int) (bool, error) {
	registration, err := s.ledger.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registration")
	}

	if err := s.ledger.DeleteOtherInterested(ctx, registration.StudentID, registrationID); err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear other interests")
	}

	if err := s.ledger.SetState(ctx, registrationID, models.StateAssigned); err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign registration")
	}

	s.logger.Info("registration assigned",
		zap.Int("registration_id", registrationID),
		zap.Int("student_id", registration.StudentID))

	return true, nil
}

// IsAssigned reports whether the student already holds an assignment.
func (s *RegistrationService) IsAssigned(ctx context.Context, studentID int) (bool, error) {
	assigned, err := s.ledger.ExistsAssignedForStudent(ctx, studentID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignment")
	}
	return assigned, nil
}

// hasRole re-fetches the user row on every call; role checks are never
// cached. An unknown type code is neither student nor staff.
func (s *RegistrationService) hasRole(ctx context.Context, userID int, role models.RoleCode) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, appErrors.ErrUserNotFound
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user.TypeID == role, nil
}
