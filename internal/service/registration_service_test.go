package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allocatr/psa-api/internal/models"
	appErrors "github.com/allocatr/psa-api/pkg/errors"
)

type mockLedger struct {
	rows       map[int]models.Registration
	nextID     int
	assigned   map[int]bool
	pairExists map[[2]int]bool

	insertErr   error
	setStateErr error
	deleteErr   error

	deleteCalls   [][2]int
	setStateCalls []int
}

func (m *mockLedger) Insert(ctx context.Context, projectID, studentID int) (int, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	if m.rows == nil {
		m.rows = make(map[int]models.Registration)
	}
	m.nextID++
	m.rows[m.nextID] = models.Registration{ID: m.nextID, ProjectID: projectID, StudentID: studentID, State: models.StateInterested}
	return m.nextID, nil
}

func (m *mockLedger) FindByStudent(ctx context.Context, studentID int) ([]models.RegistrationDetail, error) {
	details := []models.RegistrationDetail{}
	for _, row := range m.rows {
		if row.StudentID == studentID {
			details = append(details, models.RegistrationDetail{Registration: row})
		}
	}
	return details, nil
}

func (m *mockLedger) FindByStaff(ctx context.Context, staffID int) ([]models.RegistrationDetail, error) {
	details := []models.RegistrationDetail{}
	for _, row := range m.rows {
		details = append(details, models.RegistrationDetail{Registration: row})
	}
	return details, nil
}

func (m *mockLedger) ExistsForPair(ctx context.Context, projectID, studentID int) (bool, error) {
	return m.pairExists[[2]int{projectID, studentID}], nil
}

func (m *mockLedger) ExistsAssignedForStudent(ctx context.Context, studentID int) (bool, error) {
	return m.assigned[studentID], nil
}

func (m *mockLedger) DeleteOtherInterested(ctx context.Context, studentID, keepRegistrationID int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleteCalls = append(m.deleteCalls, [2]int{studentID, keepRegistrationID})
	for id, row := range m.rows {
		if row.StudentID == studentID && row.State == models.StateInterested && id != keepRegistrationID {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *mockLedger) SetState(ctx context.Context, registrationID int, state models.RegistrationState) error {
	if m.setStateErr != nil {
		return m.setStateErr
	}
	m.setStateCalls = append(m.setStateCalls, registrationID)
	if row, ok := m.rows[registrationID]; ok {
		row.State = state
		m.rows[registrationID] = row
	}
	return nil
}

func (m *mockLedger) GetByID(ctx context.Context, registrationID int) (*models.Registration, error) {
	row, ok := m.rows[registrationID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

type mockUsers struct {
	users map[int]*models.User
	calls int
}

func (m *mockUsers) GetByID(ctx context.Context, id int) (*models.User, error) {
	m.calls++
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func newRegistrationFixture() (*RegistrationService, *mockLedger, *mockUsers) {
	ledger := &mockLedger{
		rows:       map[int]models.Registration{},
		assigned:   map[int]bool{},
		pairExists: map[[2]int]bool{},
		nextID:     100,
	}
	users := &mockUsers{users: map[int]*models.User{
		1: {ID: 1, Name: "Alice", Username: "20240001", TypeID: models.RoleStudent},
		2: {ID: 2, Name: "Bob", Username: "20240002", TypeID: models.RoleStaff},
	}}
	return NewRegistrationService(ledger, users, nil, nil), ledger, users
}

func TestRegisterCreatesInterestedRegistration(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	registration, err := svc.Register(context.Background(), RegisterRequest{ProjectID: 10, StudentID: 1})
	require.NoError(t, err)
	assert.Equal(t, 10, registration.ProjectID)
	assert.Equal(t, 1, registration.StudentID)
	assert.Equal(t, models.StateInterested, registration.State)
	assert.NotZero(t, registration.ID)
}

func TestRegisterRejectsAssignedStudent(t *testing.T) {
	svc, ledger, _ := newRegistrationFixture()
	ledger.assigned[1] = true

	_, err := svc.Register(context.Background(), RegisterRequest{ProjectID: 10, StudentID: 1})
	assert.True(t, appErrors.Is(err, appErrors.ErrAlreadyAssigned))
}

// A student who is both assigned elsewhere and already interested in the
// target project hears about the assignment, not the duplicate.
func TestRegisterAssignedCheckWinsOverDuplicate(t *testing.T) {
	svc, ledger, _ := newRegistrationFixture()
	ledger.assigned[1] = true
	ledger.pairExists[[2]int{10, 1}] = true

	_, err := svc.Register(context.Background(), RegisterRequest{ProjectID: 10, StudentID: 1})
	assert.True(t, appErrors.Is(err, appErrors.ErrAlreadyAssigned))
}

func TestRegisterRejectsDuplicateInterest(t *testing.T) {
	svc, ledger, _ := newRegistrationFixture()
	ledger.pairExists[[2]int{10, 1}] = true

	_, err := svc.Register(context.Background(), RegisterRequest{ProjectID: 10, StudentID: 1})
	assert.True(t, appErrors.Is(err, appErrors.ErrAlreadyInterested))
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.Register(context.Background(), RegisterRequest{ProjectID: 10})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAssignMarksTargetAndClearsOtherInterest(t *testing.T) {
	svc, ledger, _ := newRegistrationFixture()
	ledger.rows[201] = models.Registration{ID: 201, ProjectID: 10, StudentID: 1, State: models.StateInterested}
	ledger.rows[202] = models.Registration{ID: 202, ProjectID: 11, StudentID: 1, State: models.StateInterested}
	ledger.rows[203] = models.Registration{ID: 203, ProjectID: 10, StudentID: 5, State: models.StateInterested}

	assigned, err := svc.Assign(context.Background(), 201)
	require.NoError(t, err)
	assert.True(t, assigned)

	assert.Equal(t, models.StateAssigned, ledger.rows[201].State)
	_, otherGone := ledger.rows[202]
	assert.False(t, otherGone, "other interest of the same student should be withdrawn")
	_, unrelatedKept := ledger.rows[203]
	assert.True(t, unrelatedKept, "other students' interest must survive")
}

func TestAssignMissingRegistrationReturnsFalse(t *testing.T) {
	svc, ledger, _ := newRegistrationFixture()

	assigned, err := svc.Assign(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, assigned)
	assert.Empty(t, ledger.deleteCalls)
	assert.Empty(t, ledger.setStateCalls)
}

// Re-approving an already assigned registration runs the same two steps and
// reports success again.
func TestAssignIsIdempotentOnAssignedRow(t *testing.T) {
	svc, ledger, _ := newRegistrationFixture()
	ledger.rows[201] = models.Registration{ID: 201, ProjectID: 10, StudentID: 1, State: models.StateInterested}

	assigned, err := svc.Assign(context.Background(), 201)
	require.NoError(t, err)
	require.True(t, assigned)

	assigned, err = svc.Assign(context.Background(), 201)
	require.NoError(t, err)
	assert.True(t, assigned)
	assert.Equal(t, models.StateAssigned, ledger.rows[201].State)
}

// When the state write fails after the delete succeeded, the partial outcome
// surfaces as an error and nothing is restored.
func TestAssignPartialFailureIsNotRolledBack(t *testing.T) {
	svc, ledger, _ := newRegistrationFixture()
	ledger.rows[201] = models.Registration{ID: 201, ProjectID: 10, StudentID: 1, State: models.StateInterested}
	ledger.rows[202] = models.Registration{ID: 202, ProjectID: 11, StudentID: 1, State: models.StateInterested}
	ledger.setStateErr = errors.New("connection reset")

	assigned, err := svc.Assign(context.Background(), 201)
	assert.False(t, assigned)
	assert.True(t, appErrors.Is(err, appErrors.ErrInternal))

	_, otherGone := ledger.rows[202]
	assert.False(t, otherGone, "the delete already happened and stays")
	assert.Equal(t, models.StateInterested, ledger.rows[201].State)
}

func TestListByStudentRequiresExistingUser(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.ListByStudent(context.Background(), 42)
	assert.True(t, appErrors.Is(err, appErrors.ErrUserNotFound))
}

func TestListByStudentRejectsStaff(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.ListByStudent(context.Background(), 2)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotAStudent))
}

func TestListByStaffRejectsStudent(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.ListByStaff(context.Background(), 1)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotAStaff))
}

func TestListByStaffMissingUserBeatsRoleCheck(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	_, err := svc.ListByStaff(context.Background(), 42)
	assert.True(t, appErrors.Is(err, appErrors.ErrUserNotFound))
}

// Unknown role codes are neither student nor staff.
func TestUnknownRoleFailsBothGates(t *testing.T) {
	svc, _, users := newRegistrationFixture()
	users.users[9] = &models.User{ID: 9, Name: "Odd", Username: "odd", TypeID: models.RoleCode(7)}

	_, err := svc.ListByStudent(context.Background(), 9)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotAStudent))

	_, err = svc.ListByStaff(context.Background(), 9)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotAStaff))
}

// Role checks hit the user store on every call; nothing is cached between
// them.
func TestRoleChecksRefetchEveryCall(t *testing.T) {
	svc, _, users := newRegistrationFixture()

	_, err := svc.ListByStudent(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.ListByStudent(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, users.calls)
}

func TestListByStudentReturnsEmptySliceNotNil(t *testing.T) {
	svc, _, _ := newRegistrationFixture()

	details, err := svc.ListByStudent(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, details)
	assert.Empty(t, details)
}

func TestIsAssigned(t *testing.T) {
	svc, ledger, _ := newRegistrationFixture()

	assigned, err := svc.IsAssigned(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, assigned)

	ledger.assigned[1] = true
	assigned, err = svc.IsAssigned(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, assigned)
}
