package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allocatr/psa-api/internal/models"
	appErrors "github.com/allocatr/psa-api/pkg/errors"
)

func newAuthFixture() (*AuthService, *mockUsers) {
	users := &mockUsers{users: map[int]*models.User{
		1: {ID: 1, Name: "Alice", Username: "20240001", Password: "password", TypeID: models.RoleStudent},
	}}
	usersByName := &mockAuthUsers{mockUsers: users}
	svc := NewAuthService(usersByName, nil, nil, AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "psa-api-test",
	})
	return svc, users
}

type mockAuthUsers struct {
	*mockUsers
}

func (m *mockAuthUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc, _ := newAuthFixture()

	result, err := svc.Login(context.Background(), models.LoginRequest{
		Username: "20240001", Password: "password", TypeID: models.RoleStudent,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "Alice", result.User.Name)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.TypeID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Username: "20240001", Password: "nope", TypeID: models.RoleStudent,
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

// The declared type must match the stored role; a student cannot log in as
// staff even with the right password.
func TestLoginRejectsWrongType(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Username: "20240001", Password: "password", TypeID: models.RoleStaff,
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestLoginUnknownUserLooksLikeBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Username: "ghost", Password: "password", TypeID: models.RoleStudent,
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.ValidateToken("not.a.token")
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc, _ := newAuthFixture()
	other := NewAuthService(&mockAuthUsers{mockUsers: &mockUsers{}}, nil, nil, AuthConfig{
		Secret: "other-secret", Expiration: time.Hour, Issuer: "psa-api-test",
	})

	result, err := svc.Login(context.Background(), models.LoginRequest{
		Username: "20240001", Password: "password", TypeID: models.RoleStudent,
	})
	require.NoError(t, err)

	_, err = other.ValidateToken(result.AccessToken)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newAuthFixture()

	info, err := svc.CurrentUser(context.Background(), &models.JWTClaims{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Alice", info.Name)

	_, err = svc.CurrentUser(context.Background(), nil)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))

	_, err = svc.CurrentUser(context.Background(), &models.JWTClaims{UserID: 42})
	assert.True(t, appErrors.Is(err, appErrors.ErrUserNotFound))
}
