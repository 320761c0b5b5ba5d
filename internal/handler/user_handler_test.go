package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allocatr/psa-api/internal/middleware"
	"github.com/allocatr/psa-api/internal/models"
	"github.com/allocatr/psa-api/internal/service"
	appErrors "github.com/allocatr/psa-api/pkg/errors"
)

type userServiceMock struct {
	createResp *models.User
	createErr  error
	getResp    *models.User
	getErr     error
	verifyResp bool
}

func (m *userServiceMock) Create(ctx context.Context, req service.CreateUserRequest) (*models.User, error) {
	return m.createResp, m.createErr
}

func (m *userServiceMock) GetByID(ctx context.Context, id int) (*models.User, error) {
	return m.getResp, m.getErr
}

func (m *userServiceMock) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.getResp, m.getErr
}

func (m *userServiceMock) GetIDByUsername(ctx context.Context, username string) (int, error) {
	if m.getErr != nil {
		return 0, m.getErr
	}
	return m.getResp.ID, nil
}

func (m *userServiceMock) Update(ctx context.Context, req service.UpdateUserRequest) error { return nil }
func (m *userServiceMock) Delete(ctx context.Context, id int) error                       { return nil }

func (m *userServiceMock) ListAll(ctx context.Context) ([]models.User, error) {
	if m.getResp == nil {
		return []models.User{}, nil
	}
	return []models.User{*m.getResp}, nil
}

func (m *userServiceMock) UpdatePassword(ctx context.Context, req service.UpdatePasswordRequest) error {
	return nil
}

func (m *userServiceMock) VerifyPassword(ctx context.Context, req models.VerifyPasswordRequest) bool {
	return m.verifyResp
}

type authServiceMock struct {
	loginResp *models.LoginResponse
	loginErr  error
	meResp    *models.UserInfo
	meErr     error
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return m.loginResp, m.loginErr
}

func (m *authServiceMock) CurrentUser(ctx context.Context, claims *models.JWTClaims) (*models.UserInfo, error) {
	return m.meResp, m.meErr
}

// Creation responses never leak the stored password.
func TestUserHandlerCreateStripsPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &userServiceMock{
		createResp: &models.User{ID: 5, Name: "Alice", Username: "20240001", Password: "password", TypeID: models.RoleStudent},
	}
	h := NewUserHandler(mockSvc, &authServiceMock{})

	payload, _ := json.Marshal(service.CreateUserRequest{Name: "Alice", Username: "20240001", Password: "password", TypeID: models.RoleStudent})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/user", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password\":")
}

func TestUserHandlerCreateUsernameTaken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(&userServiceMock{createErr: appErrors.ErrUsernameTaken}, &authServiceMock{})

	payload, _ := json.Marshal(service.CreateUserRequest{Name: "Alice", Username: "20240001", Password: "x", TypeID: models.RoleStudent})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/user", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandlerLoginInvalidCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(&userServiceMock{}, &authServiceMock{loginErr: appErrors.ErrInvalidCredentials})

	payload, _ := json.Marshal(models.LoginRequest{Username: "ghost", Password: "x", TypeID: models.RoleStudent})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/user/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Login(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandlerMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(&userServiceMock{}, &authServiceMock{
		meResp: &models.UserInfo{ID: 1, Name: "Alice", Username: "20240001", TypeID: models.RoleStudent},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/user/me", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 1})

	h.Me(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice")
}

func TestUserHandlerGetByIDBadParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(&userServiceMock{}, &authServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/user/id/abc", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.GetByID(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandlerVerifyPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(&userServiceMock{verifyResp: true}, &authServiceMock{})

	payload, _ := json.Marshal(models.VerifyPasswordRequest{ID: 1, Password: "password"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/user/verify-password", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.VerifyPassword(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"verified":true`)
}
