package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allocatr/psa-api/internal/models"
	"github.com/allocatr/psa-api/internal/service"
)

type staticUserReader struct {
	user *models.User
}

func (s *staticUserReader) GetByID(ctx context.Context, id int) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *staticUserReader) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, sql.ErrNoRows
}

func newJWTFixture(t *testing.T) (*service.AuthService, string) {
	reader := &staticUserReader{user: &models.User{
		ID: 1, Name: "Alice", Username: "20240001", Password: "password", TypeID: models.RoleStudent,
	}}
	authSvc := service.NewAuthService(reader, nil, nil, service.AuthConfig{
		Secret: "test-secret", Expiration: time.Hour, Issuer: "psa-api-test",
	})
	result, err := authSvc.Login(context.Background(), models.LoginRequest{
		Username: "20240001", Password: "password", TypeID: models.RoleStudent,
	})
	require.NoError(t, err)
	return authSvc, result.AccessToken
}

func protectedRouter(authSvc *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWT(authSvc), func(c *gin.Context) {
		claims := c.MustGet(ContextUserKey).(*models.JWTClaims)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return r
}

func TestJWTAllowsValidToken(t *testing.T) {
	authSvc, token := newJWTFixture(t)
	r := protectedRouter(authSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":1`)
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	authSvc, _ := newJWTFixture(t)
	r := protectedRouter(authSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTRejectsMalformedHeader(t *testing.T) {
	authSvc, token := newJWTFixture(t)
	r := protectedRouter(authSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// OptionalJWT never blocks; it only attaches claims when the token checks
// out.
func TestOptionalJWTPassesThrough(t *testing.T) {
	authSvc, token := newJWTFixture(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/open", OptionalJWT(authSvc), func(c *gin.Context) {
		if _, ok := c.Get(ContextUserKey); ok {
			c.JSON(http.StatusOK, gin.H{"identified": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"identified": false})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/open", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"identified":false`)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"identified":true`)
}
