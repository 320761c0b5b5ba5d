package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allocatr/psa-api/internal/models"
	"github.com/allocatr/psa-api/internal/service"
	appErrors "github.com/allocatr/psa-api/pkg/errors"
	"github.com/allocatr/psa-api/pkg/response"
)

type userService interface {
	Create(ctx context.Context, req service.CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetIDByUsername(ctx context.Context, username string) (int, error)
	Update(ctx context.Context, req service.UpdateUserRequest) error
	Delete(ctx context.Context, id int) error
	ListAll(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, req service.UpdatePasswordRequest) error
	VerifyPassword(ctx context.Context, req models.VerifyPasswordRequest) bool
}

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	CurrentUser(ctx context.Context, claims *models.JWTClaims) (*models.UserInfo, error)
}

// UserHandler exposes the user directory and login endpoints.
type UserHandler struct {
	users userService
	auth  authService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users userService, auth authService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// Create godoc
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.CreateUserRequest true "User payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /user [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user.Info())
}

// GetByID godoc
// @Summary Get a user by id
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Router /user/id/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user.Info())
}

// GetByUsername godoc
// @Summary Get a user by username
// @Tags Users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} response.Envelope
// @Router /user/username/{username} [get]
func (h *UserHandler) GetByUsername(c *gin.Context) {
	user, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user.Info())
}

// GetIDByUsername godoc
// @Summary Resolve a username to its id
// @Tags Users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} response.Envelope
// @Router /user/username/{username}/id [get]
func (h *UserHandler) GetIDByUsername(c *gin.Context) {
	id, err := h.users.GetIDByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": id})
}

// Update godoc
// @Summary Update a user
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.UpdateUserRequest true "User payload"
// @Success 200 {object} response.Envelope
// @Router /user [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.users.Update(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}

// Delete godoc
// @Summary Delete a user
// @Tags Users
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Router /user/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListAll godoc
// @Summary List every user
// @Tags Users
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /user/all [get]
func (h *UserHandler) ListAll(c *gin.Context) {
	users, err := h.users.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	infos := make([]models.UserInfo, 0, len(users))
	for _, user := range users {
		infos = append(infos, user.Info())
	}
	response.JSON(c, http.StatusOK, infos)
}

// UpdatePassword godoc
// @Summary Update a user's password
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.UpdatePasswordRequest true "Password payload"
// @Success 200 {object} response.Envelope
// @Router /user/password [put]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req service.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.users.UpdatePassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}

// Login godoc
// @Summary Log in and receive an access token
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// VerifyPassword godoc
// @Summary Verify a user's password
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body models.VerifyPasswordRequest true "Verification payload"
// @Success 200 {object} response.Envelope
// @Router /user/verify-password [post]
func (h *UserHandler) VerifyPassword(c *gin.Context) {
	var req models.VerifyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	verified := h.users.VerifyPassword(c.Request.Context(), req)
	response.JSON(c, http.StatusOK, gin.H{"verified": verified})
}

// Me godoc
// @Summary Return the authenticated user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /user/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	info, err := h.auth.CurrentUser(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info)
}
