package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest carries the credentials checked at login. The type id must
// match the stored role for the login to succeed.
type LoginRequest struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
	TypeID   RoleCode `json:"typeId" validate:"required"`
}

// LoginResponse returns the issued access token and the user it identifies.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        UserInfo  `json:"user"`
}

// VerifyPasswordRequest checks a password against a stored user record.
type VerifyPasswordRequest struct {
	ID       int    `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// JWTClaims is the access-token payload.
type JWTClaims struct {
	UserID   int      `json:"user_id"`
	Username string   `json:"username"`
	TypeID   RoleCode `json:"type_id"`
	jwt.RegisteredClaims
}
