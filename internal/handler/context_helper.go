package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allocatr/psa-api/internal/middleware"
	"github.com/allocatr/psa-api/internal/models"
	appErrors "github.com/allocatr/psa-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func intParam(c *gin.Context, name string) (int, error) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return value, nil
}
