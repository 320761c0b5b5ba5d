package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/allocatr/psa-api/pkg/response"
)

// SystemHandler serves the health and readiness probes.
type SystemHandler struct {
	db      *sqlx.DB
	version string
}

// NewSystemHandler constructs SystemHandler.
func NewSystemHandler(db *sqlx.DB, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version}
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

// Ready godoc
// @Summary Readiness check
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /ready [get]
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, response.Envelope{Data: gin.H{"status": "degraded"}})
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ready"})
}
