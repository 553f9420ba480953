package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitfinek-invest/invest_service/pkg/health"
	"github.com/bitfinek-invest/invest_service/pkg/logger"
)

// HealthHandlers handles health check endpoints
type HealthHandlers struct {
	livenessChecker  *health.HealthChecker
	readinessChecker *health.HealthChecker
	logger           *logger.Logger
	version          string
	startTime        time.Time
}

// NewHealthHandlers creates a new HealthHandlers instance
func NewHealthHandlers(livenessChecker, readinessChecker *health.HealthChecker, logger *logger.Logger, version string) *HealthHandlers {
	return &HealthHandlers{
		livenessChecker:  livenessChecker,
		readinessChecker: readinessChecker,
		logger:           logger,
		version:          version,
		startTime:        time.Now(),
	}
}

// Liveness handles GET /health/live
func (h *HealthHandlers) Liveness(c *gin.Context) {
	status, checks := h.livenessChecker.Check(c.Request.Context())

	statusCode := http.StatusOK
	if status == health.StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, health.HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   h.version,
		Checks:    checks,
	})
}

// Readiness handles GET /health/ready
func (h *HealthHandlers) Readiness(c *gin.Context) {
	status, checks := h.readinessChecker.Check(c.Request.Context())

	statusCode := http.StatusOK
	switch status {
	case health.StatusUnhealthy:
		statusCode = http.StatusServiceUnavailable
		h.logger.Warn("Readiness check failed", "checks", checks)
	case health.StatusDegraded:
		// Degraded still serves traffic.
		h.logger.Warn("Service degraded", "checks", checks)
	}

	c.JSON(statusCode, health.HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   h.version,
		Checks:    checks,
	})
}

// Health handles GET /health
func (h *HealthHandlers) Health(c *gin.Context) {
	status, checks := h.readinessChecker.Check(c.Request.Context())

	statusCode := http.StatusOK
	if status == health.StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, health.HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   h.version,
		Uptime:    time.Since(h.startTime).String(),
		Checks:    checks,
	})
}

// Version handles GET /version
func (h *HealthHandlers) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": h.version,
		"uptime":  time.Since(h.startTime).String(),
	})
}
