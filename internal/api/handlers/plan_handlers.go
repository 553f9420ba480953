package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bitfinek-invest/invest_service/internal/domain/services/plans"
	"github.com/bitfinek-invest/invest_service/pkg/logger"
)

// PlanHandlers handles the user-facing plan catalog
type PlanHandlers struct {
	planService *plans.Service
	logger      *logger.Logger
}

// NewPlanHandlers creates a new PlanHandlers instance
func NewPlanHandlers(planService *plans.Service, logger *logger.Logger) *PlanHandlers {
	return &PlanHandlers{
		planService: planService,
		logger:      logger,
	}
}

// ListPlans handles GET /api/v1/plans
func (h *PlanHandlers) ListPlans(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	views, err := h.planService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list plans", "error", err, "user_id", userID)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, views)
}
