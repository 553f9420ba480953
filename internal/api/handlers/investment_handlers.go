package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/investment"
	"github.com/bitfinek-invest/invest_service/pkg/logger"
)

// InvestmentHandlers handles user investment operations
type InvestmentHandlers struct {
	investmentService *investment.Service
	validator         *validator.Validate
	logger            *logger.Logger
}

// NewInvestmentHandlers creates a new InvestmentHandlers instance
func NewInvestmentHandlers(investmentService *investment.Service, logger *logger.Logger) *InvestmentHandlers {
	return &InvestmentHandlers{
		investmentService: investmentService,
		validator:         validator.New(),
		logger:            logger,
	}
}

// SubmitInvestment handles POST /api/v1/investments
func (h *InvestmentHandlers) SubmitInvestment(c *gin.Context) {
	var req entities.SubmitInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequest(c, ErrCodeInvalidRequest, MsgInvalidRequest)
		return
	}

	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		SendBadRequest(c, ErrCodeValidationError, err.Error())
		return
	}

	created, err := h.investmentService.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Failed to submit investment", "error", err, "user_id", userID)
		SendDomainError(c, err)
		return
	}

	SendCreated(c, created)
}

// ListInvestments handles GET /api/v1/investments
func (h *InvestmentHandlers) ListInvestments(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	investments, err := h.investmentService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list investments", "error", err, "user_id", userID)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, investments)
}

// GetInvestment handles GET /api/v1/investments/:id
func (h *InvestmentHandlers) GetInvestment(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	investmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	found, err := h.investmentService.GetForUser(c.Request.Context(), userID, investmentID)
	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, found)
}
