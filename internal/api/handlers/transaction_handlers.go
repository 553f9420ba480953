package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/balance"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/transaction"
	"github.com/bitfinek-invest/invest_service/pkg/logger"
)

// TransactionHandlers handles withdrawals, transaction history and balance
type TransactionHandlers struct {
	transactionService *transaction.Service
	balanceService     *balance.Service
	validator          *validator.Validate
	logger             *logger.Logger
}

// NewTransactionHandlers creates a new TransactionHandlers instance
func NewTransactionHandlers(transactionService *transaction.Service, balanceService *balance.Service, logger *logger.Logger) *TransactionHandlers {
	return &TransactionHandlers{
		transactionService: transactionService,
		balanceService:     balanceService,
		validator:          validator.New(),
		logger:             logger,
	}
}

// RequestWithdrawal handles POST /api/v1/withdrawals
func (h *TransactionHandlers) RequestWithdrawal(c *gin.Context) {
	var req entities.WithdrawalRequest
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
	if req.Amount.IsZero() || req.Amount.IsNegative() {
		SendBadRequest(c, ErrCodeInvalidAmount, "Amount must be positive")
		return
	}

	created, err := h.transactionService.RequestWithdrawal(c.Request.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Failed to request withdrawal", "error", err, "user_id", userID)
		SendDomainError(c, err)
		return
	}

	SendCreated(c, created)
}

// ListTransactions handles GET /api/v1/transactions
func (h *TransactionHandlers) ListTransactions(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	limit, offset := parsePagination(c)
	transactions, total, err := h.transactionService.ListForUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list transactions", "error", err, "user_id", userID)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, entities.ListResponse{
		Items:  transactions,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// GetBalance handles GET /api/v1/balance
func (h *TransactionHandlers) GetBalance(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	summary, err := h.balanceService.Summary(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to compute balance", "error", err, "user_id", userID)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, summary)
}
