package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/audit"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/investment"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/plans"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/profile"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/transaction"
	"github.com/bitfinek-invest/invest_service/pkg/logger"
)

// AdminHandlers handles the operator surface: user management, investment
// and withdrawal decisions, plan catalog management, and the audit trail.
type AdminHandlers struct {
	profileService     *profile.Service
	investmentService  *investment.Service
	transactionService *transaction.Service
	planService        *plans.Service
	auditService       *audit.Service
	validator          *validator.Validate
	logger             *logger.Logger
}

// NewAdminHandlers creates a new AdminHandlers instance
func NewAdminHandlers(
	profileService *profile.Service,
	investmentService *investment.Service,
	transactionService *transaction.Service,
	planService *plans.Service,
	auditService *audit.Service,
	logger *logger.Logger,
) *AdminHandlers {
	return &AdminHandlers{
		profileService:     profileService,
		investmentService:  investmentService,
		transactionService: transactionService,
		planService:        planService,
		auditService:       auditService,
		validator:          validator.New(),
		logger:             logger,
	}
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandlers) ListUsers(c *gin.Context) {
	limit, offset := parsePagination(c)

	users, total, err := h.profileService.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list users", "error", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, entities.ListResponse{Items: users, Total: total, Limit: limit, Offset: offset})
}

// GetUser handles GET /api/v1/admin/users/:id
func (h *AdminHandlers) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, stats, err := h.profileService.GetWithStats(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get user", "error", err, "user_id", userID)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, gin.H{"profile": user, "stats": stats})
}

// BlockUser handles POST /api/v1/admin/users/:id/block
func (h *AdminHandlers) BlockUser(c *gin.Context) {
	h.setBlocked(c, true)
}

// UnblockUser handles POST /api/v1/admin/users/:id/unblock
func (h *AdminHandlers) UnblockUser(c *gin.Context) {
	h.setBlocked(c, false)
}

func (h *AdminHandlers) setBlocked(c *gin.Context, blocked bool) {
	adminID, ok := extractUserID(c)
	if !ok {
		SendUnauthorized(c, MsgUnauthorized)
		return
	}

	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.SetBlocked(c.Request.Context(), adminID, userID, blocked); err != nil {
		h.logger.Error("Failed to update user block state", "error", err, "user_id", userID, "blocked", blocked)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, entities.SuccessResponse{Success: true})
}

// ListInvestments handles GET /api/v1/admin/investments
func (h *AdminHandlers) ListInvestments(c *gin.Context) {
	limit, offset := parsePagination(c)

	status := entities.InvestmentStatus(c.DefaultQuery("status", string(entities.InvestmentStatusPending)))
	if !status.IsValid() {
		SendBadRequest(c, ErrCodeValidationError, "Invalid investment status")
		return
	}

	investments, err := h.investmentService.ListByStatus(c.Request.Context(), status, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list investments", "error", err, "status", status)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, entities.ListResponse{Items: investments, Total: len(investments), Limit: limit, Offset: offset})
}

// ApproveInvestment handles POST /api/v1/admin/investments/:id/approve
func (h *AdminHandlers) ApproveInvestment(c *gin.Context) {
	adminID, ok := extractUserID(c)
	if !ok {
		SendUnauthorized(c, MsgUnauthorized)
		return
	}

	investmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.investmentService.Approve(c.Request.Context(), adminID, investmentID)
	if err != nil {
		h.logger.Error("Failed to approve investment", "error", err, "investment_id", investmentID)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, inv)
}

// RejectInvestment handles POST /api/v1/admin/investments/:id/reject
func (h *AdminHandlers) RejectInvestment(c *gin.Context) {
	adminID, ok := extractUserID(c)
	if !ok {
		SendUnauthorized(c, MsgUnauthorized)
		return
	}

	investmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entities.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequest(c, ErrCodeMissingField, "Rejection reason is required")
		return
	}

	inv, err := h.investmentService.Reject(c.Request.Context(), adminID, investmentID, req.Reason)
	if err != nil {
		h.logger.Error("Failed to reject investment", "error", err, "investment_id", investmentID)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, inv)
}

// ListWithdrawals handles GET /api/v1/admin/withdrawals
func (h *AdminHandlers) ListWithdrawals(c *gin.Context) {
	limit, offset := parsePagination(c)

	status := entities.TransactionStatus(c.DefaultQuery("status", string(entities.TransactionStatusPending)))
	if !status.IsValid() {
		SendBadRequest(c, ErrCodeValidationError, "Invalid transaction status")
		return
	}

	withdrawals, err := h.transactionService.ListWithdrawalsByStatus(c.Request.Context(), status, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list withdrawals", "error", err, "status", status)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, entities.ListResponse{Items: withdrawals, Total: len(withdrawals), Limit: limit, Offset: offset})
}

// ApproveWithdrawal handles POST /api/v1/admin/withdrawals/:id/approve
func (h *AdminHandlers) ApproveWithdrawal(c *gin.Context) {
	adminID, ok := extractUserID(c)
	if !ok {
		SendUnauthorized(c, MsgUnauthorized)
		return
	}

	transactionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entities.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequest(c, ErrCodeMissingField, "Transaction hash is required")
		return
	}

	tx, err := h.transactionService.ApproveWithdrawal(c.Request.Context(), adminID, transactionID, req.TxHash)
	if err != nil {
		h.logger.Error("Failed to approve withdrawal", "error", err, "transaction_id", transactionID)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, tx)
}

// RejectWithdrawal handles POST /api/v1/admin/withdrawals/:id/reject
func (h *AdminHandlers) RejectWithdrawal(c *gin.Context) {
	adminID, ok := extractUserID(c)
	if !ok {
		SendUnauthorized(c, MsgUnauthorized)
		return
	}

	transactionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entities.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequest(c, ErrCodeMissingField, "Rejection reason is required")
		return
	}

	tx, err := h.transactionService.RejectWithdrawal(c.Request.Context(), adminID, transactionID, req.Reason)
	if err != nil {
		h.logger.Error("Failed to reject withdrawal", "error", err, "transaction_id", transactionID)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, tx)
}

// ListTransactions handles GET /api/v1/admin/transactions
func (h *AdminHandlers) ListTransactions(c *gin.Context) {
	limit, offset := parsePagination(c)

	transactions, total, err := h.transactionService.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list transactions", "error", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, entities.ListResponse{Items: transactions, Total: total, Limit: limit, Offset: offset})
}

// ListAuditLogs handles GET /api/v1/admin/audit-logs
func (h *AdminHandlers) ListAuditLogs(c *gin.Context) {
	limit, offset := parsePagination(c)

	logs, total, err := h.auditService.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list audit logs", "error", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, entities.ListResponse{Items: logs, Total: total, Limit: limit, Offset: offset})
}

// ListPlans handles GET /api/v1/admin/plans
func (h *AdminHandlers) ListPlans(c *gin.Context) {
	catalog, err := h.planService.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list plans", "error", err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, gin.H{"plans": catalog})
}

// CreatePlan handles POST /api/v1/admin/plans
func (h *AdminHandlers) CreatePlan(c *gin.Context) {
	var req entities.UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequest(c, ErrCodeInvalidRequest, MsgInvalidRequest)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		SendBadRequest(c, ErrCodeValidationError, err.Error())
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create plan", "error", err, "name", req.Name)
		SendDomainError(c, err)
		return
	}

	SendCreated(c, plan)
}

// UpdatePlan handles PUT /api/v1/admin/plans/:id
func (h *AdminHandlers) UpdatePlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entities.UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequest(c, ErrCodeInvalidRequest, MsgInvalidRequest)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		SendBadRequest(c, ErrCodeValidationError, err.Error())
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), planID, &req)
	if err != nil {
		h.logger.Error("Failed to update plan", "error", err, "plan_id", planID)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, plan)
}
