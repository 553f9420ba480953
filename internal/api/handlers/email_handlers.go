package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/verification"
	"github.com/bitfinek-invest/invest_service/pkg/logger"
)

// EmailHandlers handles the unauthenticated email relay and the stored
// verification flow.
type EmailHandlers struct {
	verificationService *verification.Service
	validator           *validator.Validate
	logger              *logger.Logger
}

// NewEmailHandlers creates a new EmailHandlers instance
func NewEmailHandlers(verificationService *verification.Service, logger *logger.Logger) *EmailHandlers {
	return &EmailHandlers{
		verificationService: verificationService,
		validator:           validator.New(),
		logger:              logger,
	}
}

// SendEmail handles POST /api/v1/email/send. The client supplies the code;
// this endpoint only relays the branded delivery.
func (h *EmailHandlers) SendEmail(c *gin.Context) {
	var req entities.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequest(c, ErrCodeMissingField, "Missing required fields")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		SendBadRequest(c, ErrCodeValidationError, err.Error())
		return
	}

	if err := h.verificationService.Relay(c.Request.Context(), req.Email, req.Name, req.Code); err != nil {
		h.logger.Error("Failed to relay verification email", "error", err, "email", req.Email)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, entities.SuccessResponse{
		Success: true,
		Message: "Email sent successfully",
	})
}

// IssueVerification handles POST /api/v1/email/verification. The server
// generates and stores the code before sending it.
func (h *EmailHandlers) IssueVerification(c *gin.Context) {
	var req entities.IssueVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequest(c, ErrCodeMissingField, "Missing required fields")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		SendBadRequest(c, ErrCodeValidationError, err.Error())
		return
	}

	if err := h.verificationService.Issue(c.Request.Context(), req.Email, req.Name); err != nil {
		h.logger.Error("Failed to issue verification code", "error", err, "email", req.Email)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, entities.SuccessResponse{
		Success: true,
		Message: "Verification code sent",
	})
}

// VerifyCode handles POST /api/v1/email/verify
func (h *EmailHandlers) VerifyCode(c *gin.Context) {
	var req entities.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendBadRequest(c, ErrCodeMissingField, "Missing required fields")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		SendBadRequest(c, ErrCodeValidationError, err.Error())
		return
	}

	if err := h.verificationService.Verify(c.Request.Context(), req.Email, req.Code); err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, entities.SuccessResponse{
		Success: true,
		Message: "Email verified",
	})
}
