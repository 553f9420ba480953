package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	domainerrors "github.com/bitfinek-invest/invest_service/internal/domain/errors"
)

// Error codes as constants for consistent error responses across handlers
const (
	// Authentication & Authorization errors
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeAdminRequired = "ADMIN_PRIVILEGES_REQUIRED"

	// Validation errors
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeValidationError = "VALIDATION_ERROR"
	ErrCodeInvalidID       = "INVALID_ID"
	ErrCodeInvalidAmount   = "INVALID_AMOUNT"
	ErrCodeInvalidStatus   = "INVALID_STATUS"
	ErrCodeMissingField    = "MISSING_FIELD"

	// Resource errors
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodePlanNotFound       = "PLAN_NOT_FOUND"
	ErrCodeInvestmentNotFound = "INVESTMENT_NOT_FOUND"
	ErrCodeWithdrawalNotFound = "WITHDRAWAL_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"

	// Operation errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeOperationFailed    = "OPERATION_FAILED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeUploadFailed       = "UPLOAD_FAILED"
	ErrCodeEmailSendFailed    = "EMAIL_SEND_FAILED"

	// Domain errors
	ErrCodePlanLocked          = "PLAN_LOCKED"
	ErrCodeAmountOutOfRange    = "AMOUNT_OUT_OF_RANGE"
	ErrCodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	ErrCodeInvalidTransition   = "INVALID_STATUS_TRANSITION"
	ErrCodeTooManyAttempts     = "TOO_MANY_ATTEMPTS"
)

// Error messages as constants for consistency
const (
	MsgInvalidRequest     = "Invalid request payload"
	MsgUnauthorized       = "Authentication required"
	MsgForbidden          = "Insufficient permissions"
	MsgInternalError      = "Internal server error"
	MsgServiceUnavailable = "Service temporarily unavailable"
)

// SendBadRequest sends a 400 Bad Request error
func SendBadRequest(c *gin.Context, code, message string, details ...map[string]interface{}) {
	var det map[string]interface{}
	if len(details) > 0 {
		det = details[0]
	}
	c.JSON(http.StatusBadRequest, entities.ErrorResponse{
		Code:    code,
		Message: message,
		Details: det,
	})
}

// SendUnauthorized sends a 401 Unauthorized error
func SendUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, entities.ErrorResponse{
		Code:    ErrCodeUnauthorized,
		Message: message,
	})
}

// SendForbidden sends a 403 Forbidden error
func SendForbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, entities.ErrorResponse{
		Code:    ErrCodeForbidden,
		Message: message,
	})
}

// SendNotFound sends a 404 Not Found error
func SendNotFound(c *gin.Context, code, message string) {
	c.JSON(http.StatusNotFound, entities.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// SendConflict sends a 409 Conflict error
func SendConflict(c *gin.Context, code, message string) {
	c.JSON(http.StatusConflict, entities.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// SendInternalError sends a 500 Internal Server Error
func SendInternalError(c *gin.Context, code, message string) {
	c.JSON(http.StatusInternalServerError, entities.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// SendServiceUnavailable sends a 503 Service Unavailable error
func SendServiceUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, entities.ErrorResponse{
		Code:    ErrCodeServiceUnavailable,
		Message: message,
	})
}

// SendTooManyRequests sends a 429 Too Many Requests error
func SendTooManyRequests(c *gin.Context, message string) {
	c.JSON(http.StatusTooManyRequests, entities.ErrorResponse{
		Code:    ErrCodeTooManyAttempts,
		Message: message,
	})
}

// SendSuccess sends a 200 OK response with data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendCreated sends a 201 Created response with data
func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendDomainError maps a domain error onto the matching HTTP response
func SendDomainError(c *gin.Context, err error) {
	code := domainerrors.GetErrorCode(err)
	details := domainerrors.GetErrorDetails(err)

	switch {
	case domainerrors.IsNotFound(err):
		SendNotFound(c, code, err.Error())
	case domainerrors.IsInvalidInput(err):
		SendBadRequest(c, code, err.Error(), details)
	case domainerrors.IsUnauthorized(err):
		SendUnauthorized(c, err.Error())
	case domainerrors.IsForbidden(err):
		SendForbidden(c, err.Error())
	case domainerrors.IsConflict(err), errors.Is(err, domainerrors.ErrInvalidTransition):
		SendConflict(c, code, err.Error())
	case errors.Is(err, domainerrors.ErrPlanLocked):
		SendForbidden(c, err.Error())
	case errors.Is(err, domainerrors.ErrAmountOutOfRange),
		errors.Is(err, domainerrors.ErrInsufficientBalance):
		SendBadRequest(c, code, err.Error(), details)
	case domainerrors.IsServiceUnavailable(err):
		SendServiceUnavailable(c, err.Error())
	default:
		SendInternalError(c, ErrCodeInternalError, MsgInternalError)
	}
}
