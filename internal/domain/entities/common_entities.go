package entities

import "github.com/shopspring/decimal"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SuccessResponse wraps simple success payloads
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse wraps paginated collections
type ListResponse struct {
	Items  interface{} `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// SubmitInvestmentRequest is the payload for a deposit submission
type SubmitInvestmentRequest struct {
	PlanID        string          `json:"plan_id" validate:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	ProofURL      string          `json:"proof_url" validate:"required,url"`
	WalletAddress string          `json:"wallet_address" validate:"required"`
	Network       string          `json:"network" validate:"required"`
	TxHash        string          `json:"tx_hash,omitempty"`
}

// WithdrawalRequest is the payload for a withdrawal request
type WithdrawalRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	WalletAddress string          `json:"wallet_address" validate:"required"`
	Network       string          `json:"network" validate:"required"`
}

// DecisionRequest carries an admin approve/reject decision
type DecisionRequest struct {
	Reason string `json:"reason,omitempty"`
	TxHash string `json:"tx_hash,omitempty"`
}

// UpdateProfileRequest is the payload for profile updates
type UpdateProfileRequest struct {
	FullName      *string `json:"full_name,omitempty"`
	WalletAddress *string `json:"wallet_address,omitempty" validate:"omitempty,min=10"`
}

// SendEmailRequest is the payload accepted by the email relay
type SendEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
	Name  string `json:"name,omitempty"`
}

// IssueVerificationRequest asks for a fresh verification code
type IssueVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
}

// VerifyCodeRequest consumes a verification code
type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// UpsertPlanRequest is the admin payload for catalog management
type UpsertPlanRequest struct {
	Name                string          `json:"name" validate:"required"`
	MinAmount           decimal.Decimal `json:"min_amount" validate:"required"`
	MaxAmount           decimal.Decimal `json:"max_amount" validate:"required"`
	WeeklyReturnPercent decimal.Decimal `json:"weekly_return_percent" validate:"required"`
	DurationWeeks       int             `json:"duration_weeks" validate:"required,min=1"`
	RequiresUnlock      bool            `json:"requires_unlock"`
	PrerequisitePlanID  *string         `json:"prerequisite_plan_id,omitempty" validate:"omitempty,uuid"`
	Active              bool            `json:"active"`
}
