package entities

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a platform user profile
type Profile struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Email         string     `json:"email" db:"email"`
	FullName      string     `json:"full_name" db:"full_name"`
	Role          UserRole   `json:"role" db:"role"`
	WalletAddress *string    `json:"wallet_address,omitempty" db:"wallet_address"`
	Blocked       bool       `json:"blocked" db:"blocked"`
	EmailVerified bool       `json:"email_verified" db:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the profile has the admin role
func (p *Profile) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

// EmailVerification represents a pending email verification code
type EmailVerification struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Email     string     `json:"email" db:"email"`
	Code      string     `json:"code" db:"code"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty" db:"used_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// IsExpired reports whether the code is past its expiry
func (v *EmailVerification) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// IsUsed reports whether the code has already been consumed
func (v *EmailVerification) IsUsed() bool {
	return v.UsedAt != nil
}

// AuditLog records an admin or system action for compliance review
type AuditLog struct {
	ID         uuid.UUID              `json:"id" db:"id"`
	ActorID    *uuid.UUID             `json:"actor_id,omitempty" db:"actor_id"`
	Action     string                 `json:"action" db:"action"`
	EntityType string                 `json:"entity_type" db:"entity_type"`
	EntityID   *uuid.UUID             `json:"entity_id,omitempty" db:"entity_id"`
	Details    map[string]interface{} `json:"details,omitempty" db:"-"`
	IPAddress  string                 `json:"ip_address" db:"ip_address"`
	CreatedAt  time.Time              `json:"created_at" db:"created_at"`
}

// Audit action names
const (
	AuditActionInvestmentSubmitted = "investment.submitted"
	AuditActionInvestmentApproved  = "investment.approved"
	AuditActionInvestmentRejected  = "investment.rejected"
	AuditActionInvestmentSettled   = "investment.settled"
	AuditActionWithdrawalRequested = "withdrawal.requested"
	AuditActionWithdrawalApproved  = "withdrawal.approved"
	AuditActionWithdrawalRejected  = "withdrawal.rejected"
	AuditActionUserBlocked         = "user.blocked"
	AuditActionUserUnblocked       = "user.unblocked"
	AuditActionPlanCreated         = "plan.created"
	AuditActionPlanUpdated         = "plan.updated"
)

// UserStats summarizes a user's activity for the admin detail view
type UserStats struct {
	TotalInvested    string `json:"total_invested"`
	TotalProfit      string `json:"total_profit"`
	ActiveCount      int    `json:"active_count"`
	CompletedCount   int    `json:"completed_count"`
	PendingCount     int    `json:"pending_count"`
	TransactionCount int    `json:"transaction_count"`
}
