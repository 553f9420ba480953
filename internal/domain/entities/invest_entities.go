package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRole represents a platform role
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// MinWithdrawalAmount is the floor for withdrawal requests in USD
var MinWithdrawalAmount = decimal.NewFromInt(10)

// InvestmentPlan represents an entry in the plan catalog
type InvestmentPlan struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	Name                string          `json:"name" db:"name"`
	MinAmount           decimal.Decimal `json:"min_amount" db:"min_amount"`
	MaxAmount           decimal.Decimal `json:"max_amount" db:"max_amount"`
	WeeklyReturnPercent decimal.Decimal `json:"weekly_return_percent" db:"weekly_return_percent"`
	DurationWeeks       int             `json:"duration_weeks" db:"duration_weeks"`
	RequiresUnlock      bool            `json:"requires_unlock" db:"requires_unlock"`
	PrerequisitePlanID  *uuid.UUID      `json:"prerequisite_plan_id,omitempty" db:"prerequisite_plan_id"`
	Active              bool            `json:"active" db:"active"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`
}

// AmountInRange reports whether amount falls within the plan's bounds
func (p *InvestmentPlan) AmountInRange(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(p.MinAmount) && amount.LessThanOrEqual(p.MaxAmount)
}

// Investment represents a user's position in a plan
type Investment struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	UserID          uuid.UUID        `json:"user_id" db:"user_id"`
	PlanID          uuid.UUID        `json:"plan_id" db:"plan_id"`
	Amount          decimal.Decimal  `json:"amount" db:"amount"`
	WeeklyReturn    decimal.Decimal  `json:"weekly_return" db:"weekly_return"`
	TotalReturn     decimal.Decimal  `json:"total_return" db:"total_return"`
	Status          InvestmentStatus `json:"status" db:"status"`
	ProofURL        string           `json:"proof_url" db:"proof_url"`
	RejectionReason *string          `json:"rejection_reason,omitempty" db:"rejection_reason"`
	StartDate       *time.Time       `json:"start_date,omitempty" db:"start_date"`
	EndDate         *time.Time       `json:"end_date,omitempty" db:"end_date"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
}

// IsMatured reports whether an active investment has reached its end date
func (i *Investment) IsMatured(now time.Time) bool {
	if i.Status != InvestmentStatusActive || i.EndDate == nil {
		return false
	}
	return !now.Before(*i.EndDate)
}

// Transaction records a deposit or withdrawal. Deposit rows are paired 1:1
// with an investment and mirror its decisions; withdrawal rows stand alone.
type Transaction struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	UserID        uuid.UUID         `json:"user_id" db:"user_id"`
	InvestmentID  *uuid.UUID        `json:"investment_id,omitempty" db:"investment_id"`
	Type          TransactionType   `json:"type" db:"type"`
	Amount        decimal.Decimal   `json:"amount" db:"amount"`
	Status        TransactionStatus `json:"status" db:"status"`
	WalletAddress string            `json:"wallet_address" db:"wallet_address"`
	Network       string            `json:"network" db:"network"`
	TxHash        *string           `json:"tx_hash,omitempty" db:"tx_hash"`
	AdminNotes    *string           `json:"admin_notes,omitempty" db:"admin_notes"`
	ProcessedAt   *time.Time        `json:"processed_at,omitempty" db:"processed_at"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// BalanceSummary is the aggregate view of a user's holdings
type BalanceSummary struct {
	UserID           uuid.UUID       `json:"user_id"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	ActiveCount      int             `json:"active_count"`
	PendingCount     int             `json:"pending_count"`
	Currency         string          `json:"currency"`
	AsOf             time.Time       `json:"as_of"`
}

// ReturnProjection is the output of the return calculator
type ReturnProjection struct {
	Principal    decimal.Decimal `json:"principal"`
	WeeklyReturn decimal.Decimal `json:"weekly_return"`
	TotalReturn  decimal.Decimal `json:"total_return"`
	FinalAmount  decimal.Decimal `json:"final_amount"`
}

// PlanView is a catalog entry enriched with per-user unlock state
type PlanView struct {
	InvestmentPlan
	Unlocked   bool             `json:"unlocked"`
	Projection ReturnProjection `json:"projection_at_min"`
}

// FeedAction identifies the kind of change carried by a feed event
type FeedAction string

const (
	FeedActionInsert FeedAction = "insert"
	FeedActionUpdate FeedAction = "update"
)

// FeedEvent is published on every investment/transaction mutation
type FeedEvent struct {
	Table    string                 `json:"table"`
	Action   FeedAction             `json:"action"`
	UserID   uuid.UUID              `json:"user_id"`
	RecordID uuid.UUID              `json:"record_id"`
	Record   map[string]interface{} `json:"record,omitempty"`
	At       time.Time              `json:"at"`
}
