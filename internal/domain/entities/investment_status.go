package entities

import "fmt"

// InvestmentStatus represents the lifecycle state of an investment
type InvestmentStatus string

const (
	InvestmentStatusPending   InvestmentStatus = "pending"
	InvestmentStatusActive    InvestmentStatus = "active"
	InvestmentStatusRejected  InvestmentStatus = "rejected"
	InvestmentStatusCompleted InvestmentStatus = "completed"
)

// ValidInvestmentStatuses contains all valid investment statuses
var ValidInvestmentStatuses = map[InvestmentStatus]bool{
	InvestmentStatusPending:   true,
	InvestmentStatusActive:    true,
	InvestmentStatusRejected:  true,
	InvestmentStatusCompleted: true,
}

// ValidInvestmentTransitions defines allowed status transitions
var ValidInvestmentTransitions = map[InvestmentStatus][]InvestmentStatus{
	InvestmentStatusPending:   {InvestmentStatusActive, InvestmentStatusRejected},
	InvestmentStatusActive:    {InvestmentStatusCompleted},
	InvestmentStatusRejected:  {}, // Terminal state
	InvestmentStatusCompleted: {}, // Terminal state
}

// IsValid checks if the status is a valid investment status
func (s InvestmentStatus) IsValid() bool {
	return ValidInvestmentStatuses[s]
}

// CanTransitionTo checks if transition to new status is allowed
func (s InvestmentStatus) CanTransitionTo(newStatus InvestmentStatus) bool {
	allowed, exists := ValidInvestmentTransitions[s]
	if !exists {
		return false
	}
	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

// IsTerminal returns true if this is a terminal state
func (s InvestmentStatus) IsTerminal() bool {
	return s == InvestmentStatusRejected || s == InvestmentStatusCompleted
}

// IsPending returns true if the investment is awaiting an admin decision
func (s InvestmentStatus) IsPending() bool {
	return s == InvestmentStatusPending
}

// ValidateTransition validates and returns error if transition is invalid
func (s InvestmentStatus) ValidateTransition(newStatus InvestmentStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid investment status: %s", newStatus)
	}
	if !s.CanTransitionTo(newStatus) {
		return fmt.Errorf("invalid status transition from %s to %s", s, newStatus)
	}
	return nil
}
