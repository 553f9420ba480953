package entities

import "fmt"

// TransactionType represents the kind of money movement a transaction records
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// ValidTransactionTypes contains all valid transaction types
var ValidTransactionTypes = map[TransactionType]bool{
	TransactionTypeDeposit:    true,
	TransactionTypeWithdrawal: true,
}

// IsValid checks if the type is a valid transaction type
func (t TransactionType) IsValid() bool {
	return ValidTransactionTypes[t]
}

// TransactionStatus represents the status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusRejected TransactionStatus = "rejected"
)

// ValidTransactionStatuses contains all valid transaction statuses
var ValidTransactionStatuses = map[TransactionStatus]bool{
	TransactionStatusPending:  true,
	TransactionStatusApproved: true,
	TransactionStatusRejected: true,
}

// ValidTransactionTransitions defines allowed status transitions
var ValidTransactionTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionStatusPending:  {TransactionStatusApproved, TransactionStatusRejected},
	TransactionStatusApproved: {}, // Terminal state
	TransactionStatusRejected: {}, // Terminal state
}

// IsValid checks if the status is a valid transaction status
func (s TransactionStatus) IsValid() bool {
	return ValidTransactionStatuses[s]
}

// CanTransitionTo checks if transition to new status is allowed
func (s TransactionStatus) CanTransitionTo(newStatus TransactionStatus) bool {
	allowed, exists := ValidTransactionTransitions[s]
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
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusApproved || s == TransactionStatusRejected
}

// ValidateTransition validates and returns error if transition is invalid
func (s TransactionStatus) ValidateTransition(newStatus TransactionStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid transaction status: %s", newStatus)
	}
	if !s.CanTransitionTo(newStatus) {
		return fmt.Errorf("invalid status transition from %s to %s", s, newStatus)
	}
	return nil
}
