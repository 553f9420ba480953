// Package balance computes a user's balance summary as a pure fold over a
// fresh snapshot of their investments and transactions.
package balance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	domainerrors "github.com/bitfinek-invest/invest_service/internal/domain/errors"
	"github.com/bitfinek-invest/invest_service/internal/domain/repositories"
)

// Aggregate folds a snapshot into a balance summary.
//
// Available balance counts active and completed positions at full value
// (principal plus projected return). The pending count is one per logical
// request: pending investments plus pending transactions that are not paired
// with an investment, so a deposit awaiting review is counted once.
func Aggregate(userID uuid.UUID, investments []*entities.Investment, transactions []*entities.Transaction, now time.Time) entities.BalanceSummary {
	available := decimal.Zero
	totalProfit := decimal.Zero
	activeCount := 0
	pendingCount := 0

	for _, inv := range investments {
		totalProfit = totalProfit.Add(inv.TotalReturn)
		switch inv.Status {
		case entities.InvestmentStatusActive:
			available = available.Add(inv.Amount).Add(inv.TotalReturn)
			activeCount++
		case entities.InvestmentStatusCompleted:
			available = available.Add(inv.Amount).Add(inv.TotalReturn)
		case entities.InvestmentStatusPending:
			pendingCount++
		}
	}

	for _, tx := range transactions {
		if tx.Status == entities.TransactionStatusPending && tx.InvestmentID == nil {
			pendingCount++
		}
	}

	return entities.BalanceSummary{
		UserID:           userID,
		AvailableBalance: available,
		TotalProfit:      totalProfit,
		ActiveCount:      activeCount,
		PendingCount:     pendingCount,
		Currency:         "USD",
		AsOf:             now,
	}
}

// AdmitWithdrawal checks whether a withdrawal amount is allowed against an
// available balance. An amount below the minimum is a validation failure;
// only an amount beyond the balance is an insufficient-balance failure.
func AdmitWithdrawal(amount, availableBalance decimal.Decimal) error {
	if amount.LessThan(entities.MinWithdrawalAmount) {
		return domainerrors.ValidationError("amount",
			fmt.Sprintf("withdrawal amount must be at least %s", entities.MinWithdrawalAmount))
	}
	if amount.GreaterThan(availableBalance) {
		return domainerrors.InsufficientBalanceError(
			fmt.Sprintf("withdrawal amount exceeds available balance of %s", availableBalance))
	}
	return nil
}

type Service struct {
	investmentRepo  repositories.InvestmentRepository
	transactionRepo repositories.TransactionRepository
}

func NewService(investmentRepo repositories.InvestmentRepository, transactionRepo repositories.TransactionRepository) *Service {
	return &Service{
		investmentRepo:  investmentRepo,
		transactionRepo: transactionRepo,
	}
}

// Summary loads a fresh snapshot and aggregates it
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*entities.BalanceSummary, error) {
	investments, err := s.investmentRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load investments: %w", err)
	}

	transactions, _, err := s.transactionRepo.ListByUserID(ctx, userID, 1000, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	summary := Aggregate(userID, investments, transactions, time.Now().UTC())
	return &summary, nil
}
