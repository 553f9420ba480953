package balance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	domainerrors "github.com/bitfinek-invest/invest_service/internal/domain/errors"
)

func TestAggregate(t *testing.T) {
	userID := uuid.New()
	now := time.Now()
	investmentID := uuid.New()

	t.Run("active investment counts principal plus return", func(t *testing.T) {
		investments := []*entities.Investment{
			{
				Status:      entities.InvestmentStatusActive,
				Amount:      decimal.NewFromInt(100),
				TotalReturn: decimal.NewFromInt(20),
			},
		}

		summary := Aggregate(userID, investments, nil, now)

		assert.True(t, summary.AvailableBalance.Equal(decimal.NewFromInt(120)),
			"available: got %s", summary.AvailableBalance)
		assert.True(t, summary.TotalProfit.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, 1, summary.ActiveCount)
		assert.Equal(t, 0, summary.PendingCount)
	})

	t.Run("pending and rejected investments contribute nothing to balance", func(t *testing.T) {
		investments := []*entities.Investment{
			{
				Status:      entities.InvestmentStatusPending,
				Amount:      decimal.NewFromInt(500),
				TotalReturn: decimal.NewFromInt(50),
			},
			{
				Status: entities.InvestmentStatusRejected,
				Amount: decimal.NewFromInt(300),
			},
		}

		summary := Aggregate(userID, investments, nil, now)

		assert.True(t, summary.AvailableBalance.IsZero())
		assert.Equal(t, 0, summary.ActiveCount)
		assert.Equal(t, 1, summary.PendingCount)
	})

	t.Run("completed investments remain in balance", func(t *testing.T) {
		investments := []*entities.Investment{
			{
				Status:      entities.InvestmentStatusCompleted,
				Amount:      decimal.NewFromInt(1000),
				TotalReturn: decimal.NewFromInt(200),
			},
			{
				Status:      entities.InvestmentStatusActive,
				Amount:      decimal.NewFromInt(100),
				TotalReturn: decimal.NewFromInt(20),
			},
		}

		summary := Aggregate(userID, investments, nil, now)

		assert.True(t, summary.AvailableBalance.Equal(decimal.NewFromInt(1320)))
		assert.True(t, summary.TotalProfit.Equal(decimal.NewFromInt(220)))
		assert.Equal(t, 1, summary.ActiveCount)
	})

	t.Run("paired pending deposit is counted once", func(t *testing.T) {
		investments := []*entities.Investment{
			{
				ID:     investmentID,
				Status: entities.InvestmentStatusPending,
				Amount: decimal.NewFromInt(500),
			},
		}
		transactions := []*entities.Transaction{
			{
				Status:       entities.TransactionStatusPending,
				Type:         entities.TransactionTypeDeposit,
				InvestmentID: &investmentID,
				Amount:       decimal.NewFromInt(500),
			},
		}

		summary := Aggregate(userID, investments, transactions, now)

		assert.Equal(t, 1, summary.PendingCount)
	})

	t.Run("standalone pending withdrawal counts as pending", func(t *testing.T) {
		transactions := []*entities.Transaction{
			{
				Status: entities.TransactionStatusPending,
				Type:   entities.TransactionTypeWithdrawal,
				Amount: decimal.NewFromInt(50),
			},
		}

		summary := Aggregate(userID, nil, transactions, now)

		assert.Equal(t, 1, summary.PendingCount)
	})

	t.Run("empty snapshot yields zero summary", func(t *testing.T) {
		summary := Aggregate(userID, nil, nil, now)

		assert.True(t, summary.AvailableBalance.IsZero())
		assert.True(t, summary.TotalProfit.IsZero())
		assert.Equal(t, 0, summary.ActiveCount)
		assert.Equal(t, 0, summary.PendingCount)
		assert.Equal(t, "USD", summary.Currency)
	})
}

func TestAdmitWithdrawal(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		available string
		wantErr   error
	}{
		{name: "below minimum", amount: "5", available: "1000", wantErr: domainerrors.ErrInvalidInput},
		{name: "exceeds balance", amount: "1000", available: "500", wantErr: domainerrors.ErrInsufficientBalance},
		{name: "within balance and above minimum", amount: "200", available: "500"},
		{name: "exactly the minimum", amount: "10", available: "500"},
		{name: "exactly the balance", amount: "500", available: "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AdmitWithdrawal(decimal.RequireFromString(tt.amount), decimal.RequireFromString(tt.available))
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
