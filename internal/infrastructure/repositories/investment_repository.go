package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
)

// InvestmentRepository handles investment persistence
type InvestmentRepository struct {
	db *sqlx.DB
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *sqlx.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

const investmentColumns = `
	id, user_id, plan_id, amount, weekly_return, total_return, status, proof_url,
	rejection_reason, start_date, end_date, created_at, updated_at
`

// CreateTx inserts a new investment within a caller-managed transaction
func (r *InvestmentRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, investment *entities.Investment) error {
	query := `
		INSERT INTO investments (
			id, user_id, plan_id, amount, weekly_return, total_return, status, proof_url,
			rejection_reason, start_date, end_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := tx.ExecContext(ctx, query,
		investment.ID,
		investment.UserID,
		investment.PlanID,
		investment.Amount,
		investment.WeeklyReturn,
		investment.TotalReturn,
		investment.Status,
		investment.ProofURL,
		investment.RejectionReason,
		investment.StartDate,
		investment.EndDate,
		investment.CreatedAt,
		investment.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}

	return nil
}

// GetByID retrieves an investment by ID
func (r *InvestmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error) {
	query := `SELECT` + investmentColumns + `FROM investments WHERE id = $1`

	var investment entities.Investment
	err := r.db.GetContext(ctx, &investment, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}

	return &investment, nil
}

// GetByIDForUpdateTx retrieves an investment with a row lock so concurrent
// admin decisions serialize on the same row.
func (r *InvestmentRepository) GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*entities.Investment, error) {
	query := `SELECT` + investmentColumns + `FROM investments WHERE id = $1 FOR UPDATE`

	var investment entities.Investment
	err := tx.GetContext(ctx, &investment, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get investment for update: %w", err)
	}

	return &investment, nil
}

// ListByUserID retrieves all investments for a user, newest first
func (r *InvestmentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error) {
	query := `SELECT` + investmentColumns + `FROM investments WHERE user_id = $1 ORDER BY created_at DESC`

	var investments []*entities.Investment
	if err := r.db.SelectContext(ctx, &investments, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}

	return investments, nil
}

// ListByStatus retrieves investments in a given status across all users
func (r *InvestmentRepository) ListByStatus(ctx context.Context, status entities.InvestmentStatus, limit, offset int) ([]*entities.Investment, error) {
	query := `SELECT` + investmentColumns + `FROM investments WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`

	var investments []*entities.Investment
	if err := r.db.SelectContext(ctx, &investments, query, status, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list investments by status: %w", err)
	}

	return investments, nil
}

// UpdateTx updates an investment within a caller-managed transaction
func (r *InvestmentRepository) UpdateTx(ctx context.Context, tx *sqlx.Tx, investment *entities.Investment) error {
	query := `
		UPDATE investments
		SET amount = $2, weekly_return = $3, total_return = $4, status = $5,
			proof_url = $6, rejection_reason = $7, start_date = $8, end_date = $9,
			updated_at = $10
		WHERE id = $1
	`

	result, err := tx.ExecContext(ctx, query,
		investment.ID,
		investment.Amount,
		investment.WeeklyReturn,
		investment.TotalReturn,
		investment.Status,
		investment.ProofURL,
		investment.RejectionReason,
		investment.StartDate,
		investment.EndDate,
		investment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("investment not found")
	}

	return nil
}

// ListMatured retrieves active investments whose end date has passed
func (r *InvestmentRepository) ListMatured(ctx context.Context, limit int) ([]*entities.Investment, error) {
	query := `SELECT` + investmentColumns + `
		FROM investments
		WHERE status = 'active' AND end_date <= NOW()
		ORDER BY end_date ASC
		LIMIT $1
	`

	var investments []*entities.Investment
	if err := r.db.SelectContext(ctx, &investments, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list matured investments: %w", err)
	}

	return investments, nil
}

// SettleMatured flips a matured active investment to completed. The status
// guard makes re-runs no-ops, so settlement stays idempotent. Returns whether
// this call performed the settlement.
func (r *InvestmentRepository) SettleMatured(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE investments
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND status = 'active' AND end_date <= NOW()
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to settle investment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check settlement result: %w", err)
	}

	return rows > 0, nil
}
