package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
)

// TransactionRepository handles transaction persistence
type TransactionRepository struct {
	db *sqlx.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `
	id, user_id, investment_id, type, amount, status, wallet_address, network,
	tx_hash, admin_notes, processed_at, created_at, updated_at
`

const insertTransactionQuery = `
	INSERT INTO transactions (
		id, user_id, investment_id, type, amount, status, wallet_address, network,
		tx_hash, admin_notes, processed_at, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

// Create inserts a standalone transaction (withdrawal requests)
func (r *TransactionRepository) Create(ctx context.Context, transaction *entities.Transaction) error {
	if _, err := r.db.ExecContext(ctx, insertTransactionQuery, transactionArgs(transaction)...); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateTx inserts a transaction within a caller-managed transaction, used
// when pairing a deposit row with its investment.
func (r *TransactionRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, transaction *entities.Transaction) error {
	if _, err := tx.ExecContext(ctx, insertTransactionQuery, transactionArgs(transaction)...); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func transactionArgs(t *entities.Transaction) []interface{} {
	return []interface{}{
		t.ID,
		t.UserID,
		t.InvestmentID,
		t.Type,
		t.Amount,
		t.Status,
		t.WalletAddress,
		t.Network,
		t.TxHash,
		t.AdminNotes,
		t.ProcessedAt,
		t.CreatedAt,
		t.UpdatedAt,
	}
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	query := `SELECT` + transactionColumns + `FROM transactions WHERE id = $1`

	var transaction entities.Transaction
	err := r.db.GetContext(ctx, &transaction, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &transaction, nil
}

// GetByIDForUpdateTx retrieves a transaction with a row lock
func (r *TransactionRepository) GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*entities.Transaction, error) {
	query := `SELECT` + transactionColumns + `FROM transactions WHERE id = $1 FOR UPDATE`

	var transaction entities.Transaction
	err := tx.GetContext(ctx, &transaction, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction for update: %w", err)
	}

	return &transaction, nil
}

// GetByInvestmentIDTx retrieves the deposit row paired with an investment
func (r *TransactionRepository) GetByInvestmentIDTx(ctx context.Context, tx *sqlx.Tx, investmentID uuid.UUID) (*entities.Transaction, error) {
	query := `SELECT` + transactionColumns + `FROM transactions WHERE investment_id = $1 FOR UPDATE`

	var transaction entities.Transaction
	err := tx.GetContext(ctx, &transaction, query, investmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get paired transaction: %w", err)
	}

	return &transaction, nil
}

// ListByUserID retrieves a user's transactions with a total count
func (r *TransactionRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int, error) {
	query := `SELECT` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var transactions []*entities.Transaction
	if err := r.db.SelectContext(ctx, &transactions, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return transactions, total, nil
}

// ListByTypeAndStatus retrieves transactions of a type in a given status
func (r *TransactionRepository) ListByTypeAndStatus(ctx context.Context, txType entities.TransactionType, status entities.TransactionStatus, limit, offset int) ([]*entities.Transaction, error) {
	query := `SELECT` + transactionColumns + `
		FROM transactions
		WHERE type = $1 AND status = $2
		ORDER BY created_at ASC
		LIMIT $3 OFFSET $4
	`

	var transactions []*entities.Transaction
	if err := r.db.SelectContext(ctx, &transactions, query, txType, status, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list transactions by type and status: %w", err)
	}

	return transactions, nil
}

// ListAll retrieves all transactions with a total count, for admin review
func (r *TransactionRepository) ListAll(ctx context.Context, limit, offset int) ([]*entities.Transaction, int, error) {
	query := `SELECT` + transactionColumns + `
		FROM transactions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var transactions []*entities.Transaction
	if err := r.db.SelectContext(ctx, &transactions, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM transactions`); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return transactions, total, nil
}

// UpdateTx updates a transaction within a caller-managed transaction
func (r *TransactionRepository) UpdateTx(ctx context.Context, tx *sqlx.Tx, transaction *entities.Transaction) error {
	query := `
		UPDATE transactions
		SET status = $2, tx_hash = $3, admin_notes = $4, processed_at = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := tx.ExecContext(ctx, query,
		transaction.ID,
		transaction.Status,
		transaction.TxHash,
		transaction.AdminNotes,
		transaction.ProcessedAt,
		transaction.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("transaction not found")
	}

	return nil
}
