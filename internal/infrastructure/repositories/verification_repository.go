package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
)

// VerificationRepository handles email verification code persistence
type VerificationRepository struct {
	db *sqlx.DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *sqlx.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Create inserts a new verification code
func (r *VerificationRepository) Create(ctx context.Context, verification *entities.EmailVerification) error {
	query := `
		INSERT INTO email_verifications (id, email, code, expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		verification.ID,
		verification.Email,
		verification.Code,
		verification.ExpiresAt,
		verification.UsedAt,
		verification.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}

	return nil
}

// GetLatestByEmail retrieves the most recent code issued for an email
func (r *VerificationRepository) GetLatestByEmail(ctx context.Context, email string) (*entities.EmailVerification, error) {
	query := `
		SELECT id, email, code, expires_at, used_at, created_at
		FROM email_verifications
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var verification entities.EmailVerification
	err := r.db.GetContext(ctx, &verification, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get verification: %w", err)
	}

	return &verification, nil
}

// MarkUsed records that a code has been consumed
func (r *VerificationRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE email_verifications SET used_at = NOW() WHERE id = $1 AND used_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark verification used: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("verification already used or not found")
	}

	return nil
}

// DeleteExpired purges codes past their expiry, returning the count removed
func (r *VerificationRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM email_verifications WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired verifications: %w", err)
	}

	return result.RowsAffected()
}
