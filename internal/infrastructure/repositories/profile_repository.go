package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
)

// ProfileRepository handles user profile persistence
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `
	id, email, full_name, role, wallet_address, blocked, email_verified,
	last_login_at, created_at, updated_at
`

// Create inserts a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	query := `
		INSERT INTO profiles (
			id, email, full_name, role, wallet_address, blocked, email_verified,
			last_login_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.FullName,
		profile.Role,
		profile.WalletAddress,
		profile.Blocked,
		profile.EmailVerified,
		profile.LastLoginAt,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	query := `SELECT` + profileColumns + `FROM profiles WHERE id = $1`

	var profile entities.Profile
	err := r.db.GetContext(ctx, &profile, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// GetByEmail retrieves a profile by email
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	query := `SELECT` + profileColumns + `FROM profiles WHERE email = $1`

	var profile entities.Profile
	err := r.db.GetContext(ctx, &profile, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}

	return &profile, nil
}

// List retrieves profiles with a total count, for the admin user list
func (r *ProfileRepository) List(ctx context.Context, limit, offset int) ([]*entities.Profile, int, error) {
	query := `SELECT` + profileColumns + `
		FROM profiles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var profiles []*entities.Profile
	if err := r.db.SelectContext(ctx, &profiles, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM profiles`); err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	return profiles, total, nil
}

// Update replaces a profile's mutable fields
func (r *ProfileRepository) Update(ctx context.Context, profile *entities.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $2, wallet_address = $3, email_verified = $4,
			last_login_at = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.FullName,
		profile.WalletAddress,
		profile.EmailVerified,
		profile.LastLoginAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("profile not found")
	}

	return nil
}

// SetBlocked flips a user's blocked flag
func (r *ProfileRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	query := `UPDATE profiles SET blocked = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, blocked)
	if err != nil {
		return fmt.Errorf("failed to set blocked state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("profile not found")
	}

	return nil
}

// MarkEmailVerified flags a profile's email as verified
func (r *ProfileRepository) MarkEmailVerified(ctx context.Context, email string) error {
	query := `UPDATE profiles SET email_verified = true, updated_at = NOW() WHERE email = $1`

	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	return nil
}
