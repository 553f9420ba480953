// Package repositories defines the persistence interfaces consumed by the
// service layer. Implementations live in internal/infrastructure/repositories.
package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
)

// PlanRepository defines the interface for plan catalog persistence
type PlanRepository interface {
	Create(ctx context.Context, plan *entities.InvestmentPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.InvestmentPlan, error)
	GetByName(ctx context.Context, name string) (*entities.InvestmentPlan, error)
	ListActive(ctx context.Context) ([]*entities.InvestmentPlan, error)
	ListAll(ctx context.Context) ([]*entities.InvestmentPlan, error)
	Update(ctx context.Context, plan *entities.InvestmentPlan) error
}

// InvestmentRepository defines the interface for investment persistence.
// Tx-suffixed methods run inside a caller-managed transaction so decision
// pairing with the transactions table stays atomic.
type InvestmentRepository interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, investment *entities.Investment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error)
	GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*entities.Investment, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error)
	ListByStatus(ctx context.Context, status entities.InvestmentStatus, limit, offset int) ([]*entities.Investment, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, investment *entities.Investment) error
	ListMatured(ctx context.Context, limit int) ([]*entities.Investment, error)
	SettleMatured(ctx context.Context, id uuid.UUID) (bool, error)
}

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, transaction *entities.Transaction) error
	Create(ctx context.Context, transaction *entities.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
	GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*entities.Transaction, error)
	GetByInvestmentIDTx(ctx context.Context, tx *sqlx.Tx, investmentID uuid.UUID) (*entities.Transaction, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int, error)
	ListByTypeAndStatus(ctx context.Context, txType entities.TransactionType, status entities.TransactionStatus, limit, offset int) ([]*entities.Transaction, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entities.Transaction, int, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, transaction *entities.Transaction) error
}

// ProfileRepository defines the interface for user profile persistence
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entities.Profile, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Profile, int, error)
	Update(ctx context.Context, profile *entities.Profile) error
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
	MarkEmailVerified(ctx context.Context, email string) error
}

// VerificationRepository defines the interface for email verification codes
type VerificationRepository interface {
	Create(ctx context.Context, verification *entities.EmailVerification) error
	GetLatestByEmail(ctx context.Context, email string) (*entities.EmailVerification, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// AuditRepository defines the interface for audit log persistence
type AuditRepository interface {
	Create(ctx context.Context, log *entities.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]*entities.AuditLog, int, error)
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*entities.AuditLog, error)
}
