// Package transaction handles withdrawal requests, admin withdrawal
// decisions, and the transaction history surface.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	domainerrors "github.com/bitfinek-invest/invest_service/internal/domain/errors"
	"github.com/bitfinek-invest/invest_service/internal/domain/repositories"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/audit"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/balance"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/feed"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/database"
	"github.com/bitfinek-invest/invest_service/pkg/metrics"
)

type Service struct {
	db              *sqlx.DB
	transactionRepo repositories.TransactionRepository
	balanceService  *balance.Service
	auditService    *audit.Service
	feedService     *feed.Service
	logger          *zap.Logger
}

func NewService(
	db *sqlx.DB,
	transactionRepo repositories.TransactionRepository,
	balanceService *balance.Service,
	auditService *audit.Service,
	feedService *feed.Service,
	logger *zap.Logger,
) *Service {
	return &Service{
		db:              db,
		transactionRepo: transactionRepo,
		balanceService:  balanceService,
		auditService:    auditService,
		feedService:     feedService,
		logger:          logger,
	}
}

// RequestWithdrawal admits and records a withdrawal request
func (s *Service) RequestWithdrawal(ctx context.Context, userID uuid.UUID, req *entities.WithdrawalRequest) (*entities.Transaction, error) {
	summary, err := s.balanceService.Summary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}

	if err := balance.AdmitWithdrawal(req.Amount, summary.AvailableBalance); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transaction := &entities.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Type:          entities.TransactionTypeWithdrawal,
		Amount:        req.Amount,
		Status:        entities.TransactionStatusPending,
		WalletAddress: req.WalletAddress,
		Network:       req.Network,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create withdrawal: %w", err)
	}

	s.auditService.Log(ctx, &userID, entities.AuditActionWithdrawalRequested, "transaction", &transaction.ID, map[string]interface{}{
		"amount":  req.Amount.String(),
		"network": req.Network,
	})
	s.feedService.Publish(ctx, "transactions", entities.FeedActionInsert, userID, transaction.ID, feed.RecordJSON(transaction))

	s.logger.Info("withdrawal requested",
		zap.String("transaction_id", transaction.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("amount", req.Amount.String()))

	return transaction, nil
}

// ListForUser returns a user's transaction history
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int, error) {
	return s.transactionRepo.ListByUserID(ctx, userID, limit, offset)
}

// ListAll returns all transactions for admin review
func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]*entities.Transaction, int, error) {
	return s.transactionRepo.ListAll(ctx, limit, offset)
}

// ListWithdrawalsByStatus returns withdrawal rows in a status
func (s *Service) ListWithdrawalsByStatus(ctx context.Context, status entities.TransactionStatus, limit, offset int) ([]*entities.Transaction, error) {
	if !status.IsValid() {
		return nil, domainerrors.ValidationError("status", "invalid transaction status")
	}
	return s.transactionRepo.ListByTypeAndStatus(ctx, entities.TransactionTypeWithdrawal, status, limit, offset)
}

// ApproveWithdrawal marks a pending withdrawal as paid out. The blockchain
// transaction hash is mandatory and the balance admission check is repeated
// against a fresh snapshot inside the row lock.
func (s *Service) ApproveWithdrawal(ctx context.Context, adminID, transactionID uuid.UUID, txHash string) (*entities.Transaction, error) {
	if txHash == "" {
		return nil, domainerrors.ValidationError("tx_hash", "transaction hash is required")
	}

	var approved *entities.Transaction

	err := database.WithTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
		transaction, err := s.transactionRepo.GetByIDForUpdateTx(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		if transaction == nil || transaction.Type != entities.TransactionTypeWithdrawal {
			return domainerrors.NotFoundError("WITHDRAWAL")
		}

		if err := transaction.Status.ValidateTransition(entities.TransactionStatusApproved); err != nil {
			return domainerrors.InvalidTransitionError(string(transaction.Status), string(entities.TransactionStatusApproved))
		}

		summary, err := s.balanceService.Summary(ctx, transaction.UserID)
		if err != nil {
			return fmt.Errorf("failed to compute balance: %w", err)
		}
		if err := balance.AdmitWithdrawal(transaction.Amount, summary.AvailableBalance); err != nil {
			return err
		}

		now := time.Now().UTC()
		transaction.Status = entities.TransactionStatusApproved
		transaction.TxHash = &txHash
		transaction.ProcessedAt = &now
		transaction.UpdatedAt = now

		if err := s.transactionRepo.UpdateTx(ctx, tx, transaction); err != nil {
			return err
		}

		approved = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WithdrawalDecisionsTotal.WithLabelValues("approved").Inc()
	s.auditService.Log(ctx, &adminID, entities.AuditActionWithdrawalApproved, "transaction", &approved.ID, map[string]interface{}{
		"amount":  approved.Amount.String(),
		"tx_hash": txHash,
	})
	s.feedService.Publish(ctx, "transactions", entities.FeedActionUpdate, approved.UserID, approved.ID, feed.RecordJSON(approved))

	s.logger.Info("withdrawal approved",
		zap.String("transaction_id", approved.ID.String()),
		zap.String("admin_id", adminID.String()))

	return approved, nil
}

// RejectWithdrawal declines a pending withdrawal with a reason
func (s *Service) RejectWithdrawal(ctx context.Context, adminID, transactionID uuid.UUID, reason string) (*entities.Transaction, error) {
	if reason == "" {
		return nil, domainerrors.ValidationError("reason", "rejection reason is required")
	}

	var rejected *entities.Transaction

	err := database.WithTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
		transaction, err := s.transactionRepo.GetByIDForUpdateTx(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		if transaction == nil || transaction.Type != entities.TransactionTypeWithdrawal {
			return domainerrors.NotFoundError("WITHDRAWAL")
		}

		if err := transaction.Status.ValidateTransition(entities.TransactionStatusRejected); err != nil {
			return domainerrors.InvalidTransitionError(string(transaction.Status), string(entities.TransactionStatusRejected))
		}

		now := time.Now().UTC()
		transaction.Status = entities.TransactionStatusRejected
		transaction.AdminNotes = &reason
		transaction.ProcessedAt = &now
		transaction.UpdatedAt = now

		if err := s.transactionRepo.UpdateTx(ctx, tx, transaction); err != nil {
			return err
		}

		rejected = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WithdrawalDecisionsTotal.WithLabelValues("rejected").Inc()
	s.auditService.Log(ctx, &adminID, entities.AuditActionWithdrawalRejected, "transaction", &rejected.ID, map[string]interface{}{
		"reason": reason,
	})
	s.feedService.Publish(ctx, "transactions", entities.FeedActionUpdate, rejected.UserID, rejected.ID, feed.RecordJSON(rejected))

	s.logger.Info("withdrawal rejected",
		zap.String("transaction_id", rejected.ID.String()),
		zap.String("admin_id", adminID.String()),
		zap.String("reason", reason))

	return rejected, nil
}
