// Package investment implements the deposit lifecycle: submission, admin
// decisions, and the maturity settlement transform. Every status change on an
// investment is mirrored onto its paired deposit transaction inside a single
// database transaction.
package investment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	domainerrors "github.com/bitfinek-invest/invest_service/internal/domain/errors"
	"github.com/bitfinek-invest/invest_service/internal/domain/repositories"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/audit"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/feed"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/plans"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/returns"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/database"
	"github.com/bitfinek-invest/invest_service/pkg/metrics"
)

type Service struct {
	db              *sqlx.DB
	investmentRepo  repositories.InvestmentRepository
	transactionRepo repositories.TransactionRepository
	planRepo        repositories.PlanRepository
	auditService    *audit.Service
	feedService     *feed.Service
	logger          *zap.Logger

	// runTx wraps a unit of work in a database transaction
	runTx func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func NewService(
	db *sqlx.DB,
	investmentRepo repositories.InvestmentRepository,
	transactionRepo repositories.TransactionRepository,
	planRepo repositories.PlanRepository,
	auditService *audit.Service,
	feedService *feed.Service,
	logger *zap.Logger,
) *Service {
	s := &Service{
		db:              db,
		investmentRepo:  investmentRepo,
		transactionRepo: transactionRepo,
		planRepo:        planRepo,
		auditService:    auditService,
		feedService:     feedService,
		logger:          logger,
	}
	s.runTx = func(ctx context.Context, fn func(*sqlx.Tx) error) error {
		return database.WithTransaction(ctx, s.db, fn)
	}
	return s
}

// Submit creates a pending investment and its paired deposit transaction
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, req *entities.SubmitInvestmentRequest) (*entities.Investment, error) {
	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		return nil, domainerrors.ValidationError("plan_id", "invalid plan id")
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if plan == nil || !plan.Active {
		return nil, domainerrors.NotFoundError("PLAN")
	}

	if !plan.AmountInRange(req.Amount) {
		return nil, domainerrors.AmountOutOfRangeError(plan.MinAmount.String(), plan.MaxAmount.String())
	}
	if req.ProofURL == "" {
		return nil, domainerrors.ValidationError("proof_url", "proof of payment is required")
	}

	if plan.RequiresUnlock {
		userInvestments, err := s.investmentRepo.ListByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user investments: %w", err)
		}
		if !plans.IsPlanUnlocked(plan, userInvestments) {
			return nil, domainerrors.PlanLockedError(plan.Name)
		}
	}

	// Returns are written at approval. A pending or rejected row never
	// carries a projected return, so profit sums stay honest.
	now := time.Now().UTC()
	investment := &entities.Investment{
		ID:           uuid.New(),
		UserID:       userID,
		PlanID:       plan.ID,
		Amount:       req.Amount,
		WeeklyReturn: decimal.Zero,
		TotalReturn:  decimal.Zero,
		Status:       entities.InvestmentStatusPending,
		ProofURL:     req.ProofURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var txHash *string
	if req.TxHash != "" {
		txHash = &req.TxHash
	}
	transaction := &entities.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		InvestmentID:  &investment.ID,
		Type:          entities.TransactionTypeDeposit,
		Amount:        req.Amount,
		Status:        entities.TransactionStatusPending,
		WalletAddress: req.WalletAddress,
		Network:       req.Network,
		TxHash:        txHash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.runTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.investmentRepo.CreateTx(ctx, tx, investment); err != nil {
			return err
		}
		return s.transactionRepo.CreateTx(ctx, tx, transaction)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit investment: %w", err)
	}

	metrics.InvestmentsSubmittedTotal.WithLabelValues(plan.Name).Inc()
	s.auditService.Log(ctx, &userID, entities.AuditActionInvestmentSubmitted, "investment", &investment.ID, map[string]interface{}{
		"plan":   plan.Name,
		"amount": req.Amount.String(),
	})
	s.feedService.Publish(ctx, "investments", entities.FeedActionInsert, userID, investment.ID, feed.RecordJSON(investment))
	s.feedService.Publish(ctx, "transactions", entities.FeedActionInsert, userID, transaction.ID, feed.RecordJSON(transaction))

	s.logger.Info("investment submitted",
		zap.String("investment_id", investment.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("plan", plan.Name),
		zap.String("amount", req.Amount.String()))

	return investment, nil
}

// GetForUser returns an investment if it belongs to the user
func (s *Service) GetForUser(ctx context.Context, userID, investmentID uuid.UUID) (*entities.Investment, error) {
	investment, err := s.investmentRepo.GetByID(ctx, investmentID)
	if err != nil {
		return nil, err
	}
	if investment == nil || investment.UserID != userID {
		return nil, domainerrors.NotFoundError("INVESTMENT")
	}
	return investment, nil
}

// ListForUser returns a user's investments
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error) {
	return s.investmentRepo.ListByUserID(ctx, userID)
}

// ListByStatus returns investments in a status for admin review
func (s *Service) ListByStatus(ctx context.Context, status entities.InvestmentStatus, limit, offset int) ([]*entities.Investment, error) {
	if !status.IsValid() {
		return nil, domainerrors.ValidationError("status", "invalid investment status")
	}
	return s.investmentRepo.ListByStatus(ctx, status, limit, offset)
}

// Approve activates a pending investment. The start date is the approval
// time and the end date follows from the plan's duration. The paired deposit
// transaction is approved in the same database transaction.
func (s *Service) Approve(ctx context.Context, adminID, investmentID uuid.UUID) (*entities.Investment, error) {
	var approved *entities.Investment

	err := s.runTx(ctx, func(tx *sqlx.Tx) error {
		investment, err := s.investmentRepo.GetByIDForUpdateTx(ctx, tx, investmentID)
		if err != nil {
			return err
		}
		if investment == nil {
			return domainerrors.NotFoundError("INVESTMENT")
		}

		if err := investment.Status.ValidateTransition(entities.InvestmentStatusActive); err != nil {
			return domainerrors.InvalidTransitionError(string(investment.Status), string(entities.InvestmentStatusActive))
		}

		plan, err := s.planRepo.GetByID(ctx, investment.PlanID)
		if err != nil {
			return err
		}
		if plan == nil {
			return domainerrors.NotFoundError("PLAN")
		}

		projection, err := returns.ForPlan(plan, investment.Amount)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		endDate := now.Add(time.Duration(plan.DurationWeeks) * 7 * 24 * time.Hour)

		investment.Status = entities.InvestmentStatusActive
		investment.WeeklyReturn = projection.WeeklyReturn
		investment.TotalReturn = projection.TotalReturn
		investment.StartDate = &now
		investment.EndDate = &endDate
		investment.UpdatedAt = now

		if err := s.investmentRepo.UpdateTx(ctx, tx, investment); err != nil {
			return err
		}

		if err := s.decidePairedTransaction(ctx, tx, investment.ID, entities.TransactionStatusApproved, nil, now); err != nil {
			return err
		}

		approved = investment
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.InvestmentDecisionsTotal.WithLabelValues("approved").Inc()
	s.auditService.Log(ctx, &adminID, entities.AuditActionInvestmentApproved, "investment", &approved.ID, map[string]interface{}{
		"amount": approved.Amount.String(),
	})
	s.feedService.Publish(ctx, "investments", entities.FeedActionUpdate, approved.UserID, approved.ID, feed.RecordJSON(approved))

	s.logger.Info("investment approved",
		zap.String("investment_id", approved.ID.String()),
		zap.String("admin_id", adminID.String()))

	return approved, nil
}

// Reject declines a pending investment with a reason. The paired deposit
// transaction is rejected with the same reason in the same transaction.
func (s *Service) Reject(ctx context.Context, adminID, investmentID uuid.UUID, reason string) (*entities.Investment, error) {
	if reason == "" {
		return nil, domainerrors.ValidationError("reason", "rejection reason is required")
	}

	var rejected *entities.Investment

	err := s.runTx(ctx, func(tx *sqlx.Tx) error {
		investment, err := s.investmentRepo.GetByIDForUpdateTx(ctx, tx, investmentID)
		if err != nil {
			return err
		}
		if investment == nil {
			return domainerrors.NotFoundError("INVESTMENT")
		}

		if err := investment.Status.ValidateTransition(entities.InvestmentStatusRejected); err != nil {
			return domainerrors.InvalidTransitionError(string(investment.Status), string(entities.InvestmentStatusRejected))
		}

		now := time.Now().UTC()
		investment.Status = entities.InvestmentStatusRejected
		investment.RejectionReason = &reason
		investment.UpdatedAt = now

		if err := s.investmentRepo.UpdateTx(ctx, tx, investment); err != nil {
			return err
		}

		if err := s.decidePairedTransaction(ctx, tx, investment.ID, entities.TransactionStatusRejected, &reason, now); err != nil {
			return err
		}

		rejected = investment
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.InvestmentDecisionsTotal.WithLabelValues("rejected").Inc()
	s.auditService.Log(ctx, &adminID, entities.AuditActionInvestmentRejected, "investment", &rejected.ID, map[string]interface{}{
		"reason": reason,
	})
	s.feedService.Publish(ctx, "investments", entities.FeedActionUpdate, rejected.UserID, rejected.ID, feed.RecordJSON(rejected))

	s.logger.Info("investment rejected",
		zap.String("investment_id", rejected.ID.String()),
		zap.String("admin_id", adminID.String()),
		zap.String("reason", reason))

	return rejected, nil
}

func (s *Service) decidePairedTransaction(ctx context.Context, tx *sqlx.Tx, investmentID uuid.UUID, status entities.TransactionStatus, notes *string, now time.Time) error {
	paired, err := s.transactionRepo.GetByInvestmentIDTx(ctx, tx, investmentID)
	if err != nil {
		return err
	}
	if paired == nil {
		return fmt.Errorf("paired transaction not found for investment %s", investmentID)
	}

	if err := paired.Status.ValidateTransition(status); err != nil {
		return domainerrors.InvalidTransitionError(string(paired.Status), string(status))
	}

	paired.Status = status
	paired.AdminNotes = notes
	paired.ProcessedAt = &now
	paired.UpdatedAt = now

	return s.transactionRepo.UpdateTx(ctx, tx, paired)
}

// Settle flips matured active investments to completed and returns how many
// rows settled. The repository guard keeps re-runs idempotent.
func (s *Service) Settle(ctx context.Context, batchSize int) (int, error) {
	matured, err := s.investmentRepo.ListMatured(ctx, batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list matured investments: %w", err)
	}

	settled := 0
	for _, investment := range matured {
		ok, err := s.investmentRepo.SettleMatured(ctx, investment.ID)
		if err != nil {
			s.logger.Error("failed to settle investment",
				zap.String("investment_id", investment.ID.String()),
				zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		settled++

		metrics.InvestmentsSettledTotal.Inc()
		s.auditService.Log(ctx, nil, entities.AuditActionInvestmentSettled, "investment", &investment.ID, map[string]interface{}{
			"amount":       investment.Amount.String(),
			"total_return": investment.TotalReturn.String(),
		})

		investment.Status = entities.InvestmentStatusCompleted
		s.feedService.Publish(ctx, "investments", entities.FeedActionUpdate, investment.UserID, investment.ID, feed.RecordJSON(investment))
	}

	return settled, nil
}
