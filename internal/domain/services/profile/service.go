// Package profile manages user profiles and the admin user surface.
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	domainerrors "github.com/bitfinek-invest/invest_service/internal/domain/errors"
	"github.com/bitfinek-invest/invest_service/internal/domain/repositories"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/audit"
)

type Service struct {
	profileRepo     repositories.ProfileRepository
	investmentRepo  repositories.InvestmentRepository
	transactionRepo repositories.TransactionRepository
	auditService    *audit.Service
	logger          *zap.Logger
}

func NewService(
	profileRepo repositories.ProfileRepository,
	investmentRepo repositories.InvestmentRepository,
	transactionRepo repositories.TransactionRepository,
	auditService *audit.Service,
	logger *zap.Logger,
) *Service {
	return &Service{
		profileRepo:     profileRepo,
		investmentRepo:  investmentRepo,
		transactionRepo: transactionRepo,
		auditService:    auditService,
		logger:          logger,
	}
}

// Get returns a profile by ID
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domainerrors.NotFoundError("PROFILE")
	}
	return profile, nil
}

// Update applies the mutable profile fields
func (s *Service) Update(ctx context.Context, userID uuid.UUID, req *entities.UpdateProfileRequest) (*entities.Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.WalletAddress != nil {
		profile.WalletAddress = req.WalletAddress
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// List returns profiles for the admin user list
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entities.Profile, int, error) {
	return s.profileRepo.List(ctx, limit, offset)
}

// GetWithStats returns a profile plus aggregate activity for the admin detail view
func (s *Service) GetWithStats(ctx context.Context, userID uuid.UUID) (*entities.Profile, *entities.UserStats, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	investments, err := s.investmentRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load investments: %w", err)
	}
	_, txCount, err := s.transactionRepo.ListByUserID(ctx, userID, 1, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	totalInvested := decimal.Zero
	totalProfit := decimal.Zero
	stats := &entities.UserStats{TransactionCount: txCount}
	for _, inv := range investments {
		totalProfit = totalProfit.Add(inv.TotalReturn)
		switch inv.Status {
		case entities.InvestmentStatusActive:
			totalInvested = totalInvested.Add(inv.Amount)
			stats.ActiveCount++
		case entities.InvestmentStatusCompleted:
			totalInvested = totalInvested.Add(inv.Amount)
			stats.CompletedCount++
		case entities.InvestmentStatusPending:
			stats.PendingCount++
		}
	}
	stats.TotalInvested = totalInvested.String()
	stats.TotalProfit = totalProfit.String()

	return profile, stats, nil
}

// SetBlocked blocks or unblocks a user
func (s *Service) SetBlocked(ctx context.Context, adminID, userID uuid.UUID, blocked bool) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}

	if err := s.profileRepo.SetBlocked(ctx, userID, blocked); err != nil {
		return err
	}

	action := entities.AuditActionUserUnblocked
	if blocked {
		action = entities.AuditActionUserBlocked
	}
	s.auditService.Log(ctx, &adminID, action, "profile", &userID, nil)

	s.logger.Info("user block state changed",
		zap.String("user_id", userID.String()),
		zap.String("admin_id", adminID.String()),
		zap.Bool("blocked", blocked))

	return nil
}
