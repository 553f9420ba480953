// Package plans manages the investment plan catalog and the unlock policy
// gating premium plans behind a completed prerequisite investment.
package plans

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
	"github.com/bitfinek-invest/invest_service/internal/domain/services/returns"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/cache"
)

const (
	catalogCacheKey = "plans:active"
	catalogCacheTTL = 5 * time.Minute
)

// IsPlanUnlocked reports whether a user may invest in a plan. A plan without
// an unlock requirement is always available; one with a requirement needs at
// least one completed investment in its prerequisite plan.
func IsPlanUnlocked(plan *entities.InvestmentPlan, userInvestments []*entities.Investment) bool {
	if !plan.RequiresUnlock {
		return true
	}
	if plan.PrerequisitePlanID == nil {
		return false
	}
	for _, inv := range userInvestments {
		if inv.Status == entities.InvestmentStatusCompleted && inv.PlanID == *plan.PrerequisitePlanID {
			return true
		}
	}
	return false
}

type Service struct {
	planRepo       repositories.PlanRepository
	investmentRepo repositories.InvestmentRepository
	cache          cache.RedisClient
	logger         *zap.Logger
}

func NewService(planRepo repositories.PlanRepository, investmentRepo repositories.InvestmentRepository, redis cache.RedisClient, logger *zap.Logger) *Service {
	return &Service{
		planRepo:       planRepo,
		investmentRepo: investmentRepo,
		cache:          redis,
		logger:         logger,
	}
}

// ListForUser returns the active catalog with per-user unlock state and a
// return projection at each plan's minimum amount.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.PlanView, error) {
	plans, err := s.activePlans(ctx)
	if err != nil {
		return nil, err
	}

	investments, err := s.investmentRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user investments: %w", err)
	}

	views := make([]*entities.PlanView, 0, len(plans))
	for _, plan := range plans {
		projection, err := returns.ForPlan(plan, plan.MinAmount)
		if err != nil {
			s.logger.Warn("skipping plan with invalid terms",
				zap.String("plan_id", plan.ID.String()),
				zap.Error(err))
			continue
		}
		views = append(views, &entities.PlanView{
			InvestmentPlan: *plan,
			Unlocked:       IsPlanUnlocked(plan, investments),
			Projection:     projection,
		})
	}
	return views, nil
}

// GetByID returns a single plan
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*entities.InvestmentPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domainerrors.NotFoundError("PLAN")
	}
	return plan, nil
}

// ListAll returns every plan, active or not, for admin catalog management
func (s *Service) ListAll(ctx context.Context) ([]*entities.InvestmentPlan, error) {
	return s.planRepo.ListAll(ctx)
}

// Create adds a plan to the catalog
func (s *Service) Create(ctx context.Context, req *entities.UpsertPlanRequest) (*entities.InvestmentPlan, error) {
	plan, err := s.planFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	plan.ID = uuid.New()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	s.invalidateCatalog(ctx)
	return plan, nil
}

// Update replaces a plan's terms. Existing investments keep the terms they
// were submitted under; only new submissions see the change.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *entities.UpsertPlanRequest) (*entities.InvestmentPlan, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	plan, err := s.planFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	plan.ID = existing.ID
	plan.CreatedAt = existing.CreatedAt
	plan.UpdatedAt = time.Now().UTC()

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	s.invalidateCatalog(ctx)
	return plan, nil
}

func (s *Service) planFromRequest(ctx context.Context, req *entities.UpsertPlanRequest) (*entities.InvestmentPlan, error) {
	if req.MinAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domainerrors.ValidationError("min_amount", "minimum amount must be greater than zero")
	}
	if req.MaxAmount.LessThan(req.MinAmount) {
		return nil, domainerrors.ValidationError("max_amount", "maximum amount must not be below minimum amount")
	}
	if req.WeeklyReturnPercent.IsNegative() {
		return nil, domainerrors.ValidationError("weekly_return_percent", "weekly return must not be negative")
	}

	var prereqID *uuid.UUID
	if req.PrerequisitePlanID != nil {
		parsed, err := uuid.Parse(*req.PrerequisitePlanID)
		if err != nil {
			return nil, domainerrors.ValidationError("prerequisite_plan_id", "invalid prerequisite plan id")
		}
		if _, err := s.GetByID(ctx, parsed); err != nil {
			return nil, domainerrors.ValidationError("prerequisite_plan_id", "prerequisite plan does not exist")
		}
		prereqID = &parsed
	}
	if req.RequiresUnlock && prereqID == nil {
		return nil, domainerrors.ValidationError("prerequisite_plan_id", "locked plans require a prerequisite plan")
	}

	return &entities.InvestmentPlan{
		Name:                req.Name,
		MinAmount:           req.MinAmount,
		MaxAmount:           req.MaxAmount,
		WeeklyReturnPercent: req.WeeklyReturnPercent,
		DurationWeeks:       req.DurationWeeks,
		RequiresUnlock:      req.RequiresUnlock,
		PrerequisitePlanID:  prereqID,
		Active:              req.Active,
	}, nil
}

func (s *Service) activePlans(ctx context.Context) ([]*entities.InvestmentPlan, error) {
	if s.cache != nil {
		var cached []*entities.InvestmentPlan
		if err := s.cache.Get(ctx, catalogCacheKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	plans, err := s.planRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogCacheKey, plans, catalogCacheTTL); err != nil {
			s.logger.Warn("failed to cache plan catalog", zap.Error(err))
		}
	}
	return plans, nil
}

func (s *Service) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, catalogCacheKey); err != nil {
		s.logger.Warn("failed to invalidate plan catalog cache", zap.Error(err))
	}
}
