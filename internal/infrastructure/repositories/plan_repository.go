package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
)

// PlanRepository handles investment plan persistence
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

const planColumns = `
	id, name, min_amount, max_amount, weekly_return_percent, duration_weeks,
	requires_unlock, prerequisite_plan_id, active, created_at, updated_at
`

// Create inserts a new plan
func (r *PlanRepository) Create(ctx context.Context, plan *entities.InvestmentPlan) error {
	query := `
		INSERT INTO investment_plans (
			id, name, min_amount, max_amount, weekly_return_percent, duration_weeks,
			requires_unlock, prerequisite_plan_id, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		plan.ID,
		plan.Name,
		plan.MinAmount,
		plan.MaxAmount,
		plan.WeeklyReturnPercent,
		plan.DurationWeeks,
		plan.RequiresUnlock,
		plan.PrerequisitePlanID,
		plan.Active,
		plan.CreatedAt,
		plan.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	return nil
}

// GetByID retrieves a plan by ID
func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.InvestmentPlan, error) {
	query := `SELECT` + planColumns + `FROM investment_plans WHERE id = $1`

	var plan entities.InvestmentPlan
	err := r.db.GetContext(ctx, &plan, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return &plan, nil
}

// GetByName retrieves a plan by its name
func (r *PlanRepository) GetByName(ctx context.Context, name string) (*entities.InvestmentPlan, error) {
	query := `SELECT` + planColumns + `FROM investment_plans WHERE name = $1`

	var plan entities.InvestmentPlan
	err := r.db.GetContext(ctx, &plan, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan by name: %w", err)
	}

	return &plan, nil
}

// ListActive retrieves the active catalog ordered by minimum amount
func (r *PlanRepository) ListActive(ctx context.Context) ([]*entities.InvestmentPlan, error) {
	query := `SELECT` + planColumns + `FROM investment_plans WHERE active = true ORDER BY min_amount ASC`

	var plans []*entities.InvestmentPlan
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}

	return plans, nil
}

// ListAll retrieves every plan, active or not
func (r *PlanRepository) ListAll(ctx context.Context) ([]*entities.InvestmentPlan, error) {
	query := `SELECT` + planColumns + `FROM investment_plans ORDER BY min_amount ASC`

	var plans []*entities.InvestmentPlan
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return plans, nil
}

// Update replaces a plan's mutable fields
func (r *PlanRepository) Update(ctx context.Context, plan *entities.InvestmentPlan) error {
	query := `
		UPDATE investment_plans
		SET name = $2, min_amount = $3, max_amount = $4, weekly_return_percent = $5,
			duration_weeks = $6, requires_unlock = $7, prerequisite_plan_id = $8,
			active = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		plan.ID,
		plan.Name,
		plan.MinAmount,
		plan.MaxAmount,
		plan.WeeklyReturnPercent,
		plan.DurationWeeks,
		plan.RequiresUnlock,
		plan.PrerequisitePlanID,
		plan.Active,
		plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("plan not found")
	}

	return nil
}
