// Package returns implements the simple-interest return calculator used for
// plan projections and settlement payouts.
package returns

import (
	"github.com/shopspring/decimal"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	domainerrors "github.com/bitfinek-invest/invest_service/internal/domain/errors"
)

var hundred = decimal.NewFromInt(100)

// Calculate projects returns for a principal at a weekly percentage rate over
// a number of weeks. Interest is simple, not compounded: the weekly return is
// fixed at principal * rate/100 and the total is that times the week count.
func Calculate(principal, weeklyRatePercent decimal.Decimal, weeks int) (entities.ReturnProjection, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return entities.ReturnProjection{}, domainerrors.ValidationError("principal", "principal must be greater than zero")
	}
	if weeklyRatePercent.IsNegative() {
		return entities.ReturnProjection{}, domainerrors.ValidationError("weekly_rate_percent", "weekly rate must not be negative")
	}
	if weeks < 0 {
		return entities.ReturnProjection{}, domainerrors.ValidationError("weeks", "weeks must not be negative")
	}

	weeklyReturn := principal.Mul(weeklyRatePercent.Div(hundred))
	totalReturn := weeklyReturn.Mul(decimal.NewFromInt(int64(weeks)))

	return entities.ReturnProjection{
		Principal:    principal,
		WeeklyReturn: weeklyReturn,
		TotalReturn:  totalReturn,
		FinalAmount:  principal.Add(totalReturn),
	}, nil
}

// ForPlan projects returns for an amount invested in a plan
func ForPlan(plan *entities.InvestmentPlan, amount decimal.Decimal) (entities.ReturnProjection, error) {
	return Calculate(amount, plan.WeeklyReturnPercent, plan.DurationWeeks)
}
