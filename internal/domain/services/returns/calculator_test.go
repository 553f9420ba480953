package returns

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		principal    string
		rate         string
		weeks        int
		weeklyReturn string
		totalReturn  string
		finalAmount  string
	}{
		{
			name:         "1000 at 5 percent over 4 weeks",
			principal:    "1000",
			rate:         "5",
			weeks:        4,
			weeklyReturn: "50",
			totalReturn:  "200",
			finalAmount:  "1200",
		},
		{
			name:         "zero weeks yields zero total",
			principal:    "1000",
			rate:         "5",
			weeks:        0,
			weeklyReturn: "50",
			totalReturn:  "0",
			finalAmount:  "1000",
		},
		{
			name:         "zero rate yields zero returns",
			principal:    "500",
			rate:         "0",
			weeks:        8,
			weeklyReturn: "0",
			totalReturn:  "0",
			finalAmount:  "500",
		},
		{
			name:         "fractional rate",
			principal:    "250",
			rate:         "2.5",
			weeks:        2,
			weeklyReturn: "6.25",
			totalReturn:  "12.5",
			finalAmount:  "262.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal := decimal.RequireFromString(tt.principal)
			rate := decimal.RequireFromString(tt.rate)

			projection, err := Calculate(principal, rate, tt.weeks)
			require.NoError(t, err)

			assert.True(t, projection.WeeklyReturn.Equal(decimal.RequireFromString(tt.weeklyReturn)),
				"weekly return: got %s", projection.WeeklyReturn)
			assert.True(t, projection.TotalReturn.Equal(decimal.RequireFromString(tt.totalReturn)),
				"total return: got %s", projection.TotalReturn)
			assert.True(t, projection.FinalAmount.Equal(decimal.RequireFromString(tt.finalAmount)),
				"final amount: got %s", projection.FinalAmount)
		})
	}
}

func TestCalculate_RejectsInvalidInputs(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		weeks     int
	}{
		{name: "zero principal", principal: "0", rate: "5", weeks: 4},
		{name: "negative principal", principal: "-100", rate: "5", weeks: 4},
		{name: "negative rate", principal: "1000", rate: "-1", weeks: 4},
		{name: "negative weeks", principal: "1000", rate: "5", weeks: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(decimal.RequireFromString(tt.principal), decimal.RequireFromString(tt.rate), tt.weeks)
			assert.Error(t, err)
		})
	}
}

func TestForPlan(t *testing.T) {
	plan := &entities.InvestmentPlan{
		Name:                "GOLD",
		WeeklyReturnPercent: decimal.NewFromInt(10),
		DurationWeeks:       4,
	}

	projection, err := ForPlan(plan, decimal.NewFromInt(5000))
	require.NoError(t, err)

	assert.True(t, projection.WeeklyReturn.Equal(decimal.NewFromInt(500)))
	assert.True(t, projection.TotalReturn.Equal(decimal.NewFromInt(2000)))
	assert.True(t, projection.FinalAmount.Equal(decimal.NewFromInt(7000)))
}
