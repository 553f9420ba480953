package plans

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
)

func TestIsPlanUnlocked(t *testing.T) {
	goldID := uuid.New()
	basicID := uuid.New()

	openPlan := &entities.InvestmentPlan{ID: basicID, Name: "BASIC"}
	gatedPlan := &entities.InvestmentPlan{
		ID:                 uuid.New(),
		Name:               "EXPERT",
		RequiresUnlock:     true,
		PrerequisitePlanID: &goldID,
	}
	brokenPlan := &entities.InvestmentPlan{
		ID:             uuid.New(),
		Name:           "ORPHAN",
		RequiresUnlock: true,
	}

	completedGold := &entities.Investment{PlanID: goldID, Status: entities.InvestmentStatusCompleted}
	activeGold := &entities.Investment{PlanID: goldID, Status: entities.InvestmentStatusActive}
	rejectedGold := &entities.Investment{PlanID: goldID, Status: entities.InvestmentStatusRejected}
	completedBasic := &entities.Investment{PlanID: basicID, Status: entities.InvestmentStatusCompleted}

	tests := []struct {
		name        string
		plan        *entities.InvestmentPlan
		investments []*entities.Investment
		unlocked    bool
	}{
		{
			name:     "plan without unlock requirement is always available",
			plan:     openPlan,
			unlocked: true,
		},
		{
			name:        "gated plan with completed prerequisite",
			plan:        gatedPlan,
			investments: []*entities.Investment{completedGold},
			unlocked:    true,
		},
		{
			name:        "gated plan with only active prerequisite",
			plan:        gatedPlan,
			investments: []*entities.Investment{activeGold},
			unlocked:    false,
		},
		{
			name:        "gated plan with only rejected prerequisite",
			plan:        gatedPlan,
			investments: []*entities.Investment{rejectedGold},
			unlocked:    false,
		},
		{
			name:        "gated plan with completion in a different plan",
			plan:        gatedPlan,
			investments: []*entities.Investment{completedBasic},
			unlocked:    false,
		},
		{
			name:     "gated plan with no investment history",
			plan:     gatedPlan,
			unlocked: false,
		},
		{
			name:        "gated plan without a prerequisite stays locked",
			plan:        brokenPlan,
			investments: []*entities.Investment{completedGold, completedBasic},
			unlocked:    false,
		},
		{
			name:        "mixed history with one qualifying completion",
			plan:        gatedPlan,
			investments: []*entities.Investment{rejectedGold, completedBasic, completedGold},
			unlocked:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unlocked, IsPlanUnlocked(tt.plan, tt.investments))
		})
	}
}
