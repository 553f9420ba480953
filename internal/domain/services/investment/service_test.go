package investment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	domainerrors "github.com/bitfinek-invest/invest_service/internal/domain/errors"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/audit"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/feed"
)

type MockPlanRepo struct {
	mock.Mock
}

func (m *MockPlanRepo) Create(ctx context.Context, plan *entities.InvestmentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.InvestmentPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InvestmentPlan), args.Error(1)
}

func (m *MockPlanRepo) GetByName(ctx context.Context, name string) (*entities.InvestmentPlan, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InvestmentPlan), args.Error(1)
}

func (m *MockPlanRepo) ListActive(ctx context.Context) ([]*entities.InvestmentPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.InvestmentPlan), args.Error(1)
}

func (m *MockPlanRepo) ListAll(ctx context.Context) ([]*entities.InvestmentPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.InvestmentPlan), args.Error(1)
}

func (m *MockPlanRepo) Update(ctx context.Context, plan *entities.InvestmentPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

type MockInvestmentRepo struct {
	mock.Mock
}

func (m *MockInvestmentRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, investment *entities.Investment) error {
	args := m.Called(ctx, tx, investment)
	return args.Error(0)
}

func (m *MockInvestmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Investment), args.Error(1)
}

func (m *MockInvestmentRepo) GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*entities.Investment, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Investment), args.Error(1)
}

func (m *MockInvestmentRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Investment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Investment), args.Error(1)
}

func (m *MockInvestmentRepo) ListByStatus(ctx context.Context, status entities.InvestmentStatus, limit, offset int) ([]*entities.Investment, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Investment), args.Error(1)
}

func (m *MockInvestmentRepo) UpdateTx(ctx context.Context, tx *sqlx.Tx, investment *entities.Investment) error {
	args := m.Called(ctx, tx, investment)
	return args.Error(0)
}

func (m *MockInvestmentRepo) ListMatured(ctx context.Context, limit int) ([]*entities.Investment, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Investment), args.Error(1)
}

func (m *MockInvestmentRepo) SettleMatured(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) CreateTx(ctx context.Context, tx *sqlx.Tx, transaction *entities.Transaction) error {
	args := m.Called(ctx, tx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepo) Create(ctx context.Context, transaction *entities.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) GetByInvestmentIDTx(ctx context.Context, tx *sqlx.Tx, investmentID uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, tx, investmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Transaction), args.Int(1), args.Error(2)
}

func (m *MockTransactionRepo) ListByTypeAndStatus(ctx context.Context, txType entities.TransactionType, status entities.TransactionStatus, limit, offset int) ([]*entities.Transaction, error) {
	args := m.Called(ctx, txType, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) ListAll(ctx context.Context, limit, offset int) ([]*entities.Transaction, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Transaction), args.Int(1), args.Error(2)
}

func (m *MockTransactionRepo) UpdateTx(ctx context.Context, tx *sqlx.Tx, transaction *entities.Transaction) error {
	args := m.Called(ctx, tx, transaction)
	return args.Error(0)
}

type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, log *entities.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditRepo) List(ctx context.Context, limit, offset int) ([]*entities.AuditLog, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.AuditLog), args.Int(1), args.Error(2)
}

func (m *MockAuditRepo) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*entities.AuditLog, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AuditLog), args.Error(1)
}

// stubRedis is a no-op cache client for exercising services without Redis
type stubRedis struct{}

func (stubRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (stubRedis) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("cache miss")
}
func (stubRedis) Delete(ctx context.Context, key string) error                 { return nil }
func (stubRedis) Exists(ctx context.Context, key string) (bool, error)         { return false, nil }
func (stubRedis) Incr(ctx context.Context, key string) (int64, error)          { return 1, nil }
func (stubRedis) Expire(ctx context.Context, key string, d time.Duration) error { return nil }
func (stubRedis) Publish(ctx context.Context, channel string, value interface{}) error {
	return nil
}
func (stubRedis) Subscribe(ctx context.Context, channels ...string) *redis.PubSub { return nil }
func (stubRedis) Ping(ctx context.Context) error                                  { return nil }
func (stubRedis) Close() error                                                    { return nil }
func (stubRedis) Client() *redis.Client                                           { return nil }

func newTestService(planRepo *MockPlanRepo, investmentRepo *MockInvestmentRepo, transactionRepo *MockTransactionRepo, auditRepo *MockAuditRepo) *Service {
	logger := zap.NewNop()
	auditService := audit.NewService(auditRepo, logger)
	feedService := feed.NewService(stubRedis{}, logger)
	return NewService(nil, investmentRepo, transactionRepo, planRepo, auditService, feedService, logger)
}

func TestSubmit_RejectsInvalidInputs(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	planID := uuid.New()

	plan := &entities.InvestmentPlan{
		ID:                  planID,
		Name:                "BASIC",
		MinAmount:           decimal.NewFromInt(100),
		MaxAmount:           decimal.NewFromInt(1000),
		WeeklyReturnPercent: decimal.NewFromInt(5),
		DurationWeeks:       2,
		Active:              true,
	}

	t.Run("malformed plan id", func(t *testing.T) {
		svc := newTestService(new(MockPlanRepo), new(MockInvestmentRepo), new(MockTransactionRepo), new(MockAuditRepo))

		_, err := svc.Submit(ctx, userID, &entities.SubmitInvestmentRequest{
			PlanID: "not-a-uuid",
			Amount: decimal.NewFromInt(500),
		})
		assert.True(t, domainerrors.IsInvalidInput(err))
	})

	t.Run("unknown plan", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		planRepo.On("GetByID", ctx, planID).Return(nil, nil)
		svc := newTestService(planRepo, new(MockInvestmentRepo), new(MockTransactionRepo), new(MockAuditRepo))

		_, err := svc.Submit(ctx, userID, &entities.SubmitInvestmentRequest{
			PlanID: planID.String(),
			Amount: decimal.NewFromInt(500),
		})
		assert.True(t, domainerrors.IsNotFound(err))
	})

	t.Run("inactive plan", func(t *testing.T) {
		inactive := *plan
		inactive.Active = false
		planRepo := new(MockPlanRepo)
		planRepo.On("GetByID", ctx, planID).Return(&inactive, nil)
		svc := newTestService(planRepo, new(MockInvestmentRepo), new(MockTransactionRepo), new(MockAuditRepo))

		_, err := svc.Submit(ctx, userID, &entities.SubmitInvestmentRequest{
			PlanID: planID.String(),
			Amount: decimal.NewFromInt(500),
		})
		assert.True(t, domainerrors.IsNotFound(err))
	})

	t.Run("amount below range", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		planRepo.On("GetByID", ctx, planID).Return(plan, nil)
		svc := newTestService(planRepo, new(MockInvestmentRepo), new(MockTransactionRepo), new(MockAuditRepo))

		_, err := svc.Submit(ctx, userID, &entities.SubmitInvestmentRequest{
			PlanID:   planID.String(),
			Amount:   decimal.NewFromInt(50),
			ProofURL: "https://cdn.example.com/proof.png",
		})
		assert.ErrorIs(t, err, domainerrors.ErrAmountOutOfRange)
	})

	t.Run("amount above range", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		planRepo.On("GetByID", ctx, planID).Return(plan, nil)
		svc := newTestService(planRepo, new(MockInvestmentRepo), new(MockTransactionRepo), new(MockAuditRepo))

		_, err := svc.Submit(ctx, userID, &entities.SubmitInvestmentRequest{
			PlanID:   planID.String(),
			Amount:   decimal.NewFromInt(5000),
			ProofURL: "https://cdn.example.com/proof.png",
		})
		assert.ErrorIs(t, err, domainerrors.ErrAmountOutOfRange)
	})

	t.Run("missing proof of payment", func(t *testing.T) {
		planRepo := new(MockPlanRepo)
		planRepo.On("GetByID", ctx, planID).Return(plan, nil)
		svc := newTestService(planRepo, new(MockInvestmentRepo), new(MockTransactionRepo), new(MockAuditRepo))

		_, err := svc.Submit(ctx, userID, &entities.SubmitInvestmentRequest{
			PlanID: planID.String(),
			Amount: decimal.NewFromInt(500),
		})
		assert.True(t, domainerrors.IsInvalidInput(err))
	})
}

func TestSubmit_RejectsLockedPlan(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	planID := uuid.New()
	goldID := uuid.New()

	gated := &entities.InvestmentPlan{
		ID:                  planID,
		Name:                "EXPERT",
		MinAmount:           decimal.NewFromInt(50000),
		MaxAmount:           decimal.NewFromInt(1000000),
		WeeklyReturnPercent: decimal.NewFromInt(15),
		DurationWeeks:       8,
		RequiresUnlock:      true,
		PrerequisitePlanID:  &goldID,
		Active:              true,
	}

	planRepo := new(MockPlanRepo)
	planRepo.On("GetByID", ctx, planID).Return(gated, nil)

	investmentRepo := new(MockInvestmentRepo)
	investmentRepo.On("ListByUserID", ctx, userID).Return([]*entities.Investment{
		{PlanID: goldID, Status: entities.InvestmentStatusActive},
	}, nil)

	svc := newTestService(planRepo, investmentRepo, new(MockTransactionRepo), new(MockAuditRepo))

	_, err := svc.Submit(ctx, userID, &entities.SubmitInvestmentRequest{
		PlanID:   planID.String(),
		Amount:   decimal.NewFromInt(60000),
		ProofURL: "https://cdn.example.com/proof.png",
	})
	assert.ErrorIs(t, err, domainerrors.ErrPlanLocked)
}

func TestGetForUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	investmentID := uuid.New()

	t.Run("returns own investment", func(t *testing.T) {
		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("GetByID", ctx, investmentID).Return(&entities.Investment{
			ID:     investmentID,
			UserID: userID,
		}, nil)
		svc := newTestService(new(MockPlanRepo), investmentRepo, new(MockTransactionRepo), new(MockAuditRepo))

		inv, err := svc.GetForUser(ctx, userID, investmentID)
		assert.NoError(t, err)
		assert.Equal(t, investmentID, inv.ID)
	})

	t.Run("hides another user's investment", func(t *testing.T) {
		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("GetByID", ctx, investmentID).Return(&entities.Investment{
			ID:     investmentID,
			UserID: uuid.New(),
		}, nil)
		svc := newTestService(new(MockPlanRepo), investmentRepo, new(MockTransactionRepo), new(MockAuditRepo))

		_, err := svc.GetForUser(ctx, userID, investmentID)
		assert.True(t, domainerrors.IsNotFound(err))
	})

	t.Run("missing investment", func(t *testing.T) {
		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("GetByID", ctx, investmentID).Return(nil, nil)
		svc := newTestService(new(MockPlanRepo), investmentRepo, new(MockTransactionRepo), new(MockAuditRepo))

		_, err := svc.GetForUser(ctx, userID, investmentID)
		assert.True(t, domainerrors.IsNotFound(err))
	})
}

func TestSettle(t *testing.T) {
	ctx := context.Background()

	matured := []*entities.Investment{
		{ID: uuid.New(), UserID: uuid.New(), Status: entities.InvestmentStatusActive, Amount: decimal.NewFromInt(1000), TotalReturn: decimal.NewFromInt(200)},
		{ID: uuid.New(), UserID: uuid.New(), Status: entities.InvestmentStatusActive, Amount: decimal.NewFromInt(500), TotalReturn: decimal.NewFromInt(50)},
	}

	t.Run("settles each matured row once", func(t *testing.T) {
		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("ListMatured", ctx, 100).Return(matured, nil)
		investmentRepo.On("SettleMatured", ctx, matured[0].ID).Return(true, nil)
		investmentRepo.On("SettleMatured", ctx, matured[1].ID).Return(true, nil)

		auditRepo := new(MockAuditRepo)
		auditRepo.On("Create", ctx, mock.Anything).Return(nil)

		svc := newTestService(new(MockPlanRepo), investmentRepo, new(MockTransactionRepo), auditRepo)

		settled, err := svc.Settle(ctx, 100)
		assert.NoError(t, err)
		assert.Equal(t, 2, settled)
		investmentRepo.AssertExpectations(t)
	})

	t.Run("skips rows settled by a concurrent run", func(t *testing.T) {
		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("ListMatured", ctx, 100).Return(matured, nil)
		investmentRepo.On("SettleMatured", ctx, matured[0].ID).Return(false, nil)
		investmentRepo.On("SettleMatured", ctx, matured[1].ID).Return(true, nil)

		auditRepo := new(MockAuditRepo)
		auditRepo.On("Create", ctx, mock.Anything).Return(nil)

		svc := newTestService(new(MockPlanRepo), investmentRepo, new(MockTransactionRepo), auditRepo)

		settled, err := svc.Settle(ctx, 100)
		assert.NoError(t, err)
		assert.Equal(t, 1, settled)
	})

	t.Run("continues past a failing row", func(t *testing.T) {
		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("ListMatured", ctx, 100).Return(matured, nil)
		investmentRepo.On("SettleMatured", ctx, matured[0].ID).Return(false, errors.New("deadlock"))
		investmentRepo.On("SettleMatured", ctx, matured[1].ID).Return(true, nil)

		auditRepo := new(MockAuditRepo)
		auditRepo.On("Create", ctx, mock.Anything).Return(nil)

		svc := newTestService(new(MockPlanRepo), investmentRepo, new(MockTransactionRepo), auditRepo)

		settled, err := svc.Settle(ctx, 100)
		assert.NoError(t, err)
		assert.Equal(t, 1, settled)
	})

	t.Run("nothing matured", func(t *testing.T) {
		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("ListMatured", ctx, 100).Return([]*entities.Investment{}, nil)

		svc := newTestService(new(MockPlanRepo), investmentRepo, new(MockTransactionRepo), new(MockAuditRepo))

		settled, err := svc.Settle(ctx, 100)
		assert.NoError(t, err)
		assert.Equal(t, 0, settled)
	})
}

func runWithoutDB(svc *Service) *Service {
	svc.runTx = func(ctx context.Context, fn func(*sqlx.Tx) error) error {
		return fn(nil)
	}
	return svc
}

func TestSubmit_StoresNoProjectedReturn(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	planID := uuid.New()

	plan := &entities.InvestmentPlan{
		ID:                  planID,
		Name:                "GOLD",
		MinAmount:           decimal.NewFromInt(5000),
		MaxAmount:           decimal.NewFromInt(50000),
		WeeklyReturnPercent: decimal.NewFromInt(10),
		DurationWeeks:       4,
		Active:              true,
	}

	planRepo := new(MockPlanRepo)
	planRepo.On("GetByID", ctx, planID).Return(plan, nil)

	investmentRepo := new(MockInvestmentRepo)
	investmentRepo.On("CreateTx", ctx, mock.Anything, mock.Anything).Return(nil)

	transactionRepo := new(MockTransactionRepo)
	transactionRepo.On("CreateTx", ctx, mock.Anything, mock.Anything).Return(nil)

	auditRepo := new(MockAuditRepo)
	auditRepo.On("Create", ctx, mock.Anything).Return(nil)

	svc := runWithoutDB(newTestService(planRepo, investmentRepo, transactionRepo, auditRepo))

	inv, err := svc.Submit(ctx, userID, &entities.SubmitInvestmentRequest{
		PlanID:   planID.String(),
		Amount:   decimal.NewFromInt(5000),
		ProofURL: "https://cdn.example.com/proof.png",
	})
	assert.NoError(t, err)
	assert.Equal(t, entities.InvestmentStatusPending, inv.Status)
	assert.True(t, inv.WeeklyReturn.IsZero())
	assert.True(t, inv.TotalReturn.IsZero())
	investmentRepo.AssertExpectations(t)
	transactionRepo.AssertExpectations(t)
}

func TestApprove(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	userID := uuid.New()
	planID := uuid.New()
	investmentID := uuid.New()

	plan := &entities.InvestmentPlan{
		ID:                  planID,
		Name:                "GOLD",
		MinAmount:           decimal.NewFromInt(5000),
		MaxAmount:           decimal.NewFromInt(50000),
		WeeklyReturnPercent: decimal.NewFromInt(10),
		DurationWeeks:       4,
		Active:              true,
	}

	pending := func() *entities.Investment {
		return &entities.Investment{
			ID:           investmentID,
			UserID:       userID,
			PlanID:       planID,
			Amount:       decimal.NewFromInt(5000),
			WeeklyReturn: decimal.Zero,
			TotalReturn:  decimal.Zero,
			Status:       entities.InvestmentStatusPending,
		}
	}

	t.Run("activates with returns and schedule", func(t *testing.T) {
		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("GetByIDForUpdateTx", ctx, mock.Anything, investmentID).Return(pending(), nil)
		investmentRepo.On("UpdateTx", ctx, mock.Anything, mock.Anything).Return(nil)

		planRepo := new(MockPlanRepo)
		planRepo.On("GetByID", ctx, planID).Return(plan, nil)

		transactionRepo := new(MockTransactionRepo)
		transactionRepo.On("GetByInvestmentIDTx", ctx, mock.Anything, investmentID).Return(&entities.Transaction{
			ID:           uuid.New(),
			UserID:       userID,
			InvestmentID: &investmentID,
			Type:         entities.TransactionTypeDeposit,
			Status:       entities.TransactionStatusPending,
		}, nil)
		transactionRepo.On("UpdateTx", ctx, mock.Anything, mock.MatchedBy(func(tr *entities.Transaction) bool {
			return tr.Status == entities.TransactionStatusApproved
		})).Return(nil)

		auditRepo := new(MockAuditRepo)
		auditRepo.On("Create", ctx, mock.Anything).Return(nil)

		svc := runWithoutDB(newTestService(planRepo, investmentRepo, transactionRepo, auditRepo))

		approved, err := svc.Approve(ctx, adminID, investmentID)
		assert.NoError(t, err)
		assert.Equal(t, entities.InvestmentStatusActive, approved.Status)
		assert.True(t, decimal.NewFromInt(500).Equal(approved.WeeklyReturn))
		assert.True(t, decimal.NewFromInt(2000).Equal(approved.TotalReturn))
		assert.NotNil(t, approved.StartDate)
		assert.NotNil(t, approved.EndDate)
		assert.Equal(t, time.Duration(plan.DurationWeeks)*7*24*time.Hour, approved.EndDate.Sub(*approved.StartDate))
		transactionRepo.AssertExpectations(t)
	})

	t.Run("refuses an already decided investment", func(t *testing.T) {
		decided := pending()
		decided.Status = entities.InvestmentStatusRejected

		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("GetByIDForUpdateTx", ctx, mock.Anything, investmentID).Return(decided, nil)

		svc := runWithoutDB(newTestService(new(MockPlanRepo), investmentRepo, new(MockTransactionRepo), new(MockAuditRepo)))

		_, err := svc.Approve(ctx, adminID, investmentID)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
		investmentRepo.AssertNotCalled(t, "UpdateTx", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing investment", func(t *testing.T) {
		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("GetByIDForUpdateTx", ctx, mock.Anything, investmentID).Return(nil, nil)

		svc := runWithoutDB(newTestService(new(MockPlanRepo), investmentRepo, new(MockTransactionRepo), new(MockAuditRepo)))

		_, err := svc.Approve(ctx, adminID, investmentID)
		assert.True(t, domainerrors.IsNotFound(err))
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	userID := uuid.New()
	investmentID := uuid.New()

	pending := func() *entities.Investment {
		return &entities.Investment{
			ID:           investmentID,
			UserID:       userID,
			PlanID:       uuid.New(),
			Amount:       decimal.NewFromInt(5000),
			WeeklyReturn: decimal.Zero,
			TotalReturn:  decimal.Zero,
			Status:       entities.InvestmentStatusPending,
		}
	}

	t.Run("keeps returns at zero on the rejected row", func(t *testing.T) {
		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("GetByIDForUpdateTx", ctx, mock.Anything, investmentID).Return(pending(), nil)
		investmentRepo.On("UpdateTx", ctx, mock.Anything, mock.Anything).Return(nil)

		transactionRepo := new(MockTransactionRepo)
		transactionRepo.On("GetByInvestmentIDTx", ctx, mock.Anything, investmentID).Return(&entities.Transaction{
			ID:           uuid.New(),
			UserID:       userID,
			InvestmentID: &investmentID,
			Type:         entities.TransactionTypeDeposit,
			Status:       entities.TransactionStatusPending,
		}, nil)
		transactionRepo.On("UpdateTx", ctx, mock.Anything, mock.MatchedBy(func(tr *entities.Transaction) bool {
			return tr.Status == entities.TransactionStatusRejected
		})).Return(nil)

		auditRepo := new(MockAuditRepo)
		auditRepo.On("Create", ctx, mock.Anything).Return(nil)

		svc := runWithoutDB(newTestService(new(MockPlanRepo), investmentRepo, transactionRepo, auditRepo))

		rejected, err := svc.Reject(ctx, adminID, investmentID, "blurry payment proof")
		assert.NoError(t, err)
		assert.Equal(t, entities.InvestmentStatusRejected, rejected.Status)
		assert.True(t, rejected.TotalReturn.IsZero())
		assert.Equal(t, "blurry payment proof", *rejected.RejectionReason)
		transactionRepo.AssertExpectations(t)
	})

	t.Run("requires a reason", func(t *testing.T) {
		svc := runWithoutDB(newTestService(new(MockPlanRepo), new(MockInvestmentRepo), new(MockTransactionRepo), new(MockAuditRepo)))

		_, err := svc.Reject(ctx, adminID, investmentID, "")
		assert.True(t, domainerrors.IsInvalidInput(err))
	})
}
