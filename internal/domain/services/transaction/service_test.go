package transaction

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
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	domainerrors "github.com/bitfinek-invest/invest_service/internal/domain/errors"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/audit"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/balance"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/feed"
)

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

type stubRedis struct{}

func (stubRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (stubRedis) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("cache miss")
}
func (stubRedis) Delete(ctx context.Context, key string) error                  { return nil }
func (stubRedis) Exists(ctx context.Context, key string) (bool, error)          { return false, nil }
func (stubRedis) Incr(ctx context.Context, key string) (int64, error)           { return 1, nil }
func (stubRedis) Expire(ctx context.Context, key string, d time.Duration) error { return nil }
func (stubRedis) Publish(ctx context.Context, channel string, value interface{}) error {
	return nil
}
func (stubRedis) Subscribe(ctx context.Context, channels ...string) *redis.PubSub { return nil }
func (stubRedis) Ping(ctx context.Context) error                                  { return nil }
func (stubRedis) Close() error                                                    { return nil }
func (stubRedis) Client() *redis.Client                                           { return nil }

func newWithdrawalService(investmentRepo *MockInvestmentRepo, transactionRepo *MockTransactionRepo, auditRepo *MockAuditRepo) *Service {
	logger := zap.NewNop()
	balanceService := balance.NewService(investmentRepo, transactionRepo)
	auditService := audit.NewService(auditRepo, logger)
	feedService := feed.NewService(stubRedis{}, logger)
	return NewService(nil, transactionRepo, balanceService, auditService, feedService, logger)
}

func TestRequestWithdrawal(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	activePosition := []*entities.Investment{
		{
			Status:      entities.InvestmentStatusActive,
			Amount:      decimal.NewFromInt(400),
			TotalReturn: decimal.NewFromInt(100),
		},
	}

	t.Run("admits a covered withdrawal", func(t *testing.T) {
		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("ListByUserID", ctx, userID).Return(activePosition, nil)

		transactionRepo := new(MockTransactionRepo)
		transactionRepo.On("ListByUserID", ctx, userID, 1000, 0).Return([]*entities.Transaction{}, 0, nil)
		transactionRepo.On("Create", ctx, mock.Anything).Return(nil)

		auditRepo := new(MockAuditRepo)
		auditRepo.On("Create", ctx, mock.Anything).Return(nil)

		svc := newWithdrawalService(investmentRepo, transactionRepo, auditRepo)

		tx, err := svc.RequestWithdrawal(ctx, userID, &entities.WithdrawalRequest{
			Amount:        decimal.NewFromInt(200),
			WalletAddress: "0xabc",
			Network:       "TRC20",
		})
		require.NoError(t, err)

		assert.Equal(t, entities.TransactionTypeWithdrawal, tx.Type)
		assert.Equal(t, entities.TransactionStatusPending, tx.Status)
		assert.Nil(t, tx.InvestmentID)
		transactionRepo.AssertExpectations(t)
	})

	t.Run("rejects below the minimum", func(t *testing.T) {
		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("ListByUserID", ctx, userID).Return(activePosition, nil)

		transactionRepo := new(MockTransactionRepo)
		transactionRepo.On("ListByUserID", ctx, userID, 1000, 0).Return([]*entities.Transaction{}, 0, nil)

		svc := newWithdrawalService(investmentRepo, transactionRepo, new(MockAuditRepo))

		_, err := svc.RequestWithdrawal(ctx, userID, &entities.WithdrawalRequest{
			Amount: decimal.NewFromInt(5),
		})
		assert.True(t, domainerrors.IsInvalidInput(err))
		assert.NotErrorIs(t, err, domainerrors.ErrInsufficientBalance)
		transactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects beyond the available balance", func(t *testing.T) {
		investmentRepo := new(MockInvestmentRepo)
		investmentRepo.On("ListByUserID", ctx, userID).Return(activePosition, nil)

		transactionRepo := new(MockTransactionRepo)
		transactionRepo.On("ListByUserID", ctx, userID, 1000, 0).Return([]*entities.Transaction{}, 0, nil)

		svc := newWithdrawalService(investmentRepo, transactionRepo, new(MockAuditRepo))

		_, err := svc.RequestWithdrawal(ctx, userID, &entities.WithdrawalRequest{
			Amount: decimal.NewFromInt(1000),
		})
		assert.ErrorIs(t, err, domainerrors.ErrInsufficientBalance)
		transactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
