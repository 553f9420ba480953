package di

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bitfinek-invest/invest_service/internal/domain/services/audit"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/balance"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/feed"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/investment"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/plans"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/profile"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/transaction"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/verification"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/adapters"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/cache"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/config"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/database"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/repositories"
	"github.com/bitfinek-invest/invest_service/pkg/health"
	"github.com/bitfinek-invest/invest_service/pkg/logger"
)

// Container wires infrastructure, repositories, and services together
type Container struct {
	Config *config.Config
	Logger *logger.Logger
	DB     *sqlx.DB
	Redis  cache.RedisClient

	EmailService   *adapters.EmailService
	StorageService *adapters.StorageService

	PlanRepo         *repositories.PlanRepository
	InvestmentRepo   *repositories.InvestmentRepository
	TransactionRepo  *repositories.TransactionRepository
	ProfileRepo      *repositories.ProfileRepository
	VerificationRepo *repositories.VerificationRepository
	AuditRepo        *repositories.AuditRepository

	AuditService        *audit.Service
	FeedService         *feed.Service
	BalanceService      *balance.Service
	PlanService         *plans.Service
	InvestmentService   *investment.Service
	TransactionService  *transaction.Service
	VerificationService *verification.Service
	ProfileService      *profile.Service

	LivenessChecker  *health.HealthChecker
	ReadinessChecker *health.HealthChecker
}

// NewContainer builds the full dependency graph
func NewContainer(cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(cfg.Database.URL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := cache.NewRedisClient(&cfg.Redis, log.Zap())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	emailService, err := adapters.NewEmailService(log.Zap(), adapters.EmailServiceConfig{
		Provider:  cfg.Email.Provider,
		APIKey:    cfg.Email.APIKey,
		BaseURL:   cfg.Email.BaseURL,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		ReplyTo:   cfg.Email.ReplyTo,
		SMTPHost:  cfg.Email.SMTPHost,
		SMTPPort:  cfg.Email.SMTPPort,
	})
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, fmt.Errorf("failed to initialize email service: %w", err)
	}

	storageService, err := adapters.NewStorageService(cfg.Storage, log.Zap())
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, fmt.Errorf("failed to initialize storage service: %w", err)
	}

	c := &Container{
		Config:         cfg,
		Logger:         log,
		DB:             db,
		Redis:          redisClient,
		EmailService:   emailService,
		StorageService: storageService,
	}

	c.PlanRepo = repositories.NewPlanRepository(db)
	c.InvestmentRepo = repositories.NewInvestmentRepository(db)
	c.TransactionRepo = repositories.NewTransactionRepository(db)
	c.ProfileRepo = repositories.NewProfileRepository(db)
	c.VerificationRepo = repositories.NewVerificationRepository(db)
	c.AuditRepo = repositories.NewAuditRepository(db)

	c.AuditService = audit.NewService(c.AuditRepo, log.Zap())
	c.FeedService = feed.NewService(redisClient, log.Zap())
	c.BalanceService = balance.NewService(c.InvestmentRepo, c.TransactionRepo)
	c.PlanService = plans.NewService(c.PlanRepo, c.InvestmentRepo, redisClient, log.Zap())
	c.InvestmentService = investment.NewService(db, c.InvestmentRepo, c.TransactionRepo, c.PlanRepo, c.AuditService, c.FeedService, log.Zap())
	c.TransactionService = transaction.NewService(db, c.TransactionRepo, c.BalanceService, c.AuditService, c.FeedService, log.Zap())
	c.VerificationService = verification.NewService(
		c.VerificationRepo,
		c.ProfileRepo,
		emailService,
		redisClient,
		cfg.Verification.CodeTTLMinutes,
		cfg.Verification.MaxPerHour,
		log.Zap(),
	)
	c.ProfileService = profile.NewService(c.ProfileRepo, c.InvestmentRepo, c.TransactionRepo, c.AuditService, log.Zap())

	c.buildHealthCheckers()

	return c, nil
}

func (c *Container) buildHealthCheckers() {
	c.LivenessChecker = health.NewHealthChecker(2 * time.Second)

	c.ReadinessChecker = health.NewHealthChecker(5 * time.Second)
	c.ReadinessChecker.AddCheck("database", true, func(ctx context.Context) error {
		return database.HealthCheck(c.DB)
	})
	c.ReadinessChecker.AddCheck("redis", false, c.Redis.Ping)
}

// Close releases all held resources
func (c *Container) Close() {
	if c.FeedService != nil {
		c.FeedService.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("Failed to close redis client", "error", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.Warn("Failed to close database", "error", err)
		}
	}
}
