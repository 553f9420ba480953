package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitfinek-invest/invest_service/internal/api/handlers"
	"github.com/bitfinek-invest/invest_service/internal/api/middleware"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/di"
)

// Version is stamped at build time
var Version = "dev"

// SetupRoutes configures all application routes
func SetupRoutes(container *di.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware - order matters
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestSizeLimit())
	router.Use(middleware.Logger(container.Logger))
	router.Use(middleware.Recovery(container.Logger))
	router.Use(middleware.CORS(container.Config.Server.AllowedOrigins))
	router.Use(middleware.RateLimit(container.Config.Server.RateLimitPerMin))
	router.Use(middleware.SecurityHeaders())

	healthHandlers := handlers.NewHealthHandlers(
		container.LivenessChecker,
		container.ReadinessChecker,
		container.Logger,
		Version,
	)
	planHandlers := handlers.NewPlanHandlers(container.PlanService, container.Logger)
	investmentHandlers := handlers.NewInvestmentHandlers(container.InvestmentService, container.Logger)
	transactionHandlers := handlers.NewTransactionHandlers(container.TransactionService, container.BalanceService, container.Logger)
	uploadHandlers := handlers.NewUploadHandlers(container.StorageService, container.Logger)
	profileHandlers := handlers.NewProfileHandlers(container.ProfileService, container.Logger)
	emailHandlers := handlers.NewEmailHandlers(container.VerificationService, container.Logger)
	eventsHandlers := handlers.NewEventsHandlers(container.FeedService, container.Logger)
	adminHandlers := handlers.NewAdminHandlers(
		container.ProfileService,
		container.InvestmentService,
		container.TransactionService,
		container.PlanService,
		container.AuditService,
		container.Logger,
	)

	// Health and ops endpoints (no auth required)
	router.GET("/health", healthHandlers.Health)
	router.GET("/ready", healthHandlers.Readiness)
	router.GET("/live", healthHandlers.Liveness)
	router.GET("/version", healthHandlers.Version)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Email relay is open to the auth frontend and browser clients
		email := v1.Group("/email")
		email.Use(middleware.OpenCORS())
		{
			email.POST("/send", emailHandlers.SendEmail)
			email.POST("/verification", emailHandlers.IssueVerification)
			email.POST("/verify", emailHandlers.VerifyCode)
		}

		// Authenticated user surface
		authenticated := v1.Group("")
		authenticated.Use(middleware.Authentication(container.Config, container.Logger))
		{
			authenticated.GET("/plans", planHandlers.ListPlans)

			authenticated.POST("/investments", investmentHandlers.SubmitInvestment)
			authenticated.GET("/investments", investmentHandlers.ListInvestments)
			authenticated.GET("/investments/:id", investmentHandlers.GetInvestment)

			authenticated.GET("/balance", transactionHandlers.GetBalance)
			authenticated.GET("/transactions", transactionHandlers.ListTransactions)
			authenticated.POST("/withdrawals", transactionHandlers.RequestWithdrawal)

			authenticated.POST("/uploads/proof", uploadHandlers.UploadProof)

			authenticated.GET("/profile", profileHandlers.GetProfile)
			authenticated.PUT("/profile", profileHandlers.UpdateProfile)

			authenticated.GET("/events/stream", eventsHandlers.StreamEvents)
		}

		// Admin surface
		admin := v1.Group("/admin")
		admin.Use(middleware.Authentication(container.Config, container.Logger))
		admin.Use(middleware.AdminAuth())
		{
			admin.GET("/users", adminHandlers.ListUsers)
			admin.GET("/users/:id", adminHandlers.GetUser)
			admin.POST("/users/:id/block", adminHandlers.BlockUser)
			admin.POST("/users/:id/unblock", adminHandlers.UnblockUser)

			admin.GET("/investments", adminHandlers.ListInvestments)
			admin.POST("/investments/:id/approve", adminHandlers.ApproveInvestment)
			admin.POST("/investments/:id/reject", adminHandlers.RejectInvestment)

			admin.GET("/withdrawals", adminHandlers.ListWithdrawals)
			admin.POST("/withdrawals/:id/approve", adminHandlers.ApproveWithdrawal)
			admin.POST("/withdrawals/:id/reject", adminHandlers.RejectWithdrawal)

			admin.GET("/transactions", adminHandlers.ListTransactions)
			admin.GET("/audit-logs", adminHandlers.ListAuditLogs)

			admin.GET("/plans", adminHandlers.ListPlans)
			admin.POST("/plans", adminHandlers.CreatePlan)
			admin.PUT("/plans/:id", adminHandlers.UpdatePlan)
		}
	}

	return router
}
