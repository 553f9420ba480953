package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bitfinek-invest/invest_service/internal/api/routes"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/config"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/di"
	settlementworker "github.com/bitfinek-invest/invest_service/internal/workers/settlement_worker"
	"github.com/bitfinek-invest/invest_service/pkg/graceful"
	"github.com/bitfinek-invest/invest_service/pkg/logger"
	"github.com/bitfinek-invest/invest_service/pkg/metrics"
)

// workerShutdowner adapts the settlement worker to graceful.Shutdowner
type workerShutdowner struct {
	worker *settlementworker.Worker
}

func (w *workerShutdowner) Shutdown(timeout time.Duration) error {
	w.worker.Stop()
	return nil
}

// containerShutdowner closes the feed service and redis before the server
type containerShutdowner struct {
	container *di.Container
}

func (c *containerShutdowner) Shutdown(timeout time.Duration) error {
	c.container.FeedService.Close()
	return c.container.Redis.Close()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)
	defer log.Sync()

	container, err := di.NewContainer(cfg, log)
	if err != nil {
		log.Fatal("Failed to build dependency container", "error", err)
	}

	router := routes.SetupRoutes(container)

	var worker *settlementworker.Worker
	if cfg.Settlement.Enabled {
		worker = settlementworker.NewWorker(
			container.InvestmentService,
			container.VerificationService,
			cfg.Settlement,
			log.Zap(),
		)
		if err := worker.Start(); err != nil {
			log.Fatal("Failed to start settlement worker", "error", err)
		}
		log.Info("Settlement worker started", "schedule", cfg.Settlement.CronSchedule)
	} else {
		log.Info("Settlement worker disabled in configuration")
	}

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info("Starting server",
			"port", cfg.Server.Port,
			"environment", cfg.Environment,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
	}()

	// Periodic database pool metrics
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			stats := container.DB.Stats()
			metrics.DatabaseConnectionsGauge.WithLabelValues("open").Set(float64(stats.OpenConnections))
			metrics.DatabaseConnectionsGauge.WithLabelValues("idle").Set(float64(stats.Idle))
			metrics.DatabaseConnectionsGauge.WithLabelValues("in_use").Set(float64(stats.InUse))
		}
	}()

	shutdown := graceful.NewShutdownManager(server, container.DB.DB, log)
	if worker != nil {
		shutdown.Register(&workerShutdowner{worker: worker})
	}
	shutdown.Register(&containerShutdowner{container: container})
	shutdown.WaitForShutdown()
}
