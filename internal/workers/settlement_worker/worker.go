// Package settlement_worker runs the periodic maturity settlement sweep and
// purges expired verification codes.
package settlement_worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/bitfinek-invest/invest_service/internal/domain/services/investment"
	"github.com/bitfinek-invest/invest_service/internal/domain/services/verification"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/config"
)

type Worker struct {
	investmentService   *investment.Service
	verificationService *verification.Service
	config              config.SettlementConfig
	cron                *cron.Cron
	logger              *zap.Logger
}

func NewWorker(
	investmentService *investment.Service,
	verificationService *verification.Service,
	cfg config.SettlementConfig,
	logger *zap.Logger,
) *Worker {
	return &Worker{
		investmentService:   investmentService,
		verificationService: verificationService,
		config:              cfg,
		cron:                cron.New(),
		logger:              logger,
	}
}

func (w *Worker) Start() error {
	// Settle matured investments on the configured schedule
	_, err := w.cron.AddFunc(w.config.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		settled, err := w.investmentService.Settle(ctx, w.config.BatchSize)
		if err != nil {
			w.logger.Error("Failed to settle matured investments", zap.Error(err))
			return
		}
		if settled > 0 {
			w.logger.Info("Settled matured investments", zap.Int("count", settled))
		}
	})
	if err != nil {
		return err
	}

	// Purge expired verification codes every 6 hours
	_, err = w.cron.AddFunc("0 */6 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		purged, err := w.verificationService.PurgeExpired(ctx)
		if err != nil {
			w.logger.Error("Failed to purge expired verifications", zap.Error(err))
			return
		}
		if purged > 0 {
			w.logger.Info("Purged expired verification codes", zap.Int64("count", purged))
		}
	})
	if err != nil {
		return err
	}

	w.cron.Start()
	w.logger.Info("Settlement worker started", zap.String("schedule", w.config.CronSchedule))
	return nil
}

func (w *Worker) Stop() {
	w.cron.Stop()
	w.logger.Info("Settlement worker stopped")
}
