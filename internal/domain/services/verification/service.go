// Package verification issues and checks the 6-digit email verification
// codes relayed to new users.
package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	domainerrors "github.com/bitfinek-invest/invest_service/internal/domain/errors"
	"github.com/bitfinek-invest/invest_service/internal/domain/repositories"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/adapters"
	"github.com/bitfinek-invest/invest_service/internal/infrastructure/cache"
	"github.com/bitfinek-invest/invest_service/pkg/metrics"
)

type Service struct {
	repo         repositories.VerificationRepository
	profileRepo  repositories.ProfileRepository
	emailService *adapters.EmailService
	redis        cache.RedisClient
	codeTTL      time.Duration
	maxPerHour   int
	logger       *zap.Logger
}

func NewService(
	repo repositories.VerificationRepository,
	profileRepo repositories.ProfileRepository,
	emailService *adapters.EmailService,
	redis cache.RedisClient,
	codeTTLMinutes, maxPerHour int,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:         repo,
		profileRepo:  profileRepo,
		emailService: emailService,
		redis:        redis,
		codeTTL:      time.Duration(codeTTLMinutes) * time.Minute,
		maxPerHour:   maxPerHour,
		logger:       logger,
	}
}

// GenerateCode produces a random 6-digit code
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue creates a fresh code for an email and sends it
func (s *Service) Issue(ctx context.Context, email, name string) error {
	if err := s.checkRateLimit(ctx, email); err != nil {
		return err
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	verification := &entities.EmailVerification{
		ID:        uuid.New(),
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.codeTTL),
		CreatedAt: now,
	}

	if err := s.repo.Create(ctx, verification); err != nil {
		return fmt.Errorf("failed to store verification: %w", err)
	}

	if err := s.emailService.SendVerificationEmail(ctx, email, name, code); err != nil {
		metrics.VerificationEmailsTotal.WithLabelValues("failed").Inc()
		return err
	}

	metrics.VerificationEmailsTotal.WithLabelValues("sent").Inc()
	s.logger.Info("verification code issued", zap.String("email", email))
	return nil
}

// Relay sends a caller-supplied code without storing it, covering clients
// that manage codes themselves and only need the branded delivery.
func (s *Service) Relay(ctx context.Context, email, name, code string) error {
	if err := s.checkRateLimit(ctx, email); err != nil {
		return err
	}

	if err := s.emailService.SendVerificationEmail(ctx, email, name, code); err != nil {
		metrics.VerificationEmailsTotal.WithLabelValues("failed").Inc()
		return err
	}

	metrics.VerificationEmailsTotal.WithLabelValues("sent").Inc()
	return nil
}

// Verify consumes a code and marks the profile's email verified
func (s *Service) Verify(ctx context.Context, email, code string) error {
	verification, err := s.repo.GetLatestByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to load verification: %w", err)
	}
	if verification == nil {
		return domainerrors.NotFoundError("VERIFICATION")
	}

	now := time.Now().UTC()
	if verification.IsUsed() {
		return domainerrors.NewDomainError(domainerrors.ErrConflict, "CODE_USED", "verification code already used")
	}
	if verification.IsExpired(now) {
		return domainerrors.NewDomainError(domainerrors.ErrInvalidInput, "CODE_EXPIRED", "verification code has expired")
	}
	if verification.Code != code {
		return domainerrors.NewDomainError(domainerrors.ErrInvalidInput, "INVALID_CODE", "verification code does not match")
	}

	if err := s.repo.MarkUsed(ctx, verification.ID); err != nil {
		return err
	}
	if err := s.profileRepo.MarkEmailVerified(ctx, email); err != nil {
		return err
	}

	s.logger.Info("email verified", zap.String("email", email))
	return nil
}

// PurgeExpired removes stale codes, returning the count deleted
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx)
}

func (s *Service) checkRateLimit(ctx context.Context, email string) error {
	if s.redis == nil || s.maxPerHour <= 0 {
		return nil
	}

	key := "verification:rate:" + email
	count, err := s.redis.Incr(ctx, key)
	if err != nil {
		// Redis being down should not block verification email delivery
		s.logger.Warn("verification rate limit check failed", zap.Error(err))
		return nil
	}
	if count == 1 {
		if err := s.redis.Expire(ctx, key, time.Hour); err != nil {
			s.logger.Warn("failed to set rate limit expiry", zap.Error(err))
		}
	}
	if count > int64(s.maxPerHour) {
		return domainerrors.NewDomainError(domainerrors.ErrInvalidInput, "TOO_MANY_REQUESTS",
			fmt.Sprintf("verification limit of %d per hour exceeded", s.maxPerHour))
	}
	return nil
}
