// Package audit records admin and system actions for compliance review.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
	"github.com/bitfinek-invest/invest_service/internal/domain/repositories"
)

// Context keys for audit data
type contextKey string

const (
	ContextKeyIPAddress contextKey = "audit_ip_address"
)

type Service struct {
	repo   repositories.AuditRepository
	logger *zap.Logger
}

func NewService(repo repositories.AuditRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Log creates an audit log entry. Failures are logged but never propagated;
// an audit miss must not roll back the action it describes.
func (s *Service) Log(ctx context.Context, actorID *uuid.UUID, action, entityType string, entityID *uuid.UUID, details map[string]interface{}) {
	log := &entities.AuditLog{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  getStringFromContext(ctx, ContextKeyIPAddress),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, log); err != nil {
		s.logger.Error("failed to create audit log",
			zap.Error(err),
			zap.String("action", action),
			zap.String("entity_type", entityType),
		)
	}
}

// List returns audit logs for the admin view
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entities.AuditLog, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// WithIPAddress stores the request IP for subsequent Log calls
func WithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ContextKeyIPAddress, ip)
}

func getStringFromContext(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
