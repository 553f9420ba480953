package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bitfinek-invest/invest_service/internal/domain/entities"
)

type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, log *entities.AuditLog) error {
	details, err := json.Marshal(log.Details)
	if err != nil {
		details = []byte("{}")
	}

	query := `
		INSERT INTO audit_logs (id, actor_id, action, entity_type, entity_id, details, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.ExecContext(ctx, query,
		log.ID, log.ActorID, log.Action, log.EntityType, log.EntityID,
		details, log.IPAddress, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, limit, offset int) ([]*entities.AuditLog, int, error) {
	query := `
		SELECT id, actor_id, action, entity_type, entity_id, details, ip_address, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	logs, err := scanAuditLogs(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM audit_logs`); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	return logs, total, nil
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*entities.AuditLog, error) {
	query := `
		SELECT id, actor_id, action, entity_type, entity_id, details, ip_address, created_at
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs by entity: %w", err)
	}
	defer rows.Close()

	return scanAuditLogs(rows)
}

func scanAuditLogs(rows *sql.Rows) ([]*entities.AuditLog, error) {
	var logs []*entities.AuditLog
	for rows.Next() {
		var log entities.AuditLog
		var details []byte
		if err := rows.Scan(
			&log.ID, &log.ActorID, &log.Action, &log.EntityType, &log.EntityID,
			&details, &log.IPAddress, &log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		if len(details) > 0 {
			json.Unmarshal(details, &log.Details)
		}
		logs = append(logs, &log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit logs: %w", err)
	}
	return logs, nil
}
