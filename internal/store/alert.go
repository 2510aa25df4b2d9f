package store

import (
	"context"
	"fmt"

	"github.com/dotojr123/ads-agent-base/internal/domain"

	"github.com/google/uuid"
)

// CreateAlertAndAudit writes the alert and its audit record in one
// transaction so a triggered rule never produces half its trail.
func (s *DBStore) CreateAlertAndAudit(ctx context.Context, alert domain.Alert, audit domain.AuditLog) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
    INSERT INTO alerts (workspace_id, rule_id, level, title, message, metadata)
    VALUES ($1, $2, $3, $4, $5, $6);
    `,
		alert.WorkspaceID,
		alert.RuleID,
		alert.Level,
		alert.Title,
		alert.Message,
		alert.Metadata,
	)
	if err != nil {
		return fmt.Errorf("could not insert alert: %w", err)
	}

	_, err = tx.Exec(ctx, `
    INSERT INTO audit_logs (workspace_id, rule_id, action, entity_id, details)
    VALUES ($1, $2, $3, $4, $5);
    `,
		audit.WorkspaceID,
		audit.RuleID,
		audit.Action,
		audit.EntityID,
		audit.Details,
	)
	if err != nil {
		return fmt.Errorf("could not insert audit log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// GetAlertsForWorkspace lists a workspace's alerts, newest first, with the
// originating rule name joined in when the rule still exists.
func (s *DBStore) GetAlertsForWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]domain.Alert, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
    SELECT a.id, a.workspace_id, a.rule_id, a.level, a.title, a.message,
           a.metadata, a.read, a.created_at, r.name
    FROM alerts a
    LEFT JOIN automation_rules r ON r.id = a.rule_id
    WHERE a.workspace_id = $1
    ORDER BY a.created_at DESC
    LIMIT $2;
    `

	rows, err := s.db.Query(ctx, query, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("db query error: %w", err)
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		var a domain.Alert
		err := rows.Scan(
			&a.ID,
			&a.WorkspaceID,
			&a.RuleID,
			&a.Level,
			&a.Title,
			&a.Message,
			&a.Metadata,
			&a.Read,
			&a.CreatedAt,
			&a.RuleName,
		)
		if err != nil {
			return nil, fmt.Errorf("db scan error: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// MarkAlertRead marks one alert as read, scoped to the workspace.
func (s *DBStore) MarkAlertRead(ctx context.Context, alertID, workspaceID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `
    UPDATE alerts SET read = TRUE WHERE id = $1 AND workspace_id = $2;
    `, alertID, workspaceID)
	if err != nil {
		return fmt.Errorf("db exec error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
