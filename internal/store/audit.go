package store

import (
	"context"
	"fmt"

	"github.com/dotojr123/ads-agent-base/internal/domain"

	"github.com/google/uuid"
)

// GetAuditLogsForWorkspace lists the workspace's audit trail, newest first.
func (s *DBStore) GetAuditLogsForWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
    SELECT id, workspace_id, rule_id, action, entity_id, details, created_at
    FROM audit_logs
    WHERE workspace_id = $1
    ORDER BY created_at DESC
    LIMIT $2;
    `

	rows, err := s.db.Query(ctx, query, workspaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("db query error: %w", err)
	}
	defer rows.Close()

	var logs []domain.AuditLog
	for rows.Next() {
		var l domain.AuditLog
		err := rows.Scan(
			&l.ID,
			&l.WorkspaceID,
			&l.RuleID,
			&l.Action,
			&l.EntityID,
			&l.Details,
			&l.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("db scan error: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
