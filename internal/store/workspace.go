package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dotojr123/ads-agent-base/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateWorkspace inserts the workspace and the owner membership in one
// transaction so a workspace never exists without an OWNER.
func (s *DBStore) CreateWorkspace(ctx context.Context, name, slug string, ownerID uuid.UUID) (domain.Workspace, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return domain.Workspace{}, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
    INSERT INTO workspaces (name, slug)
    VALUES ($1, $2)
    RETURNING id, name, slug, created_at, updated_at;
    `

	var ws domain.Workspace
	err = tx.QueryRow(ctx, query, name, slug).Scan(
		&ws.ID,
		&ws.Name,
		&ws.Slug,
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)
	if err != nil {
		return domain.Workspace{}, fmt.Errorf("db scan error: %w", err)
	}

	_, err = tx.Exec(ctx, `
    INSERT INTO user_workspaces (user_id, workspace_id, role)
    VALUES ($1, $2, $3);
    `, ownerID, ws.ID, domain.RoleOwner)
	if err != nil {
		return domain.Workspace{}, fmt.Errorf("could not link owner: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Workspace{}, fmt.Errorf("could not commit transaction: %w", err)
	}
	return ws, nil
}

// GetWorkspacesForUser lists the workspaces a user belongs to, oldest first.
func (s *DBStore) GetWorkspacesForUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	query := `
    SELECT w.id, w.name, w.slug, w.created_at, w.updated_at
    FROM workspaces w
    JOIN user_workspaces uw ON uw.workspace_id = w.id
    WHERE uw.user_id = $1
    ORDER BY w.created_at ASC;
    `

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db query error: %w", err)
	}
	defer rows.Close()

	var workspaces []domain.Workspace
	for rows.Next() {
		var ws domain.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.Slug, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db scan error: %w", err)
		}
		workspaces = append(workspaces, ws)
	}
	return workspaces, rows.Err()
}

// VerifyWorkspaceMembership returns ErrNotFound when the user is not a
// member of the workspace.
func (s *DBStore) VerifyWorkspaceMembership(ctx context.Context, workspaceID, userID uuid.UUID) error {
	var one int
	err := s.db.QueryRow(ctx, `
    SELECT 1 FROM user_workspaces WHERE workspace_id = $1 AND user_id = $2;
    `, workspaceID, userID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("db query error: %w", err)
	}
	return nil
}
