package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dotojr123/ads-agent-base/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const ruleColumns = `id, workspace_id, name, platform, condition, action, action_config, active, last_run_at, created_at, updated_at`

func scanRule(row pgx.Row) (domain.AutomationRule, error) {
	var rule domain.AutomationRule
	err := row.Scan(
		&rule.ID,
		&rule.WorkspaceID,
		&rule.Name,
		&rule.Platform,
		&rule.Condition,
		&rule.Action,
		&rule.ActionConfig,
		&rule.Active,
		&rule.LastRunAt,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return domain.AutomationRule{}, err
	}
	return rule, nil
}

// CreateRule inserts a new automation rule.
func (s *DBStore) CreateRule(ctx context.Context, arg CreateRuleParams) (domain.AutomationRule, error) {
	query := `
    INSERT INTO automation_rules (workspace_id, name, platform, condition, action, action_config, active)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + ruleColumns + `;
    `

	row := s.db.QueryRow(ctx, query,
		arg.WorkspaceID,
		arg.Name,
		arg.Platform,
		arg.Condition,
		arg.Action,
		arg.ActionConfig,
		arg.Active,
	)

	rule, err := scanRule(row)
	if err != nil {
		return domain.AutomationRule{}, fmt.Errorf("db scan error: %w", err)
	}
	return rule, nil
}

// GetRulesForWorkspace lists all rules in a workspace, newest first.
func (s *DBStore) GetRulesForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.AutomationRule, error) {
	query := `
    SELECT ` + ruleColumns + `
    FROM automation_rules
    WHERE workspace_id = $1
    ORDER BY created_at DESC;
    `

	rows, err := s.db.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("db query error: %w", err)
	}
	defer rows.Close()

	return collectRules(rows)
}

// GetRuleByID fetches one rule, or ErrNotFound.
func (s *DBStore) GetRuleByID(ctx context.Context, ruleID uuid.UUID) (domain.AutomationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM automation_rules WHERE id = $1;`

	rule, err := scanRule(s.db.QueryRow(ctx, query, ruleID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AutomationRule{}, ErrNotFound
	}
	if err != nil {
		return domain.AutomationRule{}, fmt.Errorf("db scan error: %w", err)
	}
	return rule, nil
}

// GetActiveRules returns every active rule, optionally scoped to one
// workspace. The nil scope is the cron path covering all tenants.
func (s *DBStore) GetActiveRules(ctx context.Context, workspaceID *uuid.UUID) ([]domain.AutomationRule, error) {
	query := `
    SELECT ` + ruleColumns + `
    FROM automation_rules
    WHERE active = TRUE AND ($1::uuid IS NULL OR workspace_id = $1)
    ORDER BY created_at DESC;
    `

	rows, err := s.db.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("db query error: %w", err)
	}
	defer rows.Close()

	return collectRules(rows)
}

// UpdateRule replaces the rule's mutable fields.
func (s *DBStore) UpdateRule(ctx context.Context, arg UpdateRuleParams) (domain.AutomationRule, error) {
	query := `
    UPDATE automation_rules
    SET name = $2, condition = $3, action = $4, action_config = $5, updated_at = now()
    WHERE id = $1
    RETURNING ` + ruleColumns + `;
    `

	row := s.db.QueryRow(ctx, query,
		arg.RuleID,
		arg.Name,
		arg.Condition,
		arg.Action,
		arg.ActionConfig,
	)

	rule, err := scanRule(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AutomationRule{}, ErrNotFound
	}
	if err != nil {
		return domain.AutomationRule{}, fmt.Errorf("db scan error: %w", err)
	}
	return rule, nil
}

// ToggleRule flips a rule's active flag.
func (s *DBStore) ToggleRule(ctx context.Context, ruleID uuid.UUID, active bool) error {
	tag, err := s.db.Exec(ctx, `
    UPDATE automation_rules SET active = $2, updated_at = now() WHERE id = $1;
    `, ruleID, active)
	if err != nil {
		return fmt.Errorf("db exec error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateRuleLastRun stamps the rule's last evaluation time. Called for
// every attempted rule, regardless of outcome.
func (s *DBStore) UpdateRuleLastRun(ctx context.Context, ruleID uuid.UUID, ranAt time.Time) error {
	_, err := s.db.Exec(ctx, `
    UPDATE automation_rules SET last_run_at = $2 WHERE id = $1;
    `, ruleID, ranAt)
	if err != nil {
		return fmt.Errorf("db exec error: %w", err)
	}
	return nil
}

// VerifyRuleOwnership returns ErrNotFound when the rule does not belong to
// the workspace. Used by handlers before any mutation.
func (s *DBStore) VerifyRuleOwnership(ctx context.Context, ruleID, workspaceID uuid.UUID) error {
	var one int
	err := s.db.QueryRow(ctx, `
    SELECT 1 FROM automation_rules WHERE id = $1 AND workspace_id = $2;
    `, ruleID, workspaceID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("db query error: %w", err)
	}
	return nil
}

// DeleteRule removes a rule. Alerts referencing it keep their history via
// ON DELETE SET NULL.
func (s *DBStore) DeleteRule(ctx context.Context, ruleID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM automation_rules WHERE id = $1;`, ruleID)
	if err != nil {
		return fmt.Errorf("db exec error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectRules(rows pgx.Rows) ([]domain.AutomationRule, error) {
	var rules []domain.AutomationRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("db scan error: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
