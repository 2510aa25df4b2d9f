package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dotojr123/ads-agent-base/internal/database"
	"github.com/dotojr123/ads-agent-base/internal/domain"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested row does not exist or is not
// visible to the caller's workspace.
var ErrNotFound = errors.New("record not found")

// Storer is the interface for all database interactions.
type Storer interface {
	// Workspaces
	CreateWorkspace(ctx context.Context, name, slug string, ownerID uuid.UUID) (domain.Workspace, error)
	GetWorkspacesForUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error)
	VerifyWorkspaceMembership(ctx context.Context, workspaceID, userID uuid.UUID) error

	// Ad accounts
	UpsertAdAccount(ctx context.Context, arg UpsertAdAccountParams) (domain.AdAccount, error)
	GetAdAccountsForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.AdAccount, error)
	GetAdAccountForPlatform(ctx context.Context, workspaceID uuid.UUID, platform domain.Platform) (domain.AdAccount, error)
	DeleteAdAccount(ctx context.Context, accountID, workspaceID uuid.UUID) error

	// Automation rules
	CreateRule(ctx context.Context, arg CreateRuleParams) (domain.AutomationRule, error)
	GetRulesForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.AutomationRule, error)
	GetRuleByID(ctx context.Context, ruleID uuid.UUID) (domain.AutomationRule, error)
	GetActiveRules(ctx context.Context, workspaceID *uuid.UUID) ([]domain.AutomationRule, error)
	UpdateRule(ctx context.Context, arg UpdateRuleParams) (domain.AutomationRule, error)
	ToggleRule(ctx context.Context, ruleID uuid.UUID, active bool) error
	UpdateRuleLastRun(ctx context.Context, ruleID uuid.UUID, ranAt time.Time) error
	VerifyRuleOwnership(ctx context.Context, ruleID, workspaceID uuid.UUID) error
	DeleteRule(ctx context.Context, ruleID uuid.UUID) error

	// Alerts and audit
	CreateAlertAndAudit(ctx context.Context, alert domain.Alert, audit domain.AuditLog) error
	GetAlertsForWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]domain.Alert, error)
	MarkAlertRead(ctx context.Context, alertID, workspaceID uuid.UUID) error
	GetAuditLogsForWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]domain.AuditLog, error)
}

// UpsertAdAccountParams carries a plaintext token; the store encrypts it
// before it ever reaches a query.
type UpsertAdAccountParams struct {
	WorkspaceID uuid.UUID
	Platform    domain.Platform
	Name        string
	ExternalID  string
	AccessToken string
}

// CreateRuleParams contains parameters for creating automation rules.
type CreateRuleParams struct {
	WorkspaceID  uuid.UUID
	Name         string
	Platform     domain.Platform
	Condition    json.RawMessage
	Action       domain.ActionType
	ActionConfig json.RawMessage
	Active       bool
}

// UpdateRuleParams contains parameters for updating an existing rule.
type UpdateRuleParams struct {
	RuleID       uuid.UUID
	Name         string
	Condition    json.RawMessage
	Action       domain.ActionType
	ActionConfig json.RawMessage
}

// DBStore implements the Storer interface on top of a pgx connection pool.
type DBStore struct {
	db database.Querier
}

// NewStore creates a new DBStore.
func NewStore(db database.Querier) Storer {
	return &DBStore{db: db}
}
