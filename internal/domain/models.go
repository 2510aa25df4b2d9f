package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Workspace is the tenant boundary grouping users, ad accounts, rules and alerts.
type Workspace struct {
	BaseEntity
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// UserWorkspace links a user to a workspace with a role.
type UserWorkspace struct {
	UserID      uuid.UUID `db:"user_id"      json:"user_id"`
	WorkspaceID uuid.UUID `db:"workspace_id" json:"workspace_id"`
	Role        Role      `db:"role"         json:"role"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
}

// AdAccount is a connected advertising account. The access token is stored
// AES-GCM encrypted and is only decrypted at evaluation/tool-execution time.
type AdAccount struct {
	WorkspaceEntity
	Platform    Platform `db:"platform"     json:"platform"`
	Name        string   `db:"name"         json:"name"`
	ExternalID  string   `db:"external_id"  json:"external_id"`
	AccessToken []byte   `db:"access_token" json:"-"`
}

// RuleCondition is the stored trigger condition of an automation rule:
// a single metric compared against a numeric threshold.
type RuleCondition struct {
	Metric   string   `json:"metric"`
	Operator Operator `json:"operator"`
	Value    float64  `json:"value"`
}

// MetricKey returns the normalized (lower-case) metric name used for
// snapshot lookups.
func (c RuleCondition) MetricKey() string {
	return strings.ToLower(strings.TrimSpace(c.Metric))
}

// AutomationRule is a stored condition/action pair evaluated periodically.
// LastRunAt is stamped after every evaluation, whether or not it fired.
type AutomationRule struct {
	WorkspaceEntity
	Name         string          `db:"name"          json:"name"`
	Platform     Platform        `db:"platform"      json:"platform"`
	Condition    json.RawMessage `db:"condition"     json:"condition"`
	Action       ActionType      `db:"action"        json:"action"`
	ActionConfig json.RawMessage `db:"action_config" json:"action_config,omitempty"`
	Active       bool            `db:"active"        json:"active"`
	LastRunAt    *time.Time      `db:"last_run_at"   json:"last_run_at,omitempty"`
}

// ParseCondition decodes the rule's stored condition JSON.
func (r AutomationRule) ParseCondition() (RuleCondition, error) {
	var cond RuleCondition
	if err := json.Unmarshal(r.Condition, &cond); err != nil {
		return RuleCondition{}, err
	}
	return cond, nil
}

// Alert is a user-facing record of a triggered rule. Created only by the
// automation engine; mutated only by mark-as-read.
type Alert struct {
	ID          uuid.UUID       `db:"id"           json:"id"`
	WorkspaceID uuid.UUID       `db:"workspace_id" json:"workspace_id"`
	RuleID      *uuid.UUID      `db:"rule_id"      json:"rule_id,omitempty"`
	Level       AlertLevel      `db:"level"        json:"level"`
	Title       string          `db:"title"        json:"title"`
	Message     string          `db:"message"      json:"message"`
	Metadata    json.RawMessage `db:"metadata"     json:"metadata,omitempty"`
	Read        bool            `db:"read"         json:"read"`
	CreatedAt   time.Time       `db:"created_at"   json:"created_at"`

	// RuleName is joined in for the alert read model; not a column.
	RuleName *string `db:"-" json:"rule_name,omitempty"`
}

// AuditLog is one append-only record of an executed automation action.
type AuditLog struct {
	ID          uuid.UUID       `db:"id"           json:"id"`
	WorkspaceID uuid.UUID       `db:"workspace_id" json:"workspace_id"`
	RuleID      uuid.UUID       `db:"rule_id"      json:"rule_id"`
	Action      ActionType      `db:"action"       json:"action"`
	EntityID    string          `db:"entity_id"    json:"entity_id"`
	Details     json.RawMessage `db:"details"      json:"details"`
	CreatedAt   time.Time       `db:"created_at"   json:"created_at"`
}

// AuditDetails is the structure serialized into AuditLog.Details.
// TriggerData holds the full metrics snapshot the rule was evaluated
// against, plus the campaign id and name.
type AuditDetails struct {
	TriggerData map[string]any `json:"triggerData"`
	Condition   RuleCondition  `json:"condition"`
	CampaignID  string         `json:"campaignId,omitempty"`
	ActionError string         `json:"actionError,omitempty"`
}

// RuleOutcome is the per-rule result returned by one automation run.
type RuleOutcome struct {
	RuleID  uuid.UUID     `json:"rule_id"`
	Rule    string        `json:"rule"`
	Status  OutcomeStatus `json:"status"`
	Details string        `json:"details,omitempty"`
	Error   string        `json:"error,omitempty"`
}
