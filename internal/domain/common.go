package domain

import (
	"time"

	"github.com/google/uuid"
)

// --- ENUM Types ---

// Platform identifies the advertising platform an account or rule targets.
type Platform string

const (
	PlatformMeta   Platform = "META"
	PlatformGoogle Platform = "GOOGLE"
)

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	return p == PlatformMeta || p == PlatformGoogle
}

// Operator is the comparison applied by a rule condition.
type Operator string

const (
	OperatorGT Operator = "GT"
	OperatorLT Operator = "LT"
	OperatorEQ Operator = "EQ"
)

// ActionType is the kind of side effect a rule executes when it fires.
type ActionType string

const (
	ActionNotify        ActionType = "NOTIFY"
	ActionPauseCampaign ActionType = "PAUSE_CAMPAIGN"
	ActionAdjustBudget  ActionType = "ADJUST_BUDGET"
)

// AlertLevel is the severity of a user-facing alert.
type AlertLevel string

const (
	AlertInfo     AlertLevel = "INFO"
	AlertWarning  AlertLevel = "WARNING"
	AlertCritical AlertLevel = "CRITICAL"
)

// OutcomeStatus is the per-rule result of one evaluation pass.
type OutcomeStatus string

const (
	OutcomeTriggered OutcomeStatus = "TRIGGERED"
	OutcomeSkipped   OutcomeStatus = "SKIPPED"
	OutcomeError     OutcomeStatus = "ERROR"
)

// Role is a user's role inside a workspace.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleMember Role = "MEMBER"
)

// --- Base Structs ---

type BaseEntity struct {
	ID        uuid.UUID `db:"id"         json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// WorkspaceEntity is embedded by every entity owned by exactly one workspace.
type WorkspaceEntity struct {
	BaseEntity
	WorkspaceID uuid.UUID `db:"workspace_id" json:"workspace_id"`
}
