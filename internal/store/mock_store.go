package store

import (
	"context"
	"time"

	"github.com/dotojr123/ads-agent-base/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of the Storer interface for testing
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateWorkspace(ctx context.Context, name, slug string, ownerID uuid.UUID) (domain.Workspace, error) {
	args := m.Called(ctx, name, slug, ownerID)
	return args.Get(0).(domain.Workspace), args.Error(1)
}

func (m *MockStore) GetWorkspacesForUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockStore) VerifyWorkspaceMembership(ctx context.Context, workspaceID, userID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, userID)
	return args.Error(0)
}

func (m *MockStore) UpsertAdAccount(ctx context.Context, arg UpsertAdAccountParams) (domain.AdAccount, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(domain.AdAccount), args.Error(1)
}

func (m *MockStore) GetAdAccountsForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.AdAccount, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdAccount), args.Error(1)
}

func (m *MockStore) GetAdAccountForPlatform(ctx context.Context, workspaceID uuid.UUID, platform domain.Platform) (domain.AdAccount, error) {
	args := m.Called(ctx, workspaceID, platform)
	return args.Get(0).(domain.AdAccount), args.Error(1)
}

func (m *MockStore) DeleteAdAccount(ctx context.Context, accountID, workspaceID uuid.UUID) error {
	args := m.Called(ctx, accountID, workspaceID)
	return args.Error(0)
}

func (m *MockStore) CreateRule(ctx context.Context, arg CreateRuleParams) (domain.AutomationRule, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(domain.AutomationRule), args.Error(1)
}

func (m *MockStore) GetRulesForWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.AutomationRule, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AutomationRule), args.Error(1)
}

func (m *MockStore) GetRuleByID(ctx context.Context, ruleID uuid.UUID) (domain.AutomationRule, error) {
	args := m.Called(ctx, ruleID)
	return args.Get(0).(domain.AutomationRule), args.Error(1)
}

func (m *MockStore) GetActiveRules(ctx context.Context, workspaceID *uuid.UUID) ([]domain.AutomationRule, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AutomationRule), args.Error(1)
}

func (m *MockStore) UpdateRule(ctx context.Context, arg UpdateRuleParams) (domain.AutomationRule, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(domain.AutomationRule), args.Error(1)
}

func (m *MockStore) ToggleRule(ctx context.Context, ruleID uuid.UUID, active bool) error {
	args := m.Called(ctx, ruleID, active)
	return args.Error(0)
}

func (m *MockStore) UpdateRuleLastRun(ctx context.Context, ruleID uuid.UUID, ranAt time.Time) error {
	args := m.Called(ctx, ruleID, ranAt)
	return args.Error(0)
}

func (m *MockStore) VerifyRuleOwnership(ctx context.Context, ruleID, workspaceID uuid.UUID) error {
	args := m.Called(ctx, ruleID, workspaceID)
	return args.Error(0)
}

func (m *MockStore) DeleteRule(ctx context.Context, ruleID uuid.UUID) error {
	args := m.Called(ctx, ruleID)
	return args.Error(0)
}

func (m *MockStore) CreateAlertAndAudit(ctx context.Context, alert domain.Alert, audit domain.AuditLog) error {
	args := m.Called(ctx, alert, audit)
	return args.Error(0)
}

func (m *MockStore) GetAlertsForWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]domain.Alert, error) {
	args := m.Called(ctx, workspaceID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *MockStore) MarkAlertRead(ctx context.Context, alertID, workspaceID uuid.UUID) error {
	args := m.Called(ctx, alertID, workspaceID)
	return args.Error(0)
}

func (m *MockStore) GetAuditLogsForWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, workspaceID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}
