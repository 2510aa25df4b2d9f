package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dotojr123/ads-agent-base/internal/ads"
	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/metrics"
	"github.com/dotojr123/ads-agent-base/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultRuleTimeout = 15 * time.Second

// Engine evaluates active automation rules against campaign metrics and
// executes their actions. One failing rule never aborts a run.
type Engine struct {
	store       store.Storer
	provider    metrics.Provider
	clients     map[domain.Platform]ads.Client
	logger      *zap.Logger
	ruleTimeout time.Duration
	now         func() time.Time
}

func NewEngine(storer store.Storer, provider metrics.Provider, clients map[domain.Platform]ads.Client, log *zap.Logger) *Engine {
	return &Engine{
		store:       storer,
		provider:    provider,
		clients:     clients,
		logger:      log,
		ruleTimeout: defaultRuleTimeout,
		now:         time.Now,
	}
}

// RunOnce evaluates every active rule, optionally scoped to one workspace
// (nil covers all tenants, the cron path). Only the initial rule load can
// fail; per-rule failures surface as ERROR outcomes.
func (e *Engine) RunOnce(ctx context.Context, workspaceID *uuid.UUID) ([]domain.RuleOutcome, error) {
	rules, err := e.store.GetActiveRules(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("could not load active rules: %w", err)
	}

	e.logger.Info("automation run started",
		zap.Int("rules", len(rules)),
		zap.Bool("scoped", workspaceID != nil),
		zap.String("component", "engine"),
	)

	outcomes := make([]domain.RuleOutcome, 0, len(rules))
	for _, rule := range rules {
		outcome := e.evaluateRule(ctx, rule)
		outcomes = append(outcomes, outcome)

		// every attempted rule gets stamped, whatever the outcome
		if err := e.store.UpdateRuleLastRun(ctx, rule.ID, e.now()); err != nil {
			e.logger.Error("could not stamp last run",
				zap.String("rule_id", rule.ID.String()),
				zap.Error(err),
				zap.String("component", "engine"),
			)
		}
	}

	return outcomes, nil
}

// evaluateRule runs a single rule with its own timeout. Panics in provider
// or client code are contained here.
func (e *Engine) evaluateRule(ctx context.Context, rule domain.AutomationRule) (outcome domain.RuleOutcome) {
	outcome = domain.RuleOutcome{RuleID: rule.ID, Rule: rule.Name}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("rule evaluation panicked",
				zap.String("rule_id", rule.ID.String()),
				zap.Any("panic", r),
				zap.String("component", "engine"),
			)
			outcome.Status = domain.OutcomeError
			outcome.Error = fmt.Sprintf("internal error: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, e.ruleTimeout)
	defer cancel()

	cond, err := rule.ParseCondition()
	if err != nil {
		outcome.Status = domain.OutcomeError
		outcome.Error = fmt.Sprintf("condição inválida: %v", err)
		return outcome
	}

	var creds ads.Credentials
	if e.provider.RequiresAccount() {
		account, err := e.store.GetAdAccountForPlatform(ctx, rule.WorkspaceID, rule.Platform)
		if errors.Is(err, store.ErrNotFound) {
			outcome.Status = domain.OutcomeError
			outcome.Error = fmt.Sprintf("Nenhuma conta %s conectada ao workspace. Conecte uma conta para executar esta regra.", rule.Platform)
			return outcome
		}
		if err != nil {
			outcome.Status = domain.OutcomeError
			outcome.Error = err.Error()
			return outcome
		}

		token, err := store.DecryptedToken(account)
		if err != nil {
			outcome.Status = domain.OutcomeError
			outcome.Error = err.Error()
			return outcome
		}
		creds = ads.Credentials{AccessToken: token, AccountID: account.ExternalID}
	}

	snap, err := e.provider.Fetch(ctx, rule.Platform, creds, metrics.Window{})
	if err != nil {
		outcome.Status = domain.OutcomeError
		outcome.Error = err.Error()
		return outcome
	}

	if !Evaluate(cond, snap) {
		value, ok := snap.Lookup(cond.Metric)
		outcome.Status = domain.OutcomeSkipped
		if ok {
			outcome.Details = fmt.Sprintf("condição não atendida: %s=%.2f (limite %s %.2f)",
				cond.MetricKey(), value, cond.Operator, cond.Value)
		} else {
			outcome.Details = fmt.Sprintf("métrica %q ausente no snapshot", cond.MetricKey())
		}
		return outcome
	}

	value, _ := snap.Lookup(cond.Metric)
	e.logger.Info("rule triggered",
		zap.String("rule_id", rule.ID.String()),
		zap.String("metric", cond.MetricKey()),
		zap.Float64("value", value),
		zap.String("campaign_id", snap.CampaignID),
		zap.String("component", "engine"),
	)

	var actionErr error
	// demo snapshots never touch real campaigns
	if rule.Action != domain.ActionNotify && !e.provider.RequiresAccount() {
		e.logger.Info("demo data source, action simulated",
			zap.String("rule_id", rule.ID.String()),
			zap.String("action", string(rule.Action)),
			zap.String("component", "engine"),
		)
	} else {
		actionErr = e.executeAction(ctx, rule, snap, creds)
	}

	if err := e.recordTrigger(ctx, rule, cond, snap, value, actionErr); err != nil {
		outcome.Status = domain.OutcomeError
		outcome.Error = fmt.Sprintf("could not record trigger: %v", err)
		return outcome
	}

	if actionErr != nil {
		outcome.Status = domain.OutcomeError
		outcome.Error = actionErr.Error()
		return outcome
	}

	outcome.Status = domain.OutcomeTriggered
	outcome.Details = fmt.Sprintf("%s=%.2f %s %.2f; ação %s executada",
		cond.MetricKey(), value, cond.Operator, cond.Value, rule.Action)
	return outcome
}

// recordTrigger writes the alert and audit trail for a fired rule in one
// transaction. An action failure is still recorded, with the error noted.
func (e *Engine) recordTrigger(ctx context.Context, rule domain.AutomationRule, cond domain.RuleCondition, snap metrics.Snapshot, value float64, actionErr error) error {
	trigger := make(map[string]any, len(snap.Values)+2)
	for k, v := range snap.Values {
		trigger[k] = v
	}
	trigger["campaignId"] = snap.CampaignID
	trigger["campaignName"] = snap.CampaignName

	details := domain.AuditDetails{
		TriggerData: trigger,
		Condition:   cond,
		CampaignID:  snap.CampaignID,
	}
	if actionErr != nil {
		details.ActionError = actionErr.Error()
	}

	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("could not encode audit details: %w", err)
	}

	level := domain.AlertWarning
	if actionErr != nil {
		level = domain.AlertCritical
	}

	alert := domain.Alert{
		WorkspaceID: rule.WorkspaceID,
		RuleID:      &rule.ID,
		Level:       level,
		Title:       fmt.Sprintf("Automação Executada: %s", rule.Name),
		Message: fmt.Sprintf("A regra '%s' disparou: %s %s %.2f (valor atual: %.2f) na campanha %s.",
			rule.Name, cond.MetricKey(), cond.Operator, cond.Value, value, snap.CampaignName),
		Metadata: payload,
	}

	audit := domain.AuditLog{
		WorkspaceID: rule.WorkspaceID,
		RuleID:      rule.ID,
		Action:      rule.Action,
		EntityID:    snap.CampaignID,
		Details:     payload,
	}

	return e.store.CreateAlertAndAudit(ctx, alert, audit)
}
