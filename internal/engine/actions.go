package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dotojr123/ads-agent-base/internal/ads"
	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/metrics"

	"go.uber.org/zap"
)

// PauseCampaignConfig is the action_config payload for PAUSE_CAMPAIGN.
// CampaignID is optional; the snapshot's campaign is paused when absent.
type PauseCampaignConfig struct {
	CampaignID string `json:"campaign_id,omitempty"`
}

// AdjustBudgetConfig is the action_config payload for ADJUST_BUDGET.
type AdjustBudgetConfig struct {
	CampaignID  string  `json:"campaign_id,omitempty"`
	DailyBudget float64 `json:"daily_budget"`
}

// executeAction runs the rule's side effect against the platform. NOTIFY
// has no platform call; the alert written afterwards is the notification.
func (e *Engine) executeAction(ctx context.Context, rule domain.AutomationRule, snap metrics.Snapshot, creds ads.Credentials) error {
	action := rule.Action
	if action != domain.ActionNotify && action != domain.ActionPauseCampaign && action != domain.ActionAdjustBudget {
		e.logger.Warn("unknown rule action, falling back to NOTIFY",
			zap.String("rule_id", rule.ID.String()),
			zap.String("action", string(action)),
			zap.String("component", "engine"),
		)
		action = domain.ActionNotify
	}

	switch action {
	case domain.ActionNotify:
		return nil

	case domain.ActionPauseCampaign:
		var cfg PauseCampaignConfig
		if len(rule.ActionConfig) > 0 {
			if err := json.Unmarshal(rule.ActionConfig, &cfg); err != nil {
				return fmt.Errorf("invalid action config: %w", err)
			}
		}
		campaignID := cfg.CampaignID
		if campaignID == "" {
			campaignID = snap.CampaignID
		}

		client, err := e.clientFor(rule.Platform)
		if err != nil {
			return err
		}
		if _, err := client.PauseCampaign(ctx, creds, campaignID); err != nil {
			return fmt.Errorf("could not pause campaign %s: %w", campaignID, err)
		}
		return nil

	case domain.ActionAdjustBudget:
		var cfg AdjustBudgetConfig
		if err := json.Unmarshal(rule.ActionConfig, &cfg); err != nil {
			return fmt.Errorf("invalid action config: %w", err)
		}
		if cfg.DailyBudget <= 0 {
			return fmt.Errorf("adjust budget requires a positive daily_budget, got %.2f", cfg.DailyBudget)
		}
		entityID := cfg.CampaignID
		if entityID == "" {
			entityID = snap.CampaignID
		}

		client, err := e.clientFor(rule.Platform)
		if err != nil {
			return err
		}
		if _, err := client.UpdateBudget(ctx, creds, entityID, cfg.DailyBudget); err != nil {
			return fmt.Errorf("could not update budget for %s: %w", entityID, err)
		}
		return nil
	}

	return nil
}

func (e *Engine) clientFor(platform domain.Platform) (ads.Client, error) {
	client, ok := e.clients[platform]
	if !ok {
		return nil, fmt.Errorf("no ads client registered for platform %s", platform)
	}
	return client, nil
}
