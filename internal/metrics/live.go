package metrics

import (
	"context"
	"fmt"

	"github.com/dotojr123/ads-agent-base/internal/ads"
	"github.com/dotojr123/ads-agent-base/internal/domain"

	"go.uber.org/zap"
)

// LiveProvider builds snapshots from real platform data: the account's
// first active campaign and its insights over the window.
type LiveProvider struct {
	clients map[domain.Platform]ads.Client
	logger  *zap.Logger
}

func NewLiveProvider(clients map[domain.Platform]ads.Client, log *zap.Logger) *LiveProvider {
	return &LiveProvider{clients: clients, logger: log}
}

func (p *LiveProvider) RequiresAccount() bool { return true }

func (p *LiveProvider) Fetch(ctx context.Context, platform domain.Platform, creds ads.Credentials, window Window) (Snapshot, error) {
	client, ok := p.clients[platform]
	if !ok {
		return Snapshot{}, fmt.Errorf("no ads client registered for platform %s", platform)
	}

	campaigns, err := client.ListCampaigns(ctx, creds, "ACTIVE")
	if err != nil {
		return Snapshot{}, fmt.Errorf("could not list campaigns: %w", err)
	}
	if len(campaigns) == 0 {
		return Snapshot{}, fmt.Errorf("no active campaigns found for account %s", creds.AccountID)
	}

	campaign := campaigns[0]
	insights, err := client.GetCampaignInsights(ctx, creds, campaign.ID, window.DatePreset)
	if err != nil {
		return Snapshot{}, fmt.Errorf("could not fetch insights for campaign %s: %w", campaign.ID, err)
	}

	name := insights.CampaignName
	if name == "" {
		name = campaign.Name
	}

	p.logger.Debug("fetched live snapshot",
		zap.String("platform", string(platform)),
		zap.String("campaign_id", campaign.ID),
		zap.String("component", "metrics"),
	)

	return Snapshot{
		Platform:     platform,
		CampaignID:   campaign.ID,
		CampaignName: name,
		Values: map[string]float64{
			"impressions": insights.Impressions,
			"clicks":      insights.Clicks,
			"spend":       insights.Spend,
			"conversions": insights.Conversions,
			"ctr":         insights.CTR,
			"cpc":         insights.CPC,
			"cpm":         insights.CPM,
			"reach":       insights.Reach,
			"frequency":   insights.Frequency,
			"roas":        insights.ROAS,
		},
	}, nil
}
