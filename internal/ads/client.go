package ads

import (
	"context"

	"github.com/dotojr123/ads-agent-base/internal/domain"
)

// Credentials is the opaque per-account credential object handed to every
// platform call: a decrypted access token plus the platform account id.
type Credentials struct {
	AccessToken string
	AccountID   string
}

// Campaign is the normalized campaign representation across platforms.
type Campaign struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Objective   string  `json:"objective,omitempty"`
	DailyBudget float64 `json:"daily_budget,omitempty"`
}

// Insights is one campaign's performance snapshot over a date preset.
type Insights struct {
	CampaignID   string  `json:"campaign_id"`
	CampaignName string  `json:"campaign_name"`
	Impressions  float64 `json:"impressions"`
	Clicks       float64 `json:"clicks"`
	Spend        float64 `json:"spend"`
	CTR          float64 `json:"ctr"`
	CPC          float64 `json:"cpc"`
	CPM          float64 `json:"cpm"`
	Reach        float64 `json:"reach"`
	Frequency    float64 `json:"frequency"`
	Conversions  float64 `json:"conversions"`
	ROAS         float64 `json:"roas"`
}

// MutationResult reports the outcome of a platform mutation.
type MutationResult struct {
	Success  bool    `json:"success"`
	EntityID string  `json:"entity_id"`
	Status   string  `json:"status,omitempty"`
	Budget   float64 `json:"new_budget,omitempty"`
}

// Client is the per-platform ads API surface. The automation engine only
// needs the insights read path; mutation calls back the richer action
// executors (pause campaign, adjust budget).
type Client interface {
	Platform() domain.Platform
	ListCampaigns(ctx context.Context, creds Credentials, statusFilter string) ([]Campaign, error)
	GetCampaignInsights(ctx context.Context, creds Credentials, campaignID, datePreset string) (Insights, error)
	PauseCampaign(ctx context.Context, creds Credentials, campaignID string) (MutationResult, error)
	ActivateCampaign(ctx context.Context, creds Credentials, campaignID string) (MutationResult, error)
	UpdateBudget(ctx context.Context, creds Credentials, entityID string, dailyBudget float64) (MutationResult, error)
}

// CredentialValidator checks credentials at connect time, before a token
// is accepted into a workspace. Both platform clients implement it.
type CredentialValidator interface {
	Validate(ctx context.Context, creds Credentials) error
}
