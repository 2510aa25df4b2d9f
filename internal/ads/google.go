package ads

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dotojr123/ads-agent-base/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// GoogleClient implements the Google Ads surface. Reads and mutations are
// simulated with 2025 benchmark values; no live Google Ads integration has
// shipped yet.
//
// TODO: replace the simulated responses with real Google Ads API calls once
// a developer token and client customer id are provisioned.
type GoogleClient struct {
	endpoint string // credential-validation endpoint; empty disables it
	logger   *zap.Logger
	now      func() time.Time
}

// NewGoogleClient builds the Google client. GOOGLE_ADS_ENDPOINT, when set,
// enables live credential validation on account connect.
func NewGoogleClient(log *zap.Logger) *GoogleClient {
	return &GoogleClient{
		endpoint: os.Getenv("GOOGLE_ADS_ENDPOINT"),
		logger:   log,
		now:      time.Now,
	}
}

func (c *GoogleClient) Platform() domain.Platform { return domain.PlatformGoogle }

// httpClientFor wraps the account's bearer token in an oauth2 transport so
// the eventual live integration keeps the same call sites.
func (c *GoogleClient) httpClientFor(ctx context.Context, creds Credentials) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.AccessToken, TokenType: "Bearer"})
	client := oauth2.NewClient(ctx, src)
	client.Timeout = 15 * time.Second
	return client
}

// Validate checks the credentials against the configured endpoint. With no
// endpoint configured the check is a no-op (simulation mode).
func (c *GoogleClient) Validate(ctx context.Context, creds Credentials) error {
	if c.endpoint == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/customers:listAccessibleCustomers", nil)
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}

	resp, err := c.httpClientFor(ctx, creds).Do(req)
	if err != nil {
		return fmt.Errorf("google credential check failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &PlatformError{
			Platform: domain.PlatformGoogle,
			Code:     resp.StatusCode,
			Message:  "credenciais do Google Ads inválidas ou sem acesso",
			Context:  "validateCredentials",
		}
	}
	return nil
}

func (c *GoogleClient) ListCampaigns(ctx context.Context, creds Credentials, statusFilter string) ([]Campaign, error) {
	campaigns := []Campaign{
		{ID: "12345", Name: "Search - Institucional", Status: "ENABLED", Objective: "SEARCH", DailyBudget: 50},
		{ID: "67890", Name: "PMax - Vendas", Status: "ENABLED", Objective: "PERFORMANCE_MAX", DailyBudget: 150},
	}

	if statusFilter == "" {
		return campaigns, nil
	}

	filtered := campaigns[:0]
	for _, cmp := range campaigns {
		if cmp.Status == statusFilter || (statusFilter == "ACTIVE" && cmp.Status == "ENABLED") {
			filtered = append(filtered, cmp)
		}
	}
	return filtered, nil
}

func (c *GoogleClient) GetCampaignInsights(ctx context.Context, creds Credentials, campaignID, datePreset string) (Insights, error) {
	// Benchmark values matching the simulated dataset.
	return Insights{
		CampaignID:   campaignID,
		CampaignName: "Search - Institucional",
		Impressions:  15000,
		Clicks:       450,
		Spend:        450.00,
		Conversions:  25,
		CTR:          3.00,
		CPC:          1.00,
		ROAS:         4.5,
	}, nil
}

func (c *GoogleClient) PauseCampaign(ctx context.Context, creds Credentials, campaignID string) (MutationResult, error) {
	c.logger.Info("simulated google campaign pause",
		zap.String("campaign_id", campaignID),
		zap.String("component", "ads"),
	)
	return MutationResult{Success: true, EntityID: campaignID, Status: "PAUSED"}, nil
}

func (c *GoogleClient) ActivateCampaign(ctx context.Context, creds Credentials, campaignID string) (MutationResult, error) {
	return MutationResult{Success: true, EntityID: campaignID, Status: "ENABLED"}, nil
}

func (c *GoogleClient) UpdateBudget(ctx context.Context, creds Credentials, entityID string, dailyBudget float64) (MutationResult, error) {
	c.logger.Info("simulated google budget update",
		zap.String("entity_id", entityID),
		zap.Float64("daily_budget", dailyBudget),
		zap.String("component", "ads"),
	)
	return MutationResult{Success: true, EntityID: entityID, Budget: dailyBudget}, nil
}
