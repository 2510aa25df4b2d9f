package ads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/dotojr123/ads-agent-base/internal/domain"

	"go.uber.org/zap"
)

const defaultMetaAPIVersion = "v24.0"

// MetaClient talks to the Facebook Marketing (Graph) API.
type MetaClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewMetaClient builds a Graph API client. META_API_VERSION overrides the
// pinned version; baseURL is only overridden in tests.
func NewMetaClient(log *zap.Logger) *MetaClient {
	version := os.Getenv("META_API_VERSION")
	if version == "" {
		version = defaultMetaAPIVersion
	}

	return &MetaClient{
		baseURL: "https://graph.facebook.com/" + version,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  log,
	}
}

func (c *MetaClient) Platform() domain.Platform { return domain.PlatformMeta }

// graphEnvelope captures the Graph API's error object alongside the data
// payload; a non-nil Error means the call failed even on HTTP 200.
type graphEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *graphError     `json:"error"`
}

type graphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

type metaCampaign struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Objective   string `json:"objective"`
	DailyBudget string `json:"daily_budget"` // cents, as a string
}

type metaInsightsRow struct {
	CampaignName string `json:"campaign_name"`
	Impressions  string `json:"impressions"`
	Clicks       string `json:"clicks"`
	Spend        string `json:"spend"`
	CTR          string `json:"ctr"`
	CPC          string `json:"cpc"`
	CPM          string `json:"cpm"`
	Reach        string `json:"reach"`
	Frequency    string `json:"frequency"`
}

// ListCampaigns lists the account's campaigns, optionally filtered by
// effective status (e.g. ACTIVE, PAUSED).
func (c *MetaClient) ListCampaigns(ctx context.Context, creds Credentials, statusFilter string) ([]Campaign, error) {
	params := url.Values{}
	params.Set("fields", "id,name,status,objective,daily_budget,lifetime_budget,created_time")
	params.Set("access_token", creds.AccessToken)
	if statusFilter != "" {
		params.Set("filtering", fmt.Sprintf(`[{"field":"effective_status","operator":"IN","value":["%s"]}]`, statusFilter))
	}

	endpoint := fmt.Sprintf("%s/%s/campaigns?%s", c.baseURL, creds.AccountID, params.Encode())

	var env graphEnvelope
	if err := c.get(ctx, endpoint, "getCampaigns", &env); err != nil {
		return nil, err
	}

	var wire []metaCampaign
	if err := json.Unmarshal(env.Data, &wire); err != nil {
		return nil, fmt.Errorf("could not decode campaign list: %w", err)
	}

	campaigns := make([]Campaign, 0, len(wire))
	for _, mc := range wire {
		campaigns = append(campaigns, Campaign{
			ID:          mc.ID,
			Name:        mc.Name,
			Status:      mc.Status,
			Objective:   mc.Objective,
			DailyBudget: centsToUnits(mc.DailyBudget),
		})
	}
	return campaigns, nil
}

// GetCampaignInsights fetches one campaign's insights over datePreset
// (default last_7d). The Graph API returns all numeric fields as strings.
func (c *MetaClient) GetCampaignInsights(ctx context.Context, creds Credentials, campaignID, datePreset string) (Insights, error) {
	if datePreset == "" {
		datePreset = "last_7d"
	}

	params := url.Values{}
	params.Set("fields", "campaign_name,impressions,clicks,spend,ctr,cpc,cpm,frequency,reach")
	params.Set("date_preset", datePreset)
	params.Set("access_token", creds.AccessToken)

	endpoint := fmt.Sprintf("%s/%s/insights?%s", c.baseURL, campaignID, params.Encode())

	var env graphEnvelope
	if err := c.get(ctx, endpoint, "getCampaignInsights", &env); err != nil {
		return Insights{}, err
	}

	var rows []metaInsightsRow
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return Insights{}, fmt.Errorf("could not decode insights: %w", err)
	}
	if len(rows) == 0 {
		return Insights{}, &PlatformError{
			Platform: domain.PlatformMeta,
			Message:  "no insights available for the requested period",
			Context:  "getCampaignInsights",
		}
	}

	row := rows[0]
	return Insights{
		CampaignID:   campaignID,
		CampaignName: row.CampaignName,
		Impressions:  parseMetric(row.Impressions),
		Clicks:       parseMetric(row.Clicks),
		Spend:        parseMetric(row.Spend),
		CTR:          parseMetric(row.CTR),
		CPC:          parseMetric(row.CPC),
		CPM:          parseMetric(row.CPM),
		Reach:        parseMetric(row.Reach),
		Frequency:    parseMetric(row.Frequency),
	}, nil
}

// Validate checks the token against the /me node. Expired tokens come
// back as code 190 and get the dedicated message.
func (c *MetaClient) Validate(ctx context.Context, creds Credentials) error {
	params := url.Values{}
	params.Set("fields", "id,name")
	params.Set("access_token", creds.AccessToken)

	var env graphEnvelope
	return c.get(ctx, fmt.Sprintf("%s/me?%s", c.baseURL, params.Encode()), "validateCredentials", &env)
}

// PauseCampaign sets a campaign's status to PAUSED.
func (c *MetaClient) PauseCampaign(ctx context.Context, creds Credentials, campaignID string) (MutationResult, error) {
	if err := c.post(ctx, campaignID, "pauseCampaign", map[string]any{
		"status":       "PAUSED",
		"access_token": creds.AccessToken,
	}); err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Success: true, EntityID: campaignID, Status: "PAUSED"}, nil
}

// ActivateCampaign sets a campaign's status to ACTIVE.
func (c *MetaClient) ActivateCampaign(ctx context.Context, creds Credentials, campaignID string) (MutationResult, error) {
	if err := c.post(ctx, campaignID, "activateCampaign", map[string]any{
		"status":       "ACTIVE",
		"access_token": creds.AccessToken,
	}); err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Success: true, EntityID: campaignID, Status: "ACTIVE"}, nil
}

// UpdateBudget sets an entity's daily budget. Graph expects cents.
func (c *MetaClient) UpdateBudget(ctx context.Context, creds Credentials, entityID string, dailyBudget float64) (MutationResult, error) {
	if err := c.post(ctx, entityID, "updateBudget", map[string]any{
		"daily_budget": int64(dailyBudget * 100),
		"access_token": creds.AccessToken,
	}); err != nil {
		return MutationResult{}, err
	}
	return MutationResult{Success: true, EntityID: entityID, Budget: dailyBudget}, nil
}

// get performs a GET and decodes the Graph envelope, mapping error objects
// to *PlatformError.
func (c *MetaClient) get(ctx context.Context, endpoint, opContext string, env *graphEnvelope) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("meta request failed (%s): %w", opContext, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		return fmt.Errorf("could not decode meta response (%s): %w", opContext, err)
	}

	if env.Error != nil {
		c.logger.Warn("meta API returned error",
			zap.String("op", opContext),
			zap.Int("code", env.Error.Code),
			zap.String("component", "ads"),
		)
		return newMetaError(env.Error.Code, env.Error.Message, opContext)
	}

	return nil
}

// post performs a JSON POST against a node (mutations).
func (c *MetaClient) post(ctx context.Context, nodeID, opContext string, body map[string]any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("could not encode request body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, nodeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("meta request failed (%s): %w", opContext, err)
	}
	defer resp.Body.Close()

	var env graphEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("could not decode meta response (%s): %w", opContext, err)
	}
	if env.Error != nil {
		return newMetaError(env.Error.Code, env.Error.Message, opContext)
	}
	return nil
}

// parseMetric converts Graph's stringified numbers; "3.00%" style suffixes
// are not returned by the insights edge, so plain ParseFloat suffices.
func parseMetric(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// centsToUnits converts a stringified cent amount to currency units.
func centsToUnits(s string) float64 {
	if s == "" {
		return 0
	}
	cents, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return cents / 100
}
