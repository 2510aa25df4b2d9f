package metrics

import (
	"context"
	"strings"

	"github.com/dotojr123/ads-agent-base/internal/ads"
	"github.com/dotojr123/ads-agent-base/internal/domain"
)

// Snapshot is one campaign's metric set for a platform, as seen by the
// automation engine. Metric keys are lowercase.
type Snapshot struct {
	Platform     domain.Platform    `json:"platform"`
	CampaignID   string             `json:"campaignId"`
	CampaignName string             `json:"campaignName"`
	Values       map[string]float64 `json:"values"`
}

// Lookup resolves a metric by name, case-insensitively. The second return
// is false when the snapshot does not carry the metric.
func (s Snapshot) Lookup(metric string) (float64, bool) {
	v, ok := s.Values[strings.ToLower(strings.TrimSpace(metric))]
	return v, ok
}

// Window selects the reporting period a snapshot covers.
type Window struct {
	DatePreset string // e.g. "last_7d", "yesterday"; empty means last_7d
}

// Provider supplies campaign snapshots to the engine. RequiresAccount
// reports whether Fetch needs platform credentials; the demo provider
// runs without a connected ad account.
type Provider interface {
	Fetch(ctx context.Context, platform domain.Platform, creds ads.Credentials, window Window) (Snapshot, error)
	RequiresAccount() bool
}
