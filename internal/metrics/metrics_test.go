package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/dotojr123/ads-agent-base/internal/ads"
	"github.com/dotojr123/ads-agent-base/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSnapshot_Lookup(t *testing.T) {
	snap := Snapshot{Values: map[string]float64{"cpc": 1.25, "roas": 4.5}}

	v, ok := snap.Lookup("CPC")
	assert.True(t, ok)
	assert.Equal(t, 1.25, v)

	v, ok = snap.Lookup("  roas ")
	assert.True(t, ok)
	assert.Equal(t, 4.5, v)

	_, ok = snap.Lookup("impressions")
	assert.False(t, ok)
}

func TestDemoProvider_Fetch(t *testing.T) {
	provider := NewDemoProviderWithSeed(42)
	assert.False(t, provider.RequiresAccount())

	for i := 0; i < 50; i++ {
		snap, err := provider.Fetch(context.Background(), domain.PlatformMeta, ads.Credentials{}, Window{})
		require.NoError(t, err)

		assert.Equal(t, domain.PlatformMeta, snap.Platform)
		assert.Regexp(t, `^cmp_\d{1,4}$`, snap.CampaignID)
		assert.Contains(t, snap.CampaignName, "Campanha Mock META")

		cpc, ok := snap.Lookup("cpc")
		require.True(t, ok)
		assert.GreaterOrEqual(t, cpc, 0.5)
		assert.Less(t, cpc, 5.5)

		ctr, ok := snap.Lookup("ctr")
		require.True(t, ok)
		assert.GreaterOrEqual(t, ctr, 0.5)
		assert.Less(t, ctr, 3.5)

		roas, ok := snap.Lookup("roas")
		require.True(t, ok)
		assert.GreaterOrEqual(t, roas, 0.5)
		assert.Less(t, roas, 5.5)
	}
}

func TestDemoProvider_Deterministic(t *testing.T) {
	a := NewDemoProviderWithSeed(7)
	b := NewDemoProviderWithSeed(7)

	snapA, err := a.Fetch(context.Background(), domain.PlatformGoogle, ads.Credentials{}, Window{})
	require.NoError(t, err)
	snapB, err := b.Fetch(context.Background(), domain.PlatformGoogle, ads.Credentials{}, Window{})
	require.NoError(t, err)

	assert.Equal(t, snapA.Values, snapB.Values)
	assert.Equal(t, snapA.CampaignID, snapB.CampaignID)
}

// mockAdsClient stubs the platform client for live-provider tests.
type mockAdsClient struct {
	mock.Mock
	platform domain.Platform
}

func (m *mockAdsClient) Platform() domain.Platform { return m.platform }

func (m *mockAdsClient) ListCampaigns(ctx context.Context, creds ads.Credentials, statusFilter string) ([]ads.Campaign, error) {
	args := m.Called(ctx, creds, statusFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ads.Campaign), args.Error(1)
}

func (m *mockAdsClient) GetCampaignInsights(ctx context.Context, creds ads.Credentials, campaignID, datePreset string) (ads.Insights, error) {
	args := m.Called(ctx, creds, campaignID, datePreset)
	return args.Get(0).(ads.Insights), args.Error(1)
}

func (m *mockAdsClient) PauseCampaign(ctx context.Context, creds ads.Credentials, campaignID string) (ads.MutationResult, error) {
	args := m.Called(ctx, creds, campaignID)
	return args.Get(0).(ads.MutationResult), args.Error(1)
}

func (m *mockAdsClient) ActivateCampaign(ctx context.Context, creds ads.Credentials, campaignID string) (ads.MutationResult, error) {
	args := m.Called(ctx, creds, campaignID)
	return args.Get(0).(ads.MutationResult), args.Error(1)
}

func (m *mockAdsClient) UpdateBudget(ctx context.Context, creds ads.Credentials, entityID string, dailyBudget float64) (ads.MutationResult, error) {
	args := m.Called(ctx, creds, entityID, dailyBudget)
	return args.Get(0).(ads.MutationResult), args.Error(1)
}

func TestLiveProvider_Fetch(t *testing.T) {
	client := &mockAdsClient{platform: domain.PlatformMeta}
	client.On("ListCampaigns", mock.Anything, mock.Anything, "ACTIVE").
		Return([]ads.Campaign{{ID: "c1", Name: "Conversões BR"}}, nil)
	client.On("GetCampaignInsights", mock.Anything, mock.Anything, "c1", "last_30d").
		Return(ads.Insights{CampaignID: "c1", CampaignName: "Conversões BR", CPC: 1.8, CTR: 2.1, Spend: 300}, nil)

	provider := NewLiveProvider(map[domain.Platform]ads.Client{domain.PlatformMeta: client}, zap.NewNop())
	assert.True(t, provider.RequiresAccount())

	snap, err := provider.Fetch(context.Background(), domain.PlatformMeta, ads.Credentials{AccountID: "act_1"}, Window{DatePreset: "last_30d"})
	require.NoError(t, err)

	assert.Equal(t, "c1", snap.CampaignID)
	assert.Equal(t, "Conversões BR", snap.CampaignName)

	cpc, ok := snap.Lookup("cpc")
	assert.True(t, ok)
	assert.Equal(t, 1.8, cpc)

	client.AssertExpectations(t)
}

func TestLiveProvider_Fetch_Errors(t *testing.T) {
	t.Run("unknown platform", func(t *testing.T) {
		provider := NewLiveProvider(map[domain.Platform]ads.Client{}, zap.NewNop())

		_, err := provider.Fetch(context.Background(), domain.PlatformGoogle, ads.Credentials{}, Window{})
		assert.ErrorContains(t, err, "no ads client registered")
	})

	t.Run("no active campaigns", func(t *testing.T) {
		client := &mockAdsClient{platform: domain.PlatformMeta}
		client.On("ListCampaigns", mock.Anything, mock.Anything, "ACTIVE").Return([]ads.Campaign{}, nil)

		provider := NewLiveProvider(map[domain.Platform]ads.Client{domain.PlatformMeta: client}, zap.NewNop())

		_, err := provider.Fetch(context.Background(), domain.PlatformMeta, ads.Credentials{AccountID: "act_1"}, Window{})
		assert.ErrorContains(t, err, "no active campaigns")
	})

	t.Run("platform failure propagates", func(t *testing.T) {
		client := &mockAdsClient{platform: domain.PlatformMeta}
		client.On("ListCampaigns", mock.Anything, mock.Anything, "ACTIVE").
			Return(nil, errors.New("Token do Facebook expirado"))

		provider := NewLiveProvider(map[domain.Platform]ads.Client{domain.PlatformMeta: client}, zap.NewNop())

		_, err := provider.Fetch(context.Background(), domain.PlatformMeta, ads.Credentials{}, Window{})
		assert.ErrorContains(t, err, "could not list campaigns")
	})
}
