package ads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGoogleClient_Validate(t *testing.T) {
	t.Run("sends bearer token", func(t *testing.T) {
		var gotAuth, gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := NewGoogleClient(zap.NewNop())
		client.endpoint = srv.URL

		err := client.Validate(context.Background(), Credentials{AccessToken: "ya29.token"})
		require.NoError(t, err)
		assert.Equal(t, "Bearer ya29.token", gotAuth)
		assert.Equal(t, "/customers:listAccessibleCustomers", gotPath)
	})

	t.Run("rejects bad credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewGoogleClient(zap.NewNop())
		client.endpoint = srv.URL

		err := client.Validate(context.Background(), Credentials{AccessToken: "expired"})
		var perr *PlatformError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, http.StatusUnauthorized, perr.Code)
	})

	t.Run("no-op without endpoint", func(t *testing.T) {
		client := NewGoogleClient(zap.NewNop())
		client.endpoint = ""

		assert.NoError(t, client.Validate(context.Background(), Credentials{}))
	})
}

func TestGoogleClient_ListCampaigns(t *testing.T) {
	client := NewGoogleClient(zap.NewNop())

	all, err := client.ListCampaigns(context.Background(), Credentials{}, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// ACTIVE is normalized to Google's ENABLED status.
	active, err := client.ListCampaigns(context.Background(), Credentials{}, "ACTIVE")
	require.NoError(t, err)
	assert.Len(t, active, 2)

	paused, err := client.ListCampaigns(context.Background(), Credentials{}, "PAUSED")
	require.NoError(t, err)
	assert.Empty(t, paused)
}

func TestGoogleClient_GetCampaignInsights(t *testing.T) {
	client := NewGoogleClient(zap.NewNop())

	ins, err := client.GetCampaignInsights(context.Background(), Credentials{}, "12345", "last_7d")
	require.NoError(t, err)
	assert.Equal(t, "12345", ins.CampaignID)
	assert.Equal(t, 15000.0, ins.Impressions)
	assert.Equal(t, 1.0, ins.CPC)
	assert.Equal(t, 4.5, ins.ROAS)
}

func TestGoogleClient_Mutations(t *testing.T) {
	client := NewGoogleClient(zap.NewNop())

	paused, err := client.PauseCampaign(context.Background(), Credentials{}, "12345")
	require.NoError(t, err)
	assert.True(t, paused.Success)
	assert.Equal(t, "PAUSED", paused.Status)

	budget, err := client.UpdateBudget(context.Background(), Credentials{}, "12345", 200)
	require.NoError(t, err)
	assert.Equal(t, 200.0, budget.Budget)
}
