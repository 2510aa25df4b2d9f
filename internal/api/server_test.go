package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type noopRunner struct{}

func (noopRunner) RunOnce(context.Context, *uuid.UUID) ([]domain.RuleOutcome, error) {
	return nil, nil
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000")

	userID := uuid.New()
	mockStore := &store.MockStore{}
	mockStore.On("GetWorkspacesForUser", mock.Anything, userID).
		Return([]domain.Workspace{}, nil).Maybe()

	server := NewServer(mockStore, noopRunner{}, nil, zap.NewNop())

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/automations", nil)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/automations", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{
			"user_id": userID.String(),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest("GET", "/api/v1/automations", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, "test-secret", jwt.MapClaims{
			"user_id": userID.String(),
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})
		req := httptest.NewRequest("GET", "/api/v1/automations", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		wsStore := &store.MockStore{}
		ws := domain.Workspace{Name: "Agência"}
		ws.ID = uuid.New()
		wsStore.On("GetWorkspacesForUser", mock.Anything, userID).
			Return([]domain.Workspace{ws}, nil)
		wsStore.On("GetRulesForWorkspace", mock.Anything, ws.ID).
			Return([]domain.AutomationRule{}, nil)

		authedServer := NewServer(wsStore, noopRunner{}, nil, zap.NewNop())

		token := signToken(t, "test-secret", jwt.MapClaims{
			"user_id": userID.String(),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest("GET", "/api/v1/automations", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		authedServer.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestPublicRoutes(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000")

	server := NewServer(&store.MockStore{}, noopRunner{}, nil, zap.NewNop())

	t.Run("health needs no auth", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/health", nil)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("cron run is guarded by its own secret", func(t *testing.T) {
		t.Setenv("CRON_SECRET", "s3cret")
		req := httptest.NewRequest("POST", "/api/v1/automations/run", nil)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
