package alert

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dotojr123/ads-agent-base/internal/api/common"
	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func authedRequest(t *testing.T, method, target string, userID uuid.UUID) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), common.UserContextKey, userID)
	return req.WithContext(ctx)
}

func workspaceFor(mockStore *store.MockStore, userID uuid.UUID) uuid.UUID {
	ws := domain.Workspace{Name: "Agência"}
	ws.ID = uuid.New()
	mockStore.On("GetWorkspacesForUser", mock.Anything, userID).
		Return([]domain.Workspace{ws}, nil)
	return ws.ID
}

func TestHandleGetAlerts(t *testing.T) {
	testLogger := zap.NewNop()
	mockStore := &store.MockStore{}
	userID := uuid.New()
	wsID := workspaceFor(mockStore, userID)

	ruleName := "CPC alto"
	alerts := []domain.Alert{{
		ID:          uuid.New(),
		WorkspaceID: wsID,
		Level:       domain.AlertWarning,
		Title:       "Automação Executada: CPC alto",
		Message:     "cpc GT 1.5 disparou",
		RuleName:    &ruleName,
	}}

	mockStore.On("GetAlertsForWorkspace", mock.Anything, wsID, 10).Return(alerts, nil)

	rr := httptest.NewRecorder()
	HandleGetAlerts(mockStore, testLogger).
		ServeHTTP(rr, authedRequest(t, "GET", "/api/v1/alerts?limit=10", userID))

	assert.Equal(t, http.StatusOK, rr.Code)

	var response []domain.Alert
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	require.Len(t, response, 1)
	require.NotNil(t, response[0].RuleName)
	assert.Equal(t, "CPC alto", *response[0].RuleName)
}

func TestHandleGetAlerts_Empty(t *testing.T) {
	testLogger := zap.NewNop()
	mockStore := &store.MockStore{}
	userID := uuid.New()
	wsID := workspaceFor(mockStore, userID)

	mockStore.On("GetAlertsForWorkspace", mock.Anything, wsID, 0).Return(nil, nil)

	rr := httptest.NewRecorder()
	HandleGetAlerts(mockStore, testLogger).
		ServeHTTP(rr, authedRequest(t, "GET", "/api/v1/alerts", userID))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestHandleMarkAlertRead(t *testing.T) {
	testLogger := zap.NewNop()

	t.Run("marks read", func(t *testing.T) {
		mockStore := &store.MockStore{}
		userID := uuid.New()
		wsID := workspaceFor(mockStore, userID)
		alertID := uuid.New()

		mockStore.On("MarkAlertRead", mock.Anything, alertID, wsID).Return(nil)

		req := authedRequest(t, "PUT", "/api/v1/alerts/"+alertID.String()+"/read", userID)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("alertId", alertID.String())
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		rr := httptest.NewRecorder()
		HandleMarkAlertRead(mockStore, testLogger).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("foreign alert looks like 404", func(t *testing.T) {
		mockStore := &store.MockStore{}
		userID := uuid.New()
		wsID := workspaceFor(mockStore, userID)
		alertID := uuid.New()

		mockStore.On("MarkAlertRead", mock.Anything, alertID, wsID).Return(store.ErrNotFound)

		req := authedRequest(t, "PUT", "/api/v1/alerts/"+alertID.String()+"/read", userID)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("alertId", alertID.String())
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		rr := httptest.NewRecorder()
		HandleMarkAlertRead(mockStore, testLogger).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
