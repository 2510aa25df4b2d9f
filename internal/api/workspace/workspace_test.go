package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dotojr123/ads-agent-base/internal/api/common"
	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "agencia-xyz", Slugify("Agencia XYZ"))
	assert.Equal(t, "performance-2026", Slugify("  Performance 2026!  "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestHandleCreateWorkspace(t *testing.T) {
	testLogger := zap.NewNop()
	userID := uuid.New()

	t.Run("creates with derived slug", func(t *testing.T) {
		mockStore := &store.MockStore{}
		expected := domain.Workspace{Name: "Agencia XYZ", Slug: "agencia-xyz"}
		expected.ID = uuid.New()

		mockStore.On("CreateWorkspace", mock.Anything, "Agencia XYZ", "agencia-xyz", userID).
			Return(expected, nil)

		body, _ := json.Marshal(map[string]string{"name": "Agencia XYZ"})
		req := httptest.NewRequest("POST", "/api/v1/workspaces", bytes.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), common.UserContextKey, userID))

		rr := httptest.NewRecorder()
		HandleCreateWorkspace(mockStore, testLogger).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var response domain.Workspace
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "agencia-xyz", response.Slug)
		mockStore.AssertExpectations(t)
	})

	t.Run("requires a name", func(t *testing.T) {
		mockStore := &store.MockStore{}
		body := []byte(`{"name": "  "}`)
		req := httptest.NewRequest("POST", "/api/v1/workspaces", bytes.NewReader(body))
		req = req.WithContext(context.WithValue(req.Context(), common.UserContextKey, userID))

		rr := httptest.NewRecorder()
		HandleCreateWorkspace(mockStore, testLogger).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		mockStore := &store.MockStore{}
		req := httptest.NewRequest("POST", "/api/v1/workspaces", bytes.NewReader([]byte(`{"name":"x"}`)))

		rr := httptest.NewRecorder()
		HandleCreateWorkspace(mockStore, testLogger).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestHandleGetWorkspaces(t *testing.T) {
	testLogger := zap.NewNop()
	userID := uuid.New()

	mockStore := &store.MockStore{}
	mockStore.On("GetWorkspacesForUser", mock.Anything, userID).Return(nil, nil)

	req := httptest.NewRequest("GET", "/api/v1/workspaces", nil)
	req = req.WithContext(context.WithValue(req.Context(), common.UserContextKey, userID))

	rr := httptest.NewRecorder()
	HandleGetWorkspaces(mockStore, testLogger).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}
