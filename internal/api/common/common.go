package common

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dotojr123/ads-agent-base/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// contextKey for user ID
type contextKey string

var UserContextKey contextKey = "user_id"

// GetUserIDFromContext returns the user ID the auth middleware stored in
// the request context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(UserContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing or invalid user ID in context")
	}
	return userID, nil
}

// ResolveWorkspace maps the authenticated user to their workspace. Users
// with several workspaces get the oldest one.
// TODO: accept an explicit X-Workspace-ID header once the dashboard
// supports switching workspaces.
func ResolveWorkspace(ctx context.Context, storer store.Storer) (uuid.UUID, error) {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	workspaces, err := storer.GetWorkspacesForUser(ctx, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("could not load workspaces: %w", err)
	}
	if len(workspaces) == 0 {
		return uuid.Nil, fmt.Errorf("usuário não pertence a nenhum workspace")
	}
	return workspaces[0].ID, nil
}

// WriteJSON writes a standard JSON response.
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error(
			"failed to write JSON response",
			zap.Error(err),
			zap.Int("status", status),
			zap.String("component", "api"),
		)
	}
}

// WriteJSONError writes a standard JSON error response.
func WriteJSONError(w http.ResponseWriter, status int, message string, logger *zap.Logger) {
	WriteJSON(w, status, map[string]string{"error": message}, logger)
}
