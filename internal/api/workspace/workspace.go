package workspace

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/dotojr123/ads-agent-base/internal/api/common"
	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/store"

	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a workspace name into a URL-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// HandleCreateWorkspace creates a workspace with the caller as OWNER.
func HandleCreateWorkspace(storer store.Storer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := common.GetUserIDFromContext(r.Context())
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		var req struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido", log)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			common.WriteJSONError(w, http.StatusBadRequest, "name é obrigatório", log)
			return
		}
		if req.Slug == "" {
			req.Slug = Slugify(req.Name)
		}
		if req.Slug == "" {
			common.WriteJSONError(w, http.StatusBadRequest, "slug inválido", log)
			return
		}

		ws, err := storer.CreateWorkspace(r.Context(), req.Name, req.Slug, userID)
		if err != nil {
			log.Error("could not create workspace",
				zap.Error(err),
				zap.String("component", "api"),
			)
			common.WriteJSONError(w, http.StatusInternalServerError, "Não foi possível criar o workspace", log)
			return
		}

		common.WriteJSON(w, http.StatusCreated, ws, log)
	}
}

// HandleGetWorkspaces lists the caller's workspaces.
func HandleGetWorkspaces(storer store.Storer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := common.GetUserIDFromContext(r.Context())
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		workspaces, err := storer.GetWorkspacesForUser(r.Context(), userID)
		if err != nil {
			common.WriteJSONError(w, http.StatusInternalServerError, "Não foi possível listar os workspaces", log)
			return
		}
		if workspaces == nil {
			workspaces = []domain.Workspace{}
		}

		common.WriteJSON(w, http.StatusOK, workspaces, log)
	}
}
