package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dotojr123/ads-agent-base/internal/ads"
	"github.com/dotojr123/ads-agent-base/internal/api/common"
	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// connectRequest is the payload for connecting an ad account. The token
// is validated against the platform before being encrypted and stored.
type connectRequest struct {
	Platform    domain.Platform `json:"platform"`
	Name        string          `json:"name"`
	ExternalID  string          `json:"external_id"`
	AccessToken string          `json:"access_token"`
}

// HandleConnectAccount connects (or reconnects) an ad account to the
// caller's workspace.
func HandleConnectAccount(storer store.Storer, validators map[domain.Platform]ads.CredentialValidator, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, err := common.ResolveWorkspace(r.Context(), storer)
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		var req connectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido", log)
			return
		}

		req.Platform = domain.Platform(strings.ToUpper(string(req.Platform)))
		if !req.Platform.Valid() {
			common.WriteJSONError(w, http.StatusBadRequest, "Plataforma inválida: use META ou GOOGLE", log)
			return
		}
		if req.Name == "" || req.ExternalID == "" || req.AccessToken == "" {
			common.WriteJSONError(w, http.StatusBadRequest, "Campos obrigatórios: name, external_id, access_token", log)
			return
		}

		if validator, ok := validators[req.Platform]; ok {
			creds := ads.Credentials{AccessToken: req.AccessToken, AccountID: req.ExternalID}
			if err := validator.Validate(r.Context(), creds); err != nil {
				log.Warn("credential validation failed",
					zap.String("platform", string(req.Platform)),
					zap.Error(err),
					zap.String("component", "api"),
				)
				common.WriteJSONError(w, http.StatusUnprocessableEntity, err.Error(), log)
				return
			}
		}

		acc, err := storer.UpsertAdAccount(r.Context(), store.UpsertAdAccountParams{
			WorkspaceID: workspaceID,
			Platform:    req.Platform,
			Name:        req.Name,
			ExternalID:  req.ExternalID,
			AccessToken: req.AccessToken,
		})
		if err != nil {
			common.WriteJSONError(w, http.StatusInternalServerError, "Não foi possível conectar a conta", log)
			return
		}

		common.WriteJSON(w, http.StatusCreated, acc, log)
	}
}

// HandleGetAccounts lists the workspace's connected accounts. Tokens
// never leave the server; the JSON tag drops them.
func HandleGetAccounts(storer store.Storer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, err := common.ResolveWorkspace(r.Context(), storer)
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		accounts, err := storer.GetAdAccountsForWorkspace(r.Context(), workspaceID)
		if err != nil {
			common.WriteJSONError(w, http.StatusInternalServerError, "Não foi possível listar as contas", log)
			return
		}
		if accounts == nil {
			accounts = []domain.AdAccount{}
		}

		common.WriteJSON(w, http.StatusOK, accounts, log)
	}
}

// HandleDeleteAccount disconnects an ad account from the workspace.
func HandleDeleteAccount(storer store.Storer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := uuid.Parse(chi.URLParam(r, "accountId"))
		if err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, "ID de conta inválido", log)
			return
		}

		workspaceID, err := common.ResolveWorkspace(r.Context(), storer)
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		if err := storer.DeleteAdAccount(r.Context(), accountID, workspaceID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				common.WriteJSONError(w, http.StatusNotFound, "Conta não encontrada", log)
				return
			}
			common.WriteJSONError(w, http.StatusInternalServerError, "Não foi possível remover a conta", log)
			return
		}

		common.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"}, log)
	}
}
