package alert

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dotojr123/ads-agent-base/internal/api/common"
	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleGetAlerts lists the workspace's alerts, newest first. limit caps
// the page size (default 50).
func HandleGetAlerts(storer store.Storer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, err := common.ResolveWorkspace(r.Context(), storer)
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		alerts, err := storer.GetAlertsForWorkspace(r.Context(), workspaceID, limit)
		if err != nil {
			common.WriteJSONError(w, http.StatusInternalServerError, "Não foi possível listar os alertas", log)
			return
		}
		if alerts == nil {
			alerts = []domain.Alert{}
		}

		common.WriteJSON(w, http.StatusOK, alerts, log)
	}
}

// HandleMarkAlertRead marks one alert as read.
func HandleMarkAlertRead(storer store.Storer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alertID, err := uuid.Parse(chi.URLParam(r, "alertId"))
		if err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, "ID de alerta inválido", log)
			return
		}

		workspaceID, err := common.ResolveWorkspace(r.Context(), storer)
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		if err := storer.MarkAlertRead(r.Context(), alertID, workspaceID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				common.WriteJSONError(w, http.StatusNotFound, "Alerta não encontrado", log)
				return
			}
			common.WriteJSONError(w, http.StatusInternalServerError, "Não foi possível atualizar o alerta", log)
			return
		}

		common.WriteJSON(w, http.StatusOK, map[string]any{"id": alertID, "read": true}, log)
	}
}
