package audit

import (
	"net/http"
	"strconv"

	"github.com/dotojr123/ads-agent-base/internal/api/common"
	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/store"

	"go.uber.org/zap"
)

// HandleGetAuditLogs lists the workspace's audit trail, newest first.
func HandleGetAuditLogs(storer store.Storer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, err := common.ResolveWorkspace(r.Context(), storer)
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		logs, err := storer.GetAuditLogsForWorkspace(r.Context(), workspaceID, limit)
		if err != nil {
			common.WriteJSONError(w, http.StatusInternalServerError, "Não foi possível listar o histórico", log)
			return
		}
		if logs == nil {
			logs = []domain.AuditLog{}
		}

		common.WriteJSON(w, http.StatusOK, logs, log)
	}
}
