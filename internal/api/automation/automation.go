package automation

import (
	"context"
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/dotojr123/ads-agent-base/internal/api/common"
	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Runner is the automation surface these handlers drive. Satisfied by
// *engine.Engine.
type Runner interface {
	RunOnce(ctx context.Context, workspaceID *uuid.UUID) ([]domain.RuleOutcome, error)
}

type runResponse struct {
	Success bool                 `json:"success"`
	Count   int                  `json:"count"`
	Results []domain.RuleOutcome `json:"results"`
}

// HandleCronRun runs the engine across all workspaces. Meant for external
// schedulers; authenticated by the X-Cron-Secret header instead of a JWT.
func HandleCronRun(runner Runner, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret := os.Getenv("CRON_SECRET")
		if secret == "" {
			log.Error("CRON_SECRET not configured, refusing cron run",
				zap.String("component", "api"),
			)
			common.WriteJSONError(w, http.StatusServiceUnavailable, "Endpoint de cron não configurado", log)
			return
		}

		provided := r.Header.Get("X-Cron-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			common.WriteJSONError(w, http.StatusUnauthorized, "Segredo de cron inválido", log)
			return
		}

		outcomes, err := runner.RunOnce(r.Context(), nil)
		if err != nil {
			log.Error("cron automation run failed",
				zap.Error(err),
				zap.String("component", "api"),
			)
			common.WriteJSONError(w, http.StatusInternalServerError, "Falha ao executar as automações", log)
			return
		}
		if outcomes == nil {
			outcomes = []domain.RuleOutcome{}
		}

		common.WriteJSON(w, http.StatusOK, runResponse{Success: true, Count: len(outcomes), Results: outcomes}, log)
	}
}

// HandleTestRun runs the engine for the caller's workspace only, so rules
// can be exercised from the dashboard without waiting for the scheduler.
func HandleTestRun(storer store.Storer, runner Runner, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, err := common.ResolveWorkspace(r.Context(), storer)
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		outcomes, err := runner.RunOnce(r.Context(), &workspaceID)
		if err != nil {
			log.Error("test automation run failed",
				zap.String("workspace_id", workspaceID.String()),
				zap.Error(err),
				zap.String("component", "api"),
			)
			common.WriteJSONError(w, http.StatusInternalServerError, "Falha ao executar as automações", log)
			return
		}
		if outcomes == nil {
			outcomes = []domain.RuleOutcome{}
		}

		common.WriteJSON(w, http.StatusOK, runResponse{Success: true, Count: len(outcomes), Results: outcomes}, log)
	}
}
