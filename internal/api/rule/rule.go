package rule

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dotojr123/ads-agent-base/internal/api/common"
	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ruleRequest struct {
	Name         string          `json:"name"`
	Platform     domain.Platform `json:"platform"`
	Condition    json.RawMessage `json:"condition"`
	Action       domain.ActionType `json:"action"`
	ActionConfig json.RawMessage `json:"action_config"`
	Active       *bool           `json:"active"`
}

// validateCondition rejects conditions the engine could never evaluate.
func validateCondition(raw json.RawMessage) (domain.RuleCondition, error) {
	var cond domain.RuleCondition
	if err := json.Unmarshal(raw, &cond); err != nil {
		return cond, errors.New("condição inválida: JSON malformado")
	}
	if cond.MetricKey() == "" {
		return cond, errors.New("condição inválida: metric é obrigatório")
	}
	switch cond.Operator {
	case domain.OperatorGT, domain.OperatorLT, domain.OperatorEQ:
	default:
		return cond, errors.New("condição inválida: operator deve ser GT, LT ou EQ")
	}
	return cond, nil
}

func validateAction(action domain.ActionType) error {
	switch action {
	case domain.ActionNotify, domain.ActionPauseCampaign, domain.ActionAdjustBudget:
		return nil
	case "":
		return nil // defaults to NOTIFY
	default:
		return errors.New("action deve ser NOTIFY, PAUSE_CAMPAIGN ou ADJUST_BUDGET")
	}
}

// HandleCreateRule creates a new automation rule in the caller's workspace.
func HandleCreateRule(storer store.Storer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, err := common.ResolveWorkspace(r.Context(), storer)
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		var req ruleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido", log)
			return
		}

		if strings.TrimSpace(req.Name) == "" {
			common.WriteJSONError(w, http.StatusBadRequest, "name é obrigatório", log)
			return
		}
		req.Platform = domain.Platform(strings.ToUpper(string(req.Platform)))
		if !req.Platform.Valid() {
			common.WriteJSONError(w, http.StatusBadRequest, "Plataforma inválida: use META ou GOOGLE", log)
			return
		}
		if _, err := validateCondition(req.Condition); err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, err.Error(), log)
			return
		}
		if err := validateAction(req.Action); err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, err.Error(), log)
			return
		}
		if req.Action == "" {
			req.Action = domain.ActionNotify
		}

		active := true
		if req.Active != nil {
			active = *req.Active
		}

		rule, err := storer.CreateRule(r.Context(), store.CreateRuleParams{
			WorkspaceID:  workspaceID,
			Name:         req.Name,
			Platform:     req.Platform,
			Condition:    req.Condition,
			Action:       req.Action,
			ActionConfig: req.ActionConfig,
			Active:       active,
		})
		if err != nil {
			common.WriteJSONError(w, http.StatusInternalServerError, "Não foi possível criar a regra", log)
			return
		}

		common.WriteJSON(w, http.StatusCreated, rule, log)
	}
}

// HandleGetRules lists the workspace's automation rules.
func HandleGetRules(storer store.Storer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, err := common.ResolveWorkspace(r.Context(), storer)
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		rules, err := storer.GetRulesForWorkspace(r.Context(), workspaceID)
		if err != nil {
			common.WriteJSONError(w, http.StatusInternalServerError, "Não foi possível listar as regras", log)
			return
		}
		if rules == nil {
			rules = []domain.AutomationRule{}
		}

		common.WriteJSON(w, http.StatusOK, rules, log)
	}
}

// HandleUpdateRule updates an existing rule after an ownership check.
func HandleUpdateRule(storer store.Storer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ruleID, err := uuid.Parse(chi.URLParam(r, "ruleId"))
		if err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, "ID de regra inválido", log)
			return
		}

		workspaceID, err := common.ResolveWorkspace(r.Context(), storer)
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		if err := storer.VerifyRuleOwnership(r.Context(), ruleID, workspaceID); err != nil {
			common.WriteJSONError(w, http.StatusNotFound, "Regra não encontrada", log)
			return
		}

		var req ruleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido", log)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			common.WriteJSONError(w, http.StatusBadRequest, "name é obrigatório", log)
			return
		}
		if _, err := validateCondition(req.Condition); err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, err.Error(), log)
			return
		}
		if err := validateAction(req.Action); err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, err.Error(), log)
			return
		}
		if req.Action == "" {
			req.Action = domain.ActionNotify
		}

		rule, err := storer.UpdateRule(r.Context(), store.UpdateRuleParams{
			RuleID:       ruleID,
			Name:         req.Name,
			Condition:    req.Condition,
			Action:       req.Action,
			ActionConfig: req.ActionConfig,
		})
		if err != nil {
			common.WriteJSONError(w, http.StatusInternalServerError, "Não foi possível atualizar a regra", log)
			return
		}

		common.WriteJSON(w, http.StatusOK, rule, log)
	}
}

// HandleToggleRule flips a rule's active flag.
func HandleToggleRule(storer store.Storer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ruleID, err := uuid.Parse(chi.URLParam(r, "ruleId"))
		if err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, "ID de regra inválido", log)
			return
		}

		workspaceID, err := common.ResolveWorkspace(r.Context(), storer)
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		if err := storer.VerifyRuleOwnership(r.Context(), ruleID, workspaceID); err != nil {
			common.WriteJSONError(w, http.StatusNotFound, "Regra não encontrada", log)
			return
		}

		var req struct {
			Active bool `json:"active"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, "Corpo da requisição inválido", log)
			return
		}

		if err := storer.ToggleRule(r.Context(), ruleID, req.Active); err != nil {
			common.WriteJSONError(w, http.StatusInternalServerError, "Não foi possível alterar a regra", log)
			return
		}

		common.WriteJSON(w, http.StatusOK, map[string]any{"id": ruleID, "active": req.Active}, log)
	}
}

// HandleDeleteRule removes a rule from the workspace.
func HandleDeleteRule(storer store.Storer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ruleID, err := uuid.Parse(chi.URLParam(r, "ruleId"))
		if err != nil {
			common.WriteJSONError(w, http.StatusBadRequest, "ID de regra inválido", log)
			return
		}

		workspaceID, err := common.ResolveWorkspace(r.Context(), storer)
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, err.Error(), log)
			return
		}

		if err := storer.VerifyRuleOwnership(r.Context(), ruleID, workspaceID); err != nil {
			common.WriteJSONError(w, http.StatusNotFound, "Regra não encontrada", log)
			return
		}

		if err := storer.DeleteRule(r.Context(), ruleID); err != nil {
			common.WriteJSONError(w, http.StatusInternalServerError, "Não foi possível remover a regra", log)
			return
		}

		common.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"}, log)
	}
}
