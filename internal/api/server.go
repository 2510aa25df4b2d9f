package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/dotojr123/ads-agent-base/internal/ads"
	"github.com/dotojr123/ads-agent-base/internal/api/account"
	"github.com/dotojr123/ads-agent-base/internal/api/alert"
	"github.com/dotojr123/ads-agent-base/internal/api/audit"
	"github.com/dotojr123/ads-agent-base/internal/api/automation"
	"github.com/dotojr123/ads-agent-base/internal/api/common"
	"github.com/dotojr123/ads-agent-base/internal/api/health"
	"github.com/dotojr123/ads-agent-base/internal/api/rule"
	"github.com/dotojr123/ads-agent-base/internal/api/workspace"
	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Server struct {
	Router     *chi.Mux
	store      store.Storer
	runner     automation.Runner
	validators map[domain.Platform]ads.CredentialValidator
	logger     *zap.Logger
}

func NewServer(s store.Storer, runner automation.Runner, validators map[domain.Platform]ads.CredentialValidator, log *zap.Logger) *Server {
	server := &Server{
		Router:     chi.NewRouter(),
		store:      s,
		runner:     runner,
		validators: validators,
		logger:     log,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) setupMiddleware() {
	allowedOrigins := strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")
	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Cron-Secret"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.Router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.HandleHealth(s.logger))

		// scheduler entrypoint, authenticated by shared secret
		r.Get("/automations/run", automation.HandleCronRun(s.runner, s.logger))
		r.Post("/automations/run", automation.HandleCronRun(s.runner, s.logger))

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/workspaces", workspace.HandleGetWorkspaces(s.store, s.logger))
			r.Post("/workspaces", workspace.HandleCreateWorkspace(s.store, s.logger))

			r.Get("/accounts", account.HandleGetAccounts(s.store, s.logger))
			r.Post("/accounts", account.HandleConnectAccount(s.store, s.validators, s.logger))
			r.Delete("/accounts/{accountId}", account.HandleDeleteAccount(s.store, s.logger))

			r.Get("/automations", rule.HandleGetRules(s.store, s.logger))
			r.Post("/automations", rule.HandleCreateRule(s.store, s.logger))
			r.Post("/automations/test-run", automation.HandleTestRun(s.store, s.runner, s.logger))
			r.Put("/automations/{ruleId}", rule.HandleUpdateRule(s.store, s.logger))
			r.Put("/automations/{ruleId}/toggle", rule.HandleToggleRule(s.store, s.logger))
			r.Delete("/automations/{ruleId}", rule.HandleDeleteRule(s.store, s.logger))

			r.Get("/alerts", alert.HandleGetAlerts(s.store, s.logger))
			r.Put("/alerts/{alertId}/read", alert.HandleMarkAlertRead(s.store, s.logger))

			r.Get("/audit-logs", audit.HandleGetAuditLogs(s.store, s.logger))
		})
	})
}

// authMiddleware validates the JWT and stores the user ID in the context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			common.WriteJSONError(w, http.StatusUnauthorized, "Cabeçalho de autenticação ausente", s.logger)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		jwtKey := []byte(os.Getenv("JWT_SECRET_KEY"))

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de assinatura inválido")
			}
			return jwtKey, nil
		})

		if err != nil || !token.Valid {
			common.WriteJSONError(w, http.StatusUnauthorized, "Token inválido", s.logger)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			common.WriteJSONError(w, http.StatusUnauthorized, "Claims inválidas", s.logger)
			return
		}

		userIDStr, ok := claims["user_id"].(string)
		if !ok {
			common.WriteJSONError(w, http.StatusUnauthorized, "Token sem user ID", s.logger)
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			common.WriteJSONError(w, http.StatusUnauthorized, "User ID inválido", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), common.UserContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
