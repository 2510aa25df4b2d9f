package health

import (
	"net/http"

	"github.com/dotojr123/ads-agent-base/internal/api/common"

	"go.uber.org/zap"
)

// HandleHealth checks if the API server is running and healthy.
func HandleHealth(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		common.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, log)
	}
}
