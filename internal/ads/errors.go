package ads

import (
	"fmt"

	"github.com/dotojr123/ads-agent-base/internal/domain"
)

// Graph API error codes with dedicated user-facing messages.
const (
	metaCodeExpiredToken = 190
	metaCodeInvalidParam = 100
	metaCodeRateLimit    = 17
)

// PlatformError is an upstream platform failure with the original error
// code preserved so the automation engine can surface it in rule outcomes.
type PlatformError struct {
	Platform domain.Platform
	Code     int
	Message  string
	Context  string // the operation that failed, e.g. "getCampaignInsights"
}

func (e *PlatformError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s API error (%s): %s (code %d)", e.Platform, e.Context, e.Message, e.Code)
	}
	return fmt.Sprintf("%s API error (%s): %s", e.Platform, e.Context, e.Message)
}

// newMetaError wraps a Graph API error object, translating the common codes
// into actionable messages, mirroring the platform's documented failures.
func newMetaError(code int, message, opContext string) *PlatformError {
	switch code {
	case metaCodeExpiredToken:
		message = "Token do Facebook expirado ou inválido. Por favor, renove o token nas configurações."
	case metaCodeInvalidParam:
		message = fmt.Sprintf("Parâmetro inválido na requisição do Facebook: %s", message)
	case metaCodeRateLimit:
		message = "Limite de requisições do Facebook atingido. Aguarde alguns minutos."
	}

	return &PlatformError{
		Platform: domain.PlatformMeta,
		Code:     code,
		Message:  message,
		Context:  opContext,
	}
}
