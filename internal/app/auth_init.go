package app

import (
	"github.com/guttosm/picking-service/config"
	"github.com/guttosm/picking-service/internal/service"
	"github.com/rs/zerolog/log"
)

const insecureSecretKey = "your-secret-key-change-in-production"

// InitializeAuth returns the operator token service, or nil when the API is
// public or guarded by API keys alone.
func InitializeAuth(cfg config.AuthConfig) service.OperatorTokenService {
	if !cfg.Enabled {
		log.Warn().Msg("Authentication disabled - API is public")
		return nil
	}
	if !cfg.OperatorTokens {
		if len(cfg.APIKeys) == 0 {
			log.Warn().Msg("Authentication enabled without API keys - API is public")
		}
		return nil
	}

	if cfg.JWTSecretKey == "" || cfg.JWTSecretKey == insecureSecretKey {
		log.Warn().Msg("JWT_SECRET_KEY is not set - operator tokens use an insecure default key")
	}
	if len(cfg.APIKeys) == 0 {
		log.Warn().Msg("No API keys configured - any caller may request an operator token")
	}

	return service.NewOperatorTokenService(service.NewTokenConfigFromAuthConfig(cfg))
}
