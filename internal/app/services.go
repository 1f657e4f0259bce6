package app

import (
	"github.com/guttosm/picking-service/config"
	"github.com/guttosm/picking-service/internal/repository"
	"github.com/guttosm/picking-service/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Pickings *service.PickingServiceImpl
	// Tokens is nil unless operator tokens are enabled.
	Tokens service.OperatorTokenService
}

// InitializeServices initializes the scanning sessions on top of store and
// the operator token service.
func InitializeServices(cfg config.Config, store repository.PickingRepositoryInterface) *ServiceComponents {
	return &ServiceComponents{
		Pickings: service.NewPickingService(store, service.NewPickingServiceConfig(cfg)),
		Tokens:   InitializeAuth(cfg.Auth),
	}
}
