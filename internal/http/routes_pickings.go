package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/domain/dto"
	"github.com/guttosm/picking-service/internal/middleware"
	"github.com/guttosm/picking-service/internal/service"
)

// PickingRoutes handles scanning session and audit log route registration.
type PickingRoutes struct {
	handler *PickingHandler
	logs    *LogsHandler
}

// NewPickingRoutes creates a new PickingRoutes instance. Log routes are
// registered only with a logging service.
func NewPickingRoutes(handler *PickingHandler, loggingService service.LoggingService) *PickingRoutes {
	r := &PickingRoutes{handler: handler}
	if loggingService != nil {
		r.logs = NewLogsHandler(loggingService)
	}
	return r
}

// RegisterPublicRoutes registers the routes when authentication is disabled.
func (r *PickingRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	r.register(rg, nil)
}

// RegisterProtectedRoutes registers the routes behind operator tokens.
// Cancelling a transfer and reading the logs need the supervisor role.
func (r *PickingRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, _ *RouterConfig) {
	r.register(protected, middleware.RequireRole(dto.RoleSupervisor))
}

func (r *PickingRoutes) register(rg *gin.RouterGroup, supervisor gin.HandlerFunc) {
	restricted := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if supervisor == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{supervisor, h}
	}

	rg.GET("/pickings", r.handler.ListPickings)

	p := rg.Group("/pickings/:id")
	{
		p.GET("", r.handler.View)
		p.POST("/session", r.handler.Open)
		p.POST("/scan", r.handler.Scan)
		p.POST("/lines", r.handler.AddLine)
		p.PATCH("/lines/:vid", r.handler.SetQuantity)
		p.DELETE("/lines/:vid", r.handler.RemoveLine)
		p.POST("/select/:vid", r.handler.SelectLine)
		p.POST("/save", r.handler.Save)
		p.POST("/destination", r.handler.ChangeDestination)
		p.POST("/source", r.handler.ChangeSource)
		p.POST("/put-in-pack", r.handler.PutInPack)
		p.POST("/validate", r.handler.Validate)
		p.POST("/cancel", restricted(r.handler.Cancel)...)
		p.POST("/exit", r.handler.Exit)
		p.POST("/page/next", r.handler.NextPage)
		p.POST("/page/previous", r.handler.PreviousPage)
	}

	if r.logs != nil {
		rg.GET("/logs", restricted(r.logs.Query)...)
	}
}
