package maps

import (
	apphttp "addressbridge_backend/internal/http"
	"addressbridge_backend/platform/cache"
	"addressbridge_backend/platform/config"
	"addressbridge_backend/platform/logger"
)

// Module wires the autocomplete and geocode HTTP routes.
type Module struct {
	handler *Handler
	service *Service
}

func NewModule(cfg config.MapsConfig, responseCache *cache.Cache, log *logger.Logger) *Module {
	client := NewClient(log)
	svc := NewService(client, cfg, responseCache, log)
	h := NewHandler(svc)
	return &Module{handler: h, service: svc}
}

func (m *Module) Name() string {
	return "maps"
}

// Service exposes the geocoder for the conversion pipeline's enrichment step.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	limited := ctx.V1.Group("")
	limited.Use(ctx.ProviderRateLimiter.RateLimit())
	limited.POST("/autocomplete", m.handler.Suggest)
	limited.POST("/geocode", m.handler.Geocode)
}

var _ apphttp.Module = (*Module)(nil)
