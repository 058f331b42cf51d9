package convert

import (
	apphttp "addressbridge_backend/internal/http"
	"addressbridge_backend/platform/logger"
)

// Module wires the address conversion HTTP routes.
type Module struct {
	handler *Handler
}

func NewModule(generator Generator, geocoder Geocoder, log *logger.Logger) *Module {
	svc := NewService(generator, geocoder, log)
	h := NewHandler(svc)
	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "convert"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	limited := ctx.V1.Group("")
	limited.Use(ctx.ProviderRateLimiter.RateLimit())
	limited.POST("/convert", m.handler.Convert)
	limited.POST("/convert-address", m.handler.ConvertAddress)

	// Label rendering is local, no provider call to throttle.
	ctx.V1.GET("/convert/label", m.handler.Label)
}

var _ apphttp.Module = (*Module)(nil)
