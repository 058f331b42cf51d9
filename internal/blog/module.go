package blog

import (
	apphttp "addressbridge_backend/internal/http"
	"addressbridge_backend/platform/config"
	"addressbridge_backend/platform/logger"
	"addressbridge_backend/platform/validator"
)

// Module wires the blog HTTP routes.
type Module struct {
	handler *Handler
	service *Service
}

func NewModule(cfg config.BlogConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(cfg.GetPostsDir())
	svc := NewService(repo, val, log)
	h := NewHandler(svc)
	return &Module{handler: h, service: svc}
}

func (m *Module) Name() string {
	return "blog"
}

// Service exposes post retrieval for the web module's rendered pages.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/blog")
	group.GET("/post", m.handler.GetPost)
	group.GET("/posts", m.handler.ListPosts)
	group.POST("/posts", m.handler.CreatePost)
	group.DELETE("/posts/:slug", m.handler.DeletePost)
}

var _ apphttp.Module = (*Module)(nil)
