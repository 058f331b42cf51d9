package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"addressbridge_backend/internal/blog"
	apphttp "addressbridge_backend/internal/http"
	"addressbridge_backend/platform/config"
	"addressbridge_backend/platform/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Module serves the rendered pages and static assets. Everything ships
// inside the binary via embed, so deployment is a single file.
type Module struct {
	handler *Handler
}

func NewModule(cfg config.MapsConfig, posts *blog.Service, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(posts, cfg.GetMapsPublicKey(), log)}
}

func (m *Module) Name() string {
	return "web"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	ctx.Engine.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	ctx.Engine.StaticFS("/static", http.FS(static))

	ctx.Engine.GET("/", m.handler.Converter)
	ctx.Engine.GET("/about", m.handler.About)
	ctx.Engine.GET("/blog", m.handler.BlogIndex)
	ctx.Engine.GET("/blog/new", m.handler.BlogNew)
	ctx.Engine.GET("/blog/:slug", m.handler.BlogPost)
}

var _ apphttp.Module = (*Module)(nil)
