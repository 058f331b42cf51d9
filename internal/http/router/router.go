// Package router assembles the gin engine from the registered domain modules.
package router

import (
	"net/http"
	"strings"

	apphttp "addressbridge_backend/internal/http"
	"addressbridge_backend/platform/config"
	"addressbridge_backend/platform/httpkit"
	"addressbridge_backend/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the HTTP engine, wires global middleware, and lets every
// module register its routes.
func New(cfg config.HTTPConfig, env string, log *logger.Logger, modules []apphttp.Module) *gin.Engine {
	if !strings.EqualFold(env, "development") {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(cfg))

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := httpkit.NewIPRateLimiter(rate.Limit(cfg.GetRateLimitRPS()), cfg.GetRateLimitBurst(), log)

	ctx := &apphttp.RouterContext{
		Engine:              engine,
		V1:                  engine.Group("/api/v1"),
		Config:              cfg,
		ProviderRateLimiter: limiter,
	}

	for _, module := range modules {
		module.RegisterRoutes(ctx)
		log.Info("registered module routes", "module", module.Name())
	}

	return engine
}

func corsMiddleware(cfg config.HTTPConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", httpkit.RequestIDHeader},
		AllowCredentials: cfg.GetCORSAllowCreds(),
	}
	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	}
	return cors.New(corsCfg)
}
