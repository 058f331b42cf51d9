package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"addressbridge_backend/internal/blog"
	"addressbridge_backend/internal/convert"
	apphttp "addressbridge_backend/internal/http"
	"addressbridge_backend/internal/http/router"
	"addressbridge_backend/internal/maps"
	"addressbridge_backend/internal/web"
	"addressbridge_backend/platform/ai/gemini"
	"addressbridge_backend/platform/cache"
	"addressbridge_backend/platform/config"
	"addressbridge_backend/platform/logger"
	"addressbridge_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// The response cache is optional; the service degrades to calling
	// providers directly when Redis is absent.
	var responseCache *cache.Cache
	if cfg.IsCacheEnabled() {
		responseCache, err = cache.New(ctx, cfg.GetRedisAddr(), cfg.GetCacheTTL(), log)
		if err != nil {
			log.Warn("redis unavailable, continuing without response cache", "error", err)
			responseCache = nil
		} else {
			defer responseCache.Close()
			log.Info("response cache connected", "addr", cfg.GetRedisAddr())
		}
	} else {
		log.Info("REDIS_ADDR not configured; response caching disabled")
	}

	// The text-generation client validates its credential per request,
	// so a missing GEMINI_API_KEY never blocks startup.
	generator := gemini.New(gemini.Config{
		APIKey:     cfg.GetGeminiAPIKey(),
		Model:      cfg.GetGeminiModel(),
		Timeout:    cfg.GetGeminiTimeout(),
		MaxRetries: cfg.GetGeminiMaxRetries(),
	})

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Shared validator instance for dependency injection
	val := validator.New()

	mapsModule := maps.NewModule(cfg, responseCache, log)
	convertModule := convert.NewModule(generator, mapsModule.Service(), log)
	blogModule := blog.NewModule(cfg, val, log)
	webModule := web.NewModule(cfg, blogModule.Service(), log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	engine := router.New(cfg, cfg.Env, log, []apphttp.Module{
		mapsModule,
		convertModule,
		blogModule,
		webModule,
	})

	srv := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
