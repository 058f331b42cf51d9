// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// GeminiConfig provides settings for the text-generation provider.
// The credential is validated per request, never at startup.
type GeminiConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetGeminiTimeout() time.Duration
	GetGeminiMaxRetries() int
}

// MapsConfig provides settings for the Google Maps web APIs.
type MapsConfig interface {
	GetMapsAPIKey() string
	GetMapsPublicKey() string
}

// BlogConfig provides settings for the markdown post store.
type BlogConfig interface {
	GetPostsDir() string
}

// CacheConfig provides settings for the optional Redis response cache.
type CacheConfig interface {
	GetRedisAddr() string
	GetCacheTTL() time.Duration
	IsCacheEnabled() bool
}

// Config holds all application configuration loaded from the environment.
type Config struct {
	Env            string
	HTTPAddr       string
	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool
	RateLimitRPS   float64
	RateLimitBurst int

	GeminiAPIKey     string
	GeminiModel      string
	GeminiTimeout    time.Duration
	GeminiMaxRetries int

	MapsAPIKey    string
	MapsPublicKey string

	PostsDir string

	RedisAddr string
	CacheTTL  time.Duration
}

// Load reads configuration from the environment, with .env support for
// local development. Provider credentials are intentionally not required
// here: their absence must surface as a descriptive per-request 500, not
// a crash at startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RateLimitRPS:   mustFloat(getEnv("RATE_LIMIT_RPS", "5")),
		RateLimitBurst: mustInt(getEnv("RATE_LIMIT_BURST", "10")),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTimeout:    mustDuration(getEnv("GEMINI_TIMEOUT", "60s")),
		GeminiMaxRetries: mustInt(getEnv("GEMINI_MAX_RETRIES", "2")),

		MapsAPIKey:    getEnv("GOOGLE_MAPS_API_KEY", ""),
		MapsPublicKey: getEnv("MAPS_PUBLIC_KEY", ""),

		PostsDir: getEnv("POSTS_DIR", "posts"),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		CacheTTL:  mustDuration(getEnv("CACHE_TTL", "10m")),
	}

	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return cfg, nil
}

// =============================================================================
// Interface implementations
// =============================================================================

func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

func (c *Config) GetGeminiAPIKey() string         { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string          { return c.GeminiModel }
func (c *Config) GetGeminiTimeout() time.Duration { return c.GeminiTimeout }
func (c *Config) GetGeminiMaxRetries() int        { return c.GeminiMaxRetries }

func (c *Config) GetMapsAPIKey() string    { return c.MapsAPIKey }
func (c *Config) GetMapsPublicKey() string { return c.MapsPublicKey }

func (c *Config) GetPostsDir() string { return c.PostsDir }

func (c *Config) GetRedisAddr() string       { return c.RedisAddr }
func (c *Config) GetCacheTTL() time.Duration { return c.CacheTTL }
func (c *Config) IsCacheEnabled() bool       { return c.RedisAddr != "" }

// =============================================================================
// Helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func mustFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
