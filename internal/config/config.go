package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	HTTPAddr       string
	RedisURL       string
	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool
	AsynqQueue     string

	// Assist relay (optional; intake falls back to deterministic prompts
	// when unset).
	AssistAPIKey  string
	AssistBaseURL string
	AssistModel   string
	AssistTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		RedisURL:       getEnv("REDIS_URL", ""),
		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AsynqQueue:     getEnv("ASYNQ_QUEUE", "default"),
		AssistAPIKey:   getEnv("ASSIST_API_KEY", ""),
		AssistBaseURL:  getEnv("ASSIST_BASE_URL", "https://api.moonshot.ai/v1"),
		AssistModel:    getEnv("ASSIST_MODEL", "kimi-k2-turbo-preview"),
		AssistTimeout:  mustDuration(getEnv("ASSIST_TIMEOUT", "10s")),
	}

	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if cfg.AssistTimeout <= 0 {
		return nil, fmt.Errorf("ASSIST_TIMEOUT must be a positive duration")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

// AssistEnabled reports whether the external assist relay is configured.
func (c *Config) AssistEnabled() bool {
	return c.AssistAPIKey != ""
}

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
