package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	awspkg "github.com/pawsitivecheck/backend/pkg/aws"
)

// Config holds all configuration for the API gateway.
type Config struct {
	Env               string
	Port              string
	JWTSecret         string
	CatalogServiceURL string
	PetServiceURL     string
	CORSOrigins       []string
	UpstreamTimeout   time.Duration
	RateLimitPerMin   int
	RateLimitBurst    int
}

// LoadConfig reads configuration from environment variables with optional
// Secrets Manager override for the JWT secret.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CatalogServiceURL: getEnv("CATALOG_SERVICE_URL", "http://catalog-service:8082"),
		PetServiceURL:     getEnv("PET_SERVICE_URL", "http://pet-service:8083"),
		CORSOrigins:       getList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		UpstreamTimeout:   getDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		RateLimitPerMin:   getInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:    getInt("RATE_LIMIT_BURST", 20),
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := awspkg.LoadAWSConfig(context.Background()); err == nil {
			sm := awspkg.NewSecretsClient(awsCfg)
			if v, err := sm.GetSecret(context.Background(), "gateway/JWT_SECRET"); err == nil && v != "" {
				cfg.JWTSecret = v
			}
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.RateLimitPerMin <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("rate limit must be positive")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
