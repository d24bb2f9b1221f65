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
	"github.com/pawsitivecheck/backend/services/catalog-service/database"
	"github.com/pawsitivecheck/backend/services/catalog-service/services"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Env  string
	Port string

	DB database.Settings

	RedisURL      string
	CacheTTL      time.Duration
	BlacklistTTL  time.Duration
	EventTopicARN string
	UploadBucket  string

	OpenPetFoodFactsURL string
	SearchCacheTTL      time.Duration
	ImageRecognizerURL  string
	ImageRecognizerKey  string

	ScansPerMinute int
	Safety         services.SafetyConfig
}

// LoadConfig reads configuration from environment variables with optional
// Secrets Manager override.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8082"),
		DB: database.Settings{
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Name:     os.Getenv("POSTGRES_DB"),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		RedisURL:            os.Getenv("REDIS_URL"),
		CacheTTL:            getDuration("CATALOG_CACHE_TTL", 10*time.Minute),
		BlacklistTTL:        getDuration("BLACKLIST_CACHE_TTL", 5*time.Minute),
		EventTopicARN:       os.Getenv("CATALOG_SNS_TOPIC_ARN"),
		UploadBucket:        os.Getenv("UPLOAD_BUCKET"),
		OpenPetFoodFactsURL: getEnv("OPFF_BASE_URL", "https://world.openpetfoodfacts.org"),
		SearchCacheTTL:      getDuration("SEARCH_CACHE_TTL", time.Hour),
		ImageRecognizerURL:  os.Getenv("IMAGE_RECOGNIZER_URL"),
		ImageRecognizerKey:  os.Getenv("IMAGE_RECOGNIZER_KEY"),
		ScansPerMinute:      getInt("SCANS_PER_MINUTE", 30),
		Safety:              loadSafetyConfig(),
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := awspkg.LoadAWSConfig(context.Background()); err == nil {
			sm := awspkg.NewSecretsClient(awsCfg)
			if m, err := sm.GetSecretMap(context.Background(), "catalog/DB_CREDENTIALS"); err == nil {
				if v := m["POSTGRES_USER"]; v != "" {
					cfg.DB.User = v
				}
				if v := m["POSTGRES_PASSWORD"]; v != "" {
					cfg.DB.Password = v
				}
				if v := m["POSTGRES_DB"]; v != "" {
					cfg.DB.Name = v
				}
				if v := m["POSTGRES_HOST"]; v != "" {
					cfg.DB.Host = v
				}
				if v := m["POSTGRES_PORT"]; v != "" {
					cfg.DB.Port = v
				}
			}
			if v, err := sm.GetSecret(context.Background(), "catalog/IMAGE_RECOGNIZER_KEY"); err == nil && v != "" {
				cfg.ImageRecognizerKey = v
			}
		}
	}

	if cfg.DB.User == "" || cfg.DB.Password == "" || cfg.DB.Name == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.ScansPerMinute <= 0 {
		return nil, fmt.Errorf("SCANS_PER_MINUTE must be positive")
	}
	if cfg.Safety.CursedThreshold >= cfg.Safety.BlessedThreshold {
		return nil, fmt.Errorf("cursed threshold %d must be below blessed threshold %d",
			cfg.Safety.CursedThreshold, cfg.Safety.BlessedThreshold)
	}
	return cfg, nil
}

// loadSafetyConfig overlays env overrides on the default scoring tunables.
func loadSafetyConfig() services.SafetyConfig {
	sc := services.DefaultSafetyConfig()
	sc.DefaultBaseline = getInt("SAFETY_DEFAULT_BASELINE", sc.DefaultBaseline)
	sc.UrgentRecallPenalty = getFloat("SAFETY_URGENT_RECALL_PENALTY", sc.UrgentRecallPenalty)
	sc.ModerateRecallPenalty = getFloat("SAFETY_MODERATE_RECALL_PENALTY", sc.ModerateRecallPenalty)
	sc.LowRecallPenalty = getFloat("SAFETY_LOW_RECALL_PENALTY", sc.LowRecallPenalty)
	sc.PerRecallPenalty = getFloat("SAFETY_PER_RECALL_PENALTY", sc.PerRecallPenalty)
	sc.ReviewConcernWeight = getFloat("SAFETY_REVIEW_CONCERN_WEIGHT", sc.ReviewConcernWeight)
	sc.LowRatingThreshold = getInt("SAFETY_LOW_RATING_THRESHOLD", sc.LowRatingThreshold)
	sc.ConcernKeywords = getList("SAFETY_CONCERN_KEYWORDS", sc.ConcernKeywords)
	sc.BlacklistMatchPenalty = getFloat("SAFETY_BLACKLIST_PENALTY", sc.BlacklistMatchPenalty)
	sc.BlessedThreshold = getInt("SAFETY_BLESSED_THRESHOLD", sc.BlessedThreshold)
	sc.CursedThreshold = getInt("SAFETY_CURSED_THRESHOLD", sc.CursedThreshold)
	sc.TransparencyMinLength = getInt("SAFETY_TRANSPARENCY_MIN_LENGTH", sc.TransparencyMinLength)
	sc.GenericIngredientTerms = getList("SAFETY_GENERIC_TERMS", sc.GenericIngredientTerms)
	sc.StaleAfter = getDuration("ANALYSIS_STALE_AFTER", sc.StaleAfter)
	return sc
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

func getFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
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

// getList parses a comma-separated value, lower-casing and dropping blanks.
func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
