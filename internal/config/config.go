package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	PublicBaseURL string

	// Session store
	SessionBackend      string // "memory" or "redis"
	RedisAddr           string
	RedisPassword       string
	RedisTLS            bool
	SessionIdleTimeout  time.Duration
	SessionGraceWindow  time.Duration
	SessionSweepEvery   time.Duration
	SessionRedisTTL     time.Duration
	MaxRecentMeals      int
	MaxActiveTopics     int

	// External nutrition database
	NutritionBaseURL string
	NutritionAPIKey  string
	NutritionTimeout time.Duration

	// Regional defaults
	DefaultRegion string

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),

		SessionBackend:     strings.ToLower(strings.TrimSpace(getEnv("SESSION_BACKEND", "memory"))),
		RedisAddr:          getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisTLS:           getEnvAsBool("REDIS_TLS", false),
		SessionIdleTimeout: getEnvAsDuration("SESSION_IDLE_TIMEOUT", 2*time.Hour),
		SessionGraceWindow: getEnvAsDuration("SESSION_GRACE_WINDOW", time.Hour),
		SessionSweepEvery:  getEnvAsDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		SessionRedisTTL:    getEnvAsDuration("SESSION_REDIS_TTL", 24*time.Hour),
		MaxRecentMeals:     getEnvAsInt("SESSION_MAX_RECENT_MEALS", 10),
		MaxActiveTopics:    getEnvAsInt("SESSION_MAX_ACTIVE_TOPICS", 5),

		NutritionBaseURL: getEnv("NUTRITION_DB_BASE_URL", ""),
		NutritionAPIKey:  getEnv("NUTRITION_DB_API_KEY", ""),
		NutritionTimeout: getEnvAsDuration("NUTRITION_DB_TIMEOUT", 5*time.Second),

		DefaultRegion: strings.ToLower(getEnv("DEFAULT_REGION", "north")),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
