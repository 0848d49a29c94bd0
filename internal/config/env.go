package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required
	GeminiAPIKey       string
	GoogleClientID     string
	GoogleClientSecret string

	// Optional with defaults
	DBPath           string
	HTTPPort         int
	AppURL           string
	ResendAPIKey     string
	EmailFrom        string
	OAuthRedirectURL string
	HistoryLimit     int
}

func LoadFromEnv() *Config {
	cfg := &Config{
		// Required
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),

		// Optional with defaults
		DBPath:           getEnvOrDefault("GATHER_DB_PATH", "./gather.db"),
		HTTPPort:         getEnvAsIntOrDefault("GATHER_HTTP_PORT", 8080),
		AppURL:           getEnvOrDefault("GATHER_APP_URL", "http://localhost:8080"),
		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		EmailFrom:        getEnvOrDefault("GATHER_EMAIL_FROM", "Gather <invites@gather.local>"),
		OAuthRedirectURL: getEnvOrDefault("GATHER_OAUTH_REDIRECT_URL", "http://localhost:8080/oauth/callback"),
		HistoryLimit:     getEnvAsIntOrDefault("GATHER_CHAT_HISTORY_LIMIT", 20),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
