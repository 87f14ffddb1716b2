package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string

	// Brevo API access
	BrevoAPIKey      string
	BrevoBaseURL     string
	BrevoMinInterval time.Duration // minimum delay between outbound API calls

	// Inbound webhook verification
	WebhookSecret           string
	WebhookRequireSignature bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "brevo-connector"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "brevo-connector"),

		BrevoAPIKey:      getEnv("BREVO_API_KEY", ""),
		BrevoBaseURL:     getEnv("BREVO_BASE_URL", "https://api.brevo.com/v3"),
		BrevoMinInterval: time.Duration(getEnvInt("BREVO_MIN_REQUEST_INTERVAL_MS", 200)) * time.Millisecond,

		WebhookSecret:           getEnv("WEBHOOK_SECRET", ""),
		WebhookRequireSignature: getEnv("WEBHOOK_REQUIRE_SIGNATURE", "false") == "true",
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
