package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	Environment   string
	MongoURI      string
	MongoDatabase string
	RedisURL      string
	JWTSecret     string

	SpreadsheetID   string
	CredentialsFile string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioPublicURL string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string

	GeminiAPIKey string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// requiredEnvs are warned about when missing; only the credentials file is
// treated as fatal, and that happens where the Sheets client is built.
var requiredEnvs = []string{
	"MONGO_URI",
	"JWT_SECRET",
	"SPREADSHEET_ID",
	"MINIO_ENDPOINT",
	"MINIO_ACCESS_KEY",
	"MINIO_SECRET_KEY",
	"SMTP_HOST",
	"SMTP_USER",
	"SMTP_PASS",
	"GEMINI_API_KEY",
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	for _, name := range requiredEnvs {
		if os.Getenv(name) == "" {
			log.Printf("Warning: environment variable %s is not set", name)
		}
	}

	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		Environment:      getEnv("APP_ENV", "development"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDatabase:    getEnv("MONGO_DATABASE", "repair_service"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		SpreadsheetID:    os.Getenv("SPREADSHEET_ID"),
		CredentialsFile:  getEnv("GOOGLE_CREDENTIALS_FILE", "service-account.json"),
		MinioEndpoint:    os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:   os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:   os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:      getEnv("MINIO_BUCKET", "service-requests"),
		MinioPublicURL:   os.Getenv("MINIO_PUBLIC_URL"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
	}

	return cfg, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
