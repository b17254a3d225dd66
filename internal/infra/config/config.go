package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Token store backends.
const (
	TokenStoreFirestore = "firestore"
	TokenStorePostgres  = "postgres"
)

// Push gateways.
const (
	GatewayFCM      = "fcm"
	GatewayTelegram = "telegram"
	GatewayLog      = "log"
)

const defaultRecipientTokenPath = "admin/fcmToken"

// AppConfig holds all configuration for the application
type AppConfig struct {
	Port        string
	LogLevel    string
	Environment string

	FirebaseProjectID   string
	FirebaseCredentials string // Path to a service account key; empty means application default credentials

	TokenStore         string
	RecipientTokenPath string
	DatabaseURL        string

	PushGateway   string
	TelegramToken string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{
		Port:                getEnvOrDefault("PORT", "8080"),
		LogLevel:            strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Environment:         strings.ToLower(getEnvOrDefault("ENVIRONMENT", "development")),
		FirebaseProjectID:   getEnvOrDefault("FIREBASE_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		FirebaseCredentials: os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY"),
		TokenStore:          strings.ToLower(getEnvOrDefault("TOKEN_STORE", TokenStoreFirestore)),
		RecipientTokenPath:  strings.Trim(getEnvOrDefault("RECIPIENT_TOKEN_PATH", defaultRecipientTokenPath), "/"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		PushGateway:         strings.ToLower(getEnvOrDefault("PUSH_GATEWAY", GatewayFCM)),
		TelegramToken:       os.Getenv("TELEGRAM_TOKEN"),
	}

	switch cfg.TokenStore {
	case TokenStoreFirestore:
	case TokenStorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set (required by TOKEN_STORE=%s)", TokenStorePostgres)
		}
	default:
		return nil, fmt.Errorf("invalid TOKEN_STORE %q: expected %s or %s", cfg.TokenStore, TokenStoreFirestore, TokenStorePostgres)
	}

	switch cfg.PushGateway {
	case GatewayFCM, GatewayLog:
	case GatewayTelegram:
		if cfg.TelegramToken == "" {
			return nil, fmt.Errorf("TELEGRAM_TOKEN is not set (required by PUSH_GATEWAY=%s)", GatewayTelegram)
		}
	default:
		return nil, fmt.Errorf("invalid PUSH_GATEWAY %q: expected %s, %s or %s", cfg.PushGateway, GatewayFCM, GatewayTelegram, GatewayLog)
	}

	if parts := strings.Split(cfg.RecipientTokenPath, "/"); len(parts)%2 != 0 {
		return nil, fmt.Errorf("invalid RECIPIENT_TOKEN_PATH %q: must point at a document", cfg.RecipientTokenPath)
	}

	return cfg, nil
}

// UsesFirebase reports whether any configured backend needs the Firebase app.
func (c *AppConfig) UsesFirebase() bool {
	return c.TokenStore == TokenStoreFirestore || c.PushGateway == GatewayFCM
}

// RecipientTokenKey is the last segment of RecipientTokenPath ("fcmToken" by default).
func (c *AppConfig) RecipientTokenKey() string {
	return c.RecipientTokenPath[strings.LastIndex(c.RecipientTokenPath, "/")+1:]
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
