package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Gemini  GeminiConfig
	Session SessionConfig
	Sync    SyncConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	Locale             string
	CorsAllowedOrigins string
	MaxUploadBytes     int64
}

type GeminiConfig struct {
	BaseURL     string
	APIVersion  string
	HTTPTimeout time.Duration
	// APIKey is only used by background jobs; request handlers forward the caller's key.
	APIKey string
}

type SessionConfig struct {
	RedisURL string
	TTL      time.Duration
}

type SyncConfig struct {
	Dir     string
	StoreID string
}

// Enabled reports whether the directory sync job has everything it needs.
func (s SyncConfig) Enabled(apiKey string) bool {
	return s.Dir != "" && s.StoreID != "" && apiKey != ""
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8080"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "filesearch.log"),
			Locale:             getEnv("APP_LOCALE", "en"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			MaxUploadBytes:     getEnvAsInt64("MAX_UPLOAD_BYTES", 100*1024*1024),
		},
		Gemini: GeminiConfig{
			BaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			APIVersion:  getEnv("GEMINI_API_VERSION", "v1beta"),
			HTTPTimeout: time.Duration(getEnvAsInt("HTTP_TIMEOUT_SECONDS", 120)) * time.Second,
			APIKey:      getEnv("GEMINI_API_KEY", ""),
		},
		Session: SessionConfig{
			RedisURL: getEnv("REDIS_URL", ""),
			TTL:      time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 7*24*60)) * time.Minute,
		},
		Sync: SyncConfig{
			Dir:     getEnv("SYNC_DIR", ""),
			StoreID: getEnv("SYNC_STORE_ID", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseInt(strValue, 10, 64); err == nil {
		return value
	}
	return fallback
}
