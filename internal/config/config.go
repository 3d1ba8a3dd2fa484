package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"tasktrack/internal/constants"
)

type Config struct {
	Addr           string
	DatabaseURL    string
	UploadDir      string
	MaxUploadBytes int64
	JWTSecret      string
	TokenTTL       time.Duration
	GinMode        string
	LogLevel       string
	LogJSON        bool
}

// Load reads configuration from the environment, falling back to development
// defaults. A .env file is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:           getEnv("ADDR", ":8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "tasktrack.db"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", constants.MaxUploadBytes),
		JWTSecret:      getEnv("JWT_SECRET", "default-secret-key-change-me"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", time.Hour),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogJSON:        getEnv("LOG_JSON", "") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
