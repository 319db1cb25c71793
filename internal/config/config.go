package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config junta todo lo que el binario lee de env.
type Config struct {
	Port  string
	DBDSN string // vacío => repos in-memory

	LogLevel  string
	LogFormat string
	AppName   string

	// Upstream de alertas premium; vacío => modo stub (solo log).
	AlerterBaseURL string
	AlerterAPIKey  string
	AlerterTimeout time.Duration
}

// Load lee env (con .env opcional vía godotenv) y arma el Config.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:  getEnv("PORT", "8080"),
		DBDSN: getEnv("DB_DSN", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		AppName:   getEnv("APP_NAME", "whoofsy-server"),

		AlerterBaseURL: getEnv("ALERTER_BASE_URL", ""),
		AlerterAPIKey:  getEnv("ALERTER_API_KEY", ""),
		AlerterTimeout: 5 * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
