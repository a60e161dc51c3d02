package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Port the HTTP/websocket server listens on, e.g. ":8080".
	Port string

	// PublicBaseURL is used to build shareable meeting links.
	PublicBaseURL string

	// AllowedOrigin for websocket upgrades. "*" disables the check,
	// which is only acceptable in development.
	AllowedOrigin string

	LogLevel string

	// ChatHistoryLimit bounds the per-room chat replay buffer.
	ChatHistoryLimit int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return Config{
		Port:             ":" + getEnv("PORT", "8080"),
		PublicBaseURL:    getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		AllowedOrigin:    getEnv("ALLOWED_ORIGIN", "*"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		ChatHistoryLimit: getEnvInt("CHAT_HISTORY_LIMIT", 100),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer in environment, using default")
		return fallback
	}
	return n
}
