package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      int
	LogLevel  string
	LogFormat string
	LogFile   string

	// PublicURL is the externally reachable base URL of the relay,
	// used to build room invite links.
	PublicURL string

	// StoreDriver selects the progress store backend: memory, file or postgres.
	StoreDriver string
	StorePath   string
	DatabaseURL string

	// RelayURL and RoomCode configure the multiplayer client side.
	RelayURL    string
	RoomCode    string
	DisplayName string
}

func Load() *Config {
	// A missing .env file is fine; env vars always win.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnvInt("PORT", 8080),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogFile:     getEnv("LOG_FILE", ""),
		PublicURL:   getEnv("PUBLIC_URL", "http://localhost:8080"),
		StoreDriver: getEnv("STORE_DRIVER", "file"),
		StorePath:   getEnv("STORE_PATH", "progress.json"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/reactiondriver?sslmode=disable"),
		RelayURL:    getEnv("RELAY_URL", ""),
		RoomCode:    getEnv("ROOM_CODE", ""),
		DisplayName: getEnv("DISPLAY_NAME", "Guest"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
