package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	Port         string
	LogLevel     string
	LogPath      string
	LogMaxSizeMB int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress  bool
	// StoreTimeout bounds every database and object-storage call.
	StoreTimeout time.Duration
}

func Load() AppConfig {
	cfg := AppConfig{
		Port:         getenv("PORT", "8080"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogPath:      os.Getenv("LOG_PATH"),
		LogMaxSizeMB: atoi(os.Getenv("LOG_MAX_SIZE_MB")),
		LogMaxBackups: atoi(os.Getenv("LOG_MAX_BACKUPS")),
		LogMaxAgeDays: atoi(os.Getenv("LOG_MAX_AGE_DAYS")),
		LogCompress:  os.Getenv("LOG_COMPRESS") == "true",
		StoreTimeout: 10 * time.Second,
	}
	if v := os.Getenv("STORE_TIMEOUT_SECONDS"); v != "" {
		if n := atoi(v); n > 0 {
			cfg.StoreTimeout = time.Duration(n) * time.Second
		}
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
