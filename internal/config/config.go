package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBPath          string
	CORSOrigins     []string
	MigrationsDir   string
	Location        *time.Location
	StreakDays      int
	RefreshInterval time.Duration
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "./data/timeo.db"),
		CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", "./migrations"),
		Location:        getEnvLocation("TIMEZONE"),
		StreakDays:      getEnvInt("STREAK_DAYS", 90),
		RefreshInterval: time.Duration(getEnvInt("REFRESH_INTERVAL_SECONDS", 0)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}

// getEnvLocation resolves an IANA zone name. Empty or "Local" means the
// process zone; unknown names fall back to it as well.
func getEnvLocation(key string) *time.Location {
	name := strings.TrimSpace(os.Getenv(key))
	if name == "" || name == "Local" {
		return time.Local
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("config: unknown %s %q, using local zone: %v", key, name, err)
		return time.Local
	}
	return loc
}
