// Package config centralizes environment configuration. A .env file is
// honored when present; every knob has a working default so a bare
// checkout runs against a local SQLite file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// DatabaseURL switches storage to PostgreSQL when set; otherwise
	// the embedded SQLite database at SQLitePath is used.
	DatabaseURL string
	SQLitePath  string

	Port string

	// Ingestion source.
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
	Term           string
	Dept           string
	RefreshCron    string

	// Ratings provider.
	RMPBaseURL  string
	RMPSchoolID string
	RMPTimeout  time.Duration
	RatingsTTL  time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	godotenv.Load()

	return Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getenv("SQLITE_PATH", "classes.db"),

		Port: getenv("PORT", "8080"),

		BaseURL:        getenv("SCHEDULE_BASE_URL", "https://foothill.edu/schedule/"),
		UserAgent:      getenv("ETL_USER_AGENT", "ClassesETL/1.0"),
		RequestTimeout: getduration("ETL_TIMEOUT", 30*time.Second),
		Term:           getenv("SCHEDULE_TERM", "2026W"),
		Dept:           getenv("SCHEDULE_DEPT", "CS"),
		RefreshCron:    os.Getenv("REFRESH_CRON"),

		RMPBaseURL:  getenv("RMP_BASE_URL", "https://www.ratemyprofessors.com/graphql"),
		RMPSchoolID: os.Getenv("RMP_SCHOOL_ID"),
		RMPTimeout:  getduration("RMP_TIMEOUT", 8*time.Second),
		RatingsTTL:  getduration("RATINGS_CACHE_TTL", 15*time.Minute),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getduration accepts either a Go duration ("30s") or a bare number of
// seconds, matching how the timeout envs have historically been set.
func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
