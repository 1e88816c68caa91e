package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vytor/openingroi/internal/logger"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	GamesCSVPath         string
	SeedSampleGames      bool
	SampleSeed           int
	ImportWorkerCount    int
	ImportQueueSize      int
	ArchiveLimit         int
	MaxConcurrentArchive int
	HTTPClientTimeout    time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:openingroi.db"),
		LogLevel:             strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		GamesCSVPath:         envOr("GAMES_CSV_PATH", ""),
		SeedSampleGames:      envBoolOr("SEED_SAMPLE_GAMES", false),
		SampleSeed:           envIntOr("SAMPLE_SEED", 42),
		ImportWorkerCount:    envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:      envIntOr("IMPORT_QUEUE_SIZE", 32),
		ArchiveLimit:         envIntOr("ARCHIVE_LIMIT", 0),
		MaxConcurrentArchive: envIntOr("MAX_CONCURRENT_ARCHIVE", 10),
		HTTPClientTimeout:    envDurationOr("HTTP_CLIENT_TIMEOUT", 15*time.Second),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.GamesCSVPath != "" {
		if _, err := os.Stat(c.GamesCSVPath); err != nil {
			errs = append(errs, fmt.Errorf("GAMES_CSV_PATH %q is not readable: %w", c.GamesCSVPath, err))
		}
	}
	if c.ImportWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("IMPORT_WORKER_COUNT must be at least 1 (got %d)", c.ImportWorkerCount))
	}
	if c.ImportQueueSize < 1 {
		errs = append(errs, fmt.Errorf("IMPORT_QUEUE_SIZE must be at least 1 (got %d)", c.ImportQueueSize))
	}
	if c.ArchiveLimit < 0 {
		errs = append(errs, fmt.Errorf("ARCHIVE_LIMIT cannot be negative (got %d)", c.ArchiveLimit))
	}
	if c.MaxConcurrentArchive < 1 {
		errs = append(errs, fmt.Errorf("MAX_CONCURRENT_ARCHIVE must be at least 1 (got %d)", c.MaxConcurrentArchive))
	}
	if c.HTTPClientTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_CLIENT_TIMEOUT must be positive (got %s)", c.HTTPClientTimeout))
	}
	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
