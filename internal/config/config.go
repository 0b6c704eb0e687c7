package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without a zoneinfo database

	"golang.org/x/text/language"

	"babytrack/internal/log"
)

type Config struct {
	// Backend selection
	DataBackend string

	// SQLite
	SQLiteDBPath string

	// Badger
	BadgerDir string

	// Memory backend seed files (<collection>.json)
	DataDirectory string

	// Logging
	LogLevel  string
	LogFormat string

	// Presentation
	Locale   string
	Timezone string

	// Upper bound for a single command's storage work
	StorageTimeout time.Duration
}

var validBackends = []string{"sqlite", "badger", "memory"}

func Load() *Config {
	cfg := &Config{
		DataBackend:   getEnv("DATA_BACKEND", "sqlite"),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/babytrack.db"),
		BadgerDir:     getEnv("BADGER_DIR", "./data/badger"),
		DataDirectory: getEnv("DATA_DIRECTORY", "./data"),

		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		Locale:   getEnv("LOCALE", "pt-BR"),
		Timezone: getEnv("TIMEZONE", "Local"),

		StorageTimeout: getEnvDuration("STORAGE_TIMEOUT", 5*time.Second),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if err := ensureDir(filepath.Dir(c.SQLiteDBPath)); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", filepath.Dir(c.SQLiteDBPath), err))
		}
	case "badger":
		if c.BadgerDir == "" {
			errors = append(errors, "Badger directory cannot be empty when using badger backend")
		} else if err := ensureDir(c.BadgerDir); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create Badger directory '%s': %v", c.BadgerDir, err))
		}
	case "memory":
		if c.DataDirectory == "" {
			errors = append(errors, "data directory cannot be empty when using memory backend")
		} else if err := ensureDir(c.DataDirectory); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create data directory '%s': %v", c.DataDirectory, err))
		}
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	if _, err := log.ParseFormat(c.LogFormat); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if _, err := language.Parse(c.Locale); err != nil {
		errors = append(errors, fmt.Sprintf("invalid locale '%s': %v", c.Locale, err))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if c.StorageTimeout < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid storage timeout %v: must be at least 100ms", c.StorageTimeout))
	} else if c.StorageTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid storage timeout %v: must be at most 5 minutes", c.StorageTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Location returns the configured time zone. Call Validate first.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Language returns the configured locale tag, falling back to Brazilian
// Portuguese.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.BrazilianPortuguese
	}
	return tag
}

func ensureDir(dir string) error {
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
