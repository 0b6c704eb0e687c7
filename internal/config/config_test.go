package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		DataBackend:    "sqlite",
		SQLiteDBPath:   filepath.Join(dir, "babytrack.db"),
		BadgerDir:      filepath.Join(dir, "badger"),
		DataDirectory:  dir,
		LogLevel:       "warn",
		LogFormat:      "text",
		Locale:         "pt-BR",
		Timezone:       "UTC",
		StorageTimeout: 5 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid sqlite backend config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "valid memory backend config",
			mutate:  func(c *Config) { c.DataBackend = "memory" },
			wantErr: false,
		},
		{
			name:    "valid badger backend config",
			mutate:  func(c *Config) { c.DataBackend = "badger" },
			wantErr: false,
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "postgres" },
			wantErr:     true,
			errorString: "invalid data backend 'postgres': must be one of [sqlite badger memory]",
		},
		{
			name:        "sqlite backend missing database path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "badger backend missing directory",
			mutate:      func(c *Config) { c.DataBackend = "badger"; c.BadgerDir = "" },
			wantErr:     true,
			errorString: "Badger directory cannot be empty when using badger backend",
		},
		{
			name:        "memory backend missing data directory",
			mutate:      func(c *Config) { c.DataBackend = "memory"; c.DataDirectory = "" },
			wantErr:     true,
			errorString: "data directory cannot be empty when using memory backend",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "chatty" },
			wantErr:     true,
			errorString: "invalid log level 'chatty'",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml': must be text or json",
		},
		{
			name:        "invalid locale",
			mutate:      func(c *Config) { c.Locale = "not a locale!" },
			wantErr:     true,
			errorString: "invalid locale 'not a locale!'",
		},
		{
			name:        "invalid timezone",
			mutate:      func(c *Config) { c.Timezone = "Mars/Olympus_Mons" },
			wantErr:     true,
			errorString: "invalid timezone 'Mars/Olympus_Mons'",
		},
		{
			name:        "storage timeout too short",
			mutate:      func(c *Config) { c.StorageTimeout = 10 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid storage timeout 10ms: must be at least 100ms",
		},
		{
			name:        "storage timeout too long",
			mutate:      func(c *Config) { c.StorageTimeout = time.Hour },
			wantErr:     true,
			errorString: "invalid storage timeout 1h0m0s: must be at most 5 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateAccumulatesErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.LogLevel = "chatty"
	cfg.Timezone = "Nowhere/Nope"

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "log level") || !strings.Contains(err.Error(), "timezone") {
		t.Errorf("expected both problems to be reported, got %v", err)
	}
}

func TestConfig_ValidateCreatesDirectories(t *testing.T) {
	cfg := validConfig(t)
	cfg.SQLiteDBPath = filepath.Join(t.TempDir(), "nested", "dir", "babytrack.db")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(cfg.SQLiteDBPath)); err != nil {
		t.Errorf("database directory was not created: %v", err)
	}
}

func TestConfig_LocationAndLanguage(t *testing.T) {
	cfg := validConfig(t)
	cfg.Timezone = "America/Sao_Paulo"
	if got := cfg.Location().String(); got != "America/Sao_Paulo" {
		t.Errorf("Location() = %s", got)
	}
	if got := cfg.Language(); got.String() != language.BrazilianPortuguese.String() {
		t.Errorf("Language() = %v, want pt-BR", got)
	}

	cfg.Locale = "!!"
	if got := cfg.Language(); got.String() != language.BrazilianPortuguese.String() {
		t.Errorf("Language() fallback = %v, want pt-BR", got)
	}
}

func TestLoad(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		for _, key := range []string{"DATA_BACKEND", "SQLITE_DB_PATH", "LOG_LEVEL", "LOCALE", "TIMEZONE", "STORAGE_TIMEOUT"} {
			t.Setenv(key, "")
		}

		cfg := Load()

		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "./data/babytrack.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/babytrack.db", cfg.SQLiteDBPath)
		}
		if cfg.LogLevel != "warn" {
			t.Errorf("Load() LogLevel = %v, want warn", cfg.LogLevel)
		}
		if cfg.Locale != "pt-BR" || cfg.Timezone != "Local" {
			t.Errorf("Load() Locale/Timezone = %v/%v", cfg.Locale, cfg.Timezone)
		}
		if cfg.StorageTimeout != 5*time.Second {
			t.Errorf("Load() StorageTimeout = %v, want 5s", cfg.StorageTimeout)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("DATA_BACKEND", "badger")
		t.Setenv("BADGER_DIR", "/tmp/bt-badger")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("LOCALE", "en")
		t.Setenv("STORAGE_TIMEOUT", "2s")

		cfg := Load()

		if cfg.DataBackend != "badger" || cfg.BadgerDir != "/tmp/bt-badger" {
			t.Errorf("Load() backend = %v at %v", cfg.DataBackend, cfg.BadgerDir)
		}
		if cfg.LogFormat != "json" || cfg.Locale != "en" {
			t.Errorf("Load() LogFormat/Locale = %v/%v", cfg.LogFormat, cfg.Locale)
		}
		if cfg.StorageTimeout != 2*time.Second {
			t.Errorf("Load() StorageTimeout = %v, want 2s", cfg.StorageTimeout)
		}
	})

	t.Run("invalid duration uses default", func(t *testing.T) {
		t.Setenv("STORAGE_TIMEOUT", "soon")

		cfg := Load()

		if cfg.StorageTimeout != 5*time.Second {
			t.Errorf("Load() StorageTimeout = %v, want 5s (default for invalid input)", cfg.StorageTimeout)
		}
	})
}
