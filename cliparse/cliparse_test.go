// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequiredSecrets(t *testing.T) {
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
	t.Setenv("SESSION_SECRET", "test-secret")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres || cfg.DatabaseURL != "postgres://test" {
		t.Errorf("unexpected database config: %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("expected 2h session TTL, got %v", cfg.SessionTTL)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_BACKEND", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite || cfg.DatabaseURL != "mysite.db" {
		t.Errorf("expected sqlite mysite.db, got %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.SessionBackend != SessionBackendMemory {
		t.Errorf("expected memory sessions, got %s", cfg.SessionBackend)
	}
	if cfg.SessionTTL != 14*24*time.Hour {
		t.Errorf("expected two week session TTL, got %v", cfg.SessionTTL)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "auto" {
		t.Errorf("unexpected log config: %s %s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-admin-salt", "s1", "-session-secret", "s2"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:test.db" {
		t.Errorf("expected file:test.db, got %s", cfg.DatabaseURL)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing admin salt", map[string]string{"ADMIN_KEY_SALT": "", "SESSION_SECRET": "s"}, nil},
		{"missing session secret", map[string]string{"ADMIN_KEY_SALT": "a", "SESSION_SECRET": ""}, nil},
		{"invalid port", map[string]string{"PORT": "abc"}, nil},
		{"postgres without url", map[string]string{"DATABASE_URL": ""}, []string{"-t", "postgres"}},
		{"unknown database type", nil, []string{"-t", "mysql"}},
		{"unknown session backend", nil, []string{"-session-backend", "cookie"}},
		{"redis without url", map[string]string{"REDIS_URL": ""}, []string{"-session-backend", "redis"}},
		{"sql sessions without database", nil, []string{"-t", "memory", "-session-backend", "sql"}},
		{"invalid session ttl", map[string]string{"SESSION_TTL": "forever"}, nil},
		{"zero session ttl", map[string]string{"SESSION_TTL": "0s"}, nil},
		{"negative session ttl", map[string]string{"SESSION_TTL": "-1h"}, nil},
		{"unknown flag", nil, []string{"-x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredSecrets(t)
			t.Setenv("PORT", "")
			t.Setenv("SESSION_TTL", "")
			t.Setenv("SESSION_BACKEND", "")
			t.Setenv("DATABASE_TYPE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("MYSITE_TEST_FROM_DOTENV=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MYSITE_TEST_FROM_DOTENV", "")
	os.Unsetenv("MYSITE_TEST_FROM_DOTENV")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("MYSITE_TEST_FROM_DOTENV"); got != "loaded" {
		t.Errorf("expected loaded, got %q", got)
	}

	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing file should not be an error, got %v", err)
	}
}
