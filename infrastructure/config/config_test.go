package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_USER", "iego")
	t.Setenv("APP_PASSWORD", "pw")
	for _, key := range []string{"APP_ADDR", "SQLITE_PATH", "SESSION_FILE", "SESSION_TTL_SECONDS", "ORDER_REQUIRE_CUSTOMER"} {
		unsetenv(t, key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr)
	}
	if cfg.SessionTTL() != 2*time.Hour {
		t.Fatalf("unexpected ttl %v", cfg.SessionTTL())
	}
	if !strings.HasSuffix(filepath.ToSlash(cfg.DBPath), "app.db") {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.SessionFile == "" {
		t.Fatalf("expected default session file")
	}
	if cfg.RequireExistingCustomer {
		t.Fatalf("expected implicit customer creation by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_USER", "iego")
	t.Setenv("APP_PASSWORD", "pw")
	t.Setenv("SESSION_FILE", "/tmp/custom-session")
	t.Setenv("SESSION_TTL_SECONDS", "60")
	t.Setenv("ORDER_REQUIRE_CUSTOMER", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionFile != "/tmp/custom-session" {
		t.Fatalf("unexpected session file %q", cfg.SessionFile)
	}
	if cfg.SessionTTL() != time.Minute {
		t.Fatalf("unexpected ttl %v", cfg.SessionTTL())
	}
	if !cfg.RequireExistingCustomer {
		t.Fatalf("expected explicit customer variant")
	}
}

func TestLoadInvalidTTLFallsBack(t *testing.T) {
	t.Setenv("APP_USER", "iego")
	t.Setenv("APP_PASSWORD", "pw")
	t.Setenv("SESSION_TTL_SECONDS", "-5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionTTL() != 2*time.Hour {
		t.Fatalf("expected default ttl, got %v", cfg.SessionTTL())
	}
}

func TestLoadRequiresCredentials(t *testing.T) {
	unsetenv(t, "APP_USER")
	unsetenv(t, "APP_PASSWORD")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without credentials")
	}

	t.Setenv("APP_USER", "")
	t.Setenv("APP_PASSWORD", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for empty credentials")
	}
}

func TestLoadRejectsUnstorableUsername(t *testing.T) {
	t.Setenv("APP_PASSWORD", "pw")
	for _, username := range []string{" iego", "iego ", "ie|go"} {
		t.Setenv("APP_USER", username)
		if _, err := Load(); err == nil {
			t.Fatalf("expected APP_USER %q to be rejected", username)
		}
	}
}

func TestDBPathFromEnv(t *testing.T) {
	unsetenv(t, "SQLITE_PATH")
	path, err := DBPathFromEnv()
	if err != nil {
		t.Fatalf("db path: %v", err)
	}
	if !strings.HasSuffix(filepath.ToSlash(path), "3d.iego/app.db") && path != "app.db" {
		t.Fatalf("unexpected default db path %q", path)
	}

	t.Setenv("SQLITE_PATH", "/tmp/shop.db")
	path, err = DBPathFromEnv()
	if err != nil {
		t.Fatalf("db path: %v", err)
	}
	if path != "/tmp/shop.db" {
		t.Fatalf("expected override, got %q", path)
	}
}
