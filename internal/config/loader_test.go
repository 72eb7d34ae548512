package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/example/campus-registry/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REGISTRY_HTTP_PORT",
		"REGISTRY_SQLITE_DSN",
		"REGISTRY_BCRYPT_COST",
		"REGISTRY_OP_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "registry.db" {
		t.Errorf("expected default dsn registry.db, got %q", cfg.SQLiteDSN)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("expected default bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.OperationTimeout != 10*time.Second {
		t.Errorf("expected default timeout 10s, got %v", cfg.OperationTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("REGISTRY_HTTP_PORT", "9090")
	t.Setenv("REGISTRY_SQLITE_DSN", "/tmp/other.db")
	t.Setenv("REGISTRY_BCRYPT_COST", "10")
	t.Setenv("REGISTRY_OP_TIMEOUT", "30s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPPort != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "/tmp/other.db" {
		t.Errorf("expected dsn /tmp/other.db, got %q", cfg.SQLiteDSN)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if cfg.OperationTimeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", cfg.OperationTimeout)
	}
}

func TestLoadAccumulatesInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("REGISTRY_HTTP_PORT", "not-a-port")
	t.Setenv("REGISTRY_BCRYPT_COST", "99")
	t.Setenv("REGISTRY_OP_TIMEOUT", "-5s")

	_, err := config.Load()
	if err == nil {
		t.Fatal("expected an error for invalid values")
	}
	for _, key := range []string{"REGISTRY_HTTP_PORT", "REGISTRY_BCRYPT_COST", "REGISTRY_OP_TIMEOUT"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("expected error to name %s, got %q", key, err.Error())
		}
	}
}
