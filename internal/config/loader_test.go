package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Postgres.MaxConns != 8 {
		t.Errorf("expected max_conns 8, got %d", cfg.Postgres.MaxConns)
	}
	if cfg.Breaker.Timeout != 30*time.Second {
		t.Errorf("expected breaker timeout 30s, got %v", cfg.Breaker.Timeout)
	}
	if cfg.Cache.L2TTL != 15*time.Minute {
		t.Errorf("expected cache l2 ttl 15m, got %v", cfg.Cache.L2TTL)
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "test.yaml")

	content := `
server:
  port: "9090"
  cors_origin: "http://example.com"
postgres:
  max_conns: 20
logging:
  level: "debug"
catalog:
  path: "/etc/maturity/catalog.yaml"
`
	if err := os.WriteFile(yamlPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	if err := loadYAML(&cfg, yamlPath); err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.CORSOrigin != "http://example.com" {
		t.Errorf("expected cors http://example.com, got %s", cfg.Server.CORSOrigin)
	}
	if cfg.Postgres.MaxConns != 20 {
		t.Errorf("expected max_conns 20, got %d", cfg.Postgres.MaxConns)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Catalog.Path != "/etc/maturity/catalog.yaml" {
		t.Errorf("expected catalog path override, got %s", cfg.Catalog.Path)
	}
	// Unchanged fields keep defaults
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("expected default NATS URL, got %s", cfg.NATS.URL)
	}
}

func TestLoadYAMLMissing(t *testing.T) {
	cfg := Defaults()
	err := loadYAML(&cfg, "/nonexistent/path.yaml")
	if err != nil {
		t.Errorf("missing YAML should not error, got %v", err)
	}
}

func TestLoadYAMLMalformed(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(yamlPath, []byte("server: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	if err := loadYAML(&cfg, yamlPath); err == nil {
		t.Error("malformed YAML should error")
	}
}

func TestEnvOverride(t *testing.T) {
	cfg := Defaults()

	t.Setenv("MATURITY_PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://test:test@db:5432/test")
	t.Setenv("MATURITY_PG_MAX_CONNS", "25")
	t.Setenv("MATURITY_LOG_LEVEL", "warn")
	t.Setenv("MATURITY_BREAKER_TIMEOUT", "1m")
	t.Setenv("MATURITY_CACHE_L2_BUCKET", "alt-cache")

	loadEnv(&cfg)

	if cfg.Server.Port != "7070" {
		t.Errorf("expected port 7070, got %s", cfg.Server.Port)
	}
	if cfg.Postgres.DSN != "postgres://test:test@db:5432/test" {
		t.Errorf("expected test DSN, got %s", cfg.Postgres.DSN)
	}
	if cfg.Postgres.MaxConns != 25 {
		t.Errorf("expected max_conns 25, got %d", cfg.Postgres.MaxConns)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Logging.Level)
	}
	if cfg.Breaker.Timeout != time.Minute {
		t.Errorf("expected breaker timeout 1m, got %v", cfg.Breaker.Timeout)
	}
	if cfg.Cache.L2Bucket != "alt-cache" {
		t.Errorf("expected cache bucket alt-cache, got %s", cfg.Cache.L2Bucket)
	}
}

func TestEnvIgnoresInvalidValues(t *testing.T) {
	cfg := Defaults()

	t.Setenv("MATURITY_PG_MAX_CONNS", "not-a-number")
	t.Setenv("MATURITY_BREAKER_TIMEOUT", "not-a-duration")

	loadEnv(&cfg)

	if cfg.Postgres.MaxConns != 8 {
		t.Errorf("invalid env int should keep default, got %d", cfg.Postgres.MaxConns)
	}
	if cfg.Breaker.Timeout != 30*time.Second {
		t.Errorf("invalid env duration should keep default, got %v", cfg.Breaker.Timeout)
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Postgres.DSN = "postgres://localhost/maturity"
	if err := validate(&cfg); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	missing := cfg
	missing.Postgres.DSN = ""
	if err := validate(&missing); err == nil {
		t.Error("empty DSN should fail validation")
	}

	badPort := cfg
	badPort.Server.Port = ""
	if err := validate(&badPort); err == nil {
		t.Error("empty port should fail validation")
	}
}
