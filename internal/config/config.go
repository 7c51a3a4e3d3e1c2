// Package config provides hierarchical configuration loading.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the maturity service.
type Config struct {
	Server      Server      `yaml:"server"`
	Postgres    Postgres    `yaml:"postgres"`
	NATS        NATS        `yaml:"nats"`
	Logging     Logging     `yaml:"logging"`
	Breaker     Breaker     `yaml:"breaker"`
	Rate        Rate        `yaml:"rate"`
	Cache       Cache       `yaml:"cache"`
	Idempotency Idempotency `yaml:"idempotency"`
	Catalog     Catalog     `yaml:"catalog"`
	OTel        OTel        `yaml:"otel"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// Postgres holds connection pool configuration.
type Postgres struct {
	DSN             string        `yaml:"dsn"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	HealthCheck     time.Duration `yaml:"health_check"`
}

// NATS holds message queue configuration.
type NATS struct {
	URL string `yaml:"url"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
	Async   bool   `yaml:"async"`
}

// Breaker holds circuit breaker configuration for event publishing.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Rate holds per-IP rate limiting configuration.
type Rate struct {
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"`
	MaxIdleTime       time.Duration `yaml:"max_idle_time"`
}

// Cache holds the tiered cache configuration. L1 is in-process, L2 is a
// NATS JetStream KV bucket shared across instances.
type Cache struct {
	L1MaxSizeMB int64         `yaml:"l1_max_size_mb"`
	L2Bucket    string        `yaml:"l2_bucket"`
	L2TTL       time.Duration `yaml:"l2_ttl"`
}

// Idempotency holds the idempotency-key store configuration.
type Idempotency struct {
	Bucket string        `yaml:"bucket"`
	TTL    time.Duration `yaml:"ttl"`
}

// Catalog points at the initiative template catalog. An empty path uses the
// embedded default catalog.
type Catalog struct {
	Path string `yaml:"path"`
}

// OTel holds OpenTelemetry export configuration. An empty endpoint disables
// telemetry export.
type OTel struct {
	Endpoint string `yaml:"endpoint"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8080",
			CORSOrigin: "http://localhost:5173",
		},
		Postgres: Postgres{
			MaxConns:        8,
			MinConns:        2,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 30 * time.Minute,
			HealthCheck:     time.Minute,
		},
		NATS: NATS{
			URL: "nats://localhost:4222",
		},
		Logging: Logging{
			Level:   "info",
			Service: "maturityd",
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
		Rate: Rate{
			RequestsPerSecond: 50,
			Burst:             100,
			CleanupInterval:   time.Minute,
			MaxIdleTime:       10 * time.Minute,
		},
		Cache: Cache{
			L1MaxSizeMB: 64,
			L2Bucket:    "maturity-cache",
			L2TTL:       15 * time.Minute,
		},
		Idempotency: Idempotency{
			Bucket: "maturity-idempotency",
			TTL:    24 * time.Hour,
		},
	}
}
