// Package config assembles runtime configuration for the server binary from
// environment variables, optionally overlaid by a YAML file. The library
// packages take plain values; only cmd/server reads this.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Auth configures bearer token validation on the HTTP surface.
type Auth struct {
	JWTSigningKey string `yaml:"jwt_signing_key"`
	Issuer        string `yaml:"issuer"`
	Audience      string `yaml:"audience"`
}

// Postgres configures the optional postgres-backed bank directory. An empty
// DSN leaves the packaged in-memory directory in place.
type Postgres struct {
	DSN string `yaml:"dsn"`
}

// Redis configures the optional read-through directory cache. An empty URL
// disables it.
type Redis struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Directory tunes bank directory lookups.
type Directory struct {
	// CacheTTL bounds how long cached directory rows are served.
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// Config is the full server configuration.
type Config struct {
	Server    Server    `yaml:"server"`
	Auth      Auth      `yaml:"auth"`
	Postgres  Postgres  `yaml:"postgres"`
	Redis     Redis     `yaml:"redis"`
	Directory Directory `yaml:"directory"`
}

// FromEnv builds a Config from environment variables so main stays lean.
// Every variable has a usable development default.
func FromEnv() Config {
	cfg := Config{
		Server: Server{
			Addr:            envOr("BANKIDENT_ADDR", ":8080"),
			ShutdownTimeout: envDuration("BANKIDENT_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: Auth{
			// Development default - must be overridden in production.
			JWTSigningKey: envOr("BANKIDENT_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:        envOr("BANKIDENT_JWT_ISSUER", "bankident"),
			Audience:      envOr("BANKIDENT_JWT_AUDIENCE", "bankident-api"),
		},
		Postgres: Postgres{
			DSN: os.Getenv("BANKIDENT_POSTGRES_DSN"),
		},
		Redis: Redis{
			URL:          os.Getenv("BANKIDENT_REDIS_URL"),
			PoolSize:     envInt("BANKIDENT_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("BANKIDENT_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("BANKIDENT_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("BANKIDENT_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("BANKIDENT_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Directory: Directory{
			CacheTTL: envDuration("BANKIDENT_DIRECTORY_CACHE_TTL", 5*time.Minute),
		},
	}
	return cfg
}

// Load builds the configuration from the environment and, when path names an
// existing file, overlays the YAML values on top. BANKIDENT_CONFIG supplies
// the default path.
func Load(path string) (Config, error) {
	cfg := FromEnv()
	if path == "" {
		path = os.Getenv("BANKIDENT_CONFIG")
	}
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
