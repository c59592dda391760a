package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	SessionBackendPostgres = "postgres"
	SessionBackendRedis    = "redis"

	PasswordHasherSHA256 = "sha256"
	PasswordHasherBcrypt = "bcrypt"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
}

type PostgresConfig struct {
	DSN            string `env:"DATABASE_URL, required"`
	Schema         string `env:"MAIN_DB_SCHEMA"`
	MaxConns       int32  `env:"DB_MAX_CONNS,     default=10"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START, default=false"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type AuthConfig struct {
	SessionBackend string        `env:"SESSION_BACKEND,         default=postgres"`
	SessionTTL     time.Duration `env:"SESSION_TTL,             default=720h"`
	RedisRetention time.Duration `env:"SESSION_REDIS_RETENTION, default=0s"`
	PasswordHasher string        `env:"PASSWORD_HASHER,         default=sha256"`
	BcryptCost     int           `env:"BCRYPT_COST,             default=12"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Auth.SessionBackend {
	case SessionBackendPostgres:
	case SessionBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: SESSION_BACKEND=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.Auth.SessionBackend)
	}

	switch c.Auth.PasswordHasher {
	case PasswordHasherSHA256, PasswordHasherBcrypt:
	default:
		return fmt.Errorf("config: unknown PASSWORD_HASHER %q", c.Auth.PasswordHasher)
	}

	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through an arbitrary lookuper and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
