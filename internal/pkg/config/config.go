package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Session storage backends.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Resource  ResourceConfig
	Session   SessionConfig
	Redis     RedisConfig
	Resourced ResourcedConfig
}

// ResourceConfig points the dashboard at the remote resource API. A zero
// Timeout leaves requests unbounded.
type ResourceConfig struct {
	BaseURL string        `env:"RESOURCE_BASE_URL, default=http://localhost:5000"`
	Timeout time.Duration `env:"RESOURCE_TIMEOUT,  default=0s"`
}

type SessionConfig struct {
	Backend      string        `env:"SESSION_BACKEND,       default=redis"`
	RestoreDelay time.Duration `env:"SESSION_RESTORE_DELAY, default=100ms"`
	TTL          time.Duration `env:"SESSION_TTL,           default=0s"`
	Cookie       string        `env:"SESSION_COOKIE,        default=dashboard_sid"`
	SecureCookie bool          `env:"SESSION_COOKIE_SECURE, default=false"`
	IdleTTL      time.Duration `env:"SESSION_IDLE_TTL,      default=30m"`
	MaxStores    int           `env:"SESSION_MAX_STORES,    default=10000"`
	LoginRate    float64       `env:"LOGIN_RATE,            default=5"`
	LoginBurst   int           `env:"LOGIN_BURST,           default=10"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// ResourcedConfig configures the development resource server.
type ResourcedConfig struct {
	Port  string `env:"RESOURCED_PORT, default=5000"`
	Seed  bool   `env:"RESOURCED_SEED, default=true"`
	Mongo MongoConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=inventory"`
}

// IsDevelopment reports whether the process runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects settings the servers cannot start with.
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q", BackendRedis, BackendMemory, c.Session.Backend)
	}
	if c.Session.RestoreDelay < 0 {
		return errors.New("SESSION_RESTORE_DELAY must not be negative")
	}
	if c.Session.IdleTTL <= 0 || c.Session.MaxStores <= 0 {
		return errors.New("SESSION_IDLE_TTL and SESSION_MAX_STORES must be positive")
	}
	if c.Session.LoginRate <= 0 || c.Session.LoginBurst <= 0 {
		return errors.New("LOGIN_RATE and LOGIN_BURST must be positive")
	}
	return nil
}

// Load reads an optional .env file, then configuration from environment
// variables using go-envconfig.
func Load() *Config {
	if err := loadDotEnv(".env"); err != nil {
		panic(fmt.Sprintf("config: failed to read .env: %v", err))
	}
	cfg, err := load(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv sets variables from files without overriding the environment.
// Missing files are skipped.
func loadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
