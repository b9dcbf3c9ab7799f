package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/siteledger/timesheets/internal/core/domain"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

type Config struct {
	Port        string        `env:"PORT, default=8080"`
	Env         string        `env:"ENV, default=development"`
	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel    string        `env:"LOG_LEVEL, default=info"`
	StoreDriver string        `env:"STORE_DRIVER, default=mongo"`

	Mongo    MongoConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Pay      PayConfig
	Seed     SeedConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB, default=timesheets"`
}

type PostgresConfig struct {
	URL string `env:"POSTGRES_URL"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// PayConfig holds the weekend overtime multipliers as decimal strings.
type PayConfig struct {
	SaturdayMultiplier string `env:"PAY_SATURDAY_MULTIPLIER, default=1.5"`
	SundayMultiplier   string `env:"PAY_SUNDAY_MULTIPLIER, default=1.75"`
}

// SeedConfig describes the manager account created on first start.
type SeedConfig struct {
	ManagerUsername string `env:"SEED_MANAGER_USERNAME"`
	ManagerEmail    string `env:"SEED_MANAGER_EMAIL"`
	ManagerPassword string `env:"SEED_MANAGER_PASSWORD"`
}

// Enabled reports whether a seed manager was configured.
func (s SeedConfig) Enabled() bool {
	return s.ManagerUsername != "" && s.ManagerEmail != "" && s.ManagerPassword != ""
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l, which lets tests supply a map.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case StoreMongo:
	case StorePostgres:
		if c.Postgres.URL == "" {
			return errors.New("POSTGRES_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if _, err := c.PayPolicy(); err != nil {
		return err
	}
	return nil
}

// PayPolicy builds the configured overtime multipliers.
func (c *Config) PayPolicy() (domain.PayPolicy, error) {
	return domain.ParsePayPolicy(c.Pay.SaturdayMultiplier, c.Pay.SundayMultiplier)
}

// IsDevelopment enables human-friendly logs.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c *Config) HTTPAddress() string {
	return ":" + c.Port
}
