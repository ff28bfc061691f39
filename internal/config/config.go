package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration
type Config struct {
	General  GeneralConfig  `env:", prefix=APP_"`
	Server   ServerConfig   `env:", prefix=SERVER_"`
	Backend  BackendConfig  `env:", prefix=BACKEND_"`
	Session  SessionConfig  `env:", prefix=SESSION_"`
	Redis    RedisConfig    `env:", prefix=REDIS_"`
	Portal   PortalConfig   `env:", prefix=PORTAL_"`
	Insights InsightsConfig `env:", prefix=CUSTOMERS_"`
}

type GeneralConfig struct {
	Env      string `env:"ENV, default=dev"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
}

type ServerConfig struct {
	Port         int           `env:"PORT, default=8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT, default=120s"`
}

// BackendConfig points at the external REST API that owns campaigns and referrers.
type BackendConfig struct {
	BaseURL   string        `env:"BASE_URL, default=http://localhost:5000"`
	Mode      string        `env:"MODE, default=http"`
	Timeout   time.Duration `env:"TIMEOUT, default=10s"`
	RateLimit float64       `env:"RATE_LIMIT, default=50"`
	RateBurst int           `env:"RATE_BURST, default=100"`

	// Admin account of the in-memory backend, used when Mode is "memory"
	AdminName     string `env:"ADMIN_NAME, default=John Doe"`
	AdminEmail    string `env:"ADMIN_EMAIL, default=admin@example.com"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

type SessionConfig struct {
	TTL          time.Duration `env:"TTL, default=24h"`
	CookieName   string        `env:"COOKIE_NAME, default=referralhub_session"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
	MemorySize   int           `env:"MEMORY_SIZE, default=10000"`
	EnableMemory bool          `env:"ENABLE_MEMORY, default=true"`
	EnableRedis  bool          `env:"ENABLE_REDIS, default=false"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR, default=localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB, default=0"`
}

// PortalConfig holds the public origin used when building registration and share links.
type PortalConfig struct {
	PublicURL string `env:"PUBLIC_URL, default=http://localhost:3000"`
}

// InsightsConfig holds the baseline the customers dashboard compares against.
type InsightsConfig struct {
	PreviousCount int `env:"PREVIOUS_COUNT, default=5"`
}

// Load reads an optional .env file and then processes the environment into a Config
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env files: %v", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend.Mode {
	case BackendModeHTTP, BackendModeMemory:
	default:
		return fmt.Errorf("invalid BACKEND_MODE %q", c.Backend.Mode)
	}
	if c.Backend.Mode == BackendModeMemory && c.Backend.AdminPassword == "" {
		return fmt.Errorf("BACKEND_ADMIN_PASSWORD is required when BACKEND_MODE is %q", BackendModeMemory)
	}
	if !c.Session.EnableMemory && !c.Session.EnableRedis {
		return fmt.Errorf("at least one session store must be enabled")
	}
	return nil
}

const (
	BackendModeHTTP   = "http"
	BackendModeMemory = "memory"
)

// Addr returns the listen address for the HTTP server
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// IsDevelopment returns true if running in development environment
func (c *GeneralConfig) IsDevelopment() bool {
	return c.Env == "dev" || c.Env == "development"
}
