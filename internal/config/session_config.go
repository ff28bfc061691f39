package config

import (
	"net/http"

	"github.com/prajwalbharadwajbm/referralhub/internal/session"
)

// StoreConfig converts the session and redis sections into a session store configuration
func (c *Config) StoreConfig() session.StoreConfig {
	return session.StoreConfig{
		DefaultTTL:    c.Session.TTL,
		MemorySize:    c.Session.MemorySize,
		RedisAddr:     c.Redis.Addr,
		RedisPassword: c.Redis.Password,
		RedisDB:       c.Redis.DB,
		EnableMemory:  c.Session.EnableMemory,
		EnableRedis:   c.Session.EnableRedis,
	}
}

// Cookie returns the template for the session cookie; Value and Expires are filled per request.
func (c *Config) Cookie() http.Cookie {
	return http.Cookie{
		Name:     c.Session.CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// StoreHealth represents session store health status
type StoreHealth struct {
	Memory struct {
		Enabled bool `json:"enabled"`
		Size    int  `json:"size"`
	} `json:"memory"`
	Redis struct {
		Enabled bool   `json:"enabled"`
		Address string `json:"address,omitempty"`
	} `json:"redis"`
	Stats session.StoreStats `json:"stats"`
}

// GetStoreHealth returns current session store health status
func GetStoreHealth(cfg *Config, store session.Store) StoreHealth {
	health := StoreHealth{}

	health.Memory.Enabled = cfg.Session.EnableMemory
	health.Memory.Size = cfg.Session.MemorySize

	health.Redis.Enabled = cfg.Session.EnableRedis
	if cfg.Session.EnableRedis {
		health.Redis.Address = cfg.Redis.Addr
	}

	health.Stats = store.Stats()
	return health
}
