package config

import (
	"github.com/prajwalbharadwajbm/referralhub/internal/backend"
)

// ClientConfig returns the settings of the HTTP backend client
func (c *Config) ClientConfig() backend.ClientConfig {
	return backend.ClientConfig{
		BaseURL:   c.Backend.BaseURL,
		Timeout:   c.Backend.Timeout,
		RateLimit: c.Backend.RateLimit,
		RateBurst: c.Backend.RateBurst,
	}
}

// MemoryAdmin returns the admin account seeded into the in-memory backend
func (c *Config) MemoryAdmin() backend.MemoryAdmin {
	return backend.MemoryAdmin{
		Name:     c.Backend.AdminName,
		Email:    c.Backend.AdminEmail,
		Password: c.Backend.AdminPassword,
	}
}
