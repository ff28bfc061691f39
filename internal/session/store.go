package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Store persists sessions between requests
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Stats() StoreStats
	Close() error
}

// StoreStats holds session store statistics
type StoreStats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Errors      int64     `json:"errors"`
	HitRatio    float64   `json:"hitRatio"`
	TotalOps    int64     `json:"totalOps"`
	Sessions    int       `json:"sessions"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// StoreConfig holds session store configuration
type StoreConfig struct {
	DefaultTTL      time.Duration
	MemorySize      int
	CleanupInterval time.Duration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	EnableMemory    bool
	EnableRedis     bool
}

var ErrNotFound = errors.New("session not found")

const defaultCleanupInterval = 5 * time.Minute

// HybridStore keeps sessions in process memory and, when enabled, in Redis so several
// instances can share them. Reads try memory first.
type HybridStore struct {
	memory *memoryStore
	redis  *redisStore
	config StoreConfig
	stats  StoreStats
	mu     sync.RWMutex
}

// NewHybridStore creates the stores enabled in config
func NewHybridStore(config StoreConfig) (*HybridStore, error) {
	if !config.EnableMemory && !config.EnableRedis {
		return nil, errors.New("at least one session store must be enabled")
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = defaultCleanupInterval
	}

	hs := &HybridStore{
		config: config,
		stats:  StoreStats{LastUpdated: time.Now()},
	}

	if config.EnableMemory {
		hs.memory = newMemoryStore(config.MemorySize, config.CleanupInterval)
	}

	if config.EnableRedis {
		var err error
		hs.redis, err = newRedisStore(config)
		if err != nil {
			hs.Close()
			return nil, fmt.Errorf("failed to initialize Redis session store: %w", err)
		}
	}

	return hs, nil
}

// Get loads a session (memory first, then Redis)
func (hs *HybridStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		hs.recordMiss()
		return nil, ErrNotFound
	}

	if hs.memory != nil {
		if s, found := hs.memory.get(id); found {
			hs.recordHit()
			return s, nil
		}
	}

	if hs.redis != nil {
		s, err := hs.redis.get(ctx, id)
		switch {
		case err == nil:
			hs.recordHit()
			// Warm memory store
			if hs.memory != nil {
				hs.memory.set(s, hs.config.DefaultTTL)
			}
			return s, nil
		case !errors.Is(err, ErrNotFound):
			hs.recordError()
			return nil, err
		}
	}

	hs.recordMiss()
	return nil, ErrNotFound
}

// Save stores the session in every enabled store with the default TTL
func (hs *HybridStore) Save(ctx context.Context, s *Session) error {
	if hs.memory != nil {
		hs.memory.set(s, hs.config.DefaultTTL)
	}

	if hs.redis != nil {
		if err := hs.redis.set(ctx, s, hs.config.DefaultTTL); err != nil {
			hs.recordError()
			return err
		}
	}

	return nil
}

// Delete removes the session from every enabled store
func (hs *HybridStore) Delete(ctx context.Context, id string) error {
	if hs.memory != nil {
		hs.memory.delete(id)
	}

	if hs.redis != nil {
		if err := hs.redis.delete(ctx, id); err != nil {
			hs.recordError()
			return err
		}
	}

	return nil
}

// Stats returns store statistics
func (hs *HybridStore) Stats() StoreStats {
	hs.mu.RLock()
	stats := hs.stats
	hs.mu.RUnlock()

	if stats.TotalOps > 0 {
		stats.HitRatio = float64(stats.Hits) / float64(stats.TotalOps)
	}
	if hs.memory != nil {
		stats.Sessions = hs.memory.size()
	}
	return stats
}

// Close stops the memory cleanup goroutine and the Redis connection pool
func (hs *HybridStore) Close() error {
	if hs.memory != nil {
		hs.memory.close()
	}
	if hs.redis != nil {
		return hs.redis.close()
	}
	return nil
}

// HealthCheck pings Redis when it is enabled
func (hs *HybridStore) HealthCheck(ctx context.Context) error {
	if hs.redis == nil {
		return nil
	}
	return hs.redis.healthCheck(ctx)
}

func (hs *HybridStore) recordHit() {
	hs.mu.Lock()
	hs.stats.Hits++
	hs.stats.TotalOps++
	hs.stats.LastUpdated = time.Now()
	hs.mu.Unlock()
}

func (hs *HybridStore) recordMiss() {
	hs.mu.Lock()
	hs.stats.Misses++
	hs.stats.TotalOps++
	hs.stats.LastUpdated = time.Now()
	hs.mu.Unlock()
}

func (hs *HybridStore) recordError() {
	hs.mu.Lock()
	hs.stats.Errors++
	hs.stats.LastUpdated = time.Now()
	hs.mu.Unlock()
}
