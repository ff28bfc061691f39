package session

import (
	"encoding/json"
	"sync"
	"time"
)

// memoryItem is an encoded session with expiration. Sessions are stored encoded so
// concurrent requests never share one *Session.
type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

func (mi *memoryItem) isExpired(now time.Time) bool {
	return now.After(mi.expiresAt)
}

// memoryStore keeps sessions in process memory with TTL
type memoryStore struct {
	items    map[string]*memoryItem
	mu       sync.RWMutex
	maxSize  int
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func newMemoryStore(maxSize int, cleanupInterval time.Duration) *memoryStore {
	ms := &memoryStore{
		items:    make(map[string]*memoryItem),
		maxSize:  maxSize,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}

	go ms.cleanup(cleanupInterval)

	return ms
}

func (ms *memoryStore) get(id string) (*Session, bool) {
	ms.mu.RLock()
	item, exists := ms.items[id]
	ms.mu.RUnlock()

	if !exists || item.isExpired(time.Now()) {
		return nil, false
	}

	var s Session
	if err := json.Unmarshal(item.data, &s); err != nil {
		return nil, false
	}
	return &s, true
}

func (ms *memoryStore) set(s *Session, ttl time.Duration) {
	data, err := json.Marshal(s)
	if err != nil {
		return
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[s.ID] = &memoryItem{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	}

	ms.evictIfNeeded()
}

func (ms *memoryStore) delete(id string) {
	ms.mu.Lock()
	delete(ms.items, id)
	ms.mu.Unlock()
}

// evictIfNeeded removes expired items, then the sessions closest to expiry until under maxSize
func (ms *memoryStore) evictIfNeeded() {
	now := time.Now()
	for key, item := range ms.items {
		if item.isExpired(now) {
			delete(ms.items, key)
		}
	}

	for ms.maxSize > 0 && len(ms.items) > ms.maxSize {
		var oldestKey string
		var oldest time.Time
		for key, item := range ms.items {
			if oldestKey == "" || item.expiresAt.Before(oldest) {
				oldestKey, oldest = key, item.expiresAt
			}
		}
		delete(ms.items, oldestKey)
	}
}

// cleanup periodically removes expired items
func (ms *memoryStore) cleanup(interval time.Duration) {
	defer close(ms.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			ms.mu.Lock()
			for key, item := range ms.items {
				if item.isExpired(now) {
					delete(ms.items, key)
				}
			}
			ms.mu.Unlock()
		case <-ms.stopChan:
			return
		}
	}
}

// close stops the cleanup goroutine and waits for it to exit
func (ms *memoryStore) close() {
	ms.stopOnce.Do(func() {
		close(ms.stopChan)
	})
	<-ms.done
}

func (ms *memoryStore) size() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.items)
}
