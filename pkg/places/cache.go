package places

import (
	"context"
	"sync"
	"time"
)

// Cache stores resolved place details keyed by place id.
type Cache interface {
	Get(ctx context.Context, placeID string) (*Details, error)
	Set(ctx context.Context, placeID string, details *Details) error
}

// MemoryCache is a process-local Cache with per-entry TTL. Used when no
// Redis instance is configured.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	details   Details
	expiresAt time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryCache) Get(_ context.Context, placeID string) (*Details, error) {
	m.mu.RLock()
	entry, ok := m.entries[placeID]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	details := entry.details
	return &details, nil
}

func (m *MemoryCache) Set(_ context.Context, placeID string, details *Details) error {
	if details == nil {
		return nil
	}
	m.mu.Lock()
	m.entries[placeID] = memoryEntry{
		details:   *details,
		expiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Unlock()
	return nil
}
