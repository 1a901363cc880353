package pricecache

import (
	"context"
	"sync"
	"time"

	"stock-spike-analyzer/internal/types"
)

// MemoryStore is an in-process TTL cache
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*cacheEntry
	stop chan struct{}
	once sync.Once
}

type cacheEntry struct {
	series    types.PriceSeries
	expiresAt time.Time
}

// NewMemoryStore creates a memory cache that sweeps expired entries every interval.
func NewMemoryStore(sweep time.Duration) *MemoryStore {
	m := &MemoryStore{
		data: make(map[string]*cacheEntry),
		stop: make(chan struct{}),
	}
	if sweep > 0 {
		go m.cleanupLoop(sweep)
	}
	return m
}

func (m *MemoryStore) Backend() string { return "memory" }

func (m *MemoryStore) Get(_ context.Context, key string) (types.PriceSeries, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.data[key]
	if !exists || time.Now().After(entry.expiresAt) {
		return types.PriceSeries{}, false, nil
	}
	return entry.series, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, series types.PriceSeries, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = &cacheEntry{series: series, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Len returns the number of stored entries, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Close stops the sweeper.
func (m *MemoryStore) Close() {
	m.once.Do(func() { close(m.stop) })
}

func (m *MemoryStore) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.stop:
			return
		}
	}
}

func (m *MemoryStore) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for key, entry := range m.data {
		if now.After(entry.expiresAt) {
			delete(m.data, key)
		}
	}
}
