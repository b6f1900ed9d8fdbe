// Package cache provides a lookaside cache for serialized quotes. Quotes are
// pure functions of their inputs, so a cached entry can never go stale; the
// cache only trades recomputation for a lookup and is safe to drop at any
// time.
package cache

import "sync"

// Cache stores serialized quotes keyed by their raw input triple.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Memory is an in-process Cache implementation. Safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the cached value for key, if present.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

// Set stores value under key.
func (m *Memory) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
