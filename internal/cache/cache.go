// Package cache stores rendered section responses keyed by dataset version and filters.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Cache is a best-effort byte store: failures are misses, never errors.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// Key builds a cache key for a section under a dataset version and a set of criteria.
func Key(version uint64, section string, criteria any) string {
	raw, err := json.Marshal(criteria)
	if err != nil {
		raw = []byte(fmt.Sprintf("%+v", criteria))
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("v%d:%s:%s", version, section, hex.EncodeToString(sum[:12]))
}

type entry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process Cache, used when no Redis is configured.
type Memory struct {
	ttl     time.Duration
	maxSize int
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// NewMemory creates a Memory cache holding at most maxSize entries for ttl each.
func NewMemory(ttl time.Duration, maxSize int) *Memory {
	return &Memory{ttl: ttl, maxSize: maxSize, now: time.Now, entries: map[string]entry{}}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().After(e.expires) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if len(m.entries) >= m.maxSize {
		for k, e := range m.entries {
			if now.After(e.expires) {
				delete(m.entries, k)
			}
		}
		// still full: start over rather than track recency
		if len(m.entries) >= m.maxSize {
			clear(m.entries)
		}
	}
	m.entries[key] = entry{value: value, expires: now.Add(m.ttl)}
}
