// Package cache stores serialized calculation responses keyed by the
// normalized expression and parameters.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

type Repository interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Key hashes the operation name, normalized expression and parameters.
// Normalization makes "x^2" and " x ** 2 " share an entry.
func Key(operation, funcao string, params ...string) string {
	norm := strings.ToLower(funcao)
	norm = strings.ReplaceAll(norm, " ", "")
	norm = strings.ReplaceAll(norm, "**", "^")

	h := md5.Sum([]byte(operation + "|" + norm + "|" + strings.Join(params, "|")))
	return hex.EncodeToString(h[:])
}

type entry struct {
	value     string
	expiresAt time.Time
}

// Memory is a TTL cache with a bounded entry count.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	entries map[string]entry
}

func NewMemory(max int, ttl time.Duration) *Memory {
	if max < 1 {
		max = 1
	}
	return &Memory{
		ttl:     ttl,
		max:     max,
		entries: make(map[string]entry),
	}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		delete(m.entries, key)
		return "", false
	}
	return e.value, true
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) >= m.max {
		m.prune()
	}
	m.entries[key] = entry{value: value, expiresAt: time.Now().Add(m.ttl)}
	return nil
}

// prune drops expired entries; if none have expired, an arbitrary entry
// goes so the cache stays bounded.
func (m *Memory) prune() {
	now := time.Now()
	removed := false
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
			removed = true
		}
	}
	if !removed {
		for k := range m.entries {
			delete(m.entries, k)
			break
		}
	}
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
