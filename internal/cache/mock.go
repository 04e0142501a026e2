package cache

import "sync"

// Mock is an unbounded map cache for tests.
type Mock struct {
	mu   sync.Mutex
	Data map[string]string
}

func NewMock() *Mock {
	return &Mock{Data: make(map[string]string)}
}

func (m *Mock) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *Mock) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
	return nil
}
