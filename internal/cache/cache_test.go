package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"integramente-backend/internal/cache"
)

func TestKeyNormalization(t *testing.T) {
	assert.Equal(t,
		cache.Key("area", "x^2", "-2", "2"),
		cache.Key("area", " x ** 2 ", "-2", "2"),
		"spacing and power notation must share an entry")

	assert.NotEqual(t,
		cache.Key("area", "x^2", "-2", "2"),
		cache.Key("grafico", "x^2", "-2", "2"),
		"different operations must not collide")

	assert.NotEqual(t,
		cache.Key("area", "x^2", "-2", "2"),
		cache.Key("area", "x^2", "-2", "3"),
		"different parameters must not collide")
}

func TestMemoryGetSet(t *testing.T) {
	m := cache.NewMemory(10, time.Minute)

	_, ok := m.Get("missing")
	assert.False(t, ok)

	require.NoError(t, m.Set("k", "v"))
	got, ok := m.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestMemoryExpiry(t *testing.T) {
	m := cache.NewMemory(10, 10*time.Millisecond)
	require.NoError(t, m.Set("k", "v"))

	time.Sleep(25 * time.Millisecond)

	_, ok := m.Get("k")
	assert.False(t, ok, "entry must expire after its TTL")
}

func TestMemoryBounded(t *testing.T) {
	m := cache.NewMemory(2, time.Minute)
	require.NoError(t, m.Set("a", "1"))
	require.NoError(t, m.Set("b", "2"))
	require.NoError(t, m.Set("c", "3"))

	assert.LessOrEqual(t, m.Len(), 2)

	got, ok := m.Get("c")
	assert.True(t, ok, "the newest entry must survive eviction")
	assert.Equal(t, "3", got)
}

func TestMock(t *testing.T) {
	m := cache.NewMock()
	require.NoError(t, m.Set("k", "v"))
	got, ok := m.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}
