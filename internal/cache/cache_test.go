package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entries cuenta también los expirados que aún no se limpiaron
func entries(c *Cache) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func TestCache_SetGet(t *testing.T) {
	c := New(context.Background(), time.Minute, 0)

	c.Set("product:1", "coat")
	v, ok := c.GetValue("product:1")
	require.True(t, ok)
	assert.Equal(t, "coat", v)

	_, ok = c.GetValue("product:2")
	assert.False(t, ok)
}

func TestCache_Expiration(t *testing.T) {
	c := New(context.Background(), time.Minute, 0)

	c.Set("short", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.GetValue("short")
	assert.False(t, ok)
	assert.Equal(t, 1, entries(c))

	c.removeExpired()
	assert.Equal(t, 0, entries(c))
}

func TestCache_DeleteByPrefix(t *testing.T) {
	c := New(context.Background(), time.Minute, 0)

	c.Set("products:list:all", 1)
	c.Set("products:list:featured", 2)
	c.Set("product:abc", 3)

	c.DeleteByPrefix("products:list:")

	assert.Equal(t, 1, entries(c))
	_, ok := c.GetValue("product:abc")
	assert.True(t, ok)

	c.DeleteByPrefix("product:")
	assert.Equal(t, 0, entries(c))
}

func TestCache_Disabled(t *testing.T) {
	c := New(context.Background(), 0, time.Millisecond)

	c.Set("k", "v")
	_, ok := c.GetValue("k")
	assert.False(t, ok)
	assert.False(t, c.Enabled())
	assert.Equal(t, 0, entries(c))

	var nilCache *Cache
	nilCache.Set("k", "v")
	_, ok = nilCache.GetValue("k")
	assert.False(t, ok)
}

func TestCache_CleanupStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := New(ctx, time.Minute, time.Millisecond)

	c.Set("gone", 1, time.Nanosecond)
	require.Eventually(t, func() bool {
		return entries(c) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
}
