package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetExpire(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	_, err := m.Get(ctx, "blog:list")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "blog:list", []byte("[]"), 0))
	val, err := m.Get(ctx, "blog:list")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(val))

	now = now.Add(2 * time.Minute)
	_, err = m.Get(ctx, "blog:list")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 0, m.Len())
}

func TestMemoryInvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)
	require.NoError(t, m.Set(ctx, "blog:a", []byte("1"), 0))
	require.NoError(t, m.Set(ctx, "blog:b", []byte("2"), 0))
	require.NoError(t, m.Set(ctx, "org:regions", []byte("3"), 0))

	require.NoError(t, m.InvalidatePrefix(ctx, PrefixBlog))
	assert.Equal(t, 1, m.Len())
	_, err := m.Get(ctx, "org:regions")
	assert.NoError(t, err)
}

func TestFetchLoadsOnceThenServesCache(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)
	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"Kigali", "South"}, nil
	}

	first, err := Fetch(ctx, m, "org:regions", load)
	require.NoError(t, err)
	second, err := Fetch(ctx, m, "org:regions", load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	Invalidate(ctx, m, PrefixOrganization)
	_, err = Fetch(ctx, m, "org:regions", load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)
	boom := errors.New("boom")

	_, err := Fetch(ctx, m, "blog:x", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, m.Len())
}

func TestFetchWithoutCache(t *testing.T) {
	v, err := Fetch(context.Background(), nil, "k", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestNewPicksMemoryWithoutURL(t *testing.T) {
	c, err := New("", "gbur:", 0)
	require.NoError(t, err)
	_, ok := c.(*Memory)
	assert.True(t, ok)
}

func TestFetchSkipsRefillAfterConcurrentInvalidate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)
	stored := "old"

	// The write and its invalidation land while the first load is in flight.
	got, err := Fetch(ctx, m, "blog:list", func() (string, error) {
		read := stored
		stored = "new"
		Invalidate(ctx, m, PrefixBlog)
		return read, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "old", got)
	assert.Equal(t, 0, m.Len())

	got, err = Fetch(ctx, m, "blog:list", func() (string, error) { return stored, nil })
	require.NoError(t, err)
	assert.Equal(t, "new", got)
	assert.Equal(t, 1, m.Len())
}

func TestInvalidateOnlyBumpsItsPrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	require.NoError(t, m.InvalidatePrefix(ctx, PrefixBlog))
	blogGen, err := m.Generation(ctx, PrefixBlog)
	require.NoError(t, err)
	orgGen, err := m.Generation(ctx, PrefixOrganization)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), blogGen)
	assert.Zero(t, orgGen)

	assert.Equal(t, PrefixBlog, prefixOf("blog:list:published:0:100:0"))
	assert.Equal(t, PrefixCategories, prefixOf("categories:active"))
}
