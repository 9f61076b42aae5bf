package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Series []int `json:"series"`
}

func newTestCache(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	c, err := New(context.Background(), "redis://"+s.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, s
}

func TestRedisRoundTrip(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()

	var got entry
	hit, err := c.Get(ctx, "report:a", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "report:a", entry{Series: []int{0, 2, 1}}, time.Minute))
	hit, err = c.Get(ctx, "report:a", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []int{0, 2, 1}, got.Series)
	assert.Equal(t, time.Minute, s.TTL("report:a"))

	s.FastForward(2 * time.Minute)
	hit, err = c.Get(ctx, "report:a", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisDelete(t *testing.T) {
	c, s := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", 1, 0))
	require.NoError(t, c.Set(ctx, "k2", 2, 0))
	require.NoError(t, c.Delete(ctx))
	require.NoError(t, c.Delete(ctx, "k1", "k2"))
	assert.False(t, s.Exists("k1"))
	assert.False(t, s.Exists("k2"))
}

func TestRedisCorruptValue(t *testing.T) {
	c, s := newTestCache(t)
	require.NoError(t, s.Set("report:bad", "{not json"))

	var got entry
	hit, err := c.Get(context.Background(), "report:bad", &got)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestNewFailsWhenUnreachable(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	addr := s.Addr()
	s.Close()

	_, err = New(context.Background(), "redis://"+addr)
	assert.Error(t, err)

	_, err = New(context.Background(), "not a url")
	assert.Error(t, err)
}
