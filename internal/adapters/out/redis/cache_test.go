package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAdapter(t *testing.T) *Adapter {
	t.Helper()

	mr := miniredis.RunT(t)
	adapter, err := NewAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

func TestAdapter_GetSet(t *testing.T) {
	adapter := buildAdapter(t)
	ctx := context.Background()

	err := adapter.Set(ctx, "rates:navex", []byte("12.5"), 10*time.Second)
	assert.NoError(t, err)

	value, err := adapter.Get(ctx, "rates:navex")
	assert.NoError(t, err)
	assert.Equal(t, []byte("12.5"), value)
}

func TestAdapter_GetNotFound(t *testing.T) {
	adapter := buildAdapter(t)

	_, err := adapter.Get(context.Background(), "missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "key not found")
}

func TestAdapter_Delete(t *testing.T) {
	adapter := buildAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k", []byte("v"), 0))
	assert.NoError(t, adapter.Delete(ctx, "k"))

	_, err := adapter.Get(ctx, "k")
	assert.Error(t, err)
}

func TestAdapter_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	adapter, err := NewAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	defer adapter.Close()

	ctx := context.Background()
	require.NoError(t, adapter.Set(ctx, "k", []byte("v"), time.Second))

	_, err = adapter.Get(ctx, "k")
	assert.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = adapter.Get(ctx, "k")
	assert.Error(t, err)
}

func TestAdapter_Ping(t *testing.T) {
	adapter := buildAdapter(t)
	assert.NoError(t, adapter.Ping(context.Background()))
}

func TestNewAdapter_InvalidURL(t *testing.T) {
	_, err := NewAdapter("invalid://url")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
