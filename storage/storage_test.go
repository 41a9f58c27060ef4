package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Load(ctx, "cart:alice")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Save(ctx, "cart:alice", []byte(`[{"qty":1}]`)))
	data, err := m.Load(ctx, "cart:alice")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"qty":1}]`), data)

	require.NoError(t, m.Remove(ctx, "cart:alice"))
	_, err = m.Load(ctx, "cart:alice")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Remove(ctx, "cart:alice"), "removing an absent key is fine")
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	in := []byte("original")
	require.NoError(t, m.Save(ctx, "k", in))
	in[0] = 'X'

	out, err := m.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), out)

	out[0] = 'Y'
	again, err := m.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestMemoryFailureHooks(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	boom := errors.New("quota exceeded")

	m.FailKey("orders", boom)
	require.NoError(t, m.Save(ctx, "cart:alice", []byte("x")))

	err := m.Save(ctx, "orders", []byte("y"))
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "orders", perr.Key)
	assert.ErrorIs(t, err, boom)

	m.FailKey("orders", nil)
	require.NoError(t, m.Save(ctx, "orders", []byte("y")))

	m.FailAll(boom)
	require.ErrorAs(t, m.Save(ctx, "cart:alice", []byte("z")), &perr)
	m.FailAll(nil)
	require.NoError(t, m.Save(ctx, "cart:alice", []byte("z")))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "cart:alice@example.com", CartKey("alice@example.com"))
	assert.Equal(t, "wishlist:alice@example.com", WishlistKey("alice@example.com"))
}
