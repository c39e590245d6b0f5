package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(ctx, "users")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "users", []byte(`[{"id":"producer_0001"}]`)))

	raw, err := store.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"producer_0001"}]`, string(raw))

	require.NoError(t, store.Set(ctx, "users", []byte(`[]`)))
	raw, err = store.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw), "set overwrites the whole blob")

	require.NoError(t, store.Delete(ctx, "users"))
	_, err = store.Get(ctx, "users")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Delete(ctx, "users"), "deleting an absent key is not an error")
	require.NoError(t, store.Ping(ctx))
}

func TestMemoryStore_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	value := []byte("original")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'X'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(got), "stored blob is isolated from the caller's slice")

	got[0] = 'Y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(again))
}

func TestMemoryStore_MissingKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	require.NoError(t, store.Delete(ctx, "missing"))
}
