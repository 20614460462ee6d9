package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore()

	sess := store.Create()
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.ID())

	got, ok := store.Get(sess.ID())
	require.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = store.Get("unknown")
	assert.False(t, ok)
}

func TestStoreGetOrCreate(t *testing.T) {
	store := NewStore()

	// empty id always creates
	first := store.GetOrCreate("")
	require.NotNil(t, first)

	// known id returns the same session
	same := store.GetOrCreate(first.ID())
	assert.Same(t, first, same)

	// unknown id creates a replacement
	fresh := store.GetOrCreate("expired-or-bogus")
	assert.NotEqual(t, first.ID(), fresh.ID())

	assert.Equal(t, 2, store.Count())
}

func TestStoreDelete(t *testing.T) {
	store := NewStore()
	sess := store.Create()

	store.Delete(sess.ID())

	_, ok := store.Get(sess.ID())
	assert.False(t, ok)
}

func TestStorePurgeIdle(t *testing.T) {
	store := NewStore()

	idle := store.Create()
	active := store.Create()

	time.Sleep(20 * time.Millisecond)
	active.Touch()

	purged := store.PurgeIdle(10 * time.Millisecond)
	assert.Equal(t, 1, purged)

	_, ok := store.Get(idle.ID())
	assert.False(t, ok)
	_, ok = store.Get(active.ID())
	assert.True(t, ok)
}
