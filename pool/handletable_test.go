package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-wepoll/api"
	"github.com/momentics/hioload-wepoll/pool"
)

func TestHandleTableLookup(t *testing.T) {
	tab := pool.NewHandleTable[string](0)
	a, err := tab.Alloc("a")
	require.NoError(t, err)
	b, err := tab.Alloc("b")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotZero(t, a)

	v, ok := tab.Lookup(a)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 2, tab.Len())

	_, ok = tab.Lookup(0)
	assert.False(t, ok)
}

func TestHandleTableStaleToken(t *testing.T) {
	tab := pool.NewHandleTable[string](0)
	old, _ := tab.Alloc("old")
	require.True(t, tab.Free(old))
	assert.False(t, tab.Free(old))

	fresh, err := tab.Alloc("new")
	require.NoError(t, err)
	assert.NotEqual(t, old, fresh)

	_, ok := tab.Lookup(old)
	assert.False(t, ok, "recycled slot must not resolve an old token")
	v, ok := tab.Lookup(fresh)
	require.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, tab.Len())
}

func TestHandleTableLimit(t *testing.T) {
	tab := pool.NewHandleTable[int](2)
	_, err := tab.Alloc(1)
	require.NoError(t, err)
	tok, err := tab.Alloc(2)
	require.NoError(t, err)

	_, err = tab.Alloc(3)
	require.ErrorIs(t, err, api.ErrOutOfMemory)

	tab.Free(tok)
	_, err = tab.Alloc(3)
	assert.NoError(t, err)
}
