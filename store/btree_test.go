package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBase() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestBTreeCacheGetSet(t *testing.T) {
	NewTestSuite(makeBase).GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	NewTestSuite(makeBase).CacheConflicts(t)
}

func TestBTreeFuzzIterator(t *testing.T) {
	NewTestSuite(makeBase).FuzzIterator(t)
}

func TestBTreeIteratorWithConflicts(t *testing.T) {
	NewTestSuite(makeBase).IteratorWithConflicts(t)
}

func TestNestedCacheWraps(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))

	outer := base.CacheWrap()
	require.NoError(t, outer.Set([]byte("b"), []byte("2")))

	inner := outer.CacheWrap()
	require.NoError(t, inner.Delete([]byte("a")))
	require.NoError(t, inner.Set([]byte("c"), []byte("3")))

	// inner discarded, outer unchanged
	inner.Discard()
	v, err := outer.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	has, err := outer.Has([]byte("c"))
	require.NoError(t, err)
	assert.False(t, has)

	// base only sees the outer write once it is written
	has, err = base.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)
	require.NoError(t, outer.Write())
	v, err = base.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}

func TestNilKeyIsRejected(t *testing.T) {
	s := MemStore()
	assert.Error(t, s.Set(nil, []byte("x")))
	assert.Error(t, s.Delete(nil))
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	b := NewNonAtomicBatch(base)
	require.NoError(t, b.Set([]byte("k"), []byte("v")))
	require.NoError(t, b.Delete([]byte("gone")))
	assert.Len(t, b.ShowOps(), 2)

	has, err := base.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, b.Write())
	assert.Empty(t, b.ShowOps())
	has, err = base.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, has)
}
