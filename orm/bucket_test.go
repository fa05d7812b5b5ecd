package orm

import (
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketName(t *testing.T) {
	obj := NewSimpleObj(nil, &Counter{})

	assert.Panics(t, func() {
		// An invalid bucket name must crash.
		NewBucket("l33t", obj)
	})
}

func TestBucketCannotSaveInvalid(t *testing.T) {
	o := NewSimpleObj([]byte("mykey"), &Counter{Count: -999})
	b := NewBucket("mybucket", o)

	db := store.MemStore()
	err := b.Save(db, o)
	require.True(t, errors.ErrState.Is(err), "invalid object must not save: %v", err)

	err = b.Save(db, NewSimpleObj(nil, &Counter{Count: 1}))
	require.True(t, errors.ErrEmpty.Is(err), "object without a key must not save: %v", err)
}

func TestBucketGetSaveDelete(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, &Counter{}))
	db := store.MemStore()

	obj, err := b.Get(db, []byte("a"))
	require.NoError(t, err)
	assert.Nil(t, obj)

	require.NoError(t, b.Save(db, NewSimpleObj([]byte("a"), &Counter{Count: 848})))

	obj, err = b.Get(db, []byte("a"))
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, []byte("a"), obj.Key())
	assert.Equal(t, int64(848), obj.Value().(*Counter).Count)

	has, err := b.Has(db, []byte("a"))
	require.NoError(t, err)
	assert.True(t, has)

	// Stored under the prefixed key.
	raw, err := db.Get([]byte("cnts:a"))
	require.NoError(t, err)
	assert.NotNil(t, raw)

	require.NoError(t, b.Delete(db, []byte("a")))
	obj, err = b.Get(db, []byte("a"))
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestBucketDBKeyDoesNotAlias(t *testing.T) {
	b := NewBucket("four", NewSimpleObj(nil, &Counter{}))
	k1 := b.DBKey([]byte("ABC"))
	k2 := b.DBKey([]byte("LED"))
	assert.Equal(t, "four:ABC", string(k1))
	assert.Equal(t, "four:LED", string(k2))
}

func TestBucketParseFailure(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, &Counter{}))
	_, err := b.Parse([]byte("a"), []byte{0xff, 0xff})
	assert.True(t, errors.ErrState.Is(err))
}

func TestBucketQuery(t *testing.T) {
	b := NewBucket("cnts", NewSimpleObj(nil, &Counter{}))
	other := NewBucket("others", NewSimpleObj(nil, &Counter{}))
	db := store.MemStore()

	for i, k := range []string{"aa", "ab", "b"} {
		require.NoError(t, b.Save(db, NewSimpleObj([]byte(k), &Counter{Count: int64(i + 1)})))
	}
	require.NoError(t, other.Save(db, NewSimpleObj([]byte("aa"), &Counter{Count: 7})))

	qr := timelock.NewQueryRouter()
	b.Register("counters", qr)
	h := qr.Handler("/counters")
	require.NotNil(t, h)

	res, err := h.Query(db, timelock.KeyQueryMod, []byte("ab"))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []byte("cnts:ab"), res[0].Key)

	res, err = h.Query(db, timelock.KeyQueryMod, []byte("zz"))
	require.NoError(t, err)
	assert.Len(t, res, 0)

	res, err = h.Query(db, timelock.PrefixQueryMod, []byte("a"))
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, []byte("cnts:aa"), res[0].Key)
	assert.Equal(t, []byte("cnts:ab"), res[1].Key)

	_, err = h.Query(db, "nope", nil)
	assert.True(t, errors.ErrInput.Is(err))

	all, err := b.All(db)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []byte("b"), all[2].Key())
	assert.Equal(t, int64(3), all[2].Value().(*Counter).Count)
}

func TestCloneIsIndependent(t *testing.T) {
	o := NewSimpleObj([]byte("k"), &Counter{Count: 5})
	c := o.Clone()
	c.Value().(*Counter).Count = 9
	c.SetKey([]byte("x"))
	assert.Equal(t, int64(5), o.Value().(*Counter).Count)
	assert.Equal(t, []byte("k"), o.Key())
}
