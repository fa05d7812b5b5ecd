package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/iov-one/timelock/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStoreConstructor returns a fresh store and a function releasing it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// TestSuite runs the same behaviour checks against any CacheableKVStore
// implementation. Each package testing a store provides the constructor.
type TestSuite struct {
	makeBase TestStoreConstructor
}

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that cache wraps isolate writes until Write is called.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	escrow, wallet, lock := []byte("escrow"), []byte("wallet"), []byte("lock")

	s.AssertGetHas(t, base, escrow, nil, false)
	require.NoError(t, base.Set(escrow, []byte("owner")))
	s.AssertGetHas(t, base, escrow, []byte("owner"), true)

	written := base.CacheWrap()
	s.AssertGetHas(t, written, escrow, []byte("owner"), true)
	require.NoError(t, written.Set(wallet, []byte("1000000 STX")))
	s.AssertGetHas(t, written, wallet, []byte("1000000 STX"), true)
	s.AssertGetHas(t, base, wallet, nil, false)
	require.NoError(t, written.Write())
	s.AssertGetHas(t, base, wallet, []byte("1000000 STX"), true)

	discarded := base.CacheWrap()
	require.NoError(t, discarded.Set(lock, []byte("wallet_1")))
	s.AssertGetHas(t, discarded, lock, []byte("wallet_1"), true)
	discarded.Discard()
	s.AssertGetHas(t, base, lock, nil, false)

	deleting := base.CacheWrap()
	require.NoError(t, deleting.Delete(escrow))
	s.AssertGetHas(t, deleting, escrow, nil, false)
	s.AssertGetHas(t, base, escrow, []byte("owner"), true)
	require.NoError(t, deleting.Write())
	s.AssertGetHas(t, base, escrow, nil, false)
	s.AssertGetHas(t, base, wallet, []byte("1000000 STX"), true)
}

// CacheConflicts checks a cache overriding and deleting parent values.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	k := func(n string) []byte { return []byte("key-" + n) }
	v := func(n string) []byte { return []byte("value-" + n) }

	cases := map[string]struct {
		parent []Op
		child  []Op
		// expected values by key, nil meaning missing
		wantParent map[string][]byte
		wantChild  map[string][]byte
	}{
		"override, delete and add": {
			parent:     []Op{SetOp(k("a"), v("a")), SetOp(k("b"), v("b"))},
			child:      []Op{SetOp(k("a"), v("a2")), DelOp(k("b")), SetOp(k("c"), v("c"))},
			wantParent: map[string][]byte{"a": v("a"), "b": v("b"), "c": nil},
			wantChild:  map[string][]byte{"a": v("a2"), "b": nil, "c": v("c")},
		},
		"delete then set the same key": {
			parent:     []Op{SetOp(k("d"), v("d"))},
			child:      []Op{DelOp(k("d")), SetOp(k("d"), v("d2"))},
			wantParent: map[string][]byte{"d": v("d")},
			wantChild:  map[string][]byte{"d": v("d2")},
		},
		"set then delete the same key": {
			child:      []Op{SetOp(k("e"), v("e")), DelOp(k("e"))},
			wantParent: map[string][]byte{"e": nil},
			wantChild:  map[string][]byte{"e": nil},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()
			applyOps(t, parent, tc.parent)
			child := parent.CacheWrap()
			applyOps(t, child, tc.child)

			for n, want := range tc.wantParent {
				s.AssertGetHas(t, parent, k(n), want, want != nil)
			}
			for n, want := range tc.wantChild {
				s.AssertGetHas(t, child, k(n), want, want != nil)
			}
			require.NoError(t, child.Write())
			for n, want := range tc.wantChild {
				s.AssertGetHas(t, parent, k(n), want, want != nil)
			}
		})
	}
}

// FuzzIterator applies random writes to a base store and a cache wrap and
// compares every iteration result with a plain map holding the same
// writes.
func (s *TestSuite) FuzzIterator(t *testing.T) {
	cases := map[string]struct {
		parentWrites int
		childWrites  int
	}{
		"child only":        {childWrites: 60},
		"parent only":       {parentWrites: 60},
		"parent and child":  {parentWrites: 40, childWrites: 40},
		"mostly overridden": {parentWrites: 10, childWrites: 80},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			ref := make(map[string][]byte)
			parentOps := randOps(tc.parentWrites)
			applyOps(t, base, parentOps)
			recordOps(ref, parentOps)

			// child ops reuse parent keys so overrides and deletes
			// hit existing data
			childOps := randOps(tc.childWrites)
			for i := range childOps {
				if i%3 == 0 && len(parentOps) > 0 {
					childOps[i].key = parentOps[i%len(parentOps)].key
				}
			}
			child := base.CacheWrap()
			applyOps(t, child, childOps)
			recordOps(ref, childOps)

			want := sortedModels(ref)
			assertRange(t, child, nil, nil, false, want)
			assertRange(t, child, nil, nil, true, want)
			if len(want) > 4 {
				lo, hi := len(want)/4, 3*len(want)/4
				assertRange(t, child, want[lo].Key, nil, false, want[lo:])
				assertRange(t, child, nil, want[hi].Key, false, want[:hi])
				assertRange(t, child, want[lo].Key, want[hi].Key, true, want[lo:hi])
			}
		})
	}
}

// IteratorWithConflicts checks iteration when the cache shadows or
// deletes parent keys.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	a, b, c, d := Pair([]byte("a"), []byte("1")), Pair([]byte("b"), []byte("2")),
		Pair([]byte("c"), []byte("3")), Pair([]byte("d"), []byte("4"))
	a2, b2 := Pair(a.Key, []byte("11")), Pair(b.Key, []byte("22"))

	cases := map[string]struct {
		parent []Op
		child  []Op
		want   []Model
	}{
		"child only": {
			child: setOps(c, a, b),
			want:  []Model{a, b, c},
		},
		"parent only": {
			parent: setOps(b, c, a),
			want:   []Model{a, b, c},
		},
		"child overrides parent": {
			parent: setOps(a, b, c),
			child:  setOps(a2, b2, d),
			want:   []Model{a2, b2, c, d},
		},
		"child deletes parent": {
			parent: setOps(a, c, d),
			child:  []Op{DelOp(a.Key), DelOp(b.Key), DelOp(d.Key)},
			want:   []Model{c},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			applyOps(t, base, tc.parent)
			child := base.CacheWrap()
			applyOps(t, child, tc.child)

			assertRange(t, child, nil, nil, false, tc.want)
			assertRange(t, child, nil, nil, true, tc.want)
			assertRange(t, child, []byte("b"), []byte("d"), false, between(tc.want, "b", "d"))
		})
	}
}

// AssertGetHas checks both Get and Has results for a key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

// assertRange iterates [start, end) and compares with the ascending want.
func assertRange(t testing.TB, kv ReadOnlyKVStore, start, end []byte, desc bool, want []Model) {
	t.Helper()
	var (
		it  Iterator
		err error
	)
	if desc {
		it, err = kv.ReverseIterator(start, end)
	} else {
		it, err = kv.Iterator(start, end)
	}
	require.NoError(t, err)
	defer it.Release()

	for i := range want {
		m := want[i]
		if desc {
			m = want[len(want)-1-i]
		}
		key, value, err := it.Next()
		require.NoError(t, err)
		require.Equal(t, m.Key, key, "position %d", i)
		assert.Equal(t, m.Value, value)
	}
	_, _, err = it.Next()
	require.True(t, errors.ErrIteratorDone.Is(err), "expected end of iteration, got %v", err)
}

func applyOps(t testing.TB, out SetDeleter, ops []Op) {
	t.Helper()
	for _, op := range ops {
		require.NoError(t, op.Apply(out))
	}
}

func recordOps(ref map[string][]byte, ops []Op) {
	for _, op := range ops {
		if op.del {
			delete(ref, string(op.key))
		} else {
			ref[string(op.key)] = op.value
		}
	}
}

// randOps returns n random writes, roughly one in four a delete.
func randOps(n int) []Op {
	ops := make([]Op, n)
	for i := range ops {
		key := randBytes(8)
		if key[0]%4 == 0 {
			ops[i] = DelOp(key)
		} else {
			ops[i] = SetOp(key, randBytes(24))
		}
	}
	return ops
}

func randBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

func setOps(ms ...Model) []Op {
	ops := make([]Op, len(ms))
	for i, m := range ms {
		ops[i] = SetOp(m.Key, m.Value)
	}
	return ops
}

func sortedModels(ref map[string][]byte) []Model {
	res := make([]Model, 0, len(ref))
	for k, v := range ref {
		res = append(res, Pair([]byte(k), v))
	}
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

// between filters sorted models to the keys in [start, end).
func between(ms []Model, start, end string) []Model {
	var res []Model
	for _, m := range ms {
		if string(m.Key) >= start && string(m.Key) < end {
			res = append(res, m)
		}
	}
	return res
}
