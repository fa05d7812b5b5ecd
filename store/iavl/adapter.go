/*
Package iavl provides the persistent, versioned root store of the
application: an iavl merkle tree saved in a goleveldb database (or in memory
for tests). Every Commit saves a new version and returns its merkle root,
which is reported to tendermint as the app hash.
*/
package iavl

import (
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

var errNilKey = errors.Wrap(errors.ErrDatabase, "nil key")

// CommitStore is the root store of the application. Writes go to the
// working tree and become a new version on Commit.
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens, or creates, the goleveldb database name.db in
// dir.
func NewCommitStore(dir string, name string) CommitStore {
	return newCommitStore(dbm.NewDB(name, dbm.GoLevelDBBackend, dir))
}

// NewMemCommitStore keeps everything in memory.
func NewMemCommitStore() CommitStore {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) CommitStore {
	return CommitStore{
		tree: iavl.NewMutableTree(db, DefaultCacheSize),
		db:   db,
	}
}

// Get reads from the last committed version, ignoring pending writes.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	if key == nil {
		return nil, errNilKey
	}
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val, nil
}

func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion restores the working tree from the newest saved
// version. An empty database loads as version 0.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}, nil
}

// Close releases the underlying database.
func (s CommitStore) Close() {
	s.db.Close()
}

// CacheWrap wraps the working tree with a btree cache. Writing the cache
// updates the working tree, which becomes persisted on the next Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter returns a wrapper around the working tree that satisfies
// CacheableKVStore. Reads see uncommitted writes.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return adapter{tree: s.tree}
}

// adapter exposes the working tree as a KVStore.
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = adapter{}

func (a adapter) Get(key []byte) ([]byte, error) {
	if key == nil {
		return nil, errNilKey
	}
	_, val := a.tree.Get(key)
	return val, nil
}

func (a adapter) Has(key []byte) (bool, error) {
	if key == nil {
		return false, errNilKey
	}
	return a.tree.Has(key), nil
}

// Set adds a new value. A nil value is stored as an empty one, as the
// tree does not accept nil values.
func (a adapter) Set(key, value []byte) error {
	if key == nil {
		return errNilKey
	}
	if value == nil {
		value = []byte{}
	}
	a.tree.Set(key, value)
	return nil
}

func (a adapter) Delete(key []byte) error {
	if key == nil {
		return errNilKey
	}
	a.tree.Remove(key)
	return nil
}

func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(a, a.NewBatch(), nil)
}

func (a adapter) Iterator(start, end []byte) (store.Iterator, error) {
	return a.collect(start, end, true), nil
}

func (a adapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return a.collect(start, end, false), nil
}

// collect loads the whole range into memory. The state of this
// application holds a handful of keys, so there is no need for a lazy
// tree walk.
func (a adapter) collect(start, end []byte, ascending bool) store.Iterator {
	var found []store.Model
	a.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		found = append(found, store.Pair(key, value))
		return false
	})
	return store.NewSliceIterator(found)
}
