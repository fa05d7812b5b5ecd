package app

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// CommitStore keeps the committed state together with the two caches
// transactions run on between commits: one for DeliverTx, one for
// CheckTx.
type CommitStore struct {
	committed timelock.CommitKVStore
	deliver   timelock.KVCacheWrap
	check     timelock.KVCacheWrap
}

// NewCommitStore loads the latest version of store and panics if that
// is not possible.
func NewCommitStore(store timelock.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the version and hash of the last commit.
func (cs *CommitStore) CommitInfo() (timelock.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists the deliver cache as a new version. The check cache
// is dropped and both caches start over from the new state.
func (cs *CommitStore) Commit() (timelock.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return timelock.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() timelock.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() timelock.CacheableKVStore {
	return cs.deliver
}

// chainIDKey is kept outside of any bucket; the "_tl:" prefix is
// reserved for the application.
const chainIDKey = "_tl:chainID"

// mustLoadChainID returns the stored chain id, or "" before genesis.
func mustLoadChainID(db timelock.ReadOnlyKVStore) string {
	raw, err := db.Get([]byte(chainIDKey))
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// saveChainID stores chainID once. A second call fails with
// ErrUnauthorized.
func saveChainID(db timelock.KVStore, chainID string) error {
	if !timelock.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	key := []byte(chainIDKey)
	switch set, err := db.Has(key); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case set:
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set at genesis only")
	}
	if err := db.Set(key, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
