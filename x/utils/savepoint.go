package utils

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// Savepoint runs the rest of the stack on a cache wrap of the store.
// Changes are written back only when the call succeeds, which makes a
// transaction all or nothing. A zero Savepoint does nothing; enable it
// for CheckTx and/or DeliverTx with OnCheck and OnDeliver.
type Savepoint struct {
	check   bool
	deliver bool
}

var _ timelock.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a copy that also isolates CheckTx calls.
func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

// OnDeliver returns a copy that also isolates DeliverTx calls.
func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Checker) (*timelock.CheckResult, error) {
	if !s.check {
		return next.Check(ctx, db, tx)
	}
	var res *timelock.CheckResult
	err := isolated(db, func(kv timelock.KVStore) (err error) {
		res, err = next.Check(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (*timelock.DeliverResult, error) {
	if !s.deliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *timelock.DeliverResult
	err := isolated(db, func(kv timelock.KVStore) (err error) {
		res, err = next.Deliver(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolated calls fn with a cache wrap of db and persists the cached
// changes only if fn returns no error. Stores that cannot be wrapped are
// passed through unchanged.
func isolated(db timelock.KVStore, fn func(timelock.KVStore) error) error {
	cacheable, ok := db.(timelock.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write savepoint")
	}
	return nil
}
