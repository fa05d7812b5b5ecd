package orm

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// prefixScan loads every pair stored under prefix, in key order.
func prefixScan(db timelock.ReadOnlyKVStore, prefix []byte) ([]timelock.Model, error) {
	it, err := db.Iterator(prefix, timelock.PrefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var found []timelock.Model
	for {
		k, v, err := it.Next()
		switch {
		case errors.ErrIteratorDone.Is(err):
			return found, nil
		case err != nil:
			return nil, err
		}
		found = append(found, timelock.Pair(k, v))
	}
}
