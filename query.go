package timelock

import (
	"fmt"

	"github.com/iov-one/timelock/errors"
)

// Query modifiers follow a "?" in the query path, as in "/wallets?prefix".
// Without one the data is a single key.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers queries for a single path.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query handlers of one package to a router.
type QueryRegister func(QueryRouter)

// QueryRouter dispatches queries by path.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register binds h to path. Binding a path twice is a wiring mistake and
// panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, taken := r.routes[path]; taken {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.routes[path] = h
}

// Handler returns the handler of path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

// RegisterRawQuery serves "/" with direct reads of the store, by full key
// or, with the prefix modifier, by key prefix.
func RegisterRawQuery(qr QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db ReadOnlyKVStore, mod string, key []byte) ([]Model, error) {
	if mod == PrefixQueryMod {
		return scanPrefix(db, key)
	}
	value, err := db.Get(key)
	if err != nil || value == nil {
		return nil, err
	}
	return []Model{Pair(key, value)}, nil
}

func scanPrefix(db ReadOnlyKVStore, prefix []byte) ([]Model, error) {
	it, err := db.Iterator(prefix, PrefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var found []Model
	for {
		key, value, err := it.Next()
		switch {
		case errors.ErrIteratorDone.Is(err):
			return found, nil
		case err != nil:
			return nil, err
		}
		found = append(found, Pair(key, value))
	}
}

// PrefixEnd is the exclusive upper bound of all keys starting with
// prefix. It is nil, an open bound, when no such bound exists.
func PrefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
