/*
Package orm stores typed objects in the key value store.

The key space is split into buckets. A bucket holds objects of a single
type, each saved under "<bucket name>:<object key>", and answers key and
prefix queries for them.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

var validBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket keeps objects of one type under a shared prefix. It is meant
// to be embedded in a wrapper that exposes type safe accessors.
type Bucket struct {
	name     string
	prefix   []byte
	template Object
}

var _ timelock.QueryHandler = Bucket{}

// NewBucket panics on a name that is not 3 to 10 lower case letters or
// underscores. template is cloned to decode stored values.
func NewBucket(name string, template Object) Bucket {
	if !validBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{
		name:     name,
		prefix:   []byte(name + ":"),
		template: template,
	}
}

func (b Bucket) Name() string {
	return b.name
}

// Register exposes the bucket on the query router under "/<path>".
// An empty path defaults to the bucket name.
func (b Bucket) Register(path string, r timelock.QueryRouter) {
	if path == "" {
		path = b.name
	}
	r.Register("/"+path, b)
}

// Query supports the key and the prefix query mods. A key miss returns
// no models and no error.
func (b Bucket) Query(db timelock.ReadOnlyKVStore, mod string, data []byte) ([]timelock.Model, error) {
	switch mod {
	case timelock.PrefixQueryMod:
		return prefixScan(db, b.DBKey(data))
	case timelock.KeyQueryMod:
		k := b.DBKey(data)
		raw, err := db.Get(k)
		if err != nil || raw == nil {
			return nil, err
		}
		return []timelock.Model{timelock.Pair(k, raw)}, nil
	}
	return nil, errors.Wrapf(errors.ErrInput, "query mod %q", mod)
}

// DBKey returns the prefixed key in a freshly allocated slice.
func (b Bucket) DBKey(key []byte) []byte {
	full := make([]byte, 0, len(b.prefix)+len(key))
	full = append(full, b.prefix...)
	return append(full, key...)
}

// Get returns nil without an error when nothing is stored under key.
func (b Bucket) Get(db timelock.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	return b.Parse(key, raw)
}

func (b Bucket) Has(db timelock.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse decodes a stored value into a new object with the given
// (unprefixed) key.
func (b Bucket) Parse(key, raw []byte) (Object, error) {
	obj := b.template.Clone()
	if err := obj.Value().Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "decode %s: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates obj before writing it.
func (b Bucket) Save(db timelock.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return err
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

func (b Bucket) Delete(db timelock.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// All loads every object of the bucket in key order.
func (b Bucket) All(db timelock.ReadOnlyKVStore) ([]Object, error) {
	pairs, err := prefixScan(db, b.prefix)
	if err != nil {
		return nil, err
	}
	objs := make([]Object, 0, len(pairs))
	for _, p := range pairs {
		obj, err := b.Parse(p.Key[len(b.prefix):], p.Value)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}
