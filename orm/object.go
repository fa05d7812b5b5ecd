package orm

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x"
)

// Object is a keyed value that a Bucket knows how to persist.
type Object interface {
	x.Validater
	Key() []byte
	SetKey([]byte)
	Value() timelock.Persistent
	// Clone returns a deep copy that can be used as a template to
	// unmarshal another stored value into.
	Clone() Object
}

// CloneableData is a model that can be wrapped by SimpleObj.
type CloneableData interface {
	x.Validater
	timelock.Persistent
	Copy() CloneableData
}

// SimpleObj pairs a key with a CloneableData value. Buckets embed it
// in their own type safe wrappers.
type SimpleObj struct {
	key   []byte
	value CloneableData
}

var _ Object = (*SimpleObj)(nil)

func NewSimpleObj(key []byte, value CloneableData) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte {
	return o.key
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

func (o SimpleObj) Value() timelock.Persistent {
	return o.value
}

// Validate requires both a key and a value and then defers to the
// value's own validation.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Wrap(errors.ErrEmpty, "object key")
	case o.value == nil:
		return errors.Wrap(errors.ErrEmpty, "object value")
	}
	return o.value.Validate()
}

func (o *SimpleObj) Clone() Object {
	c := &SimpleObj{value: o.value.Copy()}
	if len(o.key) != 0 {
		c.key = append([]byte(nil), o.key...)
	}
	return c
}
