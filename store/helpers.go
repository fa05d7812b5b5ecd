package store

import (
	"github.com/iov-one/timelock/errors"
)

// SliceIterator iterates over models already loaded in memory.
type SliceIterator struct {
	models []Model
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Next() ([]byte, []byte, error) {
	if len(s.models) == 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.models[0]
	s.models = s.models[1:]
	return m.Key, m.Value, nil
}

func (s *SliceIterator) Release() {
	s.models = nil
}

// emptyStore is the bottom layer of MemStore. It holds nothing and
// ignores writes.
type emptyStore struct{}

var _ KVStore = emptyStore{}

func (emptyStore) Get([]byte) ([]byte, error) { return nil, nil }
func (emptyStore) Has([]byte) (bool, error) { return false, nil }
func (emptyStore) Set(key, value []byte) error { return nil }
func (emptyStore) Delete([]byte) error { return nil }
func (e emptyStore) NewBatch() Batch { return NewNonAtomicBatch(e) }
func (emptyStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}
func (emptyStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// Op is a single queued write, either a set or a delete.
type Op struct {
	key   []byte
	value []byte
	del   bool
}

// SetOp queues writing value under key.
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp queues removing key.
func DelOp(key []byte) Op {
	return Op{key: key, del: true}
}

// Apply performs the write on out.
func (o Op) Apply(out SetDeleter) error {
	if o.del {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch replays queued ops one by one on Write. A failure half
// way leaves the earlier ops applied, so only use it over in-memory
// stores.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write applies and clears the queue.
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

// ShowOps returns the ops not yet written.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
