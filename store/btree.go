package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/timelock/errors"
)

// btreeDegree is small since cache wraps only hold the writes of a
// single transaction or block.
const btreeDegree = 2

// MemStore returns an empty in-memory store. Nothing is persisted.
func MemStore() CacheableKVStore {
	var empty emptyStore
	return NewBTreeCacheWrap(empty, empty.NewBatch(), nil)
}

// BTreeCacheWrap buffers writes in a btree on top of a read only store.
// Reads see the buffered writes first. Write flushes them through the
// batch into the backing store.
type BTreeCacheWrap struct {
	tree  *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap caches writes destined to batch over back. All nested
// cache wraps share free, which is allocated when nil.
func NewBTreeCacheWrap(back ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:  btree.NewWithFreeList(btreeDegree, free),
		free:  free,
		back:  back,
		batch: batch,
	}
}

// CacheWrap stacks another cache over this one.
func (c BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(c, c.NewBatch(), c.free)
}

// NewBatch collects writes to replay on this cache.
func (c BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Write flushes all buffered changes and empties the cache.
func (c BTreeCacheWrap) Write() error {
	err := c.batch.Write()
	c.Discard()
	return err
}

// Discard drops all buffered changes. Nodes go back to the free list.
func (c BTreeCacheWrap) Discard() {
	for c.tree.DeleteMin() != nil {
	}
}

func (c BTreeCacheWrap) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	c.tree.ReplaceOrInsert(setItem{entry{key}, value})
	return c.batch.Set(key, value)
}

func (c BTreeCacheWrap) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	c.tree.ReplaceOrInsert(deletedItem{entry{key}})
	return c.batch.Delete(key)
}

func (c BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	switch it := c.tree.Get(entry{key}).(type) {
	case nil:
		return c.back.Get(key)
	case setItem:
		return it.value, nil
	case deletedItem:
		return nil, nil
	default:
		return nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", it)
	}
}

func (c BTreeCacheWrap) Has(key []byte) (bool, error) {
	switch it := c.tree.Get(entry{key}).(type) {
	case nil:
		return c.back.Has(key)
	case setItem:
		return true, nil
	case deletedItem:
		return false, nil
	default:
		return false, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", it)
	}
}

// Iterator walks [start, end) in ascending order over the cache merged
// with the backing store.
func (c BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := c.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIterator(c.snapshot(start, end), parent, false), nil
}

// ReverseIterator is Iterator in descending order.
func (c BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := c.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	items := c.snapshot(start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return newCacheIterator(items, parent, true), nil
}

// snapshot copies the cached items in [start, end) in ascending order.
// A nil bound leaves that side open.
func (c BTreeCacheWrap) snapshot(start, end []byte) []btree.Item {
	var items []btree.Item
	collect := func(i btree.Item) bool {
		items = append(items, i)
		return true
	}
	switch {
	case start == nil && end == nil:
		c.tree.Ascend(collect)
	case start == nil:
		c.tree.AscendLessThan(entry{end}, collect)
	case end == nil:
		c.tree.AscendGreaterOrEqual(entry{start}, collect)
	default:
		c.tree.AscendRange(entry{start}, entry{end}, collect)
	}
	return items
}

// keyer is implemented by every item stored in the cache tree.
type keyer interface {
	Key() []byte
}

// entry orders tree items by key. On its own it is used as a lookup
// pivot.
type entry struct {
	key []byte
}

func (e entry) Key() []byte {
	return e.key
}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(keyer).Key()) < 0
}

// deletedItem hides the backing value of its key.
type deletedItem struct {
	entry
}

type setItem struct {
	entry
	value []byte
}
