package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/timelock/errors"
)

// cacheIterator merges the items cached in a btree with the results of the
// parent store iterator. Cached items shadow parent values of the same key
// and deleted items hide them.
type cacheIterator struct {
	cached []btree.Item
	parent Iterator
	desc   bool

	// next parent item, valid if peeked is true
	peeked    bool
	pkey      []byte
	pvalue    []byte
	exhausted bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(cached []btree.Item, parent Iterator, desc bool) *cacheIterator {
	return &cacheIterator{
		cached: cached,
		parent: parent,
		desc:   desc,
	}
}

// peek loads the next parent item, unless already loaded.
func (c *cacheIterator) peek() error {
	if c.peeked || c.exhausted {
		return nil
	}
	key, value, err := c.parent.Next()
	if err != nil {
		if errors.ErrIteratorDone.Is(err) {
			c.exhausted = true
			return nil
		}
		return err
	}
	c.peeked = true
	c.pkey, c.pvalue = key, value
	return nil
}

func (c *cacheIterator) takeParent() ([]byte, []byte) {
	c.peeked = false
	return c.pkey, c.pvalue
}

// Next returns the next key/value pair, or ErrIteratorDone.
func (c *cacheIterator) Next() ([]byte, []byte, error) {
	for {
		if err := c.peek(); err != nil {
			return nil, nil, err
		}

		if len(c.cached) == 0 {
			if !c.peeked {
				return nil, nil, errors.ErrIteratorDone
			}
			key, value := c.takeParent()
			return key, value, nil
		}

		item := c.cached[0]
		if c.peeked {
			cmp := bytes.Compare(item.(keyer).Key(), c.pkey)
			if c.desc {
				cmp = -cmp
			}
			if cmp > 0 {
				key, value := c.takeParent()
				return key, value, nil
			}
			if cmp == 0 {
				// cached value overrides the parent
				c.takeParent()
			}
		}

		c.cached = c.cached[1:]
		switch t := item.(type) {
		case setItem:
			return t.key, t.value, nil
		case deletedItem:
			continue
		default:
			return nil, nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", item)
		}
	}
}

// Release releases the parent iterator.
func (c *cacheIterator) Release() {
	c.cached = nil
	c.parent.Release()
}
