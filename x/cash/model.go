package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/codec"
	"github.com/iov-one/timelock/coin"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

const BucketName = "cash"

// Set is the stored form of a wallet balance.
type Set struct {
	Coins coin.Coins `protobuf:"bytes,1,rep,name=coins" json:"coins"`
}

var _ orm.CloneableData = (*Set)(nil)

// Validate requires a sorted set of positive coins without duplicates.
func (s *Set) Validate() error {
	return s.Coins.Validate()
}

func (s *Set) Copy() orm.CloneableData {
	return &Set{Coins: s.Coins.Clone()}
}

type setWire Set

func (m *setWire) Reset()         { *m = setWire{} }
func (m *setWire) String() string { return proto.CompactTextString(m) }
func (*setWire) ProtoMessage()    {}

func (s *Set) Marshal() ([]byte, error) {
	return codec.Marshal((*setWire)(s))
}

func (s *Set) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*setWire)(s))
}

// Wallet is an account balance on the ledger, keyed by the owner's
// address. It is never stored empty: saving a wallet without coins
// removes it.
type Wallet struct {
	addr []byte
	set  *Set
}

var _ orm.Object = (*Wallet)(nil)

func NewWallet(addr timelock.Address) *Wallet {
	return &Wallet{addr: addr, set: &Set{}}
}

// WalletWith returns a wallet of addr holding the normalized sum of
// coins.
func WalletWith(addr timelock.Address, coins ...*coin.Coin) (*Wallet, error) {
	w := NewWallet(addr)
	if err := w.Concat(coins); err != nil {
		return nil, err
	}
	return w, nil
}

func (w Wallet) Key() []byte {
	return w.addr
}

func (w *Wallet) SetKey(addr []byte) {
	w.addr = addr
}

func (w Wallet) Value() timelock.Persistent {
	return w.set
}

func (w Wallet) Validate() error {
	if len(w.addr) == 0 {
		return errors.Wrap(errors.ErrEmpty, "wallet address")
	}
	return w.set.Validate()
}

func (w *Wallet) Clone() orm.Object {
	c := &Wallet{set: &Set{Coins: w.set.Coins.Clone()}}
	if len(w.addr) != 0 {
		c.addr = append([]byte(nil), w.addr...)
	}
	return c
}

func (w Wallet) Coins() coin.Coins {
	return w.set.Coins
}

// Add credits c to the wallet.
func (w *Wallet) Add(c coin.Coin) error {
	return w.update(func(cs coin.Coins) (coin.Coins, error) { return cs.Add(c) })
}

// Subtract debits c from the wallet. It fails with
// ErrInsufficientAmount when the balance is too small.
func (w *Wallet) Subtract(c coin.Coin) error {
	return w.update(func(cs coin.Coins) (coin.Coins, error) { return cs.Subtract(c) })
}

// Concat merges coins into the wallet keeping the set normalized.
func (w *Wallet) Concat(coins coin.Coins) error {
	return w.update(func(cs coin.Coins) (coin.Coins, error) { return cs.Combine(coins) })
}

// update replaces the balance only when fn succeeds.
func (w *Wallet) update(fn func(coin.Coins) (coin.Coins, error)) error {
	cs, err := fn(w.set.Coins)
	if err != nil {
		return err
	}
	w.set.Coins = cs
	return nil
}

// Bucket stores wallets under their address.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, NewWallet(nil))}
}

// Get returns nil when addr has no wallet.
func (b Bucket) Get(db timelock.ReadOnlyKVStore, addr timelock.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, addr)
	if err != nil || obj == nil {
		return nil, err
	}
	w, ok := obj.(*Wallet)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj)
	}
	return w, nil
}

// GetOrCreate is like Get but returns an empty wallet instead of nil.
func (b Bucket) GetOrCreate(db timelock.ReadOnlyKVStore, addr timelock.Address) (*Wallet, error) {
	w, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return NewWallet(addr), nil
	}
	return w, nil
}

func (b Bucket) Save(db timelock.KVStore, w *Wallet) error {
	if w.Coins().IsEmpty() {
		return b.Bucket.Delete(db, w.Key())
	}
	return b.Bucket.Save(db, w)
}
