package escrow

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/codec"
	"github.com/iov-one/timelock/coin"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

// BucketName is where the contract is stored.
const BucketName = "escrow"

// contractKey is the only key used in the bucket. There is a single
// contract per chain.
var contractKey = []byte("contract")

// State is the lifecycle state of a contract.
type State int32

const (
	Unlocked State = iota
	Locked
	Withdrawn
)

func (s State) String() string {
	switch s {
	case Unlocked:
		return "unlocked"
	case Locked:
		return "locked"
	case Withdrawn:
		return "withdrawn"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Contract is the persisted state of the time-locked wallet.
type Contract struct {
	Owner        timelock.Address `protobuf:"bytes,1,opt,name=owner,proto3"`
	Ticker       string           `protobuf:"bytes,2,opt,name=ticker,proto3"`
	State        State            `protobuf:"varint,3,opt,name=state,proto3"`
	Beneficiary  timelock.Address `protobuf:"bytes,4,opt,name=beneficiary,proto3"`
	UnlockHeight uint64           `protobuf:"varint,5,opt,name=unlock_height,proto3"`
	Amount       uint64           `protobuf:"varint,6,opt,name=amount,proto3"`
}

var _ orm.CloneableData = (*Contract)(nil)

// IsLocked returns true if funds are locked.
func (c *Contract) IsLocked() bool {
	return c.State == Locked
}

// Validate ensures the lock fields are set only while locked.
func (c *Contract) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if !coin.IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "ticker %q", c.Ticker)
	}
	switch c.State {
	case Locked:
		if err := c.Beneficiary.Validate(); err != nil {
			return errors.Wrap(err, "beneficiary")
		}
		if c.Amount == 0 {
			return errors.Wrap(errors.ErrModel, "locked contract without amount")
		}
		if c.UnlockHeight == 0 {
			return errors.Wrap(errors.ErrModel, "locked contract without unlock height")
		}
	case Unlocked, Withdrawn:
		if len(c.Beneficiary) != 0 || c.Amount != 0 || c.UnlockHeight != 0 {
			return errors.Wrapf(errors.ErrModel, "%s contract with lock fields", c.State)
		}
	default:
		return errors.Wrapf(errors.ErrModel, "unknown %s", c.State)
	}
	return nil
}

// Copy returns a deep copy of the contract.
func (c *Contract) Copy() orm.CloneableData {
	cpy := *c
	cpy.Owner = append(timelock.Address(nil), c.Owner...)
	if c.Beneficiary != nil {
		cpy.Beneficiary = append(timelock.Address(nil), c.Beneficiary...)
	}
	return &cpy
}

type contractWire Contract

func (m *contractWire) Reset()         { *m = contractWire{} }
func (m *contractWire) String() string { return proto.CompactTextString(m) }
func (*contractWire) ProtoMessage()    {}

func (c *Contract) Marshal() ([]byte, error) {
	return codec.Marshal((*contractWire)(c))
}

func (c *Contract) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*contractWire)(c))
}

// Bucket stores the contract under a fixed key.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns the bucket of the escrow contract.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Contract{})),
	}
}

// Load returns the deployed contract. It fails with ErrNotFound if no
// contract was deployed.
func (b Bucket) Load(db timelock.ReadOnlyKVStore) (*Contract, error) {
	obj, err := b.Get(db, contractKey)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load contract")
	}
	if obj == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "contract not deployed")
	}
	c, ok := obj.Value().(*Contract)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return c, nil
}

// Store saves the contract.
func (b Bucket) Store(db timelock.KVStore, c *Contract) error {
	return b.Save(db, orm.NewSimpleObj(contractKey, c))
}
