package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/codec"
)

const (
	pathLockMsg     = "escrow/lock"
	pathWithdrawMsg = "escrow/withdraw"
)

var _ timelock.Msg = (*LockMsg)(nil)

// LockMsg locks Amount of the native asset for the Beneficiary until the
// chain reaches UnlockHeight. It must be signed by the contract owner.
type LockMsg struct {
	Beneficiary  timelock.Address `protobuf:"bytes,1,opt,name=beneficiary,proto3"`
	UnlockHeight uint64           `protobuf:"varint,2,opt,name=unlock_height,proto3"`
	Amount       uint64           `protobuf:"varint,3,opt,name=amount,proto3"`
}

// Path returns the routing path for this message
func (LockMsg) Path() string {
	return pathLockMsg
}

// Validate accepts any lock message. Every argument is checked by the
// contract, in the order its preconditions are defined, so that the
// reported error does not depend on the message content alone.
func (m *LockMsg) Validate() error {
	return nil
}

type lockMsgWire LockMsg

func (m *lockMsgWire) Reset()         { *m = lockMsgWire{} }
func (m *lockMsgWire) String() string { return proto.CompactTextString(m) }
func (*lockMsgWire) ProtoMessage()    {}

func (m *LockMsg) Marshal() ([]byte, error) {
	return codec.Marshal((*lockMsgWire)(m))
}

func (m *LockMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*lockMsgWire)(m))
}

var _ timelock.Msg = (*WithdrawMsg)(nil)

// WithdrawMsg releases the locked funds to the beneficiary, who must sign
// it.
type WithdrawMsg struct{}

// Path returns the routing path for this message
func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

func (m *WithdrawMsg) Validate() error {
	return nil
}

type withdrawMsgWire WithdrawMsg

func (m *withdrawMsgWire) Reset()         { *m = withdrawMsgWire{} }
func (m *withdrawMsgWire) String() string { return proto.CompactTextString(m) }
func (*withdrawMsgWire) ProtoMessage()    {}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return codec.Marshal((*withdrawMsgWire)(m))
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*withdrawMsgWire)(m))
}
