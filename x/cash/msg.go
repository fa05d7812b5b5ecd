package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/codec"
	"github.com/iov-one/timelock/coin"
	"github.com/iov-one/timelock/errors"
)

// Ensure we implement the Msg interface
var _ timelock.Msg = (*SendMsg)(nil)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
	maxRefSize  int = 64
)

// SendMsg moves coins from the source to the destination account. The
// source must sign the transaction.
type SendMsg struct {
	Source      timelock.Address `protobuf:"bytes,1,opt,name=source,proto3"`
	Destination timelock.Address `protobuf:"bytes,2,opt,name=destination,proto3"`
	Amount      *coin.Coin       `protobuf:"bytes,3,opt,name=amount"`
	Memo        string           `protobuf:"bytes,4,opt,name=memo,proto3"`
	Ref         []byte           `protobuf:"bytes,5,opt,name=ref,proto3"`
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	if coin.IsEmpty(s.Amount) || !s.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive SendMsg: %v", s.Amount)
	}
	if err := s.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := s.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrState, "memo too long")
	}
	if len(s.Ref) > maxRefSize {
		return errors.Wrap(errors.ErrState, "ref too long")
	}
	return nil
}

type sendMsgWire SendMsg

func (m *sendMsgWire) Reset()         { *m = sendMsgWire{} }
func (m *sendMsgWire) String() string { return proto.CompactTextString(m) }
func (*sendMsgWire) ProtoMessage()    {}

func (s *SendMsg) Marshal() ([]byte, error) {
	return codec.Marshal((*sendMsgWire)(s))
}

func (s *SendMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*sendMsgWire)(s))
}
