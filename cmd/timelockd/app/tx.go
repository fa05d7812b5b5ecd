package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/codec"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/cash"
	"github.com/iov-one/timelock/x/escrow"
	"github.com/iov-one/timelock/x/sigs"
)

// Tx carries one message of this application and the signatures
// authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature
	Msg        timelock.Msg
}

// make sure tx fulfills all interfaces
var _ timelock.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (timelock.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (timelock.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "transaction carries no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures of this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// signatures are not part of the signed data
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

// txWire is the protobuf form of a Tx. Each message type has its own
// field and at most one of them is set.
type txWire struct {
	Signatures  []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures"`
	SendMsg     *cash.SendMsg        `protobuf:"bytes,10,opt,name=send_msg"`
	LockMsg     *escrow.LockMsg      `protobuf:"bytes,20,opt,name=lock_msg"`
	WithdrawMsg *escrow.WithdrawMsg  `protobuf:"bytes,21,opt,name=withdraw_msg"`
}

func (m *txWire) Reset()         { *m = txWire{} }
func (m *txWire) String() string { return proto.CompactTextString(m) }
func (*txWire) ProtoMessage()    {}

func (tx *Tx) Marshal() ([]byte, error) {
	w := txWire{Signatures: tx.Signatures}
	switch msg := tx.Msg.(type) {
	case nil:
	case *cash.SendMsg:
		w.SendMsg = msg
	case *escrow.LockMsg:
		w.LockMsg = msg
	case *escrow.WithdrawMsg:
		w.WithdrawMsg = msg
	default:
		return nil, errors.WithType(errors.ErrMsg, tx.Msg)
	}
	return codec.Marshal(&w)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	var w txWire
	if err := codec.Unmarshal(raw, &w); err != nil {
		return err
	}
	tx.Signatures = w.Signatures

	var msgs []timelock.Msg
	if w.SendMsg != nil {
		msgs = append(msgs, w.SendMsg)
	}
	if w.LockMsg != nil {
		msgs = append(msgs, w.LockMsg)
	}
	if w.WithdrawMsg != nil {
		msgs = append(msgs, w.WithdrawMsg)
	}
	switch len(msgs) {
	case 0:
	case 1:
		tx.Msg = msgs[0]
	default:
		return errors.Wrap(errors.ErrMsg, "more than one message")
	}
	return nil
}
