/*
Package codec serializes the models and transactions of this application in
the protobuf wire format.

Fields are described by protobuf struct tags and encoded by the gogo
reflection marshaller, so a stored value stays readable by any protobuf
implementation that knows the field numbers. Zero values of proto3 fields
are omitted and unknown fields are skipped on decoding.

gogo hands control back to any type with its own Marshal method, so a
persisted type passes a method-free view of itself:

	type Wallet struct {
		Address []byte       `protobuf:"bytes,1,opt,name=address,proto3"`
		Coins   []*coin.Coin `protobuf:"bytes,2,rep,name=coins"`
	}

	type walletWire Wallet

	func (m *walletWire) Reset()         { *m = walletWire{} }
	func (m *walletWire) String() string { return proto.CompactTextString(m) }
	func (*walletWire) ProtoMessage()    {}

	func (w *Wallet) Marshal() ([]byte, error) {
		return codec.Marshal((*walletWire)(w))
	}

	func (w *Wallet) Unmarshal(raw []byte) error {
		return codec.Unmarshal(raw, (*walletWire)(w))
	}

Embedded messages may keep their own Marshal method: the marshaller calls it
for them.
*/
package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock/errors"
)

// Marshal serializes m using the protobuf tags of its fields.
func Marshal(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "protobuf: %s", err)
	}
	return raw, nil
}

// Unmarshal resets m and fills it from raw. Malformed input fails with
// ErrInput.
func Unmarshal(raw []byte, m proto.Message) error {
	if err := proto.Unmarshal(raw, m); err != nil {
		return errors.Wrapf(errors.ErrInput, "protobuf: %s", err)
	}
	return nil
}
