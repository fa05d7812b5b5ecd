package timelock

import (
	"reflect"

	"github.com/iov-one/timelock/errors"
)

// Marshaller is anything with a binary form. Marshal may validate first,
// so it can fail.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent can be written to and restored from its binary form.
// Unmarshal usually needs a pointer receiver, which is why it is kept
// apart from Marshaller.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is the state transition a transaction asks for. It carries no
// authentication, that is the job of the enclosing Tx.
type Msg interface {
	Persistent

	// Path names the handler of the message, for example
	// "escrow/lock". It matches [a-zA-Z0-9_/]+.
	Path() string

	// Validate checks the message on its own, without any state.
	Validate() error
}

// Tx is what a client submits: a single message plus whatever the
// decorators need, such as signatures. Every application defines its
// own Tx type.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses a raw transaction.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath returns the path of the message of tx, or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg stores the message of tx in dest and validates it. dest must
// point to a variable of the expected message type:
//
//   var msg *LockMsg
//   if err := timelock.LoadMsg(tx, &msg); err != nil { ... }
//
// A message of another type fails with ErrType.
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "transaction carries no message")
	}

	ptr := reflect.ValueOf(dest)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "destination must be a non nil pointer, got %T", dest)
	}
	target, val := ptr.Elem(), reflect.ValueOf(msg)
	if !val.Type().AssignableTo(target.Type()) {
		return errors.Wrapf(errors.ErrType, "want %s, got %T", target.Type(), msg)
	}
	target.Set(val)

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
