package timelocktest

import "github.com/iov-one/timelock"

// Tx carries Msg and fails GetMsg with Err when it is set. It cannot
// be serialized.
type Tx struct {
	Msg timelock.Msg
	Err error
}

var _ timelock.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (timelock.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

func (*Tx) Marshal() ([]byte, error) {
	panic("timelocktest.Tx cannot be marshaled")
}

func (*Tx) Unmarshal([]byte) error {
	panic("timelocktest.Tx cannot be unmarshaled")
}

// Msg is routed by RoutePath and serializes to Serialized. Err, when
// set, is returned by every method that can fail.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ timelock.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
