package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock/codec"
	"github.com/iov-one/timelock/errors"
)

// Counter is a minimal model used by the tests of this package.
type Counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3"`
}

var _ CloneableData = (*Counter)(nil)

type counterWire Counter

func (m *counterWire) Reset()         { *m = counterWire{} }
func (m *counterWire) String() string { return proto.CompactTextString(m) }
func (*counterWire) ProtoMessage()    {}

func (c *Counter) Marshal() ([]byte, error) {
	return codec.Marshal((*counterWire)(c))
}

func (c *Counter) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*counterWire)(c))
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative count")
	}
	return nil
}

func (c *Counter) Copy() CloneableData {
	return &Counter{Count: c.Count}
}
