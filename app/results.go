package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/codec"
	"github.com/iov-one/timelock/errors"
)

// ResultSet is the list of keys or values returned by a query.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results"`
}

var _ timelock.Persistent = (*ResultSet)(nil)

type resultSetWire ResultSet

func (m *resultSetWire) Reset()         { *m = resultSetWire{} }
func (m *resultSetWire) String() string { return proto.CompactTextString(m) }
func (*resultSetWire) ProtoMessage()    {}

func (r *ResultSet) Marshal() ([]byte, error) {
	return codec.Marshal((*resultSetWire)(r))
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*resultSetWire)(r))
}

// ResultsFromKeys collects the keys of models, in order.
func ResultsFromKeys(models []timelock.Model) *ResultSet {
	return collect(models, func(m timelock.Model) []byte { return m.Key })
}

// ResultsFromValues collects the values of models, in order.
func ResultsFromValues(models []timelock.Model) *ResultSet {
	return collect(models, func(m timelock.Model) []byte { return m.Value })
}

func collect(models []timelock.Model, field func(timelock.Model) []byte) *ResultSet {
	set := &ResultSet{Results: make([][]byte, 0, len(models))}
	for _, m := range models {
		set.Results = append(set.Results, field(m))
	}
	return set
}

// JoinResults pairs up the keys and values of a query response.
func JoinResults(keys, values *ResultSet) ([]timelock.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys and %d values", len(keys.Results), len(values.Results))
	}
	models := make([]timelock.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = timelock.Pair(k, values.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult decodes the first value of a query response into o.
// An empty response leaves o untouched.
func UnmarshalOneResult(raw []byte, o timelock.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return err
	}
	if len(set.Results) == 0 {
		return nil
	}
	return o.Unmarshal(set.Results[0])
}
