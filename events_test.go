package timelock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func TestEventTags(t *testing.T) {
	e := NewEvent("transfer", "sender", "A1", "recipient", "B2", "amount", "10 STX")
	tags := e.Tags()
	require.Len(t, tags, 4)
	assert.Equal(t, "event", string(tags[0].Key))
	assert.Equal(t, "transfer", string(tags[0].Value))
	assert.Equal(t, "transfer.amount", string(tags[3].Key))
	assert.Equal(t, "10 STX", string(tags[3].Value))

	v, ok := e.Attr("recipient")
	assert.True(t, ok)
	assert.Equal(t, "B2", v)
	_, ok = e.Attr("memo")
	assert.False(t, ok)
}

func TestEventsFromTags(t *testing.T) {
	first := NewEvent("transfer", "sender", "A1", "recipient", "B2", "amount", "10 STX")
	second := NewEvent("lock", "beneficiary", "B2")

	var tags []common.KVPair
	tags = append(tags, common.KVPair{Key: []byte("action"), Value: []byte("escrow/lock")})
	tags = append(tags, first.Tags()...)
	tags = append(tags, second.Tags()...)
	tags = append(tags, common.KVPair{Key: []byte("signer"), Value: []byte("A1")})

	events := EventsFromTags(tags)
	assert.Equal(t, []Event{first, second}, events)
	assert.Equal(t, []Event{first}, EventsOfType(events, "transfer"))
	assert.Empty(t, EventsFromTags(nil))
}

func TestNewEventIgnoresDanglingKey(t *testing.T) {
	e := NewEvent("transfer", "sender", "A1", "recipient")
	assert.Len(t, e.Attributes, 1)
}
