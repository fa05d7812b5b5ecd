package timelock

import (
	"strings"

	"github.com/tendermint/tendermint/libs/common"
)

// eventTagKey marks the beginning of an event when flattened into tags.
const eventTagKey = "event"

// Event is a notification emitted by a handler as part of a successful
// transaction. An event is a type and an ordered list of attributes.
type Event struct {
	Type       string
	Attributes []EventAttribute
}

// EventAttribute is a single key/value pair of an event.
type EventAttribute struct {
	Key   string
	Value string
}

// NewEvent returns an event of the given type. Attributes are given as
// consecutive key, value pairs. A trailing key without a value is ignored.
func NewEvent(typ string, keyvals ...string) Event {
	e := Event{Type: typ}
	for i := 0; i+1 < len(keyvals); i += 2 {
		e.Attributes = append(e.Attributes, EventAttribute{Key: keyvals[i], Value: keyvals[i+1]})
	}
	return e
}

// Attr returns the value of the first attribute with given key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Tags flattens the event into ABCI tags. The first tag is
// "event=<type>", followed by one "<type>.<key>=<value>" tag per
// attribute.
func (e Event) Tags() []common.KVPair {
	tags := make([]common.KVPair, 0, len(e.Attributes)+1)
	tags = append(tags, common.KVPair{Key: []byte(eventTagKey), Value: []byte(e.Type)})
	for _, a := range e.Attributes {
		tags = append(tags, common.KVPair{
			Key:   []byte(e.Type + "." + a.Key),
			Value: []byte(a.Value),
		})
	}
	return tags
}

// EventsFromTags restores the events flattened with Event.Tags. Tags that
// do not belong to an event are ignored.
func EventsFromTags(tags []common.KVPair) []Event {
	var (
		events []Event
		cur    *Event
	)
	for _, t := range tags {
		key := string(t.Key)
		if key == eventTagKey {
			events = append(events, Event{Type: string(t.Value)})
			cur = &events[len(events)-1]
			continue
		}
		if cur == nil || !strings.HasPrefix(key, cur.Type+".") {
			cur = nil
			continue
		}
		cur.Attributes = append(cur.Attributes, EventAttribute{
			Key:   strings.TrimPrefix(key, cur.Type+"."),
			Value: string(t.Value),
		})
	}
	return events
}

// EventsOfType returns all events with given type, preserving the order.
func EventsOfType(events []Event, typ string) []Event {
	var res []Event
	for _, e := range events {
		if e.Type == typ {
			res = append(res, e)
		}
	}
	return res
}
