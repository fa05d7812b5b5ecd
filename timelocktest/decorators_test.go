package timelocktest

import (
	"testing"

	"github.com/iov-one/timelock/errors"
)

func TestDecoratorPassesThrough(t *testing.T) {
	var (
		d Decorator
		h Handler
	)
	if _, err := d.Check(nil, nil, nil, &h); err != nil {
		t.Fatalf("check: %v", err)
	}
	if _, err := d.Deliver(nil, nil, nil, &h); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	assertCalls(t, &h.counter, 1, 1)
	assertCalls(t, &d.counter, 1, 1)
}

func TestDecoratorFailureStopsTheChain(t *testing.T) {
	d := Decorator{CheckErr: errors.ErrUnauthorized, DeliverErr: errors.ErrNotFound}
	var h Handler

	if _, err := d.Check(nil, nil, nil, &h); !errors.ErrUnauthorized.Is(err) {
		t.Errorf("check: unexpected error %v", err)
	}
	if _, err := d.Deliver(nil, nil, nil, &h); !errors.ErrNotFound.Is(err) {
		t.Errorf("deliver: unexpected error %v", err)
	}
	assertCalls(t, &h.counter, 0, 0)
	assertCalls(t, &d.counter, 1, 1)
}
