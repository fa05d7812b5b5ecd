package timelocktest

import (
	"reflect"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
)

func assertCalls(t *testing.T, c *counter, checks, delivers int) {
	t.Helper()
	if c.CheckCallCount() != checks || c.DeliverCallCount() != delivers {
		t.Errorf("want %d checks and %d delivers, got %d and %d",
			checks, delivers, c.CheckCallCount(), c.DeliverCallCount())
	}
	if c.CallCount() != checks+delivers {
		t.Errorf("want %d calls, got %d", checks+delivers, c.CallCount())
	}
}

func TestHandlerCountsFailedCalls(t *testing.T) {
	h := Handler{CheckErr: errors.ErrUnauthorized, DeliverErr: errors.ErrNotFound}

	if _, err := h.Check(nil, nil, nil); !errors.ErrUnauthorized.Is(err) {
		t.Errorf("check: unexpected error %v", err)
	}
	if _, err := h.Deliver(nil, nil, nil); !errors.ErrNotFound.Is(err) {
		t.Errorf("deliver: unexpected error %v", err)
	}
	if _, err := h.Deliver(nil, nil, nil); err == nil {
		t.Error("deliver: want error")
	}
	assertCalls(t, &h.counter, 1, 2)
}

func TestHandlerReturnsCopies(t *testing.T) {
	h := Handler{
		CheckResult:   timelock.CheckResult{Data: []byte("checked"), GasAllocated: 5},
		DeliverResult: timelock.DeliverResult{Events: []timelock.Event{timelock.NewEvent("transfer", "amount", "1 STX")}},
	}

	cres, _ := h.Check(nil, nil, nil)
	if !reflect.DeepEqual(&h.CheckResult, cres) {
		t.Fatalf("check result: %+v", cres)
	}
	cres.GasAllocated = 99
	if h.CheckResult.GasAllocated != 5 {
		t.Fatal("configured result was modified")
	}

	dres, _ := h.Deliver(nil, nil, nil)
	if !reflect.DeepEqual(&h.DeliverResult, dres) {
		t.Fatalf("deliver result: %+v", dres)
	}
}

func TestWriteHandlerWritesBeforeFailing(t *testing.T) {
	db := store.MemStore()
	h := WriteHandler{Key: []byte("k"), Value: []byte("v"), Err: errors.ErrHuman}

	if _, err := h.Deliver(nil, db, nil); !errors.ErrHuman.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := db.Get([]byte("k")); string(v) != "v" {
		t.Fatalf("value not written: %q", v)
	}
}
