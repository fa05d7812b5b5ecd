package app

import (
	"reflect"

	"github.com/iov-one/timelock"
)

// Decorators is an ordered list of decorators waiting for the handler
// they wrap. The first decorator runs first.
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(router)
type Decorators struct {
	list []timelock.Decorator
}

// ChainDecorators starts a list. Nil decorators are skipped.
func ChainDecorators(ds ...timelock.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a new list with ds appended. Nil decorators are skipped.
func (d Decorators) Chain(ds ...timelock.Decorator) Decorators {
	list := make([]timelock.Decorator, len(d.list), len(d.list)+len(ds))
	copy(list, d.list)
	for _, dec := range ds {
		if !isNil(dec) {
			list = append(list, dec)
		}
	}
	return Decorators{list: list}
}

// isNil also catches a nil pointer stored in the interface.
func isNil(d timelock.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler returns h wrapped by every decorator of the list.
func (d Decorators) WithHandler(h timelock.Handler) timelock.Handler {
	for i := len(d.list) - 1; i >= 0; i-- {
		h = wrapped{dec: d.list[i], next: h}
	}
	return h
}

// wrapped is a handler that calls dec with next.
type wrapped struct {
	dec  timelock.Decorator
	next timelock.Handler
}

var _ timelock.Handler = wrapped{}

func (w wrapped) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	return w.dec.Check(ctx, db, tx, w.next)
}

func (w wrapped) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	return w.dec.Deliver(ctx, db, tx, w.next)
}
