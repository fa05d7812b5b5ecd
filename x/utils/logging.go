package utils

import (
	"time"

	"github.com/iov-one/timelock"
)

// Logging writes one log entry per processed transaction together with
// the time it took. Failures are reported at error level, delivered
// transactions at info and checked ones at debug.
type Logging struct{}

var _ timelock.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Checker) (*timelock.CheckResult, error) {
	started := time.Now()
	res, err := next.Check(ctx, db, tx)
	var text string
	if res != nil {
		text = res.Log
	}
	report(ctx, time.Since(started), text, err, true)
	return res, err
}

func (Logging) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (*timelock.DeliverResult, error) {
	started := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var text string
	if res != nil {
		text = res.Log
	}
	report(ctx, time.Since(started), text, err, false)
	return res, err
}

// report always emits an entry, even with an empty text, because the
// key values attached to the context logger are useful on their own.
func report(ctx timelock.Context, took time.Duration, text string, err error, checkOnly bool) {
	logger := timelock.GetLogger(ctx).With("duration", took/time.Microsecond)
	if err != nil {
		logger.Error(text, "err", err)
		return
	}
	if checkOnly {
		logger.Debug(text)
		return
	}
	logger.Info(text)
}
