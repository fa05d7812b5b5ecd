package timelocktest

import "github.com/iov-one/timelock"

// counter tracks how many times the Check and Deliver methods of a mock
// were called.
type counter struct {
	checks   int
	delivers int
}

func (c *counter) CheckCallCount() int {
	return c.checks
}

func (c *counter) DeliverCallCount() int {
	return c.delivers
}

func (c *counter) CallCount() int {
	return c.checks + c.delivers
}

// Decorator is a timelock.Decorator mock. A set CheckErr or DeliverErr
// is returned without calling the next handler. Every call is counted,
// failed ones included.
type Decorator struct {
	counter
	CheckErr   error
	DeliverErr error
}

var _ timelock.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Checker) (*timelock.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (*timelock.DeliverResult, error) {
	d.delivers++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}
