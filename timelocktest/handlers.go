package timelocktest

import "github.com/iov-one/timelock"

// Handler is a timelock.Handler mock returning a copy of the configured
// result, or the configured error. Every call is counted.
type Handler struct {
	counter
	CheckResult   timelock.CheckResult
	CheckErr      error
	DeliverResult timelock.DeliverResult
	DeliverErr    error
}

var _ timelock.Handler = (*Handler)(nil)

func (h *Handler) Check(timelock.Context, timelock.KVStore, timelock.Tx) (*timelock.CheckResult, error) {
	h.checks++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(timelock.Context, timelock.KVStore, timelock.Tx) (*timelock.DeliverResult, error) {
	h.delivers++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler sets Key to Value and then fails with Err, if set. It
// shows whether the writes of a failed transaction survive.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ timelock.Handler = WriteHandler{}

func (h WriteHandler) write(db timelock.KVStore) error {
	if err := db.Set(h.Key, h.Value); err != nil {
		return err
	}
	return h.Err
}

func (h WriteHandler) Check(_ timelock.Context, db timelock.KVStore, _ timelock.Tx) (*timelock.CheckResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{}, nil
}

func (h WriteHandler) Deliver(_ timelock.Context, db timelock.KVStore, _ timelock.Tx) (*timelock.DeliverResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &timelock.DeliverResult{}, nil
}

// PanicHandler panics with Msg on every call.
type PanicHandler struct {
	Msg string
}

var _ timelock.Handler = PanicHandler{}

func (h PanicHandler) Check(timelock.Context, timelock.KVStore, timelock.Tx) (*timelock.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(timelock.Context, timelock.KVStore, timelock.Tx) (*timelock.DeliverResult, error) {
	panic(h.Msg)
}
