package cash

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x"
)

// RegisterRoutes binds the cash messages to their handlers.
func RegisterRoutes(r timelock.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// RegisterQuery serves the wallets at "/wallets".
func RegisterQuery(qr timelock.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler moves coins between two wallets on behalf of the source
// owner.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ timelock.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

// Check validates the message and its signer. Balances are only checked
// on Deliver.
func (h SendHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	if _, err := h.authorized(ctx, tx); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	msg, err := h.authorized(ctx, tx)
	if err != nil {
		return nil, err
	}
	amount := *msg.Amount
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, amount); err != nil {
		return nil, err
	}
	ev := TransferEvent(msg.Source, msg.Destination, amount)
	return &timelock.DeliverResult{Events: []timelock.Event{ev}}, nil
}

// authorized loads a valid SendMsg signed by its source.
func (h SendHandler) authorized(ctx timelock.Context, tx timelock.Tx) (*SendMsg, error) {
	var msg *SendMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "source %s did not sign", msg.Source)
	}
	return msg, nil
}
