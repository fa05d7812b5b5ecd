package app

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp completes StoreApp into a full abci.Application: raw
// transactions are decoded and passed to the handler stack.
type BaseApp struct {
	*StoreApp
	decode  timelock.TxDecoder
	handler timelock.Handler
	// debug exposes the details of unregistered errors to clients.
	debug bool
}

var _ abci.Application = BaseApp{}

func NewBaseApp(store *StoreApp, decode timelock.TxDecoder, handler timelock.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decode:   decode,
		handler:  handler,
		debug:    debug,
	}
}

// CheckTx runs the handler on the check cache. Its changes are dropped
// at the next commit.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decodeTx(raw)
	if err != nil {
		return timelock.CheckTxError(err, b.debug)
	}
	ctx := b.txContext("check_tx", tx)
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return timelock.CheckOrError(res, err, b.debug)
}

// DeliverTx runs the handler on the deliver cache, which is written at
// the next commit.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decodeTx(raw)
	if err != nil {
		return timelock.DeliverTxError(err, b.debug)
	}
	ctx := b.txContext("deliver_tx", tx)
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return timelock.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) txContext(call string, tx timelock.Tx) timelock.Context {
	return timelock.WithLogInfo(b.BlockContext(), "call", call, "path", timelock.GetPath(tx))
}

// decodeTx turns a decoder panic on malformed input into an error.
func (b BaseApp) decodeTx(raw []byte) (tx timelock.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decode(raw)
	return tx, err
}
