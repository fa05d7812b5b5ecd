package escrow

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/coin"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x"
	"github.com/iov-one/timelock/x/cash"
)

const (
	lockCost     int64 = 300
	withdrawCost int64 = 100
)

// okData is returned as the result data of every successful call.
var okData = []byte{1}

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r timelock.Registry, auth x.Authenticator, bank cash.CoinMover) {
	bucket := NewBucket()
	r.Handle(pathLockMsg, LockHandler{auth: auth, bucket: bucket, bank: bank})
	r.Handle(pathWithdrawMsg, WithdrawHandler{auth: auth, bucket: bucket, bank: bank})
}

// RegisterQuery will register the contract as "/escrow". The query data
// is ignored, the deployed contract is always returned.
func RegisterQuery(qr timelock.QueryRouter) {
	qr.Register("/escrow", contractQuery{bucket: NewBucket()})
}

type contractQuery struct {
	bucket Bucket
}

func (q contractQuery) Query(db timelock.ReadOnlyKVStore, mod string, data []byte) ([]timelock.Model, error) {
	if mod != timelock.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	return q.bucket.Query(db, timelock.KeyQueryMod, contractKey)
}

// LockHandler locks the funds of the owner.
type LockHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.CoinMover
}

var _ timelock.Handler = LockHandler{}

// Check verifies all preconditions of the lock against the current state.
func (h LockHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	env, contract, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := contract.CanLock(env, msg.Beneficiary, msg.UnlockHeight, msg.Amount); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{GasAllocated: lockCost}, nil
}

// Deliver moves the funds to the contract account and stores the lock.
func (h LockHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	env, contract, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ledger := newLedger(db, h.bank)
	if err := contract.Lock(env, ledger, msg.Beneficiary, msg.UnlockHeight, msg.Amount); err != nil {
		return nil, err
	}
	if err := h.bucket.Store(db, contract); err != nil {
		return nil, errors.Wrap(err, "cannot store contract")
	}

	timelock.GetLogger(ctx).Info("funds locked",
		"beneficiary", contract.Beneficiary,
		"unlock_height", contract.UnlockHeight,
		"amount", contract.Amount)
	return &timelock.DeliverResult{Data: okData, Events: ledger.events}, nil
}

func (h LockHandler) validate(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (Env, *Contract, *LockMsg, error) {
	var msg *LockMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return Env{}, nil, nil, errors.Wrap(err, "load msg")
	}
	env, err := callEnv(ctx, h.auth)
	if err != nil {
		return Env{}, nil, nil, err
	}
	contract, err := h.bucket.Load(db)
	if err != nil {
		return Env{}, nil, nil, err
	}
	return env, contract, msg, nil
}

// WithdrawHandler releases the funds to the beneficiary.
type WithdrawHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.CoinMover
}

var _ timelock.Handler = WithdrawHandler{}

// Check verifies all preconditions of the withdrawal against the current
// state.
func (h WithdrawHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	env, contract, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := contract.CanWithdraw(env); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver moves the funds to the beneficiary and closes the contract.
func (h WithdrawHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	env, contract, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	beneficiary, amount := contract.Beneficiary, contract.Amount

	ledger := newLedger(db, h.bank)
	if err := contract.Withdraw(env, ledger); err != nil {
		return nil, err
	}
	if err := h.bucket.Store(db, contract); err != nil {
		return nil, errors.Wrap(err, "cannot store contract")
	}

	timelock.GetLogger(ctx).Info("funds withdrawn",
		"beneficiary", beneficiary,
		"amount", amount)
	return &timelock.DeliverResult{Data: okData, Events: ledger.events}, nil
}

func (h WithdrawHandler) validate(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (Env, *Contract, error) {
	var msg *WithdrawMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return Env{}, nil, errors.Wrap(err, "load msg")
	}
	env, err := callEnv(ctx, h.auth)
	if err != nil {
		return Env{}, nil, err
	}
	contract, err := h.bucket.Load(db)
	if err != nil {
		return Env{}, nil, err
	}
	return env, contract, nil
}

// callEnv reads the caller and the block height from the context. The
// caller is the main signer of the transaction.
func callEnv(ctx timelock.Context, auth x.Authenticator) (Env, error) {
	height, ok := timelock.GetHeight(ctx)
	if !ok {
		return Env{}, errors.Wrap(errors.ErrHuman, "block height not in context")
	}
	var caller timelock.Address
	if signer := x.MainSigner(ctx, auth); signer != nil {
		caller = signer.Address()
	}
	return Env{Caller: caller, Height: height}, nil
}

// ledger moves coins with the cash controller and records a transfer
// event for every move.
type ledger struct {
	db     timelock.KVStore
	bank   cash.CoinMover
	events []timelock.Event
}

var _ Ledger = (*ledger)(nil)

func newLedger(db timelock.KVStore, bank cash.CoinMover) *ledger {
	return &ledger{db: db, bank: bank}
}

func (l *ledger) Transfer(from, to timelock.Address, amount coin.Coin) error {
	if err := l.bank.MoveCoins(l.db, from, to, amount); err != nil {
		return err
	}
	l.events = append(l.events, cash.TransferEvent(from, to, amount))
	return nil
}
