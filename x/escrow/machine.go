package escrow

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/coin"
	"github.com/iov-one/timelock/errors"
)

// Env is what the state machine knows about the call being executed.
type Env struct {
	// Caller is the address of the account that sent the call.
	Caller timelock.Address
	// Height is the height of the block the call is executed in.
	Height int64
}

// Ledger moves coins between accounts. A transfer either fully succeeds or
// fails without any change.
type Ledger interface {
	Transfer(from, to timelock.Address, amount coin.Coin) error
}

// Account returns the address of the account that holds the locked coins
// of a contract deployed by given owner.
func Account(owner timelock.Address) timelock.Address {
	return timelock.NewCondition("escrow", "wallet", owner).Address()
}

// Account returns the address of the account holding the locked coins.
func (c *Contract) Account() timelock.Address {
	return Account(c.Owner)
}

// CanLock returns the error a lock with given arguments would fail with, or
// nil. The preconditions are checked in order and the first failure is
// returned.
func (c *Contract) CanLock(env Env, beneficiary timelock.Address, unlockHeight, amount uint64) error {
	if !env.Caller.Equals(c.Owner) {
		return errors.Wrapf(ErrOwnerOnly, "caller %s", env.Caller)
	}
	if c.State != Unlocked {
		return errors.Wrapf(ErrAlreadyLocked, "contract is %s", c.State)
	}
	if env.Height < 0 || unlockHeight <= uint64(env.Height) {
		return errors.Wrapf(ErrUnlockInPast, "unlock height %d, current height %d", unlockHeight, env.Height)
	}
	if amount == 0 {
		return errors.Wrap(ErrNoValue, "amount must be positive")
	}
	if err := beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	return nil
}

// Lock moves amount from the caller to the contract account and records
// the beneficiary and the unlock height. The contract is modified only if
// the transfer succeeded.
func (c *Contract) Lock(env Env, l Ledger, beneficiary timelock.Address, unlockHeight, amount uint64) error {
	if err := c.CanLock(env, beneficiary, unlockHeight, amount); err != nil {
		return err
	}
	if err := l.Transfer(env.Caller, c.Account(), coin.NewCoin(amount, c.Ticker)); err != nil {
		return errors.Wrap(err, "cannot lock funds")
	}
	c.State = Locked
	c.Beneficiary = beneficiary
	c.UnlockHeight = unlockHeight
	c.Amount = amount
	return nil
}

// CanWithdraw returns the error a withdrawal would fail with, or nil.
func (c *Contract) CanWithdraw(env Env) error {
	if c.State != Locked {
		return errors.Wrapf(ErrNothingLocked, "contract is %s", c.State)
	}
	if !env.Caller.Equals(c.Beneficiary) {
		return errors.Wrapf(ErrNotBeneficiary, "caller %s", env.Caller)
	}
	if env.Height < 0 || uint64(env.Height) < c.UnlockHeight {
		return errors.Wrapf(ErrNotYetUnlocked, "unlocks at %d, current height %d", c.UnlockHeight, env.Height)
	}
	return nil
}

// Withdraw releases the locked amount to the beneficiary. The contract
// ends in the withdrawn state with the lock cleared.
func (c *Contract) Withdraw(env Env, l Ledger) error {
	if err := c.CanWithdraw(env); err != nil {
		return err
	}
	if err := l.Transfer(c.Account(), c.Beneficiary, coin.NewCoin(c.Amount, c.Ticker)); err != nil {
		return errors.Wrap(err, "cannot release funds")
	}
	c.State = Withdrawn
	c.Beneficiary = nil
	c.UnlockHeight = 0
	c.Amount = 0
	return nil
}
