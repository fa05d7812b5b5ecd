package cash

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/coin"
	"github.com/iov-one/timelock/errors"
)

// TransferEventType is the type of the event emitted for every coin move.
const TransferEventType = "transfer"

// Balancer is an interface to query the amount of coins.
type Balancer interface {
	Balance(timelock.ReadOnlyKVStore, timelock.Address) (coin.Coins, error)
}

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins moves the given amount from source to destination. It
	// fails without any change if the source does not hold enough.
	MoveCoins(timelock.KVStore, timelock.Address, timelock.Address, coin.Coin) error
}

// CoinMinter is an interface to create new coins.
type CoinMinter interface {
	CoinMint(timelock.KVStore, timelock.Address, coin.Coin) error
}

// Controller is the functionality needed by cash.Handler and cash.Decorator.
// BaseController should work plenty fine, but you can add other logic if
// so desired
type Controller interface {
	Balancer
	CoinMover
	CoinMinter
}

// BaseController is a simple implementation of controller
// wallet must return something that supports AsSet
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a basic controller implementation
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount of coins stored at a given address. An unknown
// address holds no coins.
func (c BaseController) Balance(store timelock.ReadOnlyKVStore, src timelock.Address) (coin.Coins, error) {
	w, err := c.bucket.Get(store, src)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get account state")
	}
	if w == nil {
		return nil, nil
	}
	return w.Coins(), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(store timelock.KVStore, src timelock.Address, dest timelock.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	sender, err := c.bucket.Get(store, src)
	if err != nil {
		return errors.Wrap(err, "cannot get sender")
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %s, need %s", src, sender.Coins(), amount)
	}
	if err := sender.Subtract(amount); err != nil {
		return errors.Wrap(err, "cannot subtract")
	}
	// Save the sender before loading the recipient, so that a move to
	// self reads the updated wallet.
	if err := c.bucket.Save(store, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return errors.Wrap(err, "cannot get recipient")
	}
	if err := recipient.Add(amount); err != nil {
		return errors.Wrap(err, "cannot add")
	}
	return c.bucket.Save(store, recipient)
}

// CoinMint attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(store timelock.KVStore, dest timelock.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}

// TransferEvent returns the event that reports a coin move.
func TransferEvent(src, dest timelock.Address, amount coin.Coin) timelock.Event {
	return timelock.NewEvent(TransferEventType,
		"sender", src.String(),
		"recipient", dest.String(),
		"amount", amount.String(),
	)
}
