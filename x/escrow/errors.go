package escrow

import (
	"github.com/iov-one/timelock/errors"
)

// x/escrow reserves 100 ~ 109.
var (
	// ErrOwnerOnly is returned when anyone else than the owner tries to
	// lock the funds.
	ErrOwnerOnly = errors.Register(100, "owner only")

	// ErrAlreadyLocked is returned when locking a contract that is not in
	// the unlocked state.
	ErrAlreadyLocked = errors.Register(101, "already locked")

	// ErrUnlockInPast is returned when the unlock height is not above the
	// current block height.
	ErrUnlockInPast = errors.Register(102, "unlock height in the past")

	// ErrNoValue is returned when locking a zero amount.
	ErrNoValue = errors.Register(103, "no value")

	// ErrNotBeneficiary is returned when anyone else than the beneficiary
	// tries to withdraw the locked funds.
	ErrNotBeneficiary = errors.Register(104, "not beneficiary")

	// ErrNotYetUnlocked is returned when withdrawing before the chain
	// reaches the unlock height.
	ErrNotYetUnlocked = errors.Register(105, "not yet unlocked")

	// ErrNothingLocked is returned when withdrawing from a contract that
	// is not in the locked state.
	ErrNothingLocked = errors.Register(106, "nothing locked")
)
