package escrow

import (
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/coin"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/timelocktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transfer struct {
	from, to timelock.Address
	amount   coin.Coin
}

// memLedger keeps balances of a single ticker in memory.
type memLedger struct {
	balances  map[string]uint64
	transfers []transfer
}

func newMemLedger() *memLedger {
	return &memLedger{balances: make(map[string]uint64)}
}

func (l *memLedger) fund(addr timelock.Address, amount uint64) {
	l.balances[addr.String()] += amount
}

func (l *memLedger) balance(addr timelock.Address) uint64 {
	return l.balances[addr.String()]
}

func (l *memLedger) Transfer(from, to timelock.Address, amount coin.Coin) error {
	if l.balances[from.String()] < amount.Amount {
		return errors.Wrap(errors.ErrInsufficientAmount, "balance")
	}
	l.balances[from.String()] -= amount.Amount
	l.balances[to.String()] += amount.Amount
	l.transfers = append(l.transfers, transfer{from: from, to: to, amount: amount})
	return nil
}

func newContract(owner timelock.Address) *Contract {
	return &Contract{Owner: owner, Ticker: "STX", State: Unlocked}
}

func TestLockAuthorization(t *testing.T) {
	owner := timelocktest.NewCondition().Address()
	beneficiary := timelocktest.NewCondition().Address()

	callers := map[string]timelock.Address{
		"no caller":   nil,
		"beneficiary": beneficiary,
		"stranger":    timelocktest.NewCondition().Address(),
	}
	// Arguments that would fail every other precondition must still
	// report the caller.
	args := []struct {
		beneficiary timelock.Address
		unlockHeight uint64
		amount      uint64
	}{
		{beneficiary, 10, 10},
		{beneficiary, 1, 0},
		{nil, 0, 10},
		{timelock.Address("short"), 0, 0},
	}

	for name, caller := range callers {
		t.Run(name, func(t *testing.T) {
			for _, a := range args {
				l := newMemLedger()
				l.fund(caller, 100)
				c := newContract(owner)
				env := Env{Caller: caller, Height: 5}

				err := c.Lock(env, l, a.beneficiary, a.unlockHeight, a.amount)
				require.True(t, ErrOwnerOnly.Is(err), "unexpected error: %+v", err)
				assert.Empty(t, l.transfers)
				assert.Equal(t, Unlocked, c.State)
				assert.EqualValues(t, 100, l.balance(caller))
			}
		})
	}
}

func TestLockOnlyOnce(t *testing.T) {
	owner := timelocktest.NewCondition().Address()
	beneficiary := timelocktest.NewCondition().Address()
	stranger := timelocktest.NewCondition().Address()

	l := newMemLedger()
	l.fund(owner, 100)
	c := newContract(owner)
	require.NoError(t, c.Lock(Env{Caller: owner, Height: 1}, l, beneficiary, 10, 10))
	require.Len(t, l.transfers, 1)

	// Once locked, the owner is told the contract is locked and everyone
	// else is still rejected as not being the owner.
	err := c.Lock(Env{Caller: owner, Height: 1}, l, beneficiary, 10, 10)
	assert.True(t, ErrAlreadyLocked.Is(err), "unexpected error: %+v", err)
	err = c.Lock(Env{Caller: owner, Height: 2}, l, stranger, 100, 1)
	assert.True(t, ErrAlreadyLocked.Is(err), "unexpected error: %+v", err)
	err = c.Lock(Env{Caller: stranger, Height: 2}, l, stranger, 100, 1)
	assert.True(t, ErrOwnerOnly.Is(err), "unexpected error: %+v", err)

	assert.Len(t, l.transfers, 1)
	assert.Equal(t, beneficiary, c.Beneficiary)
	assert.EqualValues(t, 10, c.UnlockHeight)
	assert.EqualValues(t, 10, c.Amount)
}

func TestLockUnlockHeight(t *testing.T) {
	cases := map[string]struct {
		height       int64
		unlockHeight uint64
		wantErr      *errors.Error
	}{
		"zero unlock height": {
			height:       0,
			unlockHeight: 0,
			wantErr:      ErrUnlockInPast,
		},
		"in the past": {
			height:       11,
			unlockHeight: 10,
			wantErr:      ErrUnlockInPast,
		},
		"current height": {
			height:       10,
			unlockHeight: 10,
			wantErr:      ErrUnlockInPast,
		},
		"next block": {
			height:       9,
			unlockHeight: 10,
		},
		"far future": {
			height:       1,
			unlockHeight: 1 << 40,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			owner := timelocktest.NewCondition().Address()
			l := newMemLedger()
			l.fund(owner, 10)
			c := newContract(owner)

			err := c.Lock(Env{Caller: owner, Height: tc.height}, l, timelocktest.NewCondition().Address(), tc.unlockHeight, 10)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				assert.Empty(t, l.transfers)
				assert.Equal(t, Unlocked, c.State)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Locked, c.State)
		})
	}
}

func TestLockFailureIsAtomic(t *testing.T) {
	owner := timelocktest.NewCondition().Address()
	beneficiary := timelocktest.NewCondition().Address()

	cases := map[string]struct {
		fund        uint64
		beneficiary timelock.Address
		amount      uint64
		wantErr     *errors.Error
	}{
		"zero amount": {
			fund:        10,
			beneficiary: beneficiary,
			amount:      0,
			wantErr:     ErrNoValue,
		},
		"invalid beneficiary": {
			fund:        10,
			beneficiary: timelock.Address("short"),
			amount:      5,
			wantErr:     errors.ErrInput,
		},
		"not enough funds": {
			fund:        4,
			beneficiary: beneficiary,
			amount:      5,
			wantErr:     errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			l := newMemLedger()
			l.fund(owner, tc.fund)
			c := newContract(owner)
			before := *c

			err := c.Lock(Env{Caller: owner, Height: 1}, l, tc.beneficiary, 10, tc.amount)
			require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			assert.Equal(t, before, *c)
			assert.Empty(t, l.transfers)
			assert.Equal(t, tc.fund, l.balance(owner))
			assert.EqualValues(t, 0, l.balance(c.Account()))
		})
	}
}

func TestLockTransfersExactAmount(t *testing.T) {
	owner := timelocktest.NewCondition().Address()
	beneficiary := timelocktest.NewCondition().Address()

	l := newMemLedger()
	l.fund(owner, 1000)
	c := newContract(owner)
	require.NoError(t, c.Lock(Env{Caller: owner, Height: 3}, l, beneficiary, 10, 321))

	require.Len(t, l.transfers, 1)
	assert.Equal(t, transfer{from: owner, to: c.Account(), amount: coin.NewCoin(321, "STX")}, l.transfers[0])
	assert.EqualValues(t, 679, l.balance(owner))
	assert.EqualValues(t, 321, l.balance(c.Account()))
	assert.NoError(t, c.Validate())
}

func TestWithdraw(t *testing.T) {
	owner := timelocktest.NewCondition().Address()
	beneficiary := timelocktest.NewCondition().Address()

	locked := func(l Ledger) *Contract {
		c := newContract(owner)
		require.NoError(t, c.Lock(Env{Caller: owner, Height: 1}, l, beneficiary, 10, 50))
		return c
	}

	cases := map[string]struct {
		contract func(Ledger) *Contract
		env      Env
		wantErr  *errors.Error
	}{
		"never locked": {
			contract: func(Ledger) *Contract { return newContract(owner) },
			env:      Env{Caller: beneficiary, Height: 20},
			wantErr:  ErrNothingLocked,
		},
		"owner cannot withdraw": {
			contract: locked,
			env:      Env{Caller: owner, Height: 20},
			wantErr:  ErrNotBeneficiary,
		},
		"before unlock height": {
			contract: locked,
			env:      Env{Caller: beneficiary, Height: 9},
			wantErr:  ErrNotYetUnlocked,
		},
		"at unlock height": {
			contract: locked,
			env:      Env{Caller: beneficiary, Height: 10},
		},
		"after unlock height": {
			contract: locked,
			env:      Env{Caller: beneficiary, Height: 1000},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			l := newMemLedger()
			l.fund(owner, 50)
			c := tc.contract(l)
			before := *c
			transfers := len(l.transfers)

			err := c.Withdraw(tc.env, l)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				assert.Equal(t, before, *c)
				assert.Len(t, l.transfers, transfers)
				return
			}
			require.NoError(t, err)
			require.Len(t, l.transfers, transfers+1)
			assert.Equal(t, transfer{from: c.Account(), to: beneficiary, amount: coin.NewCoin(50, "STX")}, l.transfers[transfers])
			assert.EqualValues(t, 50, l.balance(beneficiary))
			assert.Equal(t, Withdrawn, c.State)
			assert.NoError(t, c.Validate())

			// Terminal state.
			err = c.Withdraw(tc.env, l)
			assert.True(t, ErrNothingLocked.Is(err), "unexpected error: %+v", err)
			err = c.Lock(Env{Caller: owner, Height: tc.env.Height}, l, beneficiary, uint64(tc.env.Height)+1, 1)
			assert.True(t, ErrAlreadyLocked.Is(err), "unexpected error: %+v", err)
		})
	}
}
