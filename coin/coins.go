package coin

import (
	"sort"
	"strings"

	"github.com/iov-one/timelock/errors"
)

// Coins is a set of coins in normalized form: sorted by ticker, at most
// one coin per ticker and no zero amounts. Operations never modify the
// receiver; they return a new set.
type Coins []*Coin

// CombineCoins sums all coins into a normalized set.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	return res, res.Validate()
}

func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	cpy := make(Coins, len(cs))
	for i, c := range cs {
		cpy[i] = c.Clone()
	}
	return cpy
}

// search returns the position of ticker in the set and whether a coin
// of that ticker is present there. When it is absent the position is
// where it would be inserted.
func (cs Coins) search(ticker string) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= ticker })
	return i, i < len(cs) && cs[i].Ticker == ticker
}

// Add returns the set increased by c. A zero coin is ignored.
func (cs Coins) Add(c Coin) (Coins, error) {
	res := cs.Clone()
	if c.IsZero() {
		return res, nil
	}
	i, found := res.search(c.Ticker)
	if !found {
		res = append(res, nil)
		copy(res[i+1:], res[i:])
		res[i] = &Coin{Ticker: c.Ticker, Amount: c.Amount}
		return res, nil
	}
	sum, err := res[i].Add(c)
	if err != nil {
		return nil, err
	}
	res[i] = &sum
	return res, nil
}

// Subtract returns the set decreased by c. A currency whose amount
// drops to zero is removed. Taking more than the set holds, including
// any amount of a missing currency, fails with ErrInsufficientAmount.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	res := cs.Clone()
	if c.IsZero() {
		return res, nil
	}
	i, found := res.search(c.Ticker)
	if !found {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "no %s", c.Ticker)
	}
	left, err := res[i].Subtract(c)
	if err != nil {
		return nil, err
	}
	if left.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = &left
	return res, nil
}

// Combine returns the sum of both sets.
func (cs Coins) Combine(o Coins) (Coins, error) {
	res := cs.Clone()
	for _, c := range o {
		var err error
		if res, err = res.Add(*c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Contains is true when Subtract(c) would succeed.
func (cs Coins) Contains(c Coin) bool {
	return c.IsZero() || cs.Get(c.Ticker).IsGTE(c)
}

// Get returns the amount held of ticker, a zero coin when absent.
func (cs Coins) Get(ticker string) Coin {
	if i, found := cs.search(ticker); found {
		return *cs[i]
	}
	return Coin{Ticker: ticker}
}

func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i, c := range cs {
		if !c.Equals(*o[i]) {
			return false
		}
	}
	return true
}

// String lists the coins separated by a comma.
func (cs Coins) String() string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ", ")
}

// Validate checks that the set is normalized and every ticker is
// valid.
func (cs Coins) Validate() error {
	for i, c := range cs {
		switch {
		case c == nil:
			return errors.Wrap(errors.ErrEmpty, "nil coin")
		case c.IsZero():
			return errors.Wrapf(errors.ErrState, "zero %s", c.Ticker)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return errors.Wrap(errors.ErrState, "coins not sorted or duplicated")
		}
	}
	return nil
}
