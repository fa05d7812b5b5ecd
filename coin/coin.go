/*
Package coin defines the native asset amounts moved around by the ledger.

A Coin is an amount of a single currency, expressed in the smallest
indivisible unit. Amounts are unsigned and every arithmetic operation checks
for overflow or insufficient funds instead of wrapping around.
*/
package coin

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock/codec"
	"github.com/iov-one/timelock/errors"
)

// IsCC reports whether s is a valid currency code: three or four
// upper case letters.
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// Coin is an amount of a single currency.
type Coin struct {
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func NewCoin(amount uint64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

func NewCoinp(amount uint64, ticker string) *Coin {
	return &Coin{Ticker: ticker, Amount: amount}
}

// blank is a zero amount without a currency. It is the neutral
// element of Add.
func (c Coin) blank() bool {
	return c.Ticker == "" && c.Amount == 0
}

// Add returns the sum of both coins. It fails with ErrCurrency when the
// tickers differ and with ErrOverflow when the sum does not fit.
func (c Coin) Add(o Coin) (Coin, error) {
	switch {
	case c.blank():
		return o, nil
	case o.blank():
		return c, nil
	case c.Ticker != o.Ticker:
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot add %s to %s", o.Ticker, c.Ticker)
	case c.Amount+o.Amount < c.Amount:
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%d + %d", c.Amount, o.Amount)
	}
	return Coin{Ticker: c.Ticker, Amount: c.Amount + o.Amount}, nil
}

// Subtract returns c minus o. Taking more than c holds fails with
// ErrInsufficientAmount.
func (c Coin) Subtract(o Coin) (Coin, error) {
	switch {
	case o.Amount == 0:
		return c, nil
	case c.Ticker != o.Ticker:
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot subtract %s from %s", o.Ticker, c.Ticker)
	case c.Amount < o.Amount:
		return Coin{}, errors.Wrapf(errors.ErrInsufficientAmount, "have %s, need %s", c, o)
	}
	return Coin{Ticker: c.Ticker, Amount: c.Amount - o.Amount}, nil
}

func (c Coin) Equals(o Coin) bool {
	return c == o
}

// IsEmpty is true for a nil coin or a zero amount.
func IsEmpty(c *Coin) bool {
	return c == nil || c.Amount == 0
}

func (c Coin) IsZero() bool {
	return c.Amount == 0
}

func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsGTE is true when o is of the same currency and not larger than c.
func (c Coin) IsGTE(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount >= o.Amount
}

func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Validate only checks the currency code. A zero amount is valid.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "ticker %q", c.Ticker)
	}
	return nil
}

// String returns "<amount> <ticker>", the format ParseHumanFormat reads.
func (c Coin) String() string {
	amount := strconv.FormatUint(c.Amount, 10)
	if c.Ticker == "" {
		return amount
	}
	return amount + " " + c.Ticker
}

// coinWire is the protobuf view of a Coin.
type coinWire Coin

func (m *coinWire) Reset()         { *m = coinWire{} }
func (m *coinWire) String() string { return proto.CompactTextString(m) }
func (*coinWire) ProtoMessage()    {}

func (c *Coin) Marshal() ([]byte, error) {
	return codec.Marshal((*coinWire)(c))
}

func (c *Coin) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, (*coinWire)(c))
}

func (c Coin) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts both the "<amount> <ticker>" string and an
// object with Ticker and Amount fields.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var text string
	if json.Unmarshal(raw, &text) == nil {
		parsed, err := ParseHumanFormat(text)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// A local type without the UnmarshalJSON method avoids recursion.
	type plain Coin
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return errors.Wrapf(errors.ErrInput, "coin json: %s", err)
	}
	*c = Coin(p)
	return nil
}

var humanFormat = regexp.MustCompile(`^\s*(\d+)\s*([A-Z]{3,4})\s*$`)

// ParseHumanFormat reads a coin written as "<amount> <ticker>", for
// example "1000 STX".
func ParseHumanFormat(text string) (Coin, error) {
	m := humanFormat.FindStringSubmatch(text)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "coin %q", text)
	}
	amount, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "amount %s", m[1])
	}
	return NewCoin(amount, m[2]), nil
}

// Set and Type make a Coin usable as a command line flag.
func (c *Coin) Set(text string) error {
	parsed, err := ParseHumanFormat(text)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c *Coin) Type() string {
	return "coin"
}
