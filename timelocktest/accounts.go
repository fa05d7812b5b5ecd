package timelocktest

import (
	"encoding/hex"
	"fmt"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/errors"
	"github.com/stellar/go/exp/crypto/derivation"
)

// AccountsSeed is the hex encoded master seed every named account is
// derived from. Keeping it fixed makes addresses stable across test runs.
const AccountsSeed = "d34c1970ae90acf3405f2d99dcaca16d0c7db379f4beafcfdf667b9d69ce350d27f5fb440509dfa79ec883a0510bc9a9614c3d44188881f0c5e402898b4bf3c9"

// AccountNames lists the accounts available in every test chain. The
// deployer is the owner of the escrow contract.
var AccountNames = []string{
	"deployer",
	"wallet_1",
	"wallet_2",
	"wallet_3",
	"wallet_4",
	"wallet_5",
	"wallet_6",
	"wallet_7",
	"wallet_8",
}

// Account is a named, deterministic key pair.
type Account struct {
	Name string
	Key  *crypto.PrivateKey
}

// Condition returns the signature condition of the account key.
func (a *Account) Condition() timelock.Condition {
	return a.Key.PublicKey().Condition()
}

// Address returns the address of the account key.
func (a *Account) Address() timelock.Address {
	return a.Key.PublicKey().Address()
}

func (a *Account) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Address())
}

// DeriveAccount derives the account key at BIP44 path m/44'/234'/<index>'
// from the AccountsSeed.
func DeriveAccount(name string, index int) (*Account, error) {
	seed, err := hex.DecodeString(AccountsSeed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode seed: %s", err)
	}
	path := fmt.Sprintf("m/44'/234'/%d'", index)
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot derive key using path=%q: %s", path, err)
	}
	return &Account{Name: name, Key: crypto.PrivKeyEd25519FromSeed(k.Key)}, nil
}

// Accounts is a named set of derived accounts.
type Accounts map[string]*Account

// NewAccounts returns all accounts listed in AccountNames. The derivation
// index of an account is its position in that list. It panics if the
// derivation fails, which can only happen for a corrupted seed.
func NewAccounts() Accounts {
	accs := make(Accounts, len(AccountNames))
	for i, name := range AccountNames {
		a, err := DeriveAccount(name, i)
		if err != nil {
			panic(err)
		}
		accs[name] = a
	}
	return accs
}

// Get returns the account with given name. It panics for unknown names, so
// that a typo in a test fails loudly.
func (a Accounts) Get(name string) *Account {
	acc, ok := a[name]
	if !ok {
		panic(fmt.Sprintf("unknown account %q", name))
	}
	return acc
}
