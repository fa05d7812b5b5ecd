package app

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/coin"
	"github.com/iov-one/timelock/commands/server"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/cash"
	"github.com/iov-one/timelock/x/escrow"
)

// DefaultTicker is the native asset of a generated genesis.
const DefaultTicker = "STX"

// GenesisFunds is the default balance of every account of a generated
// genesis.
const GenesisFunds = 1000000

// DefaultFunds returns GenesisFunds of DefaultTicker.
func DefaultFunds() coin.Coin {
	return coin.NewCoin(GenesisFunds, DefaultTicker)
}

// InitOptions returns the app_state generator of the init command. Its
// arguments are read as
//
//   [owner] [account...]
//
// The owner deploys the escrow contract for the ticker of funds. When no
// owner is given a key is generated and printed so that it can be
// imported in a client. The owner and every listed account start with
// funds.
func InitOptions(funds coin.Coin) server.GenOptions {
	return func(args []string) (json.RawMessage, error) {
		if err := funds.Validate(); err != nil {
			return nil, err
		}
		if funds.IsZero() {
			return nil, errors.Wrap(errors.ErrAmount, "genesis funds")
		}

		var owner timelock.Address
		if len(args) == 0 {
			addr, keys, err := GenerateCoinKey()
			if err != nil {
				return nil, err
			}
			fmt.Println(keys)
			owner = addr
		} else {
			addr, err := timelock.ParseAddress(args[0])
			if err != nil {
				return nil, errors.Wrap(err, "owner")
			}
			owner = addr
			args = args[1:]
		}

		funded := []timelock.Address{owner}
		for _, raw := range args {
			addr, err := timelock.ParseAddress(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "account %q", raw)
			}
			funded = append(funded, addr)
		}
		return BuildGenesis(funds, owner, funded...)
	}
}

// BuildGenesis returns the app_state deploying the escrow contract of
// owner for the ticker of funds. Every funded account starts with funds.
func BuildGenesis(funds coin.Coin, owner timelock.Address, funded ...timelock.Address) (json.RawMessage, error) {
	accounts := make([]cash.GenesisAccount, 0, len(funded))
	for _, addr := range funded {
		accounts = append(accounts, cash.GenesisAccount{
			Address: addr,
			Coins:   coin.Coins{funds.Clone()},
		})
	}
	state := struct {
		Cash   []cash.GenesisAccount `json:"cash"`
		Escrow escrow.Genesis        `json:"escrow"`
	}{
		Cash:   accounts,
		Escrow: escrow.Genesis{Owner: owner, Ticker: funds.Ticker},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

type output struct {
	Address string `json:"address"`
	Bech32  string `json:"bech32"`
	Secret  string `json:"secret"`
}

// Bech32Prefix is the human readable part of bech32 encoded addresses.
const Bech32Prefix = "tl"

// GenerateCoinKey returns the address of a new public key, along with a
// json representation of the key. You can give coins to this address and
// import the key in a client to use them.
func GenerateCoinKey() (timelock.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	addr := privKey.PublicKey().Address()

	b32, err := addr.Bech32(Bech32Prefix)
	if err != nil {
		return nil, "", err
	}
	secret, err := privKey.Marshal()
	if err != nil {
		return nil, "", err
	}
	out := output{
		Address: addr.String(),
		Bech32:  b32,
		Secret:  fmt.Sprintf("%X", secret),
	}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return addr, string(keys), nil
}
