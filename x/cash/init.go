package cash

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/coin"
	"github.com/iov-one/timelock/errors"
)

// genesisKey is the app_state entry read by Initializer.
const genesisKey = "cash"

// GenesisAccount is a funded account in the genesis file. The address is
// written in any notation ParseAddress accepts.
type GenesisAccount struct {
	Address timelock.Address `json:"address"`
	Coins   coin.Coins       `json:"coins"`
}

// Initializer creates the genesis wallets.
type Initializer struct{}

var _ timelock.Initializer = Initializer{}

func (Initializer) FromGenesis(opts timelock.Options, db timelock.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions(genesisKey, &accounts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, a := range accounts {
		w, err := genesisWallet(a)
		if err != nil {
			return errors.Wrapf(err, "cash account %d", i)
		}
		if err := bucket.Save(db, w); err != nil {
			return err
		}
	}
	return nil
}

func genesisWallet(a GenesisAccount) (*Wallet, error) {
	if err := a.Address.Validate(); err != nil {
		return nil, err
	}
	w, err := WalletWith(a.Address, a.Coins...)
	if err != nil {
		return nil, err
	}
	return w, w.Validate()
}
