package escrow

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

const optKey = "escrow"

// Genesis deploys the contract.
type Genesis struct {
	Owner  timelock.Address `json:"owner"`
	Ticker string           `json:"ticker"`
}

// Initializer fulfils the Initializer interface to deploy the contract
// from the genesis file
type Initializer struct{}

var _ timelock.Initializer = Initializer{}

// FromGenesis deploys the contract in the unlocked state. Nothing is
// deployed if the genesis has no escrow section.
func (Initializer) FromGenesis(opts timelock.Options, kv timelock.KVStore) error {
	var gen *Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	if gen == nil {
		return nil
	}
	contract := &Contract{
		Owner:  gen.Owner,
		Ticker: gen.Ticker,
		State:  Unlocked,
	}
	if err := contract.Validate(); err != nil {
		return errors.Wrap(err, "escrow genesis")
	}
	return NewBucket().Store(kv, contract)
}
