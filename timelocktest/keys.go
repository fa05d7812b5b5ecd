package timelocktest

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/crypto"
)

// NewKey generates a random ed25519 key. Use Accounts for keys that must
// be the same on every run.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a random key.
func NewCondition() timelock.Condition {
	return NewKey().PublicKey().Condition()
}
