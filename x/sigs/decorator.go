/*
Package sigs authenticates transactions by their ed25519 signatures.

Every signer has an account holding its public key and a sequence
number. A signature is only accepted for the account's current sequence,
which is then incremented, so a signed transaction cannot be replayed.
*/
package sigs

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// Gas charged on check for every verified signature.
const signatureCost = 500

// RegisterQuery exposes the signer accounts under "/auth".
func RegisterQuery(qr timelock.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a SignedTx and records the signers
// in the context, where Authenticate finds them. Transactions that are
// not a SignedTx pass through untouched.
type Decorator struct {
	unsignedOK bool
}

var _ timelock.Decorator = Decorator{}

// NewDecorator returns a decorator that rejects a SignedTx carrying no
// signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a copy that lets a SignedTx without any
// signature through, with no signers in the context.
func (d Decorator) AllowMissingSigs() Decorator {
	d.unsignedOK = true
	return d
}

func (d Decorator) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Checker) (*timelock.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(n * signatureCost)
	return res, nil
}

func (d Decorator) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (*timelock.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate returns the context extended with the transaction
// signers and how many signatures were verified.
func (d Decorator) authenticate(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (timelock.Context, int, error) {
	signed, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(db, signed, timelock.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "signatures")
	}
	if len(signers) == 0 && !d.unsignedOK {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "transaction not signed")
	}
	return withSigners(ctx, signers), len(signers), nil
}
