package sigs

import (
	"context"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/x"
)

type ctxKey struct{}

// withSigners is unexported so only the Decorator can authenticate.
func withSigners(ctx timelock.Context, signers []timelock.Condition) timelock.Context {
	return context.WithValue(ctx, ctxKey{}, signers)
}

// Authenticate reads the signers the Decorator stored in the context.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the conditions of the verified signatures, in
// signature order. It is empty outside of a signed transaction.
func (Authenticate) GetConditions(ctx timelock.Context) []timelock.Condition {
	signers, _ := ctx.Value(ctxKey{}).([]timelock.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx timelock.Context, addr timelock.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
