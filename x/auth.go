package x

import (
	"github.com/iov-one/timelock"
)

// Authenticator tells a handler who approved the current transaction.
// Handlers take one in their constructor and never read signatures
// themselves.
type Authenticator interface {
	// GetConditions lists every condition satisfied by the transaction,
	// in signing order.
	GetConditions(timelock.Context) []timelock.Condition

	// HasAddress reports whether any satisfied condition has addr.
	HasAddress(timelock.Context, timelock.Address) bool
}

// MultiAuth merges the answers of several authenticators.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

func ChainAuth(auths ...Authenticator) MultiAuth {
	return MultiAuth(auths)
}

// GetConditions concatenates the conditions of all authenticators, in
// the order they were chained.
func (m MultiAuth) GetConditions(ctx timelock.Context) []timelock.Condition {
	var all []timelock.Condition
	for _, a := range m {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (m MultiAuth) HasAddress(ctx timelock.Context, addr timelock.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner is the first satisfied condition, or nil for an unsigned
// transaction.
func MainSigner(ctx timelock.Context, auth Authenticator) timelock.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}
