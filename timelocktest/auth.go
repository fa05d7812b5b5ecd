package timelocktest

import (
	"context"
	"fmt"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/x"
)

// Auth authenticates a fixed set of conditions. Signer, when set, is
// listed first so that x.MainSigner returns it.
type Auth struct {
	Signer  timelock.Condition
	Signers []timelock.Condition
}

var _ x.Authenticator = (*Auth)(nil)

func (a *Auth) GetConditions(timelock.Context) []timelock.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]timelock.Condition{a.Signer}, a.Signers...)
}

func (a *Auth) HasAddress(ctx timelock.Context, addr timelock.Address) bool {
	return anyHasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions attached to the context with
// SetConditions under Key.
type CtxAuth struct {
	Key string
}

var _ x.Authenticator = CtxAuth{}

type ctxAuthKey string

func (a CtxAuth) SetConditions(ctx timelock.Context, conds ...timelock.Condition) timelock.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

// GetConditions panics when something other than a condition list is
// stored under Key.
func (a CtxAuth) GetConditions(ctx timelock.Context) []timelock.Condition {
	switch v := ctx.Value(ctxAuthKey(a.Key)).(type) {
	case nil:
		return nil
	case []timelock.Condition:
		return v
	default:
		panic(fmt.Sprintf("context key %q holds %T", a.Key, v))
	}
}

func (a CtxAuth) HasAddress(ctx timelock.Context, addr timelock.Address) bool {
	return anyHasAddress(a.GetConditions(ctx), addr)
}

func anyHasAddress(conds []timelock.Condition, addr timelock.Address) bool {
	for _, c := range conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
