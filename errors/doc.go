/*
Package errors implements the coded errors used across timelock.

Every error returned from a handler should wrap one of the root errors
declared with Register. The code of the root error is what the client sees
in the ABCI response, so codes must never change once released.

Packages that need their own codes (x/escrow, x/sigs) register them at
program start:

	var ErrOwnerOnly = errors.Register(100, "owner only")

At runtime use Wrap/Wrapf to add context and Is to test for a kind:

	err := errors.Wrapf(ErrOwnerOnly, "caller %s", caller)
	ErrOwnerOnly.Is(err) // true

The innermost Wrap records a stacktrace (github.com/pkg/errors), which
survives any further wrapping.
*/
package errors
