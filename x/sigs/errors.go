package sigs

import "github.com/iov-one/timelock/errors"

// ErrInvalidSequence is returned for a signature that does not carry
// the current sequence of its account. Codes 120 to 129 belong to this
// package.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
