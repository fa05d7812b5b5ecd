package escrow

import (
	"testing"

	"github.com/iov-one/timelock/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	cases := map[string]struct {
		err  *errors.Error
		code uint32
		log  string
	}{
		"owner only":       {ErrOwnerOnly, 100, "owner only"},
		"already locked":   {ErrAlreadyLocked, 101, "already locked"},
		"unlock in past":   {ErrUnlockInPast, 102, "unlock height in the past"},
		"no value":         {ErrNoValue, 103, "no value"},
		"not beneficiary":  {ErrNotBeneficiary, 104, "not beneficiary"},
		"not yet unlocked": {ErrNotYetUnlocked, 105, "not yet unlocked"},
		"nothing locked":   {ErrNothingLocked, 106, "nothing locked"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := errors.ABCIInfo(errors.Wrap(tc.err, "contract"), false)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, "contract: "+tc.log, log)
		})
	}
}
