package errors

const (
	// SuccessABCICode is the ABCI code of a successful response.
	SuccessABCICode = 0

	// Errors without a code are reported as internal, with their message
	// hidden unless running in debug mode.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo converts err into an ABCI response code and log. Registered
// errors keep their message. Anything else, including recovered panics,
// is reduced to "internal error" unless debug is set.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, err.Error()
	case code == internalABCICode, ErrPanic.Is(err):
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// ABCIError rebuilds an error from a response code and log, so that
// clients can test it with the Is method of the matching root error.
func ABCIError(code uint32, log string) error {
	if code == SuccessABCICode {
		return nil
	}
	root, ok := registry[code]
	if !ok {
		root = &Error{code: code, desc: "unknown"}
	}
	return Wrap(root, log)
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first error in the cause chain that
// has one.
func abciCode(err error) uint32 {
	for err != nil {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		cs, ok := err.(causer)
		if !ok {
			break
		}
		err = cs.Cause()
	}
	return internalABCICode
}
