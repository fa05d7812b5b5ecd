package timelock

import (
	"github.com/iov-one/timelock/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// CheckResult is the outcome of a successful CheckTx. Failures are
// reported with an error instead.
type CheckResult struct {
	// Data is returned to the client as is.
	Data []byte
	// Log is a human readable note.
	Log string
	// GasAllocated is the most work the transaction may need.
	GasAllocated int64
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverResult is the outcome of a successful DeliverTx. Failures are
// reported with an error instead.
type DeliverResult struct {
	// Data is returned to the client as is.
	Data []byte
	// Log is a human readable note.
	Log string
	// Events describe the state changes of the transaction. They are
	// flattened into tags so that tendermint indexes them.
	Events []Event
	GasUsed int64
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	var tags []common.KVPair
	for _, e := range d.Events {
		tags = append(tags, e.Tags()...)
	}
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    tags,
		GasUsed: d.GasUsed,
	}
}

// CheckOrError builds the CheckTx response from whichever of res and
// err is set.
func CheckOrError(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return res.ToABCI()
}

// DeliverOrError builds the DeliverTx response from whichever of res
// and err is set.
func DeliverOrError(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return res.ToABCI()
}

// CheckTxError reports err with its registered code. Unregistered
// errors are redacted unless debug is set.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := txErrorInfo("check", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

// DeliverTxError reports err with its registered code. Unregistered
// errors are redacted unless debug is set.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := txErrorInfo("deliver", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

func txErrorInfo(phase string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, "cannot " + phase + " tx: " + log
}

// ParseDeliverOrError turns a DeliverTx response back into a result,
// or into the error it reports.
func ParseDeliverOrError(res abci.ResponseDeliverTx) (*DeliverResult, error) {
	if res.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return &DeliverResult{
		Data:    res.Data,
		Log:     res.Log,
		Events:  EventsFromTags(res.Tags),
		GasUsed: res.GasUsed,
	}, nil
}
