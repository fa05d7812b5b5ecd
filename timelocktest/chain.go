package timelocktest

import (
	"time"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BlockTime is the time between two blocks mined by a Chain.
const BlockTime = 5 * time.Second

// Chain drives an abci application the way tendermint does, one block at a
// time. It is meant for tests that need to execute transactions at a given
// block height.
type Chain struct {
	app     abci.Application
	chainID string
	height  int64
	now     time.Time
}

// NewChain returns a chain that has not mined any block yet. Call InitChain
// before mining the first block.
func NewChain(app abci.Application, chainID string) *Chain {
	return &Chain{
		app:     app,
		chainID: chainID,
		now:     time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Receipt is the result of a single transaction.
type Receipt struct {
	Height int64
	Code   uint32
	Log    string
	Data   []byte
	Events []timelock.Event
}

// Err returns the transaction failure, if any. The returned error can be
// tested with the Is method of the registered error.
func (r Receipt) Err() error {
	return errors.ABCIError(r.Code, r.Log)
}

// OK returns true if the transaction succeeded.
func (r Receipt) OK() bool {
	return r.Code == errors.SuccessABCICode
}

// InitChain loads the genesis app state into the application.
func (c *Chain) InitChain(appState []byte) {
	c.app.InitChain(abci.RequestInitChain{
		Time:          c.now,
		ChainId:       c.chainID,
		AppStateBytes: appState,
	})
}

// Height returns the height of the last mined block.
func (c *Chain) Height() int64 {
	return c.height
}

// ChainID returns the chain id passed to the application on InitChain.
func (c *Chain) ChainID() string {
	return c.chainID
}

// MineBlock executes given transactions in a new block and commits it. A
// receipt is returned for each transaction, in order.
func (c *Chain) MineBlock(txs ...[]byte) []Receipt {
	c.height++
	c.now = c.now.Add(BlockTime)

	c.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{
			ChainID: c.chainID,
			Height:  c.height,
			Time:    c.now,
			NumTxs:  int64(len(txs)),
		},
	})
	receipts := make([]Receipt, len(txs))
	for i, tx := range txs {
		raw := c.app.DeliverTx(tx)
		r := Receipt{Height: c.height, Code: raw.Code, Log: raw.Log}
		if res, err := timelock.ParseDeliverOrError(raw); err == nil {
			r.Data = res.Data
			r.Events = res.Events
		}
		receipts[i] = r
	}
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	return receipts
}

// MineEmptyBlockUntil mines empty blocks until the chain reaches given
// height. Nothing is done if the chain is already at or above it.
func (c *Chain) MineEmptyBlockUntil(height int64) {
	for c.height < height {
		c.MineBlock()
	}
}

// CheckTx runs the check phase of a transaction against the last committed
// block.
func (c *Chain) CheckTx(tx []byte) Receipt {
	res := c.app.CheckTx(tx)
	return Receipt{
		Height: c.height,
		Code:   res.Code,
		Log:    res.Log,
		Data:   res.Data,
	}
}

// Query runs an abci query against the last committed block.
func (c *Chain) Query(path string, data []byte) abci.ResponseQuery {
	return c.app.Query(abci.RequestQuery{Path: path, Data: data})
}
