package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the state part of abci.Application: genesis,
// queries, block boundaries and commits. BaseApp embeds it and adds the
// transaction calls.
//
// Info, InitChain, BeginBlock, EndBlock and Commit get no user input, so
// a failure there means the node cannot continue. Those methods panic.
type StoreApp struct {
	// name is reported by Info.
	name   string
	logger log.Logger

	store       *CommitStore
	initializer timelock.Initializer
	queryRouter timelock.QueryRouter

	// chainID is empty until InitChain ran. It is persisted and loaded
	// back on restart.
	chainID string

	// appContext holds what is valid for the whole lifetime of the
	// application. blockContext extends it with the header of the
	// current block.
	appContext   timelock.Context
	blockContext timelock.Context
}

// NewStoreApp loads the latest committed state of store. It panics if the
// store cannot be read.
func NewStoreApp(name string, store timelock.CommitKVStore, qr timelock.QueryRouter, ctx timelock.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(store),
		queryRouter: qr,
		appContext:  ctx,
	}
	s.WithLogger(log.NewNopLogger())

	if id := mustLoadChainID(s.DeliverStore()); id != "" {
		s.chainID = id
		s.appContext = timelock.WithChainID(s.appContext, id)
	}
	last, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = timelock.WithHeight(s.appContext, last.Version)
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets what InitChain loads the genesis app_state with.
func (s *StoreApp) WithInit(init timelock.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger of the application and of every context it
// creates.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.appContext = timelock.WithLogger(s.appContext, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext is the context transactions of the current block run in.
func (s *StoreApp) BlockContext() timelock.Context {
	return s.blockContext
}

func (s *StoreApp) DeliverStore() timelock.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() timelock.CacheableKVStore {
	return s.store.CheckStore()
}

// loadGenesis runs once, on the very first start of a chain.
func (s *StoreApp) loadGenesis(appState []byte, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrHuman, "genesis already loaded for chain %s", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrHuman, "genesis app_state is empty, run init first")
	}
	var opts timelock.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := s.setChainID(chainID); err != nil {
		return err
	}
	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, s.DeliverStore())
}

func (s *StoreApp) setChainID(chainID string) error {
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.appContext = timelock.WithChainID(s.appContext, chainID)
	// CheckTx may run before the first block begins.
	s.blockContext = timelock.WithChainID(s.blockContext, chainID)
	return nil
}

// Info reports the height and app hash of the last commit.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	last, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("info", "height", last.Version, "hash", fmt.Sprintf("%X", last.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  last.Version,
		LastBlockAppHash: last.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// Query reads the last committed state. The request path selects a
// registered query handler, "/" for raw keys or "/<bucket>", optionally
// followed by "?prefix" for a prefix query. Data is the key or prefix.
// The requested height is ignored.
//
// Key and Value of the response are ResultSets of the same length, so a
// query may return any number of models.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := splitPath(req.Path)
	h := s.queryRouter.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}
	last, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err)
	}

	db := s.store.committed.CacheWrap()
	defer db.Discard()
	models, err := h.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}

	keys, err := ResultsFromKeys(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	values, err := ResultsFromValues(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	return abci.ResponseQuery{Height: last.Version, Key: keys, Value: values}
}

// splitPath separates "<path>?<mod>".
func splitPath(full string) (path, mod string) {
	if i := strings.IndexByte(full, '?'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}

// InitChain loads the genesis app_state and stores the chain id.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock makes the block header and height visible to transactions.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := timelock.WithHeader(s.appContext, req.Header)
	s.blockContext = timelock.WithHeight(ctx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit persists the state changes of the block.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("commit", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}
