/*
Package app assembles the timelock application: the decorator chain,
the cash and escrow handlers, their queries and genesis initializers,
on top of an iavl backed store.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/app"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store/iavl"
	"github.com/iov-one/timelock/x"
	"github.com/iov-one/timelock/x/cash"
	"github.com/iov-one/timelock/x/escrow"
	"github.com/iov-one/timelock/x/sigs"
	"github.com/iov-one/timelock/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is reported to tendermint on Info.
const Name = "timelock"

// Authenticator accepts ed25519 signatures only.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain is run around every message handler. Check runs fully inside a
// savepoint. On Deliver the savepoint comes after signature checking,
// so a failing message still consumes the signer sequence.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router dispatches to the cash and escrow handlers. Both share one cash
// controller, so escrow moves the same wallets that send does.
func Router(auth x.Authenticator) *app.Router {
	r := app.NewRouter()
	wallets := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(r, auth, wallets)
	escrow.RegisterRoutes(r, auth, wallets)
	return r
}

// QueryRouter serves "/", "/wallets", "/auth" and "/escrow".
func QueryRouter() timelock.QueryRouter {
	r := timelock.NewQueryRouter()
	r.RegisterAll(
		timelock.RegisterRawQuery,
		cash.RegisterQuery,
		sigs.RegisterQuery,
		escrow.RegisterQuery,
	)
	return r
}

// Stack is the full transaction handler of the application.
func Stack() timelock.Handler {
	return Chain().WithHandler(Router(Authenticator()))
}

// Initializers load the "cash" and "escrow" genesis entries, in that
// order.
func Initializers() timelock.Initializer {
	return timelock.ChainInitializers{
		cash.Initializer{},
		escrow.Initializer{},
	}
}

// Application builds a BaseApp storing its state at dbPath, or in memory
// when dbPath is empty.
func Application(name string, h timelock.Handler, decode timelock.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	db, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	sa := app.NewStoreApp(name, db, QueryRouter(), context.Background())
	return app.NewBaseApp(sa, decode, h, debug), nil
}

// CommitKVStore opens the iavl store at dbPath. Any file extension is
// dropped, as leveldb adds its own. An empty path gives a memory store.
func CommitKVStore(dbPath string) (timelock.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	abs = strings.TrimSuffix(abs, filepath.Ext(abs))
	return iavl.NewCommitStore(filepath.Dir(abs), filepath.Base(abs)), nil
}

// GenerateApp builds the application served by the start command. The
// state lives in <home>/timelock.db, or in memory for an empty home.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	dbPath := ""
	if home != "" {
		dbPath = filepath.Join(home, Name+".db")
	}
	a, err := Application(Name, Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	a.WithInit(Initializers())
	a.WithLogger(logger)
	return a, nil
}
