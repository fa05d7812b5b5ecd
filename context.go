package timelock

import (
	"context"
	"fmt"
	"regexp"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block data and the logger from the app down to
// every decorator and handler.
//
// Block values (header, height, chain id) are written once by the app.
// Their With function panics on a second write, so handlers can trust
// what they read.
type Context = context.Context

type ctxKey string

const (
	headerKey  ctxKey = "header"
	heightKey  ctxKey = "height"
	chainIDKey ctxKey = "chain_id"
	loggerKey  ctxKey = "logger"
)

// DefaultLogger is returned by GetLogger when none was set.
var DefaultLogger = log.NewNopLogger()

// IsValidChainID accepts 6 to 20 letters, digits, '_' or '-'.
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

func setOnce(ctx Context, key ctxKey, value interface{}) Context {
	if ctx.Value(key) != nil {
		panic(fmt.Sprintf("%s already set", string(key)))
	}
	return context.WithValue(ctx, key, value)
}

func WithHeader(ctx Context, header abci.Header) Context {
	return setOnce(ctx, headerKey, header)
}

// GetHeader returns the header of the current block, if set.
func GetHeader(ctx Context) (abci.Header, bool) {
	h, ok := ctx.Value(headerKey).(abci.Header)
	return h, ok
}

func WithHeight(ctx Context, height int64) Context {
	return setOnce(ctx, heightKey, height)
}

// GetHeight returns the height of the current block, or false when the
// context is not bound to a block.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// BlockTime is the header time of the current block.
func BlockTime(ctx Context) (time.Time, bool) {
	h, ok := GetHeader(ctx)
	return h.Time, ok
}

// WithChainID panics on an invalid id, as the app validates it at genesis.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain id %q", chainID))
	}
	return setOnce(ctx, chainIDKey, chainID)
}

// GetChainID panics when no chain id was set, since every context built
// by the app has one.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("chain id not set")
	}
	return id
}

// WithLogger replaces the logger, unlike the block values.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}

// WithLogInfo adds key value pairs to every later log line of ctx.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}
