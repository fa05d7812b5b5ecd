package app

import (
	"context"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store/iavl"
	"github.com/iov-one/timelock/timelocktest"
	"github.com/iov-one/timelock/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// pathDecoder decodes the raw transaction as the path of its message.
func pathDecoder(raw []byte) (timelock.Tx, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty transaction")
	}
	return &timelocktest.Tx{Msg: &timelocktest.Msg{RoutePath: string(raw)}}, nil
}

// keyInit writes the value found under the "key" options to the "genesis"
// key.
type keyInit struct{}

func (keyInit) FromGenesis(opts timelock.Options, kv timelock.KVStore) error {
	var val string
	if err := opts.ReadOptions("key", &val); err != nil {
		return err
	}
	if val == "" {
		return nil
	}
	return kv.Set([]byte("genesis"), []byte(val))
}

func newTestApp(t testing.TB) BaseApp {
	t.Helper()

	r := NewRouter()
	r.Handle("test/write", timelocktest.WriteHandler{Key: []byte("written"), Value: []byte("ok")})
	r.Handle("test/fail", timelocktest.WriteHandler{Key: []byte("failed"), Value: []byte("ok"), Err: errors.ErrState})
	r.Handle("test/panic", timelocktest.PanicHandler{Msg: "boom"})
	handler := ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(r)

	qr := timelock.NewQueryRouter()
	qr.RegisterAll(timelock.RegisterRawQuery)

	store := NewStoreApp("test-app", iavl.NewMemCommitStore(), qr, context.Background()).
		WithInit(timelock.ChainInitializers{keyInit{}})
	return NewBaseApp(store, pathDecoder, handler, false)
}

func TestBaseApp(t *testing.T) {
	app := newTestApp(t)
	chain := timelocktest.NewChain(app, "test-chain")
	chain.InitChain([]byte(`{"key": "hello"}`))
	assert.Equal(t, "test-chain", app.GetChainID())

	receipts := chain.MineBlock(
		[]byte("test/write"),
		[]byte("test/fail"),
		[]byte("test/panic"),
		[]byte("test/missing"),
		nil,
	)
	require.Len(t, receipts, 5)
	assert.True(t, receipts[0].OK(), receipts[0].Log)
	assert.True(t, errors.ErrState.Is(receipts[1].Err()), receipts[1].Log)
	assert.True(t, errors.ErrPanic.Is(receipts[2].Err()), receipts[2].Log)
	assert.True(t, errors.ErrNotFound.Is(receipts[3].Err()), receipts[3].Log)
	assert.True(t, errors.ErrInput.Is(receipts[4].Err()), receipts[4].Log)

	kv := NewABCIStore(app)
	cases := map[string]string{
		"genesis": "hello",
		"written": "ok",
		"failed":  "",
	}
	for key, want := range cases {
		got, err := kv.Get([]byte(key))
		require.NoError(t, err)
		assert.Equal(t, want, string(got), key)
	}

	info := app.Info(abci.RequestInfo{})
	assert.EqualValues(t, 1, info.LastBlockHeight)
	assert.Equal(t, "test-app", info.Data)
	assert.NotEmpty(t, info.LastBlockAppHash)
}

func TestBaseAppCheckTx(t *testing.T) {
	app := newTestApp(t)
	chain := timelocktest.NewChain(app, "test-chain")
	chain.InitChain([]byte(`{}`))
	chain.MineBlock()

	assert.True(t, chain.CheckTx([]byte("test/write")).OK())
	assert.True(t, errors.ErrNotFound.Is(chain.CheckTx([]byte("test/missing")).Err()))

	// Check does not modify the committed state.
	chain.MineBlock()
	got, err := NewABCIStore(app).Get([]byte("written"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreAppQuery(t *testing.T) {
	app := newTestApp(t)
	chain := timelocktest.NewChain(app, "test-chain")
	chain.InitChain([]byte(`{"key": "hello"}`))
	chain.MineBlock([]byte("test/write"))

	res := chain.Query("/?prefix", []byte("g"))
	require.EqualValues(t, 0, res.Code, res.Log)
	models, err := toModels(res.Key, res.Value)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, timelock.Pair([]byte("genesis"), []byte("hello")), models[0])
	assert.EqualValues(t, 1, res.Height)

	res = chain.Query("/unknown", nil)
	assert.True(t, errors.ErrNotFound.Is(errors.ABCIError(res.Code, res.Log)), res.Log)

	itr, err := NewABCIStore(app).Iterator([]byte("w"), timelock.PrefixEnd([]byte("w")))
	require.NoError(t, err)
	key, value, err := itr.Next()
	require.NoError(t, err)
	assert.Equal(t, "written", string(key))
	assert.Equal(t, "ok", string(value))
	_, _, err = itr.Next()
	assert.True(t, errors.ErrIteratorDone.Is(err))
}

func TestInitChainTwice(t *testing.T) {
	app := newTestApp(t)
	chain := timelocktest.NewChain(app, "test-chain")
	chain.InitChain([]byte(`{}`))
	assert.Panics(t, func() { chain.InitChain([]byte(`{}`)) })
}

func TestInitChainInvalidChainID(t *testing.T) {
	app := newTestApp(t)
	chain := timelocktest.NewChain(app, "x")
	assert.Panics(t, func() { chain.InitChain([]byte(`{}`)) })
}

func TestChainIDIsPersisted(t *testing.T) {
	db := iavl.NewMemCommitStore()
	qr := timelock.NewQueryRouter()

	first := NewStoreApp("test-app", db, qr, context.Background())
	first.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})
	first.Commit()

	second := NewStoreApp("test-app", db, qr, context.Background())
	assert.Equal(t, "test-chain", second.GetChainID())
	assert.Equal(t, "test-chain", timelock.GetChainID(second.BlockContext()))
}
