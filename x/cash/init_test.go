package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/coin"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	const genesis = `{
		"cash": [
			{"address": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", "coins": ["1000000 STX", "7 ETH"]},
			{"address": "hex:0000000000000000000000000000000000000001", "coins": [{"ticker": "STX", "amount": 12}]}
		]
	}`
	var opts timelock.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController(NewBucket())

	addr, err := timelock.ParseAddress("E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0")
	require.NoError(t, err)
	got, err := ctrl.Balance(db, addr)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, coin.NewCoin(7, "ETH"), *got[0])
	assert.Equal(t, coin.NewCoin(1000000, "STX"), *got[1])

	addr, err = timelock.ParseAddress("0000000000000000000000000000000000000001")
	require.NoError(t, err)
	got, err = ctrl.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, coin.NewCoin(12, "STX"), got.Get("STX"))
}

func TestGenesisInvalidAddress(t *testing.T) {
	opts := timelock.Options{
		"cash": json.RawMessage(`[{"address": "", "coins": ["1 STX"]}]`),
	}
	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrInput.Is(err), "unexpected error: %+v", err)
}

func TestGenesisMissingSection(t *testing.T) {
	assert.NoError(t, Initializer{}.FromGenesis(timelock.Options{}, store.MemStore()))
}
