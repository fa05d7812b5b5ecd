package sigs

import (
	"bytes"
	"testing"

	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	const chainID = "timelock-test"
	payload := []byte("lock 1000 STX")

	base, err := BuildSignBytes(payload, chainID, 3)
	require.NoError(t, err)
	assert.Len(t, base, 64)

	fromTx, err := BuildSignBytesTx(NewStdTx(payload), chainID, 3)
	require.NoError(t, err)
	assert.Equal(t, base, fromTx)

	changed := map[string]struct {
		payload []byte
		chainID string
		seq     int64
	}{
		"other payload":  {payload: []byte("withdraw"), chainID: chainID, seq: 3},
		"other chain":    {payload: payload, chainID: chainID + "-2", seq: 3},
		"other sequence": {payload: payload, chainID: chainID, seq: 4},
	}
	for name, tc := range changed {
		t.Run(name, func(t *testing.T) {
			got, err := BuildSignBytes(tc.payload, tc.chainID, tc.seq)
			require.NoError(t, err)
			assert.False(t, bytes.Equal(base, got))
		})
	}

	_, err = BuildSignBytes(payload, chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes(payload, chainID, maxSequenceValue+1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = BuildSignBytes(payload, "bad", 0)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifySignatureSequence(t *testing.T) {
	const chainID = "timelock-test"
	db := store.MemStore()
	key := crypto.GenPrivKeyEd25519()
	payload := []byte("lock 1000 STX")
	tx := NewStdTx(payload)

	sign := func(seq int64) *StdSignature {
		sig, err := SignTx(key, tx, chainID, seq)
		require.NoError(t, err)
		return sig
	}

	steps := []struct {
		name    string
		sig     *StdSignature
		chainID string
		wantErr *errors.Error
		wantSeq int64
	}{
		{name: "wrong chain", sig: sign(0), chainID: "other-chain", wantErr: errors.ErrUnauthorized, wantSeq: 0},
		{name: "skipped sequence", sig: sign(1), chainID: chainID, wantErr: ErrInvalidSequence, wantSeq: 0},
		{name: "missing pubkey", sig: &StdSignature{}, chainID: chainID, wantErr: errors.ErrUnauthorized, wantSeq: 0},
		{name: "first", sig: sign(0), chainID: chainID, wantSeq: 1},
		{name: "replay", sig: sign(0), chainID: chainID, wantErr: ErrInvalidSequence, wantSeq: 1},
		{name: "second", sig: sign(1), chainID: chainID, wantSeq: 2},
	}
	// steps depend on each other, so they run in order
	for _, s := range steps {
		signer, err := VerifySignature(db, s.sig, payload, s.chainID)
		require.True(t, s.wantErr.Is(err), "%s: unexpected error %+v", s.name, err)
		if s.wantErr == nil {
			assert.Equal(t, key.PublicKey().Condition(), signer, s.name)
		}
		seq, err := NextSequence(db, key.PublicKey().Address())
		require.NoError(t, err)
		assert.Equal(t, s.wantSeq, seq, s.name)
	}

	forged, err := SignTx(key, NewStdTx([]byte("withdraw")), chainID, 2)
	require.NoError(t, err)
	_, err = VerifySignature(db, forged, payload, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestVerifyTxSignaturesKeepsOrder(t *testing.T) {
	const chainID = "timelock-test"
	db := store.MemStore()
	owner, beneficiary := crypto.GenPrivKeyEd25519(), crypto.GenPrivKeyEd25519()
	tx := NewStdTx([]byte("withdraw"))

	for _, k := range []*crypto.PrivateKey{owner, beneficiary} {
		sig, err := SignTx(k, tx, chainID, 0)
		require.NoError(t, err)
		tx.Signatures = append(tx.Signatures, sig)
	}
	signers, err := VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	require.Len(t, signers, 2)
	assert.Equal(t, owner.PublicKey().Condition(), signers[0])
	assert.Equal(t, beneficiary.PublicKey().Condition(), signers[1])

	// the same signatures again are replays
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	tx.Signatures = nil
	signers, err = VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)
	assert.NotNil(t, signers)
	assert.Empty(t, signers)
}
