package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/errors"
)

// SignCodeV1 prefixes the sign bytes of the current format.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures verifies every signature of tx and returns the
// signer conditions in the same order. The result is empty, not nil,
// for a transaction without signatures.
func VerifyTxSignatures(db timelock.KVStore, tx SignedTx, chainID string) ([]timelock.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	list := tx.GetSignatures()
	signers := make([]timelock.Condition, 0, len(list))
	for i, sig := range list {
		c, err := VerifySignature(db, sig, payload, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, c)
	}
	return signers, nil
}

// VerifySignature checks sig over payload for chainID and, on success,
// advances the sequence of the signing account.
func VerifySignature(db timelock.KVStore, sig *StdSignature, payload []byte, chainID string) (timelock.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}

	bucket := NewBucket()
	obj, err := bucket.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	account := AsUser(obj)
	if !account.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature does not match")
	}
	if err := account.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Save(db, obj); err != nil {
		return nil, err
	}
	return account.Pubkey.Condition(), nil
}

// BuildSignBytes returns the sha512 digest of
//
//   SignCodeV1 | len(chainID) as one byte | chainID | seq as big endian uint64 | payload
//
// which is what gets signed. Binding the chain id and the sequence keeps
// a signature from being replayed on another chain or a second time.
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 || seq > maxSequenceValue {
		return nil, errors.Wrapf(ErrInvalidSequence, "out of range: %d", seq)
	}
	if !timelock.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}

	msg := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+8+len(payload))
	msg = append(msg, SignCodeV1...)
	msg = append(msg, byte(len(chainID)))
	msg = append(msg, chainID...)
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	msg = append(msg, nonce[:]...)
	msg = append(msg, payload...)

	digest := sha512.Sum512(msg)
	return digest[:], nil
}

// BuildSignBytesTx is BuildSignBytes for the sign bytes of tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(payload, chainID, seq)
}

// SignTx signs tx for chainID with the given account sequence.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	digest, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Sequence: seq, Pubkey: signer.PublicKey(), Signature: sig}, nil
}

// NextSequence returns the sequence the next signature of addr must
// carry. Accounts that never signed start at zero.
func NextSequence(db timelock.ReadOnlyKVStore, addr timelock.Address) (int64, error) {
	obj, err := NewBucket().Get(db, addr)
	if err != nil || obj == nil {
		return 0, err
	}
	return AsUser(obj).Sequence, nil
}
