package crypto

import (
	"github.com/iov-one/timelock"
	"golang.org/x/crypto/ed25519"
)

const publicKeySize = ed25519.PublicKeySize

// conditionType is the type section of ed25519 signer conditions.
const conditionType = "ed25519"

var _ Signer = (*PrivateKey)(nil)

// GenPrivKeyEd25519 creates a key from the system random source. It
// panics when that source fails.
func GenPrivKeyEd25519() *PrivateKey {
	_, key, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: key}
}

// PrivKeyEd25519FromSeed derives a key from a 32 byte seed. Any other
// seed length panics.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	return &Signature{Ed25519: ed25519.Sign(p.Ed25519, message)}, nil
}

func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// Verify reports whether sig signs message under this key. A nil or
// malformed signature never verifies.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if sig == nil || p.Validate() != nil {
		return false
	}
	return ed25519.Verify(p.Ed25519, message, sig.Ed25519)
}

// Condition is "sigs/ed25519/<key>", or nil for an empty key.
func (p *PublicKey) Condition() timelock.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return timelock.NewCondition(ExtensionName, conditionType, p.Ed25519)
}
