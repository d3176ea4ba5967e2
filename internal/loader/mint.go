package loader

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

const mintByteLen = 32

// DecodeMint decodes a base58 Solana mint address and verifies it is
// exactly 32 bytes.
func DecodeMint(s string) ([]byte, error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decode base58: %w", err)
	}
	if len(decoded) != mintByteLen {
		return nil, fmt.Errorf("mint must be %d bytes, got %d", mintByteLen, len(decoded))
	}
	return decoded, nil
}

// IsOnCurve reports whether a 32-byte point lies on the ed25519 curve.
// On-curve keys are wallet-style; off-curve keys are program derived.
func IsOnCurve(point []byte) bool {
	if len(point) != mintByteLen {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
