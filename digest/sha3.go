package digest

import (
	"golang.org/x/crypto/sha3"
)

const (
	SHA3Name   = "sha3-256"
	KeccakName = "keccak-256"
)

// SHA3 is FIPS 202 SHA3-256
type SHA3 struct{}

func (SHA3) Name() string { return SHA3Name }

func (SHA3) Sum256(data []byte) [Size]byte {
	return sha3.Sum256(data)
}

// Keccak is the pre-standard Keccak-256 used by Ethereum
type Keccak struct{}

func (Keccak) Name() string { return KeccakName }

func (Keccak) Sum256(data []byte) [Size]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var out [Size]byte
	h.Sum(out[:0])
	return out
}
