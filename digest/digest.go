// Package digest adapts 256-bit hash functions to the fixed-length digest
// contract used by the chain engine: (bytes, bit length) -> 32 bytes.
package digest

import (
	"errors"
	"fmt"
)

// Size is the digest length in bytes
const Size = 32

var (
	// ErrBitLength is returned when the bit length does not describe the whole input
	ErrBitLength = errors.New("digest: bit length must equal 8 * len(data)")
	// ErrUnknownHash is returned by New for names not in the registry
	ErrUnknownHash = errors.New("digest: unknown hash")
)

// Hash is a 256-bit hash function. Implementations must be safe for
// concurrent use and must not retain data.
type Hash interface {
	// Name returns the registry name of the hash
	Name() string

	// Sum256 hashes a byte-aligned message
	Sum256(data []byte) [Size]byte
}

// Digest hashes the first bitLen bits of data. Only byte-aligned messages
// covering the whole buffer are supported.
func Digest(h Hash, data []byte, bitLen uint) ([Size]byte, error) {
	if bitLen != 8*uint(len(data)) {
		return [Size]byte{}, fmt.Errorf("%w: got %d bits for %d bytes", ErrBitLength, bitLen, len(data))
	}
	return h.Sum256(data), nil
}

// Default is the name of the hash used when none is configured
const Default = SHA3Name

var registry = []struct {
	name string
	new  func() Hash
}{
	{SHA3Name, func() Hash { return SHA3{} }},
	{KeccakName, func() Hash { return Keccak{} }},
	{SHA256Name, func() Hash { return SHA256{} }},
	{BLAKE3Name, func() Hash { return BLAKE3{} }},
	{Poseidon2Name, func() Hash { return NewPoseidon2() }},
	{XXH3Name, func() Hash { return XXH3{} }},
}

// New returns the hash registered under name
func New(name string) (Hash, error) {
	for _, r := range registry {
		if r.name == name {
			return r.new(), nil
		}
	}
	return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownHash, name, Names())
}

// Names lists the registered hashes in a stable order
func Names() []string {
	names := make([]string, len(registry))
	for i, r := range registry {
		names[i] = r.name
	}
	return names
}
