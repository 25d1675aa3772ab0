// Package prf derives independent random material for parallel workers:
// keyed ChaCha20 streams and a SHAKE128 message PRF.
package prf

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"
)

// KeyLen is the key length of both the streams and the message PRF
const KeyLen = 32

// MessageLen is the length of a generated message (256 bits)
const MessageLen = 32

// Domain separator for message derivation
var messageDomainSep = []byte{
	0x74, 0x6d, 0x74, 0x6f, 0x2d, 0x6d, 0x73, 0x67,
	0x00, 0x01, 0xfa, 0xff, 0x00, 0xaf, 0x12, 0xff,
}

// KeyGen draws a fresh key from rng
func KeyGen(rng io.Reader) ([KeyLen]byte, error) {
	var key [KeyLen]byte
	if _, err := io.ReadFull(rng, key[:]); err != nil {
		return key, fmt.Errorf("failed to generate PRF key: %w", err)
	}
	return key, nil
}

// Message computes the index-th 256-bit message under key.
// Messages for distinct indices are independent, so trials can be
// generated on any goroutine in any order.
func Message(key [KeyLen]byte, index uint64) [MessageLen]byte {
	shake := sha3.NewShake128()

	// Write domain_sep || key || index
	shake.Write(messageDomainSep)
	shake.Write(key[:])
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], index)
	shake.Write(idx[:])

	var out [MessageLen]byte
	shake.Read(out[:])
	return out
}
