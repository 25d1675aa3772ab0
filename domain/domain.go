// Package domain defines the 16-bit working space that chains run over and
// the byte layouts used to move between it and digest space.
package domain

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Size is the number of distinct domain values
	Size = 1 << 16

	// ValueLen is the serialized length of a Value in bytes
	ValueLen = 2

	// PrefixLen is the length of a redundancy prefix in bytes
	PrefixLen = 14

	// BufferLen is the length of a reduction input: prefix || value
	BufferLen = PrefixLen + ValueLen
)

// Value is an element of the 16-bit working space
type Value uint16

// Prefix is the per-table redundancy prefix that selects a reduction function
type Prefix [PrefixLen]byte

// ToBytes serializes v little-endian
func ToBytes(v Value) [ValueLen]byte {
	var b [ValueLen]byte
	binary.LittleEndian.PutUint16(b[:], uint16(v))
	return b
}

// FromBytes deserializes a little-endian Value
func FromBytes(b [ValueLen]byte) Value {
	return Value(binary.LittleEndian.Uint16(b[:]))
}

// FromDigest projects a digest into the domain: its last two bytes, little-endian
func FromDigest(d [32]byte) Value {
	return FromBytes([ValueLen]byte{d[30], d[31]})
}

// TailEqual reports whether two digests agree on their domain projection
func TailEqual(a, b [32]byte) bool {
	return a[30] == b[30] && a[31] == b[31]
}

// Buffer lays out prefix || ToBytes(v)
func Buffer(p Prefix, v Value) [BufferLen]byte {
	var buf [BufferLen]byte
	copy(buf[:PrefixLen], p[:])
	b := ToBytes(v)
	copy(buf[PrefixLen:], b[:])
	return buf
}

// RandPrefix draws a prefix from rng
func RandPrefix(rng io.Reader) (Prefix, error) {
	var p Prefix
	if _, err := io.ReadFull(rng, p[:]); err != nil {
		return p, fmt.Errorf("failed to generate redundancy prefix: %w", err)
	}
	return p, nil
}

// RandValue draws a uniformly random Value from rng
func RandValue(rng io.Reader) (Value, error) {
	var b [ValueLen]byte
	if _, err := io.ReadFull(rng, b[:]); err != nil {
		return 0, fmt.Errorf("failed to generate domain value: %w", err)
	}
	return FromBytes(b), nil
}

func (p Prefix) String() string {
	return fmt.Sprintf("%x", p[:])
}
