// Package field packs byte strings into BabyBear field elements using gnark-crypto
package field

import (
	"github.com/consensys/gnark-crypto/field/babybear"
)

// BabyBear prime: 2^31 - 2^27 + 1 = 2013265921
const P uint64 = 2013265921

// BytesPerElement is how many message bytes go into one element.
// 2^24 < P, so every 3-byte chunk is already canonical.
const BytesPerElement = 3

// Element represents a field element in BabyBear
type Element = babybear.Element

// NewElement creates a new field element
func NewElement(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

// Pack splits data into little-endian 3-byte chunks, one element per chunk.
// A short final chunk is zero-extended.
func Pack(data []byte) []Element {
	n := (len(data) + BytesPerElement - 1) / BytesPerElement
	out := make([]Element, n)
	for i := 0; i < n; i++ {
		var v uint64
		for k := 0; k < BytesPerElement; k++ {
			idx := i*BytesPerElement + k
			if idx >= len(data) {
				break
			}
			v |= uint64(data[idx]) << (8 * k)
		}
		out[i].SetUint64(v)
	}
	return out
}

// Low16 returns the low 16 bits of the canonical representative of e
func Low16(e Element) uint16 {
	return uint16(e.Uint64())
}
