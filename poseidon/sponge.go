// Package poseidon implements a Poseidon2 byte sponge over BabyBear using gnark-crypto
package poseidon

import (
	"github.com/aerius-labs/hellman-tmto/field"
	"github.com/consensys/gnark-crypto/field/babybear/poseidon2"
)

// Element is a BabyBear field element
type Element = field.Element

const (
	// Width-16 permutation split into 8 rate and 8 capacity elements.
	width          = 16
	rate           = 8
	fullRounds     = 8
	partialRounds  = 13
	bytesPerOutput = 2 // low 16 bits of each squeezed element
	outputElements = 32 / bytesPerOutput
)

// Sponge hashes byte strings to 32 bytes with a width-16 Poseidon2 sponge.
// It is safe for concurrent use: all state lives on the caller's stack.
type Sponge struct {
	perm *poseidon2.Permutation
}

// NewSponge creates a sponge over a fresh width-16 permutation
func NewSponge() *Sponge {
	return &Sponge{perm: poseidon2.NewPermutation(width, fullRounds, partialRounds)}
}

// permute applies the permutation to a full sponge state in place
func (s *Sponge) permute(state []Element) {
	if len(state) != width {
		panic("poseidon: sponge state must have 16 elements")
	}
	if err := s.perm.Permutation(state); err != nil {
		panic("poseidon: " + err.Error())
	}
}

// Sum256 absorbs data and squeezes 32 bytes.
//
// The message is padded with a single 0x01 byte and packed 3 bytes per
// element. The first capacity element carries the byte length so that
// messages differing only in trailing zeros do not collide.
func (s *Sponge) Sum256(data []byte) [32]byte {
	var state [width]Element
	state[rate] = field.NewElement(uint64(len(data)))

	padded := make([]byte, len(data)+1)
	copy(padded, data)
	padded[len(data)] = 0x01
	input := field.Pack(padded)

	for i := 0; i < len(input); i += rate {
		end := min(i+rate, len(input))
		for j := 0; j < end-i; j++ {
			state[j].Add(&state[j], &input[i+j])
		}
		s.permute(state[:])
	}

	var out [32]byte
	for i := 0; i < outputElements; i++ {
		if i > 0 && i%rate == 0 {
			s.permute(state[:])
		}
		v := field.Low16(state[i%rate])
		out[2*i] = byte(v)
		out[2*i+1] = byte(v >> 8)
	}
	return out
}
