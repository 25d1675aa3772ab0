package digest

import (
	"github.com/aerius-labs/hellman-tmto/poseidon"
)

const Poseidon2Name = "poseidon2"

// Poseidon2 hashes bytes with a BabyBear Poseidon2 sponge
type Poseidon2 struct {
	sponge *poseidon.Sponge
}

// NewPoseidon2 creates a Poseidon2 digest over a width-16 permutation
func NewPoseidon2() *Poseidon2 {
	return &Poseidon2{sponge: poseidon.NewSponge()}
}

func (*Poseidon2) Name() string { return Poseidon2Name }

func (p *Poseidon2) Sum256(data []byte) [Size]byte {
	return p.sponge.Sum256(data)
}
