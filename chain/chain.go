// Package chain implements the Hellman reduction function and chain walking
// over the 16-bit domain.
package chain

import (
	"github.com/aerius-labs/hellman-tmto/digest"
	"github.com/aerius-labs/hellman-tmto/domain"
)

// Reducer is the reduction function R(x) = tail(H(prefix || x)) for one prefix.
// It holds no mutable state and is safe for concurrent use.
type Reducer struct {
	hash   digest.Hash
	prefix domain.Prefix
}

// NewReducer binds a hash and a redundancy prefix
func NewReducer(h digest.Hash, prefix domain.Prefix) *Reducer {
	if h == nil {
		panic("chain: hash cannot be nil")
	}
	return &Reducer{hash: h, prefix: prefix}
}

// Hash returns the underlying digest
func (r *Reducer) Hash() digest.Hash { return r.hash }

// Prefix returns the redundancy prefix
func (r *Reducer) Prefix() domain.Prefix { return r.prefix }

// Sum returns the full digest of prefix || x
func (r *Reducer) Sum(x domain.Value) [digest.Size]byte {
	buf := domain.Buffer(r.prefix, x)
	// The buffer is always 16 whole bytes, so the bit-length check cannot fail.
	return r.hash.Sum256(buf[:])
}

// Reduce maps x to the domain projection of its digest
func (r *Reducer) Reduce(x domain.Value) domain.Value {
	return domain.FromDigest(r.Sum(x))
}

// Advance applies Reduce steps times starting at x
func (r *Reducer) Advance(x domain.Value, steps int) domain.Value {
	for j := 0; j < steps; j++ {
		x = r.Reduce(x)
	}
	return x
}

// Endpoint returns the table key of a chain of the given length starting at
// x0: the domain projection of the digest of its last element, which is
// Advance(x0, length+1).
func (r *Reducer) Endpoint(x0 domain.Value, length int) domain.Value {
	return r.Reduce(r.Advance(x0, length))
}
