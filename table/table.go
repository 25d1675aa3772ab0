// Package table builds Hellman precomputation tables over the 16-bit domain
// and searches them for preimages of truncated digests.
package table

import (
	"fmt"
	"io"
	"time"

	"github.com/aerius-labs/hellman-tmto/chain"
	"github.com/aerius-labs/hellman-tmto/digest"
	"github.com/aerius-labs/hellman-tmto/domain"
	"github.com/aerius-labs/hellman-tmto/internal/parallel"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("table")

// chainGrain is the fewest chains worth handing to their own goroutine
const chainGrain = 256

// Params describes the shape of a table
type Params struct {
	Chains  int // K, number of chains
	Length  int // L, reduction steps per chain
	Workers int // goroutines for endpoint computation; 0 means one per CPU
}

// Validate rejects empty tables and zero-length chains
func (p Params) Validate() error {
	if p.Chains <= 0 {
		return &ConfigError{Field: "K", Value: p.Chains}
	}
	if p.Length <= 0 {
		return &ConfigError{Field: "L", Value: p.Length}
	}
	return nil
}

// Table maps chain endpoints to chain starts for one redundancy prefix.
//
// Keys are unique. When two chains end at the same key the later insertion
// wins and the earlier start is dropped; every such overwrite is counted as
// a merge. A Table must not be modified while it is being searched.
type Table struct {
	reducer *chain.Reducer
	length  int
	chains  int
	merges  int
	entries map[domain.Value]domain.Value
}

// New creates an empty table for chains of the given length
func New(h digest.Hash, prefix domain.Prefix, length int) (*Table, error) {
	if length <= 0 {
		return nil, &ConfigError{Field: "L", Value: length}
	}
	return &Table{
		reducer: chain.NewReducer(h, prefix),
		length:  length,
		entries: make(map[domain.Value]domain.Value),
	}, nil
}

// Build draws p.Chains random starts from rng and inserts their chains.
//
// All starts are read from rng on the calling goroutine; endpoints are then
// computed in parallel and inserted in draw order, so the table, including
// which starts are lost to merges, is the same as a sequential build from
// the same random bytes.
func Build(rng io.Reader, h digest.Hash, prefix domain.Prefix, p Params) (*Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	t, err := New(h, prefix, p.Length)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	raw := make([]byte, domain.ValueLen*p.Chains)
	if _, err := io.ReadFull(rng, raw); err != nil {
		return nil, fmt.Errorf("failed to draw chain starts: %w", err)
	}
	starts := make([]domain.Value, p.Chains)
	for i := range starts {
		starts[i] = domain.FromBytes([domain.ValueLen]byte{raw[2*i], raw[2*i+1]})
	}

	endpoints := make([]domain.Value, p.Chains)
	parallel.For(p.Chains, p.Workers, chainGrain, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			endpoints[i] = t.reducer.Endpoint(starts[i], t.length)
		}
	})

	for i := range starts {
		t.put(endpoints[i], starts[i])
	}

	log.Debugf("built table K=%d L=%d hash=%s prefix=%s: %d entries, %d merges in %s",
		p.Chains, p.Length, t.reducer.Hash().Name(), prefix, t.Len(), t.merges, time.Since(start))
	return t, nil
}

// AddChain inserts the chain starting at x0 and returns its endpoint.
// merged reports whether the endpoint was already present, in which case
// x0 replaced the previous start.
func (t *Table) AddChain(x0 domain.Value) (endpoint domain.Value, merged bool) {
	endpoint = t.reducer.Endpoint(x0, t.length)
	return endpoint, t.put(endpoint, x0)
}

func (t *Table) put(endpoint, x0 domain.Value) bool {
	_, merged := t.entries[endpoint]
	if merged {
		t.merges++
	}
	t.entries[endpoint] = x0
	t.chains++
	return merged
}

// Lookup returns the start stored for endpoint
func (t *Table) Lookup(endpoint domain.Value) (domain.Value, bool) {
	x0, ok := t.entries[endpoint]
	return x0, ok
}

// Range calls fn for every entry until fn returns false. Order is unspecified.
func (t *Table) Range(fn func(endpoint, start domain.Value) bool) {
	for e, s := range t.entries {
		if !fn(e, s) {
			return
		}
	}
}

// Len returns the number of distinct endpoints
func (t *Table) Len() int { return len(t.entries) }

// Chains returns how many chains were inserted, including merged ones
func (t *Table) Chains() int { return t.chains }

// Merges returns how many insertions overwrote an existing endpoint
func (t *Table) Merges() int { return t.merges }

// ChainLen returns L
func (t *Table) ChainLen() int { return t.length }

// Prefix returns the table's redundancy prefix
func (t *Table) Prefix() domain.Prefix { return t.reducer.Prefix() }

// Reducer returns the reduction function the table was built with
func (t *Table) Reducer() *chain.Reducer { return t.reducer }
