package table

import (
	"fmt"
	"io"
	"time"

	"github.com/aerius-labs/hellman-tmto/digest"
	"github.com/aerius-labs/hellman-tmto/domain"
	"github.com/aerius-labs/hellman-tmto/internal/parallel"
	"github.com/aerius-labs/hellman-tmto/internal/prf"
)

// Set is an ordered collection of tables with independent prefixes
type Set struct {
	tables []*Table
}

// NewSet groups existing tables, searched in the given order
func NewSet(tables ...*Table) *Set {
	return &Set{tables: tables}
}

// BuildSet builds numTables tables of shape p, each under a freshly drawn
// prefix.
//
// Prefixes and one stream key per table are drawn from rng on the calling
// goroutine. Tables are then built in parallel, each from its own ChaCha20
// stream, so rng is never shared between goroutines.
func BuildSet(rng io.Reader, h digest.Hash, p Params, numTables int) (*Set, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if numTables <= 0 {
		return nil, &ConfigError{Field: "tables", Value: numTables}
	}
	start := time.Now()

	prefixes := make([]domain.Prefix, numTables)
	streams := make([]*prf.Stream, numTables)
	for i := range prefixes {
		var err error
		if prefixes[i], err = domain.RandPrefix(rng); err != nil {
			return nil, err
		}
		if streams[i], err = prf.Fork(rng); err != nil {
			return nil, err
		}
	}

	workers := parallel.Workers(p.Workers)
	inner := p
	inner.Workers = workers / numTables
	if inner.Workers < 1 {
		inner.Workers = 1
	}

	tables := make([]*Table, numTables)
	errs := make([]error, numTables)
	parallel.For(numTables, workers, 1, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			tables[i], errs[i] = Build(streams[i], h, prefixes[i], inner)
		}
	})
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
	}

	s := &Set{tables: tables}
	log.Debugf("built %d tables K=%d L=%d: %d entries, %d merges in %s",
		numTables, p.Chains, p.Length, s.Entries(), s.Merges(), time.Since(start))
	return s, nil
}

// SearchAll searches the tables in order and stops at the first success.
// It also returns the index of the table that produced the value.
func (s *Set) SearchAll(target [digest.Size]byte) (domain.Value, int, bool) {
	for i, t := range s.tables {
		if x, ok := t.Search(target); ok {
			return x, i, true
		}
	}
	return 0, -1, false
}

// Len returns the number of tables
func (s *Set) Len() int { return len(s.tables) }

// Table returns the i-th table
func (s *Set) Table(i int) *Table { return s.tables[i] }

// Entries returns the total number of stored endpoints
func (s *Set) Entries() int {
	n := 0
	for _, t := range s.tables {
		n += t.Len()
	}
	return n
}

// Merges returns the total number of merged chains
func (s *Set) Merges() int {
	n := 0
	for _, t := range s.tables {
		n += t.Merges()
	}
	return n
}
