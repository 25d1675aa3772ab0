package table

import (
	"github.com/aerius-labs/hellman-tmto/digest"
	"github.com/aerius-labs/hellman-tmto/domain"
)

// Trace describes one backward alignment search
type Trace struct {
	Value       domain.Value // recovered value, valid when Found
	Found       bool
	Probes      int // alignment positions examined
	FalseAlarms int // table hits whose candidate failed the digest check
}

// Search looks for a domain value whose digest under the table's prefix
// agrees with target on its last two bytes.
//
// Every positive result has been re-hashed and checked against target.
func (t *Table) Search(target [digest.Size]byte) (domain.Value, bool) {
	tr := t.Trace(target)
	return tr.Value, tr.Found
}

// Trace runs Search and reports how the search went.
//
// It walks y = tail(target), R(y), R(R(y)), ... for L positions. A hit at
// position j means target may be the digest of the (L-j)-th element of the
// stored chain, which is recomputed from its start and verified. A failed
// verification is a false alarm caused by merging chains, and the walk
// continues with the next position.
func (t *Table) Trace(target [digest.Size]byte) Trace {
	var tr Trace
	y := domain.FromDigest(target)
	for j := 0; j < t.length; j++ {
		tr.Probes++
		if x0, ok := t.entries[y]; ok {
			x := t.reducer.Advance(x0, t.length-j)
			if domain.TailEqual(t.reducer.Sum(x), target) {
				tr.Value, tr.Found = x, true
				return tr
			}
			tr.FalseAlarms++
		}
		y = t.reducer.Reduce(y)
	}
	return tr
}
