package table

import (
	"testing"

	"github.com/aerius-labs/hellman-tmto/digest"
	"github.com/aerius-labs/hellman-tmto/domain"
	"github.com/aerius-labs/hellman-tmto/internal/prf"
)

func randomTargets(h digest.Hash, seed byte, n int) [][digest.Size]byte {
	var key [prf.KeyLen]byte
	key[0] = seed
	targets := make([][digest.Size]byte, n)
	for i := range targets {
		msg := prf.Message(key, uint64(i))
		targets[i] = h.Sum256(msg[:])
	}
	return targets
}

// K=1024, L=32: a manually inserted chain is recovered from the digest of its last element
func TestSearchManualChain(t *testing.T) {
	h := digest.SHA3{}
	p := Params{Chains: 1024, Length: 32}
	tbl, err := Build(testStream(10), h, testPrefix(), p)
	if err != nil {
		t.Fatal(err)
	}
	r := tbl.Reducer()

	for _, x0 := range []domain.Value{0, 1, 4242, 0xffff} {
		tbl.AddChain(x0)
		xL := r.Advance(x0, p.Length)
		target := r.Sum(xL)

		got, ok := tbl.Search(target)
		if !ok {
			t.Fatalf("chain from %d not found", x0)
		}
		if got != xL {
			t.Fatalf("chain from %d: recovered %d, want %d", x0, got, xL)
		}
	}
}

// A target taken from position i of a chain is found by probe L-i+1
func TestSearchCompletenessBound(t *testing.T) {
	h := digest.SHA3{}
	const length = 32
	tbl, err := New(h, testPrefix(), length)
	if err != nil {
		t.Fatal(err)
	}
	x0 := domain.Value(777)
	tbl.AddChain(x0)
	r := tbl.Reducer()

	for i := 1; i <= length; i++ {
		target := r.Sum(r.Advance(x0, i))
		tr := tbl.Trace(target)
		if !tr.Found {
			t.Fatalf("position %d not found after %d probes", i, tr.Probes)
		}
		if tr.Probes > length-i+1 {
			t.Fatalf("position %d found at probe %d, expected at most %d", i, tr.Probes, length-i+1)
		}
		if !domain.TailEqual(r.Sum(tr.Value), target) {
			t.Fatalf("position %d: unverified result %d", i, tr.Value)
		}
	}
}

// K=1: a miss must examine exactly L positions
func TestSearchMissProbesL(t *testing.T) {
	h := digest.SHA3{}
	for _, length := range []int{1, 8, 32} {
		tbl, err := Build(testStream(11), h, testPrefix(), Params{Chains: 1, Length: length})
		if err != nil {
			t.Fatal(err)
		}
		misses := 0
		for _, target := range randomTargets(h, 1, 50) {
			tr := tbl.Trace(target)
			if tr.Found {
				continue
			}
			misses++
			if tr.Probes != length {
				t.Fatalf("L=%d: miss after %d probes", length, tr.Probes)
			}
			if x, ok := tbl.Search(target); ok || x != 0 {
				t.Fatalf("L=%d: Search disagrees with Trace: %d, %v", length, x, ok)
			}
		}
		if misses == 0 {
			t.Fatalf("L=%d: a single-chain table matched every target", length)
		}
	}
}

func TestSearchSoundness(t *testing.T) {
	h := digest.SHA3{}
	tbl, err := Build(testStream(12), h, testPrefix(), Params{Chains: 1024, Length: 32})
	if err != nil {
		t.Fatal(err)
	}
	r := tbl.Reducer()
	found := 0
	for _, target := range randomTargets(h, 2, 2000) {
		x, ok := tbl.Search(target)
		if !ok {
			continue
		}
		found++
		if got := domain.FromDigest(r.Sum(x)); got != domain.FromDigest(target) {
			t.Fatalf("result %d hashes to tail %#x, target tail %#x", x, got, domain.FromDigest(target))
		}
		if r.Advance(x, 1) != domain.FromDigest(target) {
			t.Fatalf("Advance(%d, 1) does not reach the target tail", x)
		}
	}
	if found == 0 || found == 2000 {
		t.Fatalf("implausible success count %d/2000", found)
	}
}

// Continuing past a false alarm never loses a target that stopping would find,
// and recovers targets that stopping gives up on.
func TestSearchContinuesPastFalseAlarms(t *testing.T) {
	h := digest.SHA3{}
	tbl, err := Build(testStream(13), h, testPrefix(), Params{Chains: 1024, Length: 32})
	if err != nil {
		t.Fatal(err)
	}

	var continued, aborted, falseAlarms int
	for _, target := range randomTargets(h, 3, 2000) {
		cont := tbl.Trace(target)
		stop := traceStopAtFalseAlarm(tbl, target)
		falseAlarms += cont.FalseAlarms

		if stop.Found {
			aborted++
			if !cont.Found || cont.Value != stop.Value || cont.Probes != stop.Probes {
				t.Fatalf("continuing search lost a target: continue=%+v abort=%+v", cont, stop)
			}
		}
		if cont.Found {
			continued++
		}
		if stop.FalseAlarms > 1 {
			t.Fatalf("aborting search recorded %d false alarms", stop.FalseAlarms)
		}
	}
	if falseAlarms == 0 {
		t.Fatal("expected false alarms in a K=1024, L=32 table")
	}
	if continued <= aborted {
		t.Fatalf("continuing found %d targets, aborting found %d", continued, aborted)
	}
	t.Logf("successes: continue %d, abort %d; false alarms %d", continued, aborted, falseAlarms)
}

// traceStopAtFalseAlarm is Trace with the walk ending at the first failed
// re-check.
func traceStopAtFalseAlarm(t *Table, target [digest.Size]byte) Trace {
	var tr Trace
	y := domain.FromDigest(target)
	for j := 0; j < t.ChainLen(); j++ {
		tr.Probes++
		if x0, ok := t.Lookup(y); ok {
			x := t.Reducer().Advance(x0, t.ChainLen()-j)
			if domain.TailEqual(t.Reducer().Sum(x), target) {
				tr.Value, tr.Found = x, true
				return tr
			}
			tr.FalseAlarms++
			return tr
		}
		y = t.Reducer().Reduce(y)
	}
	return tr
}

func BenchmarkSearch1024x32(b *testing.B) {
	h := digest.SHA3{}
	tbl, err := Build(testStream(14), h, testPrefix(), Params{Chains: 1024, Length: 32})
	if err != nil {
		b.Fatal(err)
	}
	targets := randomTargets(h, 4, 256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tbl.Search(targets[i%len(targets)])
	}
}
