// Package experiment measures the success rate of Hellman table attacks
// over a sweep of chain counts and chain lengths.
package experiment

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aerius-labs/hellman-tmto/digest"
	"github.com/aerius-labs/hellman-tmto/domain"
	"github.com/aerius-labs/hellman-tmto/internal/parallel"
	"github.com/aerius-labs/hellman-tmto/internal/prf"
	"github.com/aerius-labs/hellman-tmto/table"
	"github.com/op/go-logging"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/atomic"
)

var log = logging.MustGetLogger("experiment")

const (
	// trialGrain is the fewest trials worth handing to their own goroutine
	trialGrain = 64
	// progressEvery is how many trials a worker runs between progress and
	// cancellation checks
	progressEvery = 64
)

// Result is the outcome of one (phase, K, L) configuration
type Result struct {
	Phase     Phase
	K         int
	L         int
	Tables    int
	Trials    int
	Successes int
	Failures  int
	Entries   int // stored endpoints over all tables
	Merges    int // chains lost to endpoint collisions
	Elapsed   time.Duration
}

// Rate returns the success rate as a percentage
func (r Result) Rate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Successes) / float64(r.Trials) * 100
}

func (r Result) String() string {
	if r.Phase == Multi {
		return fmt.Sprintf("K = %d, L = %d, Tables = %d: Successful searches: %.2f%%", r.K, r.L, r.Tables, r.Rate())
	}
	return fmt.Sprintf("K = %d, L = %d: Successful searches: %.2f%%", r.K, r.L, r.Rate())
}

// Runner executes a sweep
type Runner struct {
	Config   Config
	Hash     digest.Hash
	Rand     io.Reader // prefixes, chain starts and message keys; read from one goroutine only
	Out      io.Writer // phase headers and result lines; may be nil
	Progress io.Writer // progress bars; nil disables them
}

type searchFunc func(target [digest.Size]byte) (domain.Value, bool)

// Run sweeps the configured phases, K values and L values in order. Results
// are written to Out as soon as each configuration finishes. On cancellation
// the results gathered so far are returned with the context's error.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}
	if r.Hash == nil {
		return nil, fmt.Errorf("%w: no hash configured", table.ErrInvalidConfiguration)
	}
	if r.Rand == nil {
		return nil, fmt.Errorf("%w: no random source configured", table.ErrInvalidConfiguration)
	}

	var results []Result
	for _, phase := range r.Config.Phases {
		log.Infof("starting %s-table phase with %s", phase, r.Hash.Name())
		r.println(phase.Header())
		for _, k := range r.Config.KValues {
			for _, l := range r.Config.LValues {
				if err := ctx.Err(); err != nil {
					return results, err
				}
				res, err := r.runOne(ctx, phase, k, l)
				if err != nil {
					return results, err
				}
				results = append(results, res)
				r.println(res.String())
			}
		}
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, phase Phase, k, l int) (Result, error) {
	start := time.Now()
	params := table.Params{Chains: k, Length: l, Workers: r.Config.Workers}
	res := Result{Phase: phase, K: k, L: l, Tables: 1, Trials: r.Config.Trials}

	var search searchFunc
	switch phase {
	case Single:
		prefix, err := domain.RandPrefix(r.Rand)
		if err != nil {
			return res, err
		}
		tbl, err := table.Build(r.Rand, r.Hash, prefix, params)
		if err != nil {
			return res, err
		}
		res.Entries, res.Merges = tbl.Len(), tbl.Merges()
		search = tbl.Search
	case Multi:
		res.Tables = r.Config.TablesFor(k)
		set, err := table.BuildSet(r.Rand, r.Hash, params, res.Tables)
		if err != nil {
			return res, err
		}
		res.Entries, res.Merges = set.Entries(), set.Merges()
		search = func(target [digest.Size]byte) (domain.Value, bool) {
			x, _, ok := set.SearchAll(target)
			return x, ok
		}
	default:
		return res, &table.ConfigError{Field: "phase", Value: int(phase)}
	}

	key, err := prf.KeyGen(r.Rand)
	if err != nil {
		return res, err
	}
	successes, err := r.trials(ctx, search, key, fmt.Sprintf("K=%d L=%d", k, l))
	if err != nil {
		return res, err
	}
	res.Successes = successes
	res.Failures = res.Trials - successes
	res.Elapsed = time.Since(start)

	log.Infof("%s K=%d L=%d tables=%d: %d/%d found, %d entries, %d merges, %s",
		phase, k, l, res.Tables, res.Successes, res.Trials, res.Entries, res.Merges, res.Elapsed)
	return res, nil
}

type sample struct {
	ok     bool
	value  domain.Value
	target [digest.Size]byte
}

// trials runs N independent inversion attempts. Trial i searches for the
// digest of prf.Message(key, i), so the outcome does not depend on how trials
// are spread over workers.
func (r *Runner) trials(ctx context.Context, search searchFunc, key [prf.KeyLen]byte, desc string) (int, error) {
	n := r.Config.Trials
	bar := r.progressBar(n, desc)
	successes := atomic.NewInt64(0)
	samples := make([]sample, parallel.Chunks(n, r.Config.Workers, trialGrain))

	parallel.For(n, r.Config.Workers, trialGrain, func(chunk, lo, hi int) {
		local := 0
		for i := lo; i < hi; i++ {
			if (i-lo)%progressEvery == 0 && i > lo {
				bar.Add(progressEvery)
				if ctx.Err() != nil {
					break
				}
			}
			msg := prf.Message(key, uint64(i))
			target := r.Hash.Sum256(msg[:])
			if x, ok := search(target); ok {
				local++
				if !samples[chunk].ok {
					samples[chunk] = sample{ok: true, value: x, target: target}
				}
			}
		}
		successes.Add(int64(local))
	})
	bar.Finish()
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	for _, s := range samples {
		if s.ok {
			log.Debugf("%s: recovered %d (%x) for target %x", desc, s.value, domain.ToBytes(s.value), s.target)
			break
		}
	}
	return int(successes.Load()), nil
}

func (r *Runner) progressBar(n int, desc string) *progressbar.ProgressBar {
	if r.Progress == nil {
		return progressbar.DefaultSilent(int64(n), desc)
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(r.Progress),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(25),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *Runner) println(s string) {
	if r.Out != nil {
		fmt.Fprintln(r.Out, s)
	}
}
