package experiment

import (
	"fmt"
	"strings"

	"github.com/aerius-labs/hellman-tmto/table"
	"github.com/hashicorp/go-multierror"
)

// Phase selects the single-table or the multi-table attack
type Phase int

const (
	Single Phase = iota + 1
	Multi
)

func (p Phase) String() string {
	switch p {
	case Single:
		return "single"
	case Multi:
		return "multi"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Header is the banner printed before a phase's results
func (p Phase) Header() string {
	switch p {
	case Single:
		return "===== Part 1: Attack with a single precomputation table ====="
	case Multi:
		return "===== Part 2: Attack with multiple precomputation tables ====="
	}
	return "===== " + p.String() + " ====="
}

// ParsePhase accepts "single" or "multi"
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return Single, nil
	case "multi":
		return Multi, nil
	}
	return 0, fmt.Errorf("unknown phase %q (want single or multi)", s)
}

// Config is the parameter sweep
type Config struct {
	KValues []int   // chain counts
	LValues []int   // chain lengths
	Trials  int     // N, inversion attempts per configuration
	Tables  int     // tables in the multi phase; 0 means one table per chain (= K)
	Phases  []Phase // phases to run, in order
	Workers int     // goroutines; 0 means one per CPU
}

// DefaultConfig returns the reference sweep: K in {2^10, 2^12, 2^14},
// L in {2^5, 2^6, 2^7}, 10000 trials, both phases.
func DefaultConfig() Config {
	return Config{
		KValues: []int{1 << 10, 1 << 12, 1 << 14},
		LValues: []int{1 << 5, 1 << 6, 1 << 7},
		Trials:  10000,
		Phases:  []Phase{Single, Multi},
	}
}

// TablesFor returns the number of tables the multi phase builds for k
func (c Config) TablesFor(k int) int {
	if c.Tables == 0 {
		return k
	}
	return c.Tables
}

// Validate reports every invalid field at once
func (c Config) Validate() error {
	var result *multierror.Error
	if len(c.KValues) == 0 {
		result = multierror.Append(result, &table.ConfigError{Field: "number of K values", Value: 0})
	}
	for _, k := range c.KValues {
		if k <= 0 {
			result = multierror.Append(result, &table.ConfigError{Field: "K", Value: k})
		}
	}
	if len(c.LValues) == 0 {
		result = multierror.Append(result, &table.ConfigError{Field: "number of L values", Value: 0})
	}
	for _, l := range c.LValues {
		if l <= 0 {
			result = multierror.Append(result, &table.ConfigError{Field: "L", Value: l})
		}
	}
	if c.Trials <= 0 {
		result = multierror.Append(result, &table.ConfigError{Field: "trials", Value: c.Trials})
	}
	if c.Tables < 0 {
		result = multierror.Append(result, &table.ConfigError{Field: "tables", Value: c.Tables})
	}
	if c.Workers < 0 {
		result = multierror.Append(result, &table.ConfigError{Field: "workers", Value: c.Workers})
	}
	if len(c.Phases) == 0 {
		result = multierror.Append(result, &table.ConfigError{Field: "number of phases", Value: 0})
	}
	for _, p := range c.Phases {
		if p != Single && p != Multi {
			result = multierror.Append(result, &table.ConfigError{Field: "phase", Value: int(p)})
		}
	}
	return result.ErrorOrNil()
}
