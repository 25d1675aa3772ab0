// Command tmto runs the Hellman time-memory trade-off experiment against a
// 16-bit truncated digest and prints the success rate of every configuration.
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/aerius-labs/hellman-tmto/digest"
	"github.com/aerius-labs/hellman-tmto/experiment"
	"github.com/aerius-labs/hellman-tmto/internal/prf"
	"github.com/op/go-logging"
	"github.com/spf13/pflag"
)

var log = logging.MustGetLogger("main")

var stderrLogFormat = logging.MustStringFormatter(
	`%{color:reset}%{color}%{time:15:04:05.000} [%{module}] [%{level}] %{message}`,
)

type options struct {
	config   experiment.Config
	hash     string
	seed     string
	logLevel string
	progress bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	def := experiment.DefaultConfig()
	fs := pflag.NewFlagSet("tmto", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	kValues := fs.IntSliceP("k", "k", def.KValues, "chain counts K to sweep")
	lValues := fs.IntSliceP("l", "l", def.LValues, "chain lengths L to sweep")
	trials := fs.IntP("trials", "n", def.Trials, "inversion attempts per configuration")
	tables := fs.IntP("tables", "t", def.Tables, "tables in the multi-table phase (0 means K)")
	phases := fs.StringSlice("phases", []string{"single", "multi"}, "phases to run: single, multi")
	hash := fs.String("hash", digest.Default, "digest: "+strings.Join(digest.Names(), ", "))
	workers := fs.IntP("workers", "w", def.Workers, "worker goroutines (0 means one per CPU)")
	seed := fs.String("seed", "", "seed for a reproducible run (default: crypto/rand)")
	logLevel := fs.String("loglevel", "info", "logging level [debug, info, notice, warning, error, critical]")
	progress := fs.BoolP("progress", "p", false, "show progress bars on stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts := &options{
		config: experiment.Config{
			KValues: *kValues,
			LValues: *lValues,
			Trials:  *trials,
			Tables:  *tables,
			Workers: *workers,
		},
		hash:     *hash,
		seed:     *seed,
		logLevel: *logLevel,
		progress: *progress,
	}
	for _, s := range *phases {
		p, err := experiment.ParsePhase(s)
		if err != nil {
			return nil, err
		}
		opts.config.Phases = append(opts.config.Phases, p)
	}
	return opts, nil
}

func setupLogging(level string, w io.Writer) error {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return err
	}
	backend := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), stderrLogFormat)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)
	return nil
}

// randomSource returns crypto/rand, or a ChaCha20 stream keyed by the seed
func randomSource(seed string) io.Reader {
	if seed == "" {
		return rand.Reader
	}
	return prf.NewStream(digest.SHA3{}.Sum256([]byte(seed)))
}

func run(ctx context.Context, opts *options, stdout, stderr io.Writer) error {
	h, err := digest.New(opts.hash)
	if err != nil {
		return err
	}
	runner := &experiment.Runner{
		Config: opts.config,
		Hash:   h,
		Rand:   randomSource(opts.seed),
		Out:    stdout,
	}
	if opts.progress {
		runner.Progress = stderr
	}
	_, err = runner.Run(ctx)
	return err
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := setupLogging(opts.logLevel, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}
