// Package main provides the hyperex command-line tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ebedthan/hyperex/internal/config"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfgFile string

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	return exitCode(err)
}

// exitError carries a specific exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", ee.err)
		}
		return ee.code
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Interrupted")
		return ExitInterrupted
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitError
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hyperex [flags] [FILE]",
		Short: "Hypervariable region primer-based extractor",
		Long: `Extract primer-bounded hypervariable regions from 16S rRNA (or other
marker gene) sequences. Input is FASTA, optionally gzip, bzip2, xz or zstd
compressed; read from standard input when FILE is absent or '-'.

Regions are written to <prefix>.fa and <prefix>.gff.`,
		Example: `  hyperex -p out input.fa.gz                  # all built-in 16S regions
  hyperex --region v3v4 --region v4 input.fa    # selected regions
  hyperex -f 515F -r 806R -m 1 input.fa         # primer names or IUPAC sequences
  hyperex --primers pairs.txt input.fa          # forward/reverse pairs, one per line
  zcat input.fa.gz | hyperex --table --db runs.duckdb`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: runExtract,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: ExitUsage, err: err}
	})

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.hyperex.yaml)")

	f := cmd.Flags()
	addExtractFlags(f)

	cmd.MarkFlagsMutuallyExclusive(config.KeyRegion, config.KeyPrimers)
	cmd.MarkFlagsMutuallyExclusive(config.KeyForward, config.KeyRegion)
	cmd.MarkFlagsMutuallyExclusive(config.KeyForward, config.KeyPrimers)
	cmd.MarkFlagsRequiredTogether(config.KeyForward, config.KeyReverse)
	cmd.MarkFlagsMutuallyExclusive(config.KeyQuiet, config.KeyVerbose)

	_ = viper.BindPFlags(f)
	_ = viper.BindPFlag(config.KeyLogFile, f.Lookup("log-file"))

	cmd.AddCommand(newRegionsCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// addExtractFlags registers the extraction flags. Flag names double as
// config keys.
func addExtractFlags(f *pflag.FlagSet) {
	f.IntP(config.KeyMismatch, "m", 0, "maximum number of mismatches per primer site")
	f.StringSlice(config.KeyRegion, nil, "built-in region(s) to extract, e.g. v3v4 (default all)")
	f.StringSliceP(config.KeyForward, "f", nil, "forward primer name or IUPAC sequence (repeatable)")
	f.StringSliceP(config.KeyReverse, "r", nil, "reverse primer name or IUPAC sequence (repeatable)")
	f.String(config.KeyPrimers, "", "file of forward/reverse primer pairs, whitespace separated")
	f.StringP(config.KeyPrefix, "p", config.DefaultPrefix, "output file prefix")
	f.BoolP(config.KeyForce, "F", false, "overwrite existing output files")
	f.BoolP(config.KeyQuiet, "q", false, "only log warnings and errors")
	f.BoolP(config.KeyVerbose, "v", false, "log regions that were not found")
	f.String(config.KeyStrategy, "nearest", "pairing strategy: nearest, greedy or best")
	f.IntP(config.KeyThreads, "t", 0, "worker threads (default number of CPUs)")
	f.Int(config.KeyQueue, 0, "records queued ahead of the workers (default 2x threads)")
	f.Bool(config.KeyTable, false, "also write a tab-delimited <prefix>.tsv")
	f.String(config.KeyDB, "", "append regions and run metadata to a DuckDB database")
	f.String("log-file", "", "append JSON log entries to this file")
}

// initConfig reads the config file and environment into the global viper.
func initConfig() error {
	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		viper.SetConfigFile(filepath.Join(home, ".hyperex.yaml"))
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine; `config set` creates it.
		if isNotFound(err) {
			return nil
		}
		return &exitError{code: ExitUsage, err: fmt.Errorf("read config %s: %w", viper.ConfigFileUsed(), err)}
	}
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
}
