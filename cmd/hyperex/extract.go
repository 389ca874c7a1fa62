package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ebedthan/hyperex/internal/config"
	"github.com/ebedthan/hyperex/internal/duckdb"
	"github.com/ebedthan/hyperex/internal/extract"
	"github.com/ebedthan/hyperex/internal/logging"
	"github.com/ebedthan/hyperex/internal/output"
	"github.com/ebedthan/hyperex/internal/primer"
	"github.com/ebedthan/hyperex/internal/seqio"
)

func runExtract(cmd *cobra.Command, args []string) error {
	started := time.Now()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return &exitError{code: ExitUsage, err: err}
	}

	logger, closeLog, err := logging.New(logging.Options{
		Quiet:   cfg.Quiet,
		Verbose: cfg.Verbose,
		File:    cfg.LogFile,
	}.FromEnv())
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()
	defer func() { _ = logger.Sync() }()

	logBanner(logger)

	input := "-"
	if len(args) == 1 {
		input = args[0]
	}

	table := primer.NewBuiltinTable()
	defs, defErr := loadDefinitions(cfg, table)
	if defErr != nil {
		logger.Error("invalid region definitions", zap.Error(defErr))
	}

	ext, err := extract.Compile(defs, extract.Options{
		MaxMismatches: cfg.Mismatch,
		Strategy:      cfg.Strategy,
		Workers:       cfg.Threads,
		QueueSize:     cfg.Queue,
	})
	if ext == nil {
		return &exitError{code: ExitUsage, err: err}
	}
	if err != nil {
		logger.Error("invalid primers", zap.Error(err))
		defErr = errors.Join(defErr, err)
	}
	if ext.Len() == 0 {
		return &exitError{code: ExitError, err: errors.New("no usable region definitions")}
	}
	ext.SetLogger(logger)

	if cfg.Mismatch > 0 {
		logger.Warn("mismatches allowed in primer sites, extracted regions may be less specific",
			zap.Int("mismatch", cfg.Mismatch))
	}

	reader, err := seqio.Open(input)
	if err != nil {
		return err
	}
	defer reader.Close()

	outs, err := createOutputs(cfg)
	if err != nil {
		return err
	}
	defer outs.close()

	var (
		store *duckdb.Store
		runID int64
		sink  *duckdb.RegionSink
	)
	if cfg.DB != "" {
		store, err = duckdb.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer store.Close()
		if runID, err = store.NextRunID(); err != nil {
			return err
		}
		sink = store.NewRegionSink(runID)
		outs.writers = append(outs.writers, sink)
	}
	writer := output.Multi(outs.writers...)

	names := make([]string, 0, ext.Len())
	for _, d := range ext.Definitions() {
		names = append(names, d.Name)
	}
	logger.Info("extracting regions",
		zap.String("input", input),
		zap.Strings("regions", names),
		zap.String("strategy", string(cfg.Strategy)),
		zap.String("prefix", cfg.Prefix))

	sum, runErr := ext.Run(cmd.Context(), reader, func(res extract.RecordResult) error {
		return output.WriteResult(writer, res)
	})
	if err := writer.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("flush output: %w", err)
	}

	if store != nil {
		fp, err := duckdb.StatFile(input)
		if err != nil {
			logger.Warn("could not stat input for run metadata", zap.Error(err))
			fp = duckdb.FileFingerprint{Path: input}
		}
		if err := store.RecordRun(duckdb.Run{
			ID:            runID,
			Input:         fp,
			StartedAt:     started,
			FinishedAt:    time.Now(),
			MaxMismatches: cfg.Mismatch,
			Strategy:      string(cfg.Strategy),
			Definitions:   names,
			Records:       sum.Records,
			Regions:       sum.Regions,
			Failures:      len(sum.Failures),
		}); err != nil && runErr == nil {
			runErr = err
		}
	}

	logSummary(logger, sum, reader.Format(), time.Since(started))

	if runErr != nil {
		return runErr
	}
	if sum.Records == 0 {
		logger.Warn("no records read from input", zap.String("input", input))
	}
	if err := errors.Join(defErr, sum.Err()); err != nil {
		return &exitError{code: ExitError}
	}
	return nil
}

// loadDefinitions resolves the region definitions selected by cfg.
func loadDefinitions(cfg config.Config, table *primer.Table) ([]primer.RegionDefinition, error) {
	switch cfg.Source() {
	case config.SourceFile:
		return primer.LoadPairFile(cfg.Primers, table)
	case config.SourcePairs:
		return primer.ResolvePairs(table, cfg.Forward, cfg.Reverse)
	case config.SourceRegions:
		return primer.ResolveRegions(table, cfg.Regions)
	default:
		return table.Regions(), nil
	}
}

type outputs struct {
	files   []*os.File
	writers []output.RegionWriter
}

// createOutputs opens the FASTA, GFF3 and optional table outputs, refusing
// to replace existing files unless forced.
func createOutputs(cfg config.Config) (*outputs, error) {
	if !cfg.Force {
		var existing []string
		for _, p := range cfg.OutputPaths() {
			if _, err := os.Stat(p); err == nil {
				existing = append(existing, p)
			}
		}
		if len(existing) > 0 {
			return nil, &exitError{code: ExitError, err: fmt.Errorf(
				"output file(s) %s already exist; use --force to overwrite", strings.Join(existing, ", "))}
		}
	}

	o := &outputs{}
	open := func(path string) (io.Writer, error) {
		f, err := os.Create(path)
		if err != nil {
			o.close()
			return nil, fmt.Errorf("create output file: %w", err)
		}
		o.files = append(o.files, f)
		return f, nil
	}

	fa, err := open(cfg.FASTAPath())
	if err != nil {
		return nil, err
	}
	gff, err := open(cfg.GFFPath())
	if err != nil {
		return nil, err
	}
	gw := output.NewGFFWriter(gff)
	if err := gw.WriteHeader(); err != nil {
		o.close()
		return nil, err
	}
	o.writers = append(o.writers, output.NewFASTAWriter(fa), gw)

	if cfg.Table {
		tsv, err := open(cfg.TablePath())
		if err != nil {
			return nil, err
		}
		tw := output.NewTabWriter(tsv)
		if err := tw.WriteHeader(); err != nil {
			o.close()
			return nil, err
		}
		o.writers = append(o.writers, tw)
	}
	return o, nil
}

func (o *outputs) close() {
	for _, f := range o.files {
		f.Close()
	}
	o.files = nil
}

func logBanner(logger *zap.Logger) {
	name := "unknown"
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	logger.Info("hyperex "+version,
		zap.String("date", time.Now().Format(time.RFC1123)),
		zap.String("user", name),
		zap.String("os", runtime.GOOS))
}

func logSummary(logger *zap.Logger, sum extract.Summary, format seqio.Format, elapsed time.Duration) {
	fields := []zap.Field{
		zap.Int("records", sum.Records),
		zap.Int("with_regions", sum.RecordsMatched),
		zap.Int("regions", sum.Regions),
		zap.Int("failed", len(sum.Failures)),
		zap.Stringer("compression", format),
	}
	for _, name := range sum.RegionNames() {
		fields = append(fields, zap.Int("region_"+name, sum.PerRegion[name]))
	}
	logger.Info("done", fields...)
	logger.Info("walltime", zap.Duration("elapsed", elapsed.Round(time.Millisecond)))
}
