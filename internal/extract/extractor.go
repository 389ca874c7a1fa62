// Package extract locates primer-bounded regions in sequence records.
package extract

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/ebedthan/hyperex/internal/primer"
	"github.com/ebedthan/hyperex/internal/scan"
	"github.com/ebedthan/hyperex/internal/seqio"
)

// Options configures an Extractor.
type Options struct {
	MaxMismatches int
	Strategy      scan.Strategy
	Workers       int // 0 means runtime.NumCPU()
	QueueSize     int // bounded work queue; 0 means 2*Workers
}

type compiled struct {
	def primer.RegionDefinition
	fwd *primer.Pattern
	rev *primer.Pattern
}

// Extractor scans records for a fixed set of region definitions. It is
// safe for concurrent use once compiled.
type Extractor struct {
	defs   []compiled
	opts   Options
	logger *zap.Logger
}

// Compile prepares the definitions for scanning. Definitions whose primers
// fail to compile are left out and their errors joined; the returned
// Extractor is usable as long as the options are valid, even when err is
// non-nil.
//
// Region names key the region IDs, so they are made unique: a definition
// repeating an earlier primer pair is dropped, and a new pair under a taken
// name gets a numeric suffix (v4, v4_2, ...). An empty name becomes "region".
func Compile(defs []primer.RegionDefinition, opts Options) (*Extractor, error) {
	if opts.MaxMismatches < 0 {
		return nil, fmt.Errorf("%w: %d", scan.ErrNegativeBudget, opts.MaxMismatches)
	}
	st, err := scan.ParseStrategy(string(opts.Strategy))
	if err != nil {
		return nil, err
	}
	opts.Strategy = st
	if opts.Workers < 0 || opts.QueueSize < 0 {
		return nil, fmt.Errorf("workers and queue size must not be negative")
	}

	e := &Extractor{opts: opts, logger: zap.NewNop()}
	var errs []error
	for _, d := range uniqueDefinitions(defs) {
		fwd, err := primer.CompilePrimer(d.Forward)
		if err != nil {
			errs = append(errs, fmt.Errorf("region %s: forward primer %s: %w", d.Name, d.Forward.Label(), err))
			continue
		}
		rev, err := primer.CompilePrimer(d.Reverse)
		if err != nil {
			errs = append(errs, fmt.Errorf("region %s: reverse primer %s: %w", d.Name, d.Reverse.Label(), err))
			continue
		}
		e.defs = append(e.defs, compiled{def: d, fwd: fwd, rev: rev})
	}
	return e, errors.Join(errs...)
}

// DefaultRegionName names a definition that arrives without one.
const DefaultRegionName = "region"

func uniqueDefinitions(defs []primer.RegionDefinition) []primer.RegionDefinition {
	type pairKey struct{ fwd, rev string }
	seen := make(map[pairKey]bool, len(defs))
	taken := make(map[string]bool, len(defs))
	out := make([]primer.RegionDefinition, 0, len(defs))
	for _, d := range defs {
		k := pairKey{
			strings.ToUpper(strings.TrimSpace(d.Forward.Sequence)),
			strings.ToUpper(strings.TrimSpace(d.Reverse.Sequence)),
		}
		if seen[k] {
			continue
		}
		seen[k] = true

		base := d.Name
		if base == "" {
			base = DefaultRegionName
		}
		name := base
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		taken[name] = true
		d.Name = name
		out = append(out, d)
	}
	return out
}

// SetLogger sets the logger for warning and info messages.
func (e *Extractor) SetLogger(l *zap.Logger) {
	e.logger = l
}

// Len returns the number of usable region definitions.
func (e *Extractor) Len() int { return len(e.defs) }

// Definitions returns the usable region definitions in order.
func (e *Extractor) Definitions() []primer.RegionDefinition {
	out := make([]primer.RegionDefinition, len(e.defs))
	for i, c := range e.defs {
		out[i] = c.def
	}
	return out
}

// Options returns the effective options.
func (e *Extractor) Options() Options { return e.opts }

func (e *Extractor) workers() int {
	if e.opts.Workers > 0 {
		return e.opts.Workers
	}
	return runtime.NumCPU()
}

func (e *Extractor) queueSize(workers int) int {
	if e.opts.QueueSize > 0 {
		return e.opts.QueueSize
	}
	return 2 * workers
}

// ExtractRecord extracts every region from one record. seq is the 0-based
// position of the record in its input. Regions come out in definition
// order, then by start.
func (e *Extractor) ExtractRecord(seq int, rec *seqio.Record) RecordResult {
	res := RecordResult{Seq: seq, RecordID: rec.ID, Length: len(rec.Bases)}
	if len(rec.Bases) == 0 {
		res.Err = ErrEmptyRecord
		return res
	}

	subj := scan.NewSubject(rec.Bases)
	for _, c := range e.defs {
		fwd, err := scan.Scan(c.fwd, subj, e.opts.MaxMismatches)
		if err != nil {
			res.Err = fmt.Errorf("region %s: %w", c.def.Name, err)
			return res
		}
		rev, err := scan.Scan(c.rev, subj, e.opts.MaxMismatches)
		if err != nil {
			res.Err = fmt.Errorf("region %s: %w", c.def.Name, err)
			return res
		}

		pairs := e.opts.Strategy.Pair(fwd, rev)
		if len(pairs) == 0 {
			res.Misses = append(res.Misses, Miss{RegionName: c.def.Name, ForwardHits: len(fwd), ReverseHits: len(rev)})
			continue
		}
		for k, p := range pairs {
			res.Regions = append(res.Regions, Region{
				ID:                fmt.Sprintf("%s_%s_%d", rec.ID, c.def.Name, k+1),
				RecordID:          rec.ID,
				RecordIndex:       seq,
				RegionName:        c.def.Name,
				Start:             p.Start,
				End:               p.End,
				MismatchesForward: p.MismatchesForward(),
				MismatchesReverse: p.MismatchesReverse(),
				Strand:            primer.Forward,
				ForwardPrimer:     c.def.Forward.Sequence,
				ReversePrimer:     c.def.Reverse.Sequence,
				Sequence:          string(rec.Bases[p.Start:p.End]),
			})
		}
	}
	return res
}

// Extract runs ExtractRecord over records in order on the calling
// goroutine. Per-record failures are collected in the summary.
func (e *Extractor) Extract(records []*seqio.Record) ([]Region, Summary) {
	var (
		out []Region
		sum Summary
	)
	for i, rec := range records {
		r := e.ExtractRecord(i, rec)
		sum.Add(r)
		out = append(out, r.Regions...)
	}
	return out, sum
}
