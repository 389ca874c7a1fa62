package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ebedthan/hyperex/internal/seqio"
)

// ShortRecordLength is the length below which a record is unlikely to hold
// a full-length 16S gene.
const ShortRecordLength = 1400

// RecordSource yields records one at a time.
// Next returns nil, nil when there are no more records.
type RecordSource interface {
	Next() (*seqio.Record, error)
}

// Run reads every record from src, extracts them on a worker pool and hands
// each result to emit in input order. Per-record failures do not stop the
// run; they are logged and collected in the returned Summary.
//
// When ctx is cancelled no further records are read, but records already
// queued are still extracted and emitted. If emit fails, reading stops and
// the remaining results are drained without being emitted.
func (e *Extractor) Run(ctx context.Context, src RecordSource, emit func(RecordResult) error) (Summary, error) {
	workers := e.workers()
	items := make(chan WorkItem, e.queueSize(workers))

	g, gctx := errgroup.WithContext(ctx)
	// stop halts the reader as soon as emit fails, before the collector has
	// finished draining.
	pctx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		defer close(items)
		for seq := 0; ; seq++ {
			if pctx.Err() != nil {
				// Only a cancelled caller context is this goroutine's error.
				return ctx.Err()
			}
			rec, err := src.Next()
			if err != nil {
				return fmt.Errorf("read record %d: %w", seq+1, err)
			}
			if rec == nil {
				return nil
			}
			select {
			case items <- WorkItem{Seq: seq, Record: rec}:
			case <-pctx.Done():
				return ctx.Err()
			}
		}
	})

	results := e.ParallelExtract(items, workers)

	var sum Summary
	g.Go(func() error {
		return OrderedCollect(results, func(r RecordResult) error {
			sum.Add(r)
			e.logResult(r)
			if emit == nil {
				return nil
			}
			if err := emit(r); err != nil {
				stop()
				return err
			}
			return nil
		})
	})

	err := g.Wait()
	return sum, err
}

func (e *Extractor) logResult(r RecordResult) {
	if r.Err != nil {
		e.logger.Warn("failed to extract record",
			zap.Int("record", r.Seq+1),
			zap.String("id", r.RecordID),
			zap.Error(r.Err))
		return
	}
	if r.Length < ShortRecordLength {
		e.logger.Warn("record is shorter than a full-length 16S gene",
			zap.String("id", r.RecordID),
			zap.Int("length", r.Length))
	}
	for _, m := range r.Misses {
		e.logger.Debug("region not found",
			zap.String("id", r.RecordID),
			zap.String("region", m.RegionName),
			zap.String("reason", m.Reason()),
			zap.Int("forward_hits", m.ForwardHits),
			zap.Int("reverse_hits", m.ReverseHits))
	}
}
