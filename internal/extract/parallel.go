package extract

import (
	"fmt"
	"sync"

	"github.com/ebedthan/hyperex/internal/seqio"
)

// WorkItem is one record queued for extraction. Seq is its 0-based position
// in the input and must be dense: 0, 1, 2, ...
type WorkItem struct {
	Seq    int
	Record *seqio.Record
}

// GapError means the result stream ended while later records were still
// waiting for an earlier one that never arrived.
type GapError struct {
	Next    int // first missing sequence number
	Pending int // results held back behind it
}

func (e *GapError) Error() string {
	return fmt.Sprintf("record %d missing from results, %d later records not emitted", e.Next+1, e.Pending)
}

// ParallelExtract runs ExtractRecord over items on a worker pool. Results
// arrive in completion order; OrderedCollect restores input order. workers
// <= 0 falls back to the extractor's Workers option, and the result buffer
// is sized like the work queue.
func (e *Extractor) ParallelExtract(items <-chan WorkItem, workers int) <-chan RecordResult {
	if workers <= 0 {
		workers = e.workers()
	}
	results := make(chan RecordResult, e.queueSize(workers))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- e.ExtractRecord(item.Seq, item.Record)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	return results
}

// OrderedCollect hands results to fn in sequence order, holding early
// arrivals until the gap before them fills. When fn fails the rest of the
// channel is drained so workers can exit. If the channel closes with results
// still held back, a *GapError is returned.
func OrderedCollect(results <-chan RecordResult, fn func(RecordResult) error) error {
	held := make(map[int]RecordResult)
	next := 0

	for r := range results {
		if r.Seq < next {
			drain(results)
			return fmt.Errorf("record %d delivered twice", r.Seq+1)
		}
		held[r.Seq] = r

		for {
			rr, ok := held[next]
			if !ok {
				break
			}
			delete(held, next)
			next++
			if err := fn(rr); err != nil {
				drain(results)
				return err
			}
		}
	}

	if len(held) > 0 {
		return &GapError{Next: next, Pending: len(held)}
	}
	return nil
}

func drain(results <-chan RecordResult) {
	for range results {
	}
}
