package extract

import (
	"errors"
	"sort"
)

// Summary aggregates a run. It is only updated from the collecting
// goroutine.
type Summary struct {
	Records        int
	RecordsMatched int
	Regions        int
	Bases          int64
	PerRegion      map[string]int
	Failures       []*RecordError
}

// Add merges one record result.
func (s *Summary) Add(r RecordResult) {
	s.Records++
	s.Bases += int64(r.Length)
	if r.Err != nil {
		s.Failures = append(s.Failures, &RecordError{Index: r.Seq + 1, RecordID: r.RecordID, Err: r.Err})
		return
	}
	if len(r.Regions) > 0 {
		s.RecordsMatched++
	}
	if s.PerRegion == nil {
		s.PerRegion = make(map[string]int)
	}
	for i := range r.Regions {
		s.Regions++
		s.PerRegion[r.Regions[i].RegionName]++
	}
}

// RegionNames returns the names present in PerRegion, sorted.
func (s *Summary) RegionNames() []string {
	names := make([]string, 0, len(s.PerRegion))
	for n := range s.PerRegion {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Err joins all per-record failures, or returns nil.
func (s *Summary) Err() error {
	if len(s.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(s.Failures))
	for i, f := range s.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
