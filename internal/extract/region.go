package extract

import (
	"errors"
	"fmt"

	"github.com/ebedthan/hyperex/internal/primer"
)

// ErrEmptyRecord is reported for records without bases.
var ErrEmptyRecord = errors.New("record has no bases")

// Region is one extracted hypervariable region.
type Region struct {
	// ID is stable across runs: <record>_<region>_<n>, n counting from 1
	// within one record and region definition.
	ID          string
	RecordID    string
	RecordIndex int
	RegionName  string

	Start int // 0-based, inclusive
	End   int // exclusive

	MismatchesForward int
	MismatchesReverse int
	Strand            primer.Orientation

	ForwardPrimer string
	ReversePrimer string

	Sequence string
}

// Len returns the region length in bases.
func (r *Region) Len() int { return r.End - r.Start }

// Miss records a region definition that produced nothing for a record,
// with the number of primer sites found on each side.
type Miss struct {
	RegionName  string
	ForwardHits int
	ReverseHits int
}

// Reason explains why no region was reported.
func (m Miss) Reason() string {
	switch {
	case m.ForwardHits == 0 && m.ReverseHits == 0:
		return "neither primer found"
	case m.ForwardHits == 0:
		return "forward primer not found"
	case m.ReverseHits == 0:
		return "reverse primer not found"
	default:
		return "no reverse primer downstream of a forward primer"
	}
}

// RecordResult is everything extracted from one record.
type RecordResult struct {
	Seq      int // 0-based position of the record in the input
	RecordID string
	Length   int
	Regions  []Region
	Misses   []Miss
	Err      error
}

// RecordError ties a per-record failure to the record it came from.
type RecordError struct {
	Index    int // 1-based record number
	RecordID string
	Err      error
}

func (e *RecordError) Error() string {
	if e.RecordID == "" {
		return fmt.Sprintf("record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("record %d (%s): %v", e.Index, e.RecordID, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
