package scan

import (
	"fmt"
	"sort"
)

// Pairing is a region bounded by a forward and a reverse occurrence. The
// interval is half-open: [Forward.Position, Reverse.End).
type Pairing struct {
	Start   int
	End     int
	Forward Occurrence
	Reverse Occurrence
}

// MismatchesForward is the mismatch count of the forward primer site.
func (p Pairing) MismatchesForward() int { return p.Forward.Mismatches }

// MismatchesReverse is the mismatch count of the reverse primer site.
func (p Pairing) MismatchesReverse() int { return p.Reverse.Mismatches }

// Strategy selects how forward and reverse occurrences are paired.
type Strategy string

const (
	// Nearest pairs every forward occurrence with its nearest downstream
	// reverse occurrence. Reverse occurrences may be shared.
	Nearest Strategy = "nearest"
	// Greedy pairs left to right, one-to-one, and skips forward occurrences
	// that fall inside an already reported region.
	Greedy Strategy = "greedy"
	// Best reports at most one region: the best forward occurrence with the
	// best reverse occurrence downstream of it.
	Best Strategy = "best"
)

// Strategies lists the accepted strategy names.
var Strategies = []Strategy{Nearest, Greedy, Best}

// ParseStrategy validates a strategy name. The empty string means Nearest.
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return Nearest, nil
	}
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown pairing strategy %q (want nearest, greedy or best)", s)
}

// Pair pairs occurrences with the Nearest strategy.
func Pair(fwd, rev []Occurrence) []Pairing {
	return Nearest.Pair(fwd, rev)
}

// Pair pairs fwd with rev. A reverse occurrence only qualifies when its
// start is strictly greater than the forward occurrence's end. Results are
// ordered by start. Forward occurrences without a downstream partner
// contribute nothing.
func (s Strategy) Pair(fwd, rev []Occurrence) []Pairing {
	if len(fwd) == 0 || len(rev) == 0 {
		return nil
	}
	fwd = sortedByPosition(fwd)
	rev = sortedByPosition(rev)

	switch s {
	case Greedy:
		return pairGreedy(fwd, rev)
	case Best:
		return pairBest(fwd, rev)
	default:
		return pairNearest(fwd, rev)
	}
}

func pairNearest(fwd, rev []Occurrence) []Pairing {
	var out []Pairing
	for _, f := range fwd {
		if r, ok := nearestDownstream(f, rev); ok {
			out = append(out, newPairing(f, r))
		}
	}
	return out
}

func pairGreedy(fwd, rev []Occurrence) []Pairing {
	var out []Pairing
	boundary := 0
	for _, f := range fwd {
		if f.Position < boundary {
			continue
		}
		// Every reverse occurrence starting after f.End also starts after the
		// previous region, so none of them has been used yet.
		if r, ok := nearestDownstream(f, rev); ok {
			out = append(out, newPairing(f, r))
			boundary = r.End
		}
	}
	return out
}

func pairBest(fwd, rev []Occurrence) []Pairing {
	best := fwd[0]
	for _, f := range fwd[1:] {
		if f.Mismatches < best.Mismatches {
			best = f
		}
	}
	var (
		pick  Occurrence
		found bool
	)
	for _, r := range rev {
		if r.Position <= best.End {
			continue
		}
		if !found || r.Mismatches < pick.Mismatches {
			pick, found = r, true
		}
	}
	if !found {
		return nil
	}
	return []Pairing{newPairing(best, pick)}
}

// nearestDownstream returns the reverse occurrence closest to f among those
// starting after f.End. Ties go to fewer mismatches, then lower position.
// rev must be sorted by position.
func nearestDownstream(f Occurrence, rev []Occurrence) (Occurrence, bool) {
	i := sort.Search(len(rev), func(i int) bool { return rev[i].Position > f.End })
	if i == len(rev) {
		return Occurrence{}, false
	}
	best := rev[i]
	for _, r := range rev[i+1:] {
		if r.Position != best.Position {
			break
		}
		if r.Mismatches < best.Mismatches {
			best = r
		}
	}
	return best, true
}

func newPairing(f, r Occurrence) Pairing {
	return Pairing{Start: f.Position, End: r.End, Forward: f, Reverse: r}
}

func sortedByPosition(occ []Occurrence) []Occurrence {
	if sort.SliceIsSorted(occ, func(i, j int) bool { return occ[i].Position < occ[j].Position }) {
		return occ
	}
	out := append([]Occurrence(nil), occ...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
