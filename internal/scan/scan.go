// Package scan finds mismatch-tolerant primer occurrences in a sequence and
// pairs forward and reverse occurrences into regions.
package scan

import (
	"errors"
	"fmt"

	"github.com/ebedthan/hyperex/internal/primer"
)

// ErrNegativeBudget is returned when the mismatch budget is below zero.
var ErrNegativeBudget = errors.New("negative mismatch budget")

// Occurrence is one place where a pattern matched, in forward-strand
// coordinates regardless of the pattern's strand.
type Occurrence struct {
	Position   int // 0-based start
	End        int // Position + pattern length
	Mismatches int
	Strand     primer.Orientation
}

// Subject is a sequence translated to base sets once, so every pattern of
// every region definition can scan it without decoding characters again.
type Subject []primer.Base

// NewSubject translates raw sequence characters. Lower case and U are
// accepted; anything outside the IUPAC alphabet becomes an empty set, which
// never matches.
func NewSubject(bases []byte) Subject {
	s := make(Subject, len(bases))
	for i, c := range bases {
		s[i] = primer.SubjectMask(c)
	}
	return s
}

// Scan slides p over every offset of s and reports each offset whose
// mismatch count is at most maxMismatches, in ascending position order.
// Overlapping occurrences are all reported. A pattern longer than the
// subject yields no occurrences; a budget of at least the pattern length
// matches at every offset.
func Scan(p *primer.Pattern, s Subject, maxMismatches int) ([]Occurrence, error) {
	if p == nil || p.Len() == 0 {
		return nil, fmt.Errorf("%w: zero-length pattern", primer.ErrInvalidPattern)
	}
	if maxMismatches < 0 {
		return nil, ErrNegativeBudget
	}
	m := p.Len()
	if m > len(s) {
		return nil, nil
	}

	pat := p.Bases()
	strand := p.Strand()
	last := len(s) - m
	out := make([]Occurrence, 0, 4)

window:
	for i := 0; i <= last; i++ {
		mm := 0
		for j, pb := range pat {
			// a subject set matches when it is non-empty and inside pb
			if sb := s[i+j]; sb == 0 || sb&^pb != 0 {
				mm++
				if mm > maxMismatches {
					continue window
				}
			}
		}
		out = append(out, Occurrence{Position: i, End: i + m, Mismatches: mm, Strand: strand})
	}
	return out, nil
}

// ScanBytes is Scan over raw sequence characters.
func ScanBytes(p *primer.Pattern, seq []byte, maxMismatches int) ([]Occurrence, error) {
	return Scan(p, NewSubject(seq), maxMismatches)
}
