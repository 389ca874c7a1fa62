package primer

import (
	"fmt"
	"strings"
)

// Pattern is a compiled primer: one base set per position, ready for
// mismatch-tolerant scanning. A Pattern is never modified after Compile and
// may be shared between goroutines.
type Pattern struct {
	source string
	strand Orientation
	bases  []Base
}

// Compile translates raw IUPAC text (either case, surrounding whitespace
// ignored) into a forward-strand Pattern. Gap or placeholder characters are
// rejected rather than skipped.
func Compile(raw string) (*Pattern, error) {
	src := strings.TrimSpace(raw)
	if src == "" {
		return nil, fmt.Errorf("%w: empty primer", ErrInvalidPattern)
	}
	bases := make([]Base, 0, len(src))
	pos := 0
	for _, r := range src {
		pos++
		if r > 0x7f {
			return nil, &SymbolError{Source: raw, Pos: pos, Char: r}
		}
		b, ok := ParseBase(byte(r))
		if !ok {
			return nil, &SymbolError{Source: raw, Pos: pos, Char: r}
		}
		bases = append(bases, b)
	}
	return &Pattern{source: strings.ToUpper(src), strand: Forward, bases: bases}, nil
}

// CompilePrimer compiles p. Reverse primers yield the reverse-complement
// pattern, which is what gets scanned along the forward strand.
func CompilePrimer(p Primer) (*Pattern, error) {
	pat, err := Compile(p.Sequence)
	if err != nil {
		return nil, err
	}
	if p.Orientation == Reverse {
		return pat.ReverseComplement(), nil
	}
	return pat, nil
}

// ReverseComplement returns a new pattern for the opposite strand.
func (p *Pattern) ReverseComplement() *Pattern {
	n := len(p.bases)
	out := make([]Base, n)
	for i, b := range p.bases {
		out[n-1-i] = b.Complement()
	}
	strand := Reverse
	if p.strand == Reverse {
		strand = Forward
	}
	return &Pattern{source: p.source, strand: strand, bases: out}
}

// Len returns the number of positions.
func (p *Pattern) Len() int { return len(p.bases) }

// At returns the base set at position i.
func (p *Pattern) At(i int) Base { return p.bases[i] }

// Bases returns the per-position base sets. The slice must not be modified.
func (p *Pattern) Bases() []Base { return p.bases }

// Source returns the upper-cased primer text the pattern was compiled from.
func (p *Pattern) Source() string { return p.source }

// Strand reports which strand convention the pattern scans for.
func (p *Pattern) Strand() Orientation { return p.strand }

// String renders the pattern positions as IUPAC letters.
func (p *Pattern) String() string {
	b := make([]byte, len(p.bases))
	for i, x := range p.bases {
		b[i] = x.Letter()
	}
	return string(b)
}

// ReverseComplementString is the string form of the reverse complement of an
// IUPAC sequence. Characters outside the alphabet come back as '-'.
func ReverseComplementString(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = SubjectMask(seq[i]).Complement().Letter()
	}
	return string(out)
}
