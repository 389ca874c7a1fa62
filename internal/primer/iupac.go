// Package primer provides the IUPAC nucleotide alphabet, primer and region
// definitions, the built-in 16S rRNA primer table and pattern compilation.
package primer

// Base is an IUPAC nucleotide symbol, stored as the set of concrete bases it
// stands for (bit0=A bit1=C bit2=G bit3=T).
type Base uint8

// Concrete bases.
const (
	A Base = 1 << iota
	C
	G
	T
)

// Ambiguity codes.
const (
	R = A | G
	Y = C | T
	S = C | G
	W = A | T
	K = G | T
	M = A | C
	B = C | G | T
	D = A | G | T
	H = A | C | T
	V = A | C | G
	N = A | C | G | T
)

// Alphabet lists every accepted symbol. U is read as T.
const Alphabet = "ACGTURYSWKMBDHVN"

// letters maps a mask back to its canonical upper-case symbol.
const letters = "-ACMGRSVTWYHKDBN"

var symbols [256]Base

func init() {
	set := func(c byte, b Base) {
		symbols[c] = b
		symbols[c+'a'-'A'] = b
	}
	set('A', A)
	set('C', C)
	set('G', G)
	set('T', T)
	set('U', T)
	set('R', R)
	set('Y', Y)
	set('S', S)
	set('W', W)
	set('K', K)
	set('M', M)
	set('B', B)
	set('D', D)
	set('H', H)
	set('V', V)
	set('N', N)
}

// ParseBase returns the Base for an IUPAC letter (either case).
func ParseBase(c byte) (Base, bool) {
	b := symbols[c]
	return b, b != 0
}

// Valid reports whether b is a non-empty subset of {A,C,G,T}.
func (b Base) Valid() bool { return b != 0 && b <= N }

// Concrete reports whether b denotes exactly one base.
func (b Base) Concrete() bool { return b.Valid() && b&(b-1) == 0 }

// Contains reports whether every base denoted by x is also denoted by b.
func (b Base) Contains(x Base) bool { return x.Valid() && x&^b == 0 }

// Complement swaps A<->T and C<->G across the whole set, so
// Complement(R) == Y, Complement(S) == S and Complement(N) == N.
func (b Base) Complement() Base {
	return (b&A)<<3 | (b&T)>>3 | (b&C)<<1 | (b&G)>>1
}

// Letter returns the canonical upper-case IUPAC letter for b, or '-' for an
// empty set.
func (b Base) Letter() byte {
	if b > N {
		return '-'
	}
	return letters[b]
}

func (b Base) String() string { return string(b.Letter()) }

// SubjectMask maps a sequence character to its base set. Unknown characters
// (gaps, digits, '*') map to 0 and never match.
func SubjectMask(c byte) Base { return symbols[c] }

// Matches reports whether subject character c satisfies pattern symbol p.
// A concrete subject base matches iff it belongs to p; an ambiguous subject
// symbol matches only when its whole set lies inside p.
func Matches(c byte, p Base) bool { return p.Contains(symbols[c]) }
