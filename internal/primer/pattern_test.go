package primer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	p, err := Compile(" aygt ")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Len())
	assert.Equal(t, "AYGT", p.String())
	assert.Equal(t, "AYGT", p.Source())
	assert.Equal(t, Forward, p.Strand())
	assert.Equal(t, Y, p.At(1))
}

func TestCompileIsIdempotent(t *testing.T) {
	a, err := Compile("GTGYCAGCMGCCGCGGTAA")
	require.NoError(t, err)
	b, err := Compile("GTGYCAGCMGCCGCGGTAA")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
		pos     int
	}{
		{"empty", "", ErrInvalidPattern, 0},
		{"blank", "   ", ErrInvalidPattern, 0},
		{"gap", "ACG-T", ErrInvalidSymbol, 4},
		{"placeholder", "ACG.T", ErrInvalidSymbol, 4},
		{"inosine", "CYIACTG", ErrInvalidSymbol, 3},
		{"non-ascii", "ACGé", ErrInvalidSymbol, 4},
		{"inner space", "AC GT", ErrInvalidSymbol, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.raw)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.pos > 0 {
				var se *SymbolError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, tt.pos, se.Pos)
				assert.Equal(t, tt.raw, se.Source)
			}
		})
	}
}

func TestCompilePrimerReverse(t *testing.T) {
	p, err := CompilePrimer(Primer{Sequence: "GTGCCAGCMGCCGCGGTAA", Orientation: Reverse})
	require.NoError(t, err)
	assert.Equal(t, "TTACCGCGGCKGCTGGCAC", p.String())
	assert.Equal(t, Reverse, p.Strand())
	assert.Equal(t, "GTGCCAGCMGCCGCGGTAA", p.Source())

	back := p.ReverseComplement()
	assert.Equal(t, "GTGCCAGCMGCCGCGGTAA", back.String())
	assert.Equal(t, Forward, back.Strand())
}

func TestReverseComplementString(t *testing.T) {
	assert.Equal(t, "TTACCGCGGCKGCTGGCAC", ReverseComplementString("GTGCCAGCMGCCGCGGTAA"))
	assert.Equal(t, "ACGTNBDHVKMWSRY", ReverseComplementString("RYSWKMBDHVNACGT"))
	assert.Equal(t, "", ReverseComplementString(""))
}
