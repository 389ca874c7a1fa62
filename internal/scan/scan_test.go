package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebedthan/hyperex/internal/primer"
)

func mustCompile(t *testing.T, raw string) *primer.Pattern {
	t.Helper()
	p, err := primer.Compile(raw)
	require.NoError(t, err)
	return p
}

func positions(occ []Occurrence) []int {
	out := make([]int, len(occ))
	for i, o := range occ {
		out[i] = o.Position
	}
	return out
}

func TestScanExactSelf(t *testing.T) {
	seq := "GTGCCAGCAGCCGCGGTAA"
	occ, err := ScanBytes(mustCompile(t, seq), []byte(seq), 0)
	require.NoError(t, err)
	require.Len(t, occ, 1)
	assert.Equal(t, Occurrence{Position: 0, End: len(seq), Mismatches: 0, Strand: primer.Forward}, occ[0])
}

func TestScanOverlapping(t *testing.T) {
	occ, err := ScanBytes(mustCompile(t, "AA"), []byte("AAAA"), 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, positions(occ))
}

func TestScanAmbiguousPattern(t *testing.T) {
	p := mustCompile(t, "AYGT")
	for _, seq := range []string{"ACGT", "ATGT", "acgt", "AUGT"} {
		occ, err := ScanBytes(p, []byte(seq), 0)
		require.NoError(t, err)
		assert.Len(t, occ, 1, seq)
	}
	occ, err := ScanBytes(p, []byte("AAGT"), 0)
	require.NoError(t, err)
	assert.Empty(t, occ)
}

func TestScanAmbiguousSubject(t *testing.T) {
	// R in the subject only matches pattern symbols that contain both A and G.
	occ, err := ScanBytes(mustCompile(t, "A"), []byte("R"), 0)
	require.NoError(t, err)
	assert.Empty(t, occ)

	occ, err = ScanBytes(mustCompile(t, "R"), []byte("R"), 0)
	require.NoError(t, err)
	assert.Len(t, occ, 1)

	occ, err = ScanBytes(mustCompile(t, "N"), []byte("-"), 0)
	require.NoError(t, err)
	assert.Empty(t, occ)
}

func TestScanMismatchBudget(t *testing.T) {
	seq := []byte("ACGTTCGTACCTACGA")
	p := mustCompile(t, "ACGT")
	for k := 0; k <= 4; k++ {
		occ, err := ScanBytes(p, seq, k)
		require.NoError(t, err)
		for _, o := range occ {
			assert.LessOrEqual(t, o.Mismatches, k)
			assert.Equal(t, o.Position+4, o.End)
		}
		if k == 4 {
			assert.Len(t, occ, len(seq)-3, "budget >= length matches every offset")
		}
	}

	occ, err := ScanBytes(p, seq, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4, 8, 12}, positions(occ))
	mm := make([]int, len(occ))
	for i, o := range occ {
		mm[i] = o.Mismatches
	}
	assert.Equal(t, []int{0, 1, 1, 1}, mm)
}

func TestScanPatternLongerThanSubject(t *testing.T) {
	occ, err := ScanBytes(mustCompile(t, "ACGTACGT"), []byte("ACGT"), 2)
	require.NoError(t, err)
	assert.Empty(t, occ)
}

func TestScanErrors(t *testing.T) {
	_, err := ScanBytes(nil, []byte("ACGT"), 0)
	assert.ErrorIs(t, err, primer.ErrInvalidPattern)

	_, err = ScanBytes(mustCompile(t, "AC"), []byte("ACGT"), -1)
	assert.ErrorIs(t, err, ErrNegativeBudget)
}

func TestScanReverseStrandCoordinates(t *testing.T) {
	p, err := primer.CompilePrimer(primer.Primer{Sequence: "AACC", Orientation: primer.Reverse})
	require.NoError(t, err)
	assert.Equal(t, "GGTT", p.String())

	occ, err := ScanBytes(p, []byte("TTTGGTTAAA"), 0)
	require.NoError(t, err)
	require.Len(t, occ, 1)
	assert.Equal(t, 3, occ[0].Position)
	assert.Equal(t, 7, occ[0].End)
	assert.Equal(t, primer.Reverse, occ[0].Strand)
}

func TestScanDeterministic(t *testing.T) {
	seq := []byte("ACGTNACGTRACGTYACGT")
	p := mustCompile(t, "ACGY")
	a, err := ScanBytes(p, seq, 1)
	require.NoError(t, err)
	b, err := ScanBytes(p, seq, 1)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
