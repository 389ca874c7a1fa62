package primer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileErrorLines(t *testing.T, err error) []int {
	t.Helper()
	var lines []int
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok, "expected a joined error, got %T", err)
	for _, e := range joined.Unwrap() {
		var pfe *PrimerFileError
		if errors.As(e, &pfe) {
			lines = append(lines, pfe.Line)
		}
	}
	return lines
}

func TestParsePairs(t *testing.T) {
	in := strings.Join([]string{
		"# forward\treverse",
		"27F\t337R",
		"acgt   tgca",
		"CCTACGGGNGGCWGCAG\tGACTACHVGGGTATCTAATCC",
	}, "\n") + "\n"

	defs, err := ParsePairs(strings.NewReader(in), "pairs.tsv", NewBuiltinTable())
	require.NoError(t, err)
	require.Len(t, defs, 3)
	assert.Equal(t, "v1v2", defs[0].Name)
	assert.Equal(t, "custom2", defs[1].Name)
	assert.Equal(t, "ACGT", defs[1].Forward.Sequence)
	assert.Equal(t, "v3v4", defs[2].Name)
}

func TestParsePairsMalformedLines(t *testing.T) {
	in := "27F\t337R\nbad\n\nACGT TGCA extra\n341F\t805R\n"

	defs, err := ParsePairs(strings.NewReader(in), "pairs.tsv", NewBuiltinTable())
	require.ErrorIs(t, err, ErrMalformedPrimerFile)
	assert.Equal(t, []int{2, 3, 4}, fileErrorLines(t, err))
	assert.Contains(t, err.Error(), "pairs.tsv:2:")

	require.Len(t, defs, 2, "well-formed lines before and after are kept")
	assert.Equal(t, "v1v2", defs[0].Name)
	assert.Equal(t, "v3v4", defs[1].Name)
}

func TestLoadPairFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primers.txt")
	require.NoError(t, os.WriteFile(path, []byte("515F\t806R\n"), 0o644))

	defs, err := LoadPairFile(path, NewBuiltinTable())
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "v4", defs[0].Name)
}

func TestLoadPairFileMissing(t *testing.T) {
	_, err := LoadPairFile(filepath.Join(t.TempDir(), "nope.txt"), NewBuiltinTable())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
