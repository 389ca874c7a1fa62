package primer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinRegions(t *testing.T) {
	tbl := NewBuiltinTable()
	assert.Equal(t,
		[]string{"v1v2", "v1v3", "v1v9", "v3v4", "v3v5", "v4", "v4v5", "v5v7", "v6v9", "v7v9"},
		tbl.RegionNames())

	d, err := tbl.LookupByRegion("V3V4")
	require.NoError(t, err)
	assert.Equal(t, "v3v4", d.Name)
	assert.Equal(t, "CCTACGGGNGGCWGCAG", d.Forward.Sequence)
	assert.Equal(t, "GACTACHVGGGTATCTAATCC", d.Reverse.Sequence)
	assert.Equal(t, Forward, d.Forward.Orientation)
	assert.Equal(t, Reverse, d.Reverse.Orientation)
}

func TestBuiltinPrimersCompile(t *testing.T) {
	tbl := NewBuiltinTable()
	for _, p := range tbl.Primers() {
		_, err := CompilePrimer(p)
		assert.NoError(t, err, p.Name)
	}
	assert.Len(t, tbl.Primers(), 15)
}

func TestLookupByName(t *testing.T) {
	tbl := NewBuiltinTable()

	p, err := tbl.LookupByName("1492rmod")
	require.NoError(t, err)
	assert.Equal(t, "1492Rmod", p.Name)
	assert.Equal(t, "TACGGYTACCTTGTTAYGACTT", p.Sequence)

	_, err = tbl.LookupByName("42F")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPrimerName))
	var le *LookupError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "42F", le.Name)
}

func TestLookupByRegionUnknown(t *testing.T) {
	_, err := NewBuiltinTable().LookupByRegion("v2v8")
	assert.ErrorIs(t, err, ErrUnknownRegion)
	assert.Contains(t, err.Error(), `"v2v8"`)
}

func TestRegionNameFor(t *testing.T) {
	tbl := NewBuiltinTable()
	assert.Equal(t, "v3v4", tbl.RegionNameFor("CCTACGGGNGGCWGCAG", "GTGCCAGCMGCCGCGGTAA"))
	assert.Equal(t, "v4", tbl.RegionNameFor("GTGCCAGCMGCCGCGGTAA", "GTGCCAGCMGCCGCGGTAA"))
	assert.Equal(t, "v1v9", tbl.RegionNameFor("agagtttgatcmtggctcag", "TACGGYTACCTTGTTAYGACTT"))
	assert.Equal(t, "", tbl.RegionNameFor("ZZZZZ", "AAAAAA"))
	assert.Equal(t, "", tbl.RegionNameFor("CCTACGGGNGGCWGCAG", "AAAAAA"))
}
