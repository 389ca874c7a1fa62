package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebedthan/hyperex/internal/primer"
	"github.com/ebedthan/hyperex/internal/scan"
	"github.com/ebedthan/hyperex/internal/seqio"
)

func def(name, fwd, rev string) primer.RegionDefinition {
	return primer.RegionDefinition{
		Name:    name,
		Forward: primer.Primer{Name: name + "F", Sequence: fwd, Orientation: primer.Forward},
		Reverse: primer.Primer{Name: name + "R", Sequence: rev, Orientation: primer.Reverse},
	}
}

func mustExtractor(t *testing.T, opts Options, defs ...primer.RegionDefinition) *Extractor {
	t.Helper()
	e, err := Compile(defs, opts)
	require.NoError(t, err)
	return e
}

func TestExtractRecordEndToEnd(t *testing.T) {
	e := mustExtractor(t, Options{}, def("toy", "ACGT", "TGCA"))
	res := e.ExtractRecord(0, &seqio.Record{ID: "r1", Bases: []byte("ACGTACGTTGCA")})
	require.NoError(t, res.Err)
	require.Len(t, res.Regions, 1)

	r := res.Regions[0]
	assert.Equal(t, "r1_toy_1", r.ID)
	assert.Equal(t, "r1", r.RecordID)
	assert.Equal(t, "toy", r.RegionName)
	assert.Equal(t, 0, r.Start)
	assert.Equal(t, 12, r.End)
	assert.Equal(t, 12, r.Len())
	assert.Equal(t, "ACGTACGTTGCA", r.Sequence)
	assert.Equal(t, primer.Forward, r.Strand)
	assert.Equal(t, "ACGT", r.ForwardPrimer)
	assert.Equal(t, "TGCA", r.ReversePrimer)
}

func TestExtractRecordDefinitionOrder(t *testing.T) {
	seq := []byte("GGGGAAAACCCCTTTTGGGGAAAACCCC")
	e := mustExtractor(t, Options{},
		def("second", "TTTT", "GGTT"), // reverse complement of GGTT is AACC
		def("first", "GGGG", "GGTT"),
	)
	res := e.ExtractRecord(0, &seqio.Record{ID: "r", Bases: seq})
	require.NoError(t, res.Err)

	var names []string
	for _, r := range res.Regions {
		names = append(names, r.RegionName)
		assert.Equal(t, string(seq[r.Start:r.End]), r.Sequence)
	}
	assert.Equal(t, []string{"second", "first", "first"}, names)
	assert.Equal(t, "r_first_1", res.Regions[1].ID)
}

func TestExtractRecordRepeatedRegionNames(t *testing.T) {
	e := mustExtractor(t, Options{},
		def("v4", "ACGT", "TGCA"),
		def("v4", "ACGT", "TGYA"), // same name, different reverse primer
		def("v4", "acgt", "TGCA"), // same pair again
		def("v4_2", "ACGT", "TGMA"),
		def("", "ACGT", "TGCR"),
	)

	var names []string
	for _, d := range e.Definitions() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"v4", "v4_2", "v4_2_2", DefaultRegionName}, names)

	res := e.ExtractRecord(0, &seqio.Record{ID: "r", Bases: []byte("ACGTACGTTGCA")})
	require.NoError(t, res.Err)
	require.Len(t, res.Regions, 4)

	ids := make(map[string]bool)
	for _, r := range res.Regions {
		assert.False(t, ids[r.ID], "duplicate region ID %s", r.ID)
		ids[r.ID] = true
		assert.Equal(t, 0, r.Start)
		assert.Equal(t, 12, r.End)
	}
	assert.Equal(t, "r_v4_1", res.Regions[0].ID)
	assert.Equal(t, "r_v4_2_1", res.Regions[1].ID)
	assert.Equal(t, "r_region_1", res.Regions[3].ID)
}

func TestExtractRecordBuiltinPairsSharingTag(t *testing.T) {
	tbl := primer.NewBuiltinTable()
	defs, err := primer.ResolvePairs(tbl, []string{"515F", "515F"}, []string{"806R", "805R"})
	require.NoError(t, err)
	require.Equal(t, "v4", defs[0].Name)
	require.Equal(t, "v4", defs[1].Name)

	e := mustExtractor(t, Options{}, defs...)
	// 515F, a spacer, then a site bound by both 806R and 805R.
	seq := "GTGCCAGCAGCCGCGGTAA" + "ACGTACGT" + "GGATTAGATACCCTGGTAGTCC"
	res := e.ExtractRecord(0, &seqio.Record{ID: "r", Bases: []byte(seq)})
	require.NoError(t, res.Err)
	require.Len(t, res.Regions, 2)

	assert.Equal(t, "r_v4_1", res.Regions[0].ID)
	assert.Equal(t, [2]int{0, 49}, [2]int{res.Regions[0].Start, res.Regions[0].End})
	assert.Equal(t, "r_v4_2_1", res.Regions[1].ID)
	assert.Equal(t, "v4_2", res.Regions[1].RegionName)
	assert.Equal(t, [2]int{0, 48}, [2]int{res.Regions[1].Start, res.Regions[1].End})

	regions, err := primer.ResolveRegions(tbl, []string{"v4", "V4"})
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, 1, mustExtractor(t, Options{}, regions...).Len())
}

func TestExtractRecordMiss(t *testing.T) {
	e := mustExtractor(t, Options{}, def("toy", "ACGT", "TGCA"))
	res := e.ExtractRecord(3, &seqio.Record{ID: "r", Bases: []byte("TTTTTTTTGCA")})
	require.NoError(t, res.Err)
	assert.Empty(t, res.Regions)
	require.Len(t, res.Misses, 1)
	assert.Equal(t, Miss{RegionName: "toy", ForwardHits: 0, ReverseHits: 1}, res.Misses[0])
	assert.Equal(t, "forward primer not found", res.Misses[0].Reason())
}

func TestExtractRecordEmpty(t *testing.T) {
	e := mustExtractor(t, Options{}, def("toy", "ACGT", "TGCA"))
	res := e.ExtractRecord(0, &seqio.Record{ID: "empty"})
	assert.ErrorIs(t, res.Err, ErrEmptyRecord)
}

func TestExtractRecordMismatches(t *testing.T) {
	seq := []byte("ACCTAAAAAAAATGCA")
	exact := mustExtractor(t, Options{}, def("toy", "ACGT", "TGCA"))
	assert.Empty(t, exact.ExtractRecord(0, &seqio.Record{ID: "r", Bases: seq}).Regions)

	loose := mustExtractor(t, Options{MaxMismatches: 1}, def("toy", "ACGT", "TGCA"))
	res := loose.ExtractRecord(0, &seqio.Record{ID: "r", Bases: seq})
	require.NotEmpty(t, res.Regions)
	for _, r := range res.Regions {
		assert.LessOrEqual(t, r.MismatchesForward, 1)
		assert.LessOrEqual(t, r.MismatchesReverse, 1)
	}
	assert.Equal(t, 1, res.Regions[0].MismatchesForward)
}

func TestCompileKeepsValidDefinitions(t *testing.T) {
	e, err := Compile([]primer.RegionDefinition{
		def("good", "ACGT", "TGCA"),
		def("bad", "ACXT", "TGCA"),
		def("empty", "ACGT", ""),
	}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, primer.ErrInvalidSymbol)
	assert.ErrorIs(t, err, primer.ErrInvalidPattern)
	require.NotNil(t, e)
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, "good", e.Definitions()[0].Name)
}

func TestCompileRejectsOptions(t *testing.T) {
	_, err := Compile(nil, Options{MaxMismatches: -1})
	assert.ErrorIs(t, err, scan.ErrNegativeBudget)

	_, err = Compile(nil, Options{Strategy: "closest"})
	assert.Error(t, err)

	e, err := Compile(nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, scan.Nearest, e.Options().Strategy)
}

func TestExtract(t *testing.T) {
	e := mustExtractor(t, Options{}, def("toy", "ACGT", "TGCA"))
	regions, sum := e.Extract([]*seqio.Record{
		{ID: "a", Bases: []byte("ACGTACGTTGCA")},
		{ID: "b"},
		{ID: "c", Bases: []byte("GGGG")},
		{ID: "d", Bases: []byte("ACGTTTTTGCA")},
	})
	require.Len(t, regions, 2)
	assert.Equal(t, "a", regions[0].RecordID)
	assert.Equal(t, "d", regions[1].RecordID)
	assert.Equal(t, 3, regions[1].RecordIndex)

	assert.Equal(t, 4, sum.Records)
	assert.Equal(t, 2, sum.RecordsMatched)
	assert.Equal(t, 2, sum.Regions)
	assert.Equal(t, map[string]int{"toy": 2}, sum.PerRegion)
	require.Len(t, sum.Failures, 1)
	assert.Equal(t, 2, sum.Failures[0].Index)
	assert.Equal(t, "b", sum.Failures[0].RecordID)
	assert.ErrorIs(t, sum.Err(), ErrEmptyRecord)
}

func TestMissReason(t *testing.T) {
	assert.Equal(t, "neither primer found", Miss{}.Reason())
	assert.Equal(t, "reverse primer not found", Miss{ForwardHits: 2}.Reason())
	assert.Equal(t, "no reverse primer downstream of a forward primer", Miss{ForwardHits: 1, ReverseHits: 1}.Reason())
}
