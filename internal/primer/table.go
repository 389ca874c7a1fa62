package primer

import "strings"

// Table is the registry of built-in primers and regions. It is built once
// and only read afterwards, so it needs no locking.
type Table struct {
	primers     map[string]Primer // upper-cased name -> primer
	primerOrder []string
	regions     map[string]RegionDefinition // lower-cased name -> definition
	regionOrder []string
	tags        map[string]string // upper-cased sequence -> variable-region tag
}

type builtinPrimer struct {
	name, seq, tag string
	orientation    Orientation
}

// Universal 16S rRNA primers. The inosine in 337R is stored as N.
var builtinPrimers = []builtinPrimer{
	{"27F", "AGAGTTTGATCMTGGCTCAG", "v1", Forward},
	{"341F", "CCTACGGGNGGCWGCAG", "v3", Forward},
	{"515F", "GTGCCAGCMGCCGCGGTAA", "v4", Forward},
	{"515F-Y", "GTGYCAGCMGCCGCGGTAA", "v4", Forward},
	{"799F", "AACMGGATTAGATACCCKG", "v5", Forward},
	{"928F", "TAAAACTYAAAKGAATTGACGGGG", "v6", Forward},
	{"1100F", "YAACGAGCGCAACCC", "v7", Forward},
	{"337R", "CYNACTGCTGCCTCCCGTAG", "v2", Reverse},
	{"534R", "ATTACCGCGGCTGCTGG", "v3", Reverse},
	{"805R", "GACTACHVGGGTATCTAATCC", "v4", Reverse},
	{"926Rb", "CCGTCAATTYMTTTRAGT", "v5", Reverse},
	{"806R", "GGACTACHVGGGTWTCTAAT", "v4", Reverse},
	{"909-928R", "CCCCGYCAATTCMTTTRAGT", "v5", Reverse},
	{"1193R", "ACGTCATCCCCACCTTCC", "v7", Reverse},
	{"1492Rmod", "TACGGYTACCTTGTTAYGACTT", "v9", Reverse},
}

var builtinRegions = []struct{ name, fwd, rev string }{
	{"v1v2", "27F", "337R"},
	{"v1v3", "27F", "534R"},
	{"v1v9", "27F", "1492Rmod"},
	{"v3v4", "341F", "805R"},
	{"v3v5", "341F", "926Rb"},
	{"v4", "515F", "806R"},
	{"v4v5", "515F-Y", "909-928R"},
	{"v5v7", "799F", "1193R"},
	{"v6v9", "928F", "1492Rmod"},
	{"v7v9", "1100F", "1492Rmod"},
}

// NewBuiltinTable builds the table of built-in 16S primers and regions.
func NewBuiltinTable() *Table {
	t := &Table{
		primers: make(map[string]Primer, len(builtinPrimers)),
		regions: make(map[string]RegionDefinition, len(builtinRegions)),
		tags:    make(map[string]string, len(builtinPrimers)),
	}
	for _, bp := range builtinPrimers {
		t.primers[strings.ToUpper(bp.name)] = Primer{Name: bp.name, Sequence: bp.seq, Orientation: bp.orientation}
		t.primerOrder = append(t.primerOrder, bp.name)
		t.tags[bp.seq] = bp.tag
	}
	for _, br := range builtinRegions {
		t.regions[br.name] = RegionDefinition{
			Name:    br.name,
			Forward: t.primers[strings.ToUpper(br.fwd)],
			Reverse: t.primers[strings.ToUpper(br.rev)],
		}
		t.regionOrder = append(t.regionOrder, br.name)
	}
	return t
}

// LookupByName returns the built-in primer called name (case-insensitive).
func (t *Table) LookupByName(name string) (Primer, error) {
	p, ok := t.primers[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Primer{}, &LookupError{Name: name, Err: ErrUnknownPrimerName}
	}
	return p, nil
}

// LookupByRegion returns the built-in region called name (case-insensitive).
func (t *Table) LookupByRegion(name string) (RegionDefinition, error) {
	d, ok := t.regions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return RegionDefinition{}, &LookupError{Name: name, Err: ErrUnknownRegion}
	}
	return d, nil
}

// RegionNames returns the built-in region names in table order.
func (t *Table) RegionNames() []string {
	return append([]string(nil), t.regionOrder...)
}

// Regions returns every built-in region definition in table order.
func (t *Table) Regions() []RegionDefinition {
	out := make([]RegionDefinition, 0, len(t.regionOrder))
	for _, name := range t.regionOrder {
		out = append(out, t.regions[name])
	}
	return out
}

// Primers returns every built-in primer in table order.
func (t *Table) Primers() []Primer {
	out := make([]Primer, 0, len(t.primerOrder))
	for _, name := range t.primerOrder {
		out = append(out, t.primers[strings.ToUpper(name)])
	}
	return out
}

// Tag returns the variable-region tag ("v3") of a built-in primer sequence.
func (t *Table) Tag(seq string) (string, bool) {
	tag, ok := t.tags[strings.ToUpper(strings.TrimSpace(seq))]
	return tag, ok
}

// RegionNameFor derives a region name from two built-in primer sequences:
// v3 + v4 gives "v3v4", and two primers inside the same region give that
// region alone ("v4"). It returns "" unless both sequences are known.
func (t *Table) RegionNameFor(fwd, rev string) string {
	first, ok1 := t.Tag(fwd)
	second, ok2 := t.Tag(rev)
	if !ok1 || !ok2 {
		return ""
	}
	if first == second {
		return first
	}
	return first + second
}
