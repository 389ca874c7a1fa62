package primer

import (
	"errors"
	"fmt"
	"strings"
)

// ResolveRegions looks up each region name. Unknown names are reported in
// the joined error; the definitions that did resolve are still returned.
func ResolveRegions(t *Table, names []string) ([]RegionDefinition, error) {
	var (
		defs []RegionDefinition
		errs []error
	)
	for _, name := range names {
		d, err := t.LookupByRegion(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		defs = append(defs, d)
	}
	return defs, errors.Join(errs...)
}

// ResolvePairs pairs forward and reverse primers positionally. Each value is
// either a built-in primer name or a literal IUPAC sequence; sequences are
// validated later, when the definitions are compiled.
func ResolvePairs(t *Table, fwds, revs []string) ([]RegionDefinition, error) {
	if len(fwds) != len(revs) {
		return nil, fmt.Errorf("forward and reverse primer counts differ (%d vs %d)", len(fwds), len(revs))
	}
	defs := make([]RegionDefinition, 0, len(fwds))
	for i := range fwds {
		defs = append(defs, t.pairDefinition(i+1, fwds[i], revs[i]))
	}
	return defs, nil
}

// pairDefinition builds the n-th ad hoc definition (1-based).
func (t *Table) pairDefinition(n int, fwd, rev string) RegionDefinition {
	f := t.resolvePrimer(fwd, Forward)
	r := t.resolvePrimer(rev, Reverse)

	name := t.RegionNameFor(f.Sequence, r.Sequence)
	if name == "" {
		if f.Name != "" && r.Name != "" {
			name = f.Name + "-" + r.Name
		} else {
			name = fmt.Sprintf("custom%d", n)
		}
	}
	return RegionDefinition{Name: name, Forward: f, Reverse: r}
}

// resolvePrimer treats raw as a primer name first and falls back to a
// literal sequence. The orientation always follows the caller's slot.
func (t *Table) resolvePrimer(raw string, o Orientation) Primer {
	if p, err := t.LookupByName(raw); err == nil {
		p.Orientation = o
		return p
	}
	return Primer{Sequence: strings.ToUpper(strings.TrimSpace(raw)), Orientation: o}
}
