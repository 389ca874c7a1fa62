package primer

// Orientation tells which strand a primer anneals to.
type Orientation uint8

const (
	// Forward primers are matched as written against the forward strand.
	Forward Orientation = iota
	// Reverse primers are matched through their reverse complement.
	Reverse
)

func (o Orientation) String() string {
	if o == Reverse {
		return "reverse"
	}
	return "forward"
}

// Sign returns the GFF3 strand column value.
func (o Orientation) Sign() string {
	if o == Reverse {
		return "-"
	}
	return "+"
}

// Primer is an oriented primer sequence, written 5'->3'.
type Primer struct {
	Name        string // empty for literal sequences
	Sequence    string
	Orientation Orientation
}

// Label returns the primer name, or its sequence when it has none.
func (p Primer) Label() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Sequence
}

// RegionDefinition is a named forward/reverse primer pair bounding a region.
type RegionDefinition struct {
	Name    string
	Forward Primer
	Reverse Primer
}
