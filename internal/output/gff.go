package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ebedthan/hyperex/internal/extract"
)

// GFFSource is the source column of every feature.
const GFFSource = "hyperex"

// GFFType is the feature type column, a Sequence Ontology term.
const GFFType = "region"

// GFFWriter writes extracted regions as GFF3 features with 1-based,
// inclusive coordinates.
type GFFWriter struct {
	w       *bufio.Writer
	started bool
}

// NewGFFWriter creates a new GFF3 writer.
func NewGFFWriter(w io.Writer) *GFFWriter {
	return &GFFWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the version pragma. WriteRegion calls it on first use.
func (gw *GFFWriter) WriteHeader() error {
	if gw.started {
		return nil
	}
	gw.started = true
	_, err := gw.w.WriteString("##gff-version 3\n")
	return err
}

// WriteRegion writes a single feature line.
func (gw *GFFWriter) WriteRegion(r *extract.Region) error {
	if err := gw.WriteHeader(); err != nil {
		return err
	}

	attrs := []string{
		"ID=" + escapeGFF(r.ID),
		"Name=" + escapeGFF(r.RegionName),
		"forward_primer=" + escapeGFF(r.ForwardPrimer),
		"reverse_primer=" + escapeGFF(r.ReversePrimer),
		"forward_mismatches=" + strconv.Itoa(r.MismatchesForward),
		"reverse_mismatches=" + strconv.Itoa(r.MismatchesReverse),
	}

	fields := []string{
		escapeGFF(r.RecordID),
		GFFSource,
		GFFType,
		strconv.Itoa(r.Start + 1),
		strconv.Itoa(r.End),
		".",
		r.Strand.Sign(),
		".",
		strings.Join(attrs, ";"),
	}
	_, err := gw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// Flush flushes any buffered data.
func (gw *GFFWriter) Flush() error {
	return gw.w.Flush()
}

// escapeGFF percent-encodes the characters GFF3 reserves in column and
// attribute values.
func escapeGFF(s string) string {
	if !strings.ContainsAny(s, "\t\n\r%;=&,") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\t', '\n', '\r', '%', ';', '=', '&', ',':
			fmt.Fprintf(&b, "%%%02X", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
