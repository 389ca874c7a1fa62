package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ebedthan/hyperex/internal/extract"
)

// TabWriter writes extracted regions in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#ID",
			"Record",
			"Region",
			"Start",
			"End",
			"Length",
			"Strand",
			"Forward_primer",
			"Reverse_primer",
			"Forward_mismatches",
			"Reverse_mismatches",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// WriteRegion writes a single region. Start is 1-based, like the GFF output.
func (tw *TabWriter) WriteRegion(r *extract.Region) error {
	fields := []string{
		r.ID,
		r.RecordID,
		r.RegionName,
		strconv.Itoa(r.Start + 1),
		strconv.Itoa(r.End),
		strconv.Itoa(r.Len()),
		r.Strand.Sign(),
		r.ForwardPrimer,
		r.ReversePrimer,
		strconv.Itoa(r.MismatchesForward),
		strconv.Itoa(r.MismatchesReverse),
	}

	_, err := tw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// Flush flushes any buffered data.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
