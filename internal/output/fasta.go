package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/ebedthan/hyperex/internal/extract"
)

// FASTALineWidth is the sequence line width of FASTA output.
const FASTALineWidth = 60

// FASTAWriter writes extracted region sequences as FASTA records named after
// their source record.
type FASTAWriter struct {
	w  *bufio.Writer
	fw *fasta.Writer
}

// NewFASTAWriter creates a new FASTA writer.
func NewFASTAWriter(w io.Writer) *FASTAWriter {
	bw := bufio.NewWriter(w)
	return &FASTAWriter{w: bw, fw: fasta.NewWriter(bw, FASTALineWidth)}
}

// WriteRegion writes a single region.
func (fw *FASTAWriter) WriteRegion(r *extract.Region) error {
	s := linear.NewSeq(r.RecordID, alphabet.BytesToLetters([]byte(r.Sequence)), alphabet.DNAredundant)
	s.Desc = fastaDescription(r)
	if _, err := fw.fw.Write(s); err != nil {
		return fmt.Errorf("write fasta record %s: %w", r.ID, err)
	}
	return nil
}

// Flush flushes any buffered data.
func (fw *FASTAWriter) Flush() error {
	return fw.w.Flush()
}

func fastaDescription(r *extract.Region) string {
	return fmt.Sprintf("region=%s forward=%s reverse=%s", r.RegionName, r.ForwardPrimer, r.ReversePrimer)
}
