// Package seqio reads sequence records from FASTA input that may be plain,
// gzip, bzip2, xz or zstd compressed.
package seqio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	mmap "github.com/edsrzf/mmap-go"
)

// Record is one input sequence.
type Record struct {
	ID          string
	Description string
	Bases       []byte
}

// Len returns the number of bases.
func (r *Record) Len() int { return len(r.Bases) }

// ParseError reports a malformed record.
type ParseError struct {
	Record  int // 1-based record number
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Record, e.Message)
}

// Reader reads records one at a time.
type Reader struct {
	fr      *fasta.Reader
	format  Format
	closers []io.Closer
	count   int
	done    bool
}

// Open opens a FASTA file. A path of "-" or "" reads standard input.
// Uncompressed regular files are memory-mapped.
func Open(path string) (*Reader, error) {
	if path == "" || path == "-" {
		return NewReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sequence file: %w", err)
	}

	var (
		src     io.Reader = file
		closers           = []io.Closer{file}
	)
	if info, err := file.Stat(); err == nil && info.Mode().IsRegular() && info.Size() > 0 {
		if m, err := mmap.Map(file, mmap.RDONLY, 0); err == nil {
			src = bytes.NewReader(m)
			closers = []io.Closer{unmapper{m}, file}
		}
	}

	r, err := newReader(src)
	if err != nil {
		closeAll(closers)
		return nil, err
	}
	r.closers = append(r.closers, closers...)
	return r, nil
}

// NewReader reads records from r, detecting compression from its first
// bytes. Closing the returned Reader does not close r.
func NewReader(r io.Reader) (*Reader, error) {
	return newReader(r)
}

func newReader(r io.Reader) (*Reader, error) {
	dr, closer, format, err := decompress(bufio.NewReaderSize(r, 1<<16))
	if err != nil {
		return nil, err
	}
	rd := &Reader{
		fr:     fasta.NewReader(dr, linear.NewSeq("", nil, alphabet.DNAredundant)),
		format: format,
	}
	if closer != nil {
		rd.closers = append(rd.closers, closer)
	}
	return rd, nil
}

// Format reports the detected input compression.
func (r *Reader) Format() Format { return r.format }

// Count returns the number of records read so far.
func (r *Reader) Count() int { return r.count }

// Next reads the next record.
// Returns nil, nil when there are no more records.
func (r *Reader) Next() (*Record, error) {
	if r.done {
		return nil, nil
	}
	s, err := r.fr.Read()
	if err != nil {
		r.done = true
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &ParseError{Record: r.count + 1, Message: err.Error()}
	}

	ls, ok := s.(*linear.Seq)
	if !ok {
		r.done = true
		return nil, &ParseError{Record: r.count + 1, Message: fmt.Sprintf("unexpected sequence type %T", s)}
	}
	r.count++
	return &Record{
		ID:          strings.TrimRight(ls.ID, "\r"),
		Description: strings.TrimRight(ls.Desc, "\r"),
		Bases:       letterBytes(ls.Seq),
	}, nil
}

// Close releases decoders, mappings and files held by the reader.
func (r *Reader) Close() error {
	err := closeAll(r.closers)
	r.closers = nil
	return err
}

// letterBytes copies sequence letters, dropping line-ending and other
// whitespace residue.
func letterBytes(ls alphabet.Letters) []byte {
	out := make([]byte, 0, len(ls))
	for _, l := range ls {
		switch l {
		case '\r', ' ', '\t':
			continue
		}
		out = append(out, byte(l))
	}
	return out
}

type unmapper struct{ m mmap.MMap }

func (u unmapper) Close() error { return u.m.Unmap() }

func closeAll(cs []io.Closer) error {
	var errs []error
	for _, c := range cs {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
