package seqio

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Format identifies how an input stream is compressed.
type Format int

const (
	Plain Format = iota
	Gzip
	Bzip2
	XZ
	Zstd
)

func (f Format) String() string {
	switch f {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case XZ:
		return "xz"
	case Zstd:
		return "zstd"
	default:
		return "plain"
	}
}

var (
	magicGzip  = []byte{0x1f, 0x8b}
	magicBzip2 = []byte("BZh")
	magicXZ    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Detect reports the compression format announced by the leading bytes of
// a stream. Anything unrecognised is Plain.
func Detect(header []byte) Format {
	switch {
	case bytes.HasPrefix(header, magicGzip):
		return Gzip
	case bytes.HasPrefix(header, magicXZ):
		return XZ
	case bytes.HasPrefix(header, magicZstd):
		return Zstd
	case bytes.HasPrefix(header, magicBzip2):
		return Bzip2
	default:
		return Plain
	}
}

// decompress wraps br according to its magic bytes. The returned closer is
// nil when the decoder holds no resources.
func decompress(br *bufio.Reader) (io.Reader, io.Closer, Format, error) {
	// Peek returns what it could alongside io.EOF for short inputs.
	head, err := br.Peek(len(magicXZ))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, nil, Plain, fmt.Errorf("read input header: %w", err)
	}

	f := Detect(head)
	switch f {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, f, fmt.Errorf("create gzip reader: %w", err)
		}
		return zr, zr, f, nil
	case Bzip2:
		return bzip2.NewReader(br), nil, f, nil
	case XZ:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, nil, f, fmt.Errorf("create xz reader: %w", err)
		}
		return xr, nil, f, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, f, fmt.Errorf("create zstd reader: %w", err)
		}
		rc := zr.IOReadCloser()
		return rc, rc, f, nil
	default:
		return br, nil, f, nil
	}
}
