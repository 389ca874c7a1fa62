package primer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadPairFile reads a primer-pair file: one pair per line, forward and
// reverse separated by a tab or spaces. Lines starting with '#' are comments.
// Blank and malformed lines are reported with their line number in the
// joined error; well-formed lines around them are still returned.
func LoadPairFile(path string, t *Table) ([]RegionDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open primer file: %w", err)
	}
	defer f.Close()

	return ParsePairs(f, path, t)
}

// ParsePairs is LoadPairFile over an io.Reader; name is used in errors.
func ParsePairs(r io.Reader, name string, t *Table) ([]RegionDefinition, error) {
	var (
		defs []RegionDefinition
		errs []error
	)
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if line == "" {
			errs = append(errs, &PrimerFileError{Path: name, Line: ln, Message: "blank line"})
			continue
		}
		f := strings.Fields(line)
		if len(f) != 2 {
			errs = append(errs, &PrimerFileError{
				Path:    name,
				Line:    ln,
				Message: fmt.Sprintf("expected 2 fields, got %d", len(f)),
			})
			continue
		}
		defs = append(defs, t.pairDefinition(len(defs)+1, f[0], f[1]))
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, fmt.Errorf("read %s: %w", name, err))
	}
	return defs, errors.Join(errs...)
}
