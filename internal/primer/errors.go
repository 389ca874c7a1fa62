package primer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSymbol is returned when a primer contains a character outside
	// the IUPAC alphabet.
	ErrInvalidSymbol = errors.New("invalid IUPAC symbol")
	// ErrInvalidPattern is returned for a zero-length pattern.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrUnknownRegion is returned by region lookups that miss the table.
	ErrUnknownRegion = errors.New("unknown region")
	// ErrUnknownPrimerName is returned by primer lookups that miss the table.
	ErrUnknownPrimerName = errors.New("unknown primer name")
	// ErrMalformedPrimerFile is returned for primer-pair file lines that do
	// not hold exactly two fields.
	ErrMalformedPrimerFile = errors.New("malformed primer file")
)

// SymbolError reports the first offending character of a primer.
type SymbolError struct {
	Source string // primer text as supplied
	Pos    int    // 1-based character position
	Char   rune
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("primer %q: %v %q at position %d", e.Source, ErrInvalidSymbol, e.Char, e.Pos)
}

func (e *SymbolError) Unwrap() error { return ErrInvalidSymbol }

// LookupError reports a name that is not in the primer table.
type LookupError struct {
	Name string
	Err  error // ErrUnknownRegion or ErrUnknownPrimerName
}

func (e *LookupError) Error() string { return fmt.Sprintf("%v %q", e.Err, e.Name) }

func (e *LookupError) Unwrap() error { return e.Err }

// PrimerFileError reports a malformed line of a primer-pair file.
type PrimerFileError struct {
	Path    string
	Line    int
	Message string
}

func (e *PrimerFileError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %s", e.Path, e.Line, ErrMalformedPrimerFile, e.Message)
}

func (e *PrimerFileError) Unwrap() error { return ErrMalformedPrimerFile }
