package csvtable

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHeader is reported for input without a header record.
	ErrNoHeader = errors.New("no header line")
	// ErrDuplicateHeader is reported when two columns share a name.
	ErrDuplicateHeader = errors.New("duplicate header")
)

// ParseError describes malformed or empty CSV input.
type ParseError struct {
	Filename string
	Line     int // 0 when unknown
	Err      error
}

func (e *ParseError) Error() string {
	name := e.Filename
	if name == "" {
		name = "csv"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parsing %s:%d: %v", name, e.Line, e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingFileError is returned when a named input or target file does not
// exist. It matches fs.ErrNotExist via errors.Is.
type MissingFileError struct {
	Path string
	Err  error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *MissingFileError) Unwrap() error { return e.Err }

// WriteError wraps a serialization or output failure.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
