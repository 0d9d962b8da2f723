// Package csvtable implements reading and writing of CSV translation tables.
//
// Format: the first record is the header, every following record is a row.
// Cells are addressed by header name:
//
//	_key,en,ru
//	hello,Hello,Привет
//	bye,Goodbye,
//
// Quoting follows RFC 4180 (embedded commas, newlines and doubled quotes
// inside quoted fields). Rows shorter than the header are padded with empty
// cells; cells beyond the header are dropped. Header cells are kept verbatim
// so that a rewrite reproduces them.
package csvtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ---------------------------------------------------------------------------
// Table model
// ---------------------------------------------------------------------------

// Row is a single data record. Values are keyed by header name; iteration
// order is defined by the owning Table's header.
type Row struct {
	values map[string]string
	// cells keeps positional values for columns whose header is blank, since
	// several blank headers cannot share one map slot.
	cells map[int]string
}

// NewRow returns an empty row.
func NewRow() *Row {
	return &Row{values: make(map[string]string)}
}

// Get returns the value of column and whether the row has that cell.
func (r *Row) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Value returns the value of column, or "" when the cell is absent.
func (r *Row) Value(column string) string {
	return r.values[column]
}

// Set stores value under column.
func (r *Row) Set(column, value string) {
	r.values[column] = value
}

// Table is a parsed CSV file.
type Table struct {
	// Filename is the path the table was read from (or will be written to).
	Filename string
	// Header lists column names in file order.
	Header []string
	// Rows holds the data records in file order.
	Rows []*Row
}

// New returns an empty table with the given header.
func New(filename string, header []string) *Table {
	return &Table{Filename: filename, Header: append([]string(nil), header...)}
}

// HasColumn reports whether column is part of the header.
func (t *Table) HasColumn(column string) bool {
	for _, h := range t.Header {
		if h == column {
			return true
		}
	}
	return false
}

// AddColumn appends column to the header unless it is already present.
func (t *Table) AddColumn(column string) {
	if !t.HasColumn(column) {
		t.Header = append(t.Header, column)
	}
}

// Append adds a row at the end of the table.
func (t *Table) Append(r *Row) {
	t.Rows = append(t.Rows, r)
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses a CSV table from disk. A missing file yields
// a *MissingFileError.
func ParseFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingFileError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Filename = path
		}
		return nil, err
	}
	t.Filename = path
	return t, nil
}

// Parse parses CSV content from a byte slice.
func Parse(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(stripBOM(data)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, &ParseError{Err: ErrNoHeader}
	}
	if err != nil {
		return nil, newParseError(err)
	}

	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if strings.TrimSpace(h) == "" {
			continue
		}
		if seen[h] {
			return nil, &ParseError{Line: 1, Err: fmt.Errorf("%w: %q", ErrDuplicateHeader, h)}
		}
		seen[h] = true
	}

	t := &Table{Header: header}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newParseError(err)
		}

		row := NewRow()
		for i, h := range header {
			v := ""
			if i < len(rec) {
				v = rec[i]
			}
			if strings.TrimSpace(h) == "" {
				if row.cells == nil {
					row.cells = make(map[int]string)
				}
				row.cells[i] = v
				continue
			}
			row.values[h] = v
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

func newParseError(err error) *ParseError {
	pe := &ParseError{Err: err}
	var ce *csv.ParseError
	if errors.As(err, &ce) {
		pe.Line = ce.Line
	}
	return pe
}

func stripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte("\xEF\xBB\xBF"))
}

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

// Marshal serialises the table back to CSV. Absent cells are written empty.
func (t *Table) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	rec := make([]string, len(t.Header))
	for _, row := range t.Rows {
		for i, h := range t.Header {
			if strings.TrimSpace(h) == "" {
				rec[i] = row.cells[i]
				continue
			}
			rec[i] = row.values[h]
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile serialises and writes to path, creating parent directories
// with 0755 permissions.
func (t *Table) WriteFile(path string) error {
	data, err := t.Marshal()
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
