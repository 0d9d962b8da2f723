// Package merge combines per-file translation tables into one table and
// distributes an edited combined table back into its source files.
//
// A merged row is identified by (filename, key). Its file marker column
// records which table it came from so that Split can route it back.
package merge

import (
	"errors"
	"fmt"

	"github.com/minios-linux/i18ncsv/csvtable"
	"github.com/minios-linux/i18ncsv/dictionary"
)

// DefaultFileColumn is the file marker column used when none is configured.
const DefaultFileColumn = "_file"

var (
	// ErrNoInput is returned when there is nothing to merge.
	ErrNoInput = errors.New("no input tables")
	// ErrMissingColumn is returned when a merged table lacks the key or
	// file marker column.
	ErrMissingColumn = errors.New("merged table is missing a required column")
	// ErrColumnConflict is returned when an input table has a language
	// column named like the file marker column.
	ErrColumnConflict = errors.New("language column clashes with the file column")
)

// Options names the metadata columns.
type Options struct {
	KeyColumn  string
	FileColumn string
}

func (o Options) validate() error {
	if o.KeyColumn == "" || o.FileColumn == "" {
		return fmt.Errorf("key and file columns must be set")
	}
	if o.KeyColumn == o.FileColumn {
		return fmt.Errorf("key column and file column are both %q", o.KeyColumn)
	}
	return nil
}

// rowID identifies a merged row.
type rowID struct {
	file string
	key  string
}

// Merge combines tables into a single table with header
// [FileColumn, KeyColumn, languages...]. Languages appear in first-seen
// order across tables; rows appear in first-seen (filename, key) order.
// Each table's Filename is used as its file marker.
func Merge(tables []*csvtable.Table, opts Options) (*csvtable.Table, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, ErrNoInput
	}

	dicts := make([]*dictionary.Dictionary, len(tables))
	for i, t := range tables {
		d, err := dictionary.Build(t, opts.KeyColumn, dictionary.Options{FilterReserved: true})
		if err != nil {
			return nil, err
		}
		for _, lang := range d.Languages() {
			if lang == opts.FileColumn {
				return nil, fmt.Errorf("%s: %q: %w", t.Filename, lang, ErrColumnConflict)
			}
		}
		dicts[i] = d
	}

	out := csvtable.New("", []string{opts.FileColumn, opts.KeyColumn})
	for _, d := range dicts {
		for _, lang := range d.Languages() {
			out.AddColumn(lang)
		}
	}

	rows := make(map[rowID]*csvtable.Row)
	for i, d := range dicts {
		filename := tables[i].Filename
		for _, lang := range d.Languages() {
			for _, key := range d.Keys(lang) {
				id := rowID{file: filename, key: key}
				row, ok := rows[id]
				if !ok {
					row = csvtable.NewRow()
					row.Set(opts.FileColumn, filename)
					row.Set(opts.KeyColumn, key)
					rows[id] = row
					out.Append(row)
				}
				v, _ := d.Lookup(lang, key)
				row.Set(lang, v)
			}
		}
	}

	return out, nil
}
