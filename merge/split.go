package merge

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/minios-linux/i18ncsv/csvtable"
)

// Loader loads the target table named by a file marker value. A missing
// target must be reported with an error matching fs.ErrNotExist.
type Loader func(filename string) (*csvtable.Table, error)

// SplitOptions controls Split.
type SplitOptions struct {
	Options
	// SkipMissing skips absent targets instead of failing.
	SkipMissing bool
}

// SplitResult describes the outcome of Split.
type SplitResult struct {
	// Tables are the updated targets in first-seen order. Every one of them
	// should be rewritten, changed or not.
	Tables []*csvtable.Table
	// Skipped lists targets that did not exist (SkipMissing only).
	Skipped []string
	// Updated counts target rows that received values.
	Updated int
	// Dropped counts merged rows without a matching target row.
	Dropped int
}

// Split copies the rows of merged back into their target tables. Rows are
// matched by key; the first target row carrying a key wins. Every column of
// the merged header that the target already has is copied onto the matched
// row. A column the target lacks is added only for a non-empty value, and
// the file marker is never added.
// All targets are loaded before Split returns, so a missing target fails the
// run before anything is written.
func Split(merged *csvtable.Table, load Loader, opts SplitOptions) (*SplitResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	for _, col := range []string{opts.KeyColumn, opts.FileColumn} {
		if !merged.HasColumn(col) {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	res := &SplitResult{}

	var filenames []string
	seen := make(map[string]bool)
	for _, row := range merged.Rows {
		fn := row.Value(opts.FileColumn)
		if fn == "" || seen[fn] {
			continue
		}
		seen[fn] = true
		filenames = append(filenames, fn)
	}

	targets := make(map[string]*target, len(filenames))
	for _, fn := range filenames {
		t, err := load(fn)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				if opts.SkipMissing {
					res.Skipped = append(res.Skipped, fn)
					continue
				}
				var mf *csvtable.MissingFileError
				if errors.As(err, &mf) {
					return nil, mf
				}
				return nil, &csvtable.MissingFileError{Path: fn, Err: err}
			}
			return nil, err
		}
		targets[fn] = newTarget(t, opts.KeyColumn)
		res.Tables = append(res.Tables, t)
	}

	for _, row := range merged.Rows {
		fn := row.Value(opts.FileColumn)
		tgt, ok := targets[fn]
		if !ok {
			if fn == "" {
				res.Dropped++
			}
			continue
		}
		key := row.Value(opts.KeyColumn)
		match, ok := tgt.index[key]
		if key == "" || !ok {
			res.Dropped++
			continue
		}
		for _, col := range merged.Header {
			if strings.TrimSpace(col) == "" {
				continue
			}
			v := row.Value(col)
			if !tgt.table.HasColumn(col) {
				if col == opts.FileColumn || v == "" {
					continue
				}
				tgt.table.AddColumn(col)
			}
			match.Set(col, v)
		}
		res.Updated++
	}

	return res, nil
}

// target is a loaded table with its key index.
type target struct {
	table *csvtable.Table
	index map[string]*csvtable.Row
}

func newTarget(t *csvtable.Table, keyColumn string) *target {
	idx := make(map[string]*csvtable.Row, len(t.Rows))
	for _, row := range t.Rows {
		k := row.Value(keyColumn)
		if _, ok := idx[k]; k != "" && !ok {
			idx[k] = row
		}
	}
	return &target{table: t, index: idx}
}
