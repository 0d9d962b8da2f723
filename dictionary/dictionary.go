// Package dictionary turns a CSV translation table into a
// language → key → string mapping.
//
// Every non-blank header other than the key column is a language. Headers
// starting with ReservedPrefix carry metadata (the key column, the file
// marker written by export) and are skipped when FilterReserved is set.
// Rows with an empty key carry no translations.
package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/minios-linux/i18ncsv/csvtable"
)

// ReservedPrefix marks metadata columns.
const ReservedPrefix = "_"

// DefaultKeyColumn is the key column used when none is configured.
const DefaultKeyColumn = "_key"

var (
	// ErrEmptyTable is returned for a table without data rows.
	ErrEmptyTable = errors.New("table has no rows")
	// ErrMissingKeyColumn is returned when the header lacks the key column.
	ErrMissingKeyColumn = errors.New("key column not found in header")
)

// Options controls dictionary building.
type Options struct {
	// FilterReserved drops headers starting with ReservedPrefix.
	FilterReserved bool
}

// Dictionary maps language → key → translated string. Languages keep header
// order and keys keep first-seen row order.
type Dictionary struct {
	languages []string
	keys      map[string][]string
	entries   map[string]map[string]string
}

func newDictionary() *Dictionary {
	return &Dictionary{
		keys:    make(map[string][]string),
		entries: make(map[string]map[string]string),
	}
}

// Build builds the dictionary of table using keyColumn as row identifier.
func Build(table *csvtable.Table, keyColumn string, opts Options) (*Dictionary, error) {
	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("%s: %w", tableName(table), ErrEmptyTable)
	}
	if !table.HasColumn(keyColumn) {
		return nil, fmt.Errorf("%s: %w: %q", tableName(table), ErrMissingKeyColumn, keyColumn)
	}

	d := newDictionary()
	for _, h := range table.Header {
		if IsLanguage(h, keyColumn, opts) {
			d.addLanguage(h)
		}
	}

	for _, row := range table.Rows {
		key := row.Value(keyColumn)
		if key == "" {
			continue
		}
		for _, lang := range d.languages {
			d.set(lang, key, row.Value(lang))
		}
	}

	return d, nil
}

// IsLanguage reports whether header names a language column.
func IsLanguage(header, keyColumn string, opts Options) bool {
	if header == keyColumn || strings.TrimSpace(header) == "" {
		return false
	}
	if opts.FilterReserved && strings.HasPrefix(header, ReservedPrefix) {
		return false
	}
	return true
}

func tableName(t *csvtable.Table) string {
	if t.Filename == "" {
		return "csv"
	}
	return t.Filename
}

func (d *Dictionary) addLanguage(lang string) {
	d.languages = append(d.languages, lang)
	d.entries[lang] = make(map[string]string)
}

// set stores value; a repeated key keeps its first position.
func (d *Dictionary) set(lang, key, value string) {
	m := d.entries[lang]
	if _, ok := m[key]; !ok {
		d.keys[lang] = append(d.keys[lang], key)
	}
	m[key] = value
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Languages returns the language columns in header order.
func (d *Dictionary) Languages() []string {
	return d.languages
}

// Keys returns the keys present under lang in first-seen order.
func (d *Dictionary) Keys(lang string) []string {
	return d.keys[lang]
}

// Lookup returns the translation of key in lang. The boolean is false when
// the key is absent, as opposed to present with an empty translation.
func (d *Dictionary) Lookup(lang, key string) (string, bool) {
	v, ok := d.entries[lang][key]
	return v, ok
}

// Map returns a copy of the dictionary as plain nested maps.
func (d *Dictionary) Map() map[string]map[string]string {
	out := make(map[string]map[string]string, len(d.entries))
	for lang, m := range d.entries {
		cp := make(map[string]string, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out[lang] = cp
	}
	return out
}

// LanguageStats holds translation counts for one language.
type LanguageStats struct {
	Language   string
	Total      int
	Translated int
}

// Stats returns per-language counts in language order.
func (d *Dictionary) Stats() []LanguageStats {
	stats := make([]LanguageStats, 0, len(d.languages))
	for _, lang := range d.languages {
		s := LanguageStats{Language: lang, Total: len(d.keys[lang])}
		for _, v := range d.entries[lang] {
			if v != "" {
				s.Translated++
			}
		}
		stats = append(stats, s)
	}
	return stats
}
