// Package config: .i18ncsv.yaml configuration file support.
//
// When a .i18ncsv.yaml file exists in the project root, its values become
// the defaults of the export and import commands. Flags given on the command
// line always win.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .i18ncsv.yaml structure.
type File struct {
	// Key is the key column header (default "_key").
	Key string `yaml:"key,omitempty"`
	// FileKey is the file marker column written by export (default "_file").
	FileKey string `yaml:"file_key,omitempty"`
	// Files are the per-file tables merged by export.
	Files []string `yaml:"files,omitempty"`
	// Out is the export output path. Empty means stdout.
	Out string `yaml:"out,omitempty"`
	// Input is the merged table read by import.
	Input string `yaml:"input,omitempty"`
	// SkipMissing makes import skip absent target files.
	SkipMissing bool `yaml:"skip_missing,omitempty"`
	// Format is the default bundle format (js, json, yaml).
	Format string `yaml:"format,omitempty"`
	// Lang is the language of i18ncsv's own messages. Empty means the
	// locale environment decides.
	Lang string `yaml:"lang,omitempty"`
}

// FileName is the default config file name.
const FileName = ".i18ncsv.yaml"

// Default column names.
const (
	DefaultKey     = "_key"
	DefaultFileKey = "_file"
)

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Default returns the configuration used when no config file exists.
func Default() *File {
	return &File{Key: DefaultKey, FileKey: DefaultFileKey}
}

// Load loads and validates .i18ncsv.yaml from rootDir. When the file does
// not exist the defaults are returned. Relative paths are resolved against
// rootDir.
func Load(rootDir string) (*File, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Defaults
	if f.Key == "" {
		f.Key = DefaultKey
	}
	if f.FileKey == "" {
		f.FileKey = DefaultFileKey
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for i, fn := range f.Files {
		f.Files[i] = resolve(rootDir, fn)
	}
	f.Out = resolve(rootDir, f.Out)
	f.Input = resolve(rootDir, f.Input)

	return &f, nil
}

// Validate checks the column settings.
func (f *File) Validate() error {
	if f.Key == "" {
		return fmt.Errorf("key column must not be empty")
	}
	if f.FileKey == "" {
		return fmt.Errorf("file key column must not be empty")
	}
	if f.Key == f.FileKey {
		return fmt.Errorf("key and file_key are both %q", f.Key)
	}
	return nil
}

func resolve(rootDir, p string) string {
	if p == "" || filepath.IsAbs(p) || rootDir == "" || rootDir == "." {
		return p
	}
	return filepath.Join(rootDir, p)
}
