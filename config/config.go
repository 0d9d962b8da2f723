// Package config implements project settings: the optional .i18ncsv.yaml
// file and auto-detection of CSV translation tables under a root directory.
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are never scanned for tables.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
}

// Project holds detected project settings.
type Project struct {
	// Root is the absolute project root.
	Root string
	// Config is the loaded .i18ncsv.yaml (defaults when absent).
	Config *File
	// HasConfigFile reports whether .i18ncsv.yaml was found.
	HasConfigFile bool
	// Tables are the CSV tables to report on. When the config lists files,
	// those are used; otherwise every *.csv under Root is.
	Tables []string
}

// Detect loads the project configuration and discovers translation tables.
func Detect(rootDir string) (*Project, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}

	cfg, err := Load(rootDir)
	if err != nil {
		return nil, err
	}

	p := &Project{Root: absRoot, Config: cfg}
	if _, err := os.Stat(filepath.Join(rootDir, FileName)); err == nil {
		p.HasConfigFile = true
	}

	if len(cfg.Files) > 0 {
		p.Tables = append(p.Tables, cfg.Files...)
		return p, nil
	}

	p.Tables = findTables(rootDir, cfg)
	return p, nil
}

// findTables walks rootDir for *.csv files, skipping hidden and build
// directories and the configured merged input/output files.
func findTables(rootDir string, cfg *File) []string {
	exclude := make(map[string]bool)
	for _, p := range []string{cfg.Out, cfg.Input} {
		if p != "" {
			exclude[filepath.Clean(p)] = true
		}
	}

	var tables []string
	_ = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != rootDir && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(name), ".csv") && !exclude[filepath.Clean(path)] {
			tables = append(tables, path)
		}
		return nil
	})

	sort.Strings(tables)
	return tables
}
