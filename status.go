package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minios-linux/i18ncsv/bundle"
	"github.com/minios-linux/i18ncsv/config"
	"github.com/minios-linux/i18ncsv/i18n"
)

// ---------------------------------------------------------------------------
// status (read-only: tables, languages, translation progress)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	var columns columnFlags

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show tables, languages and translation progress",
		Long: `List the CSV translation tables of the project with their languages and
per-language translation progress. Tables come from the "files" list of
.i18ncsv.yaml, or from every *.csv file under --root. Does not modify any files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := config.Detect(rootDir)
			if err != nil {
				return err
			}
			columns.applyConfig(cmd.Flags(), proj.Config)
			runStatus(proj, columns.key)
			return nil
		},
	}

	columns.register(cmd.Flags(), false)
	return cmd
}

func runStatus(proj *config.Project, key string) {
	fmt.Fprintf(stderr, "\n%s%s%s\n", colorBlue, i18n.T("Project"), colorReset)
	fmt.Fprintln(stderr, strings.Repeat("─", 60))
	fmt.Fprintf(stderr, "  Root:       %s\n", proj.Root)
	if proj.HasConfigFile {
		fmt.Fprintf(stderr, "  Config:     %s\n", config.FileName)
	}
	fmt.Fprintf(stderr, "  Key column: %s\n", key)
	fmt.Fprintln(stderr)

	if len(proj.Tables) == 0 {
		logInfo(i18n.T("No CSV tables found in %s"), proj.Root)
		return
	}

	for _, path := range proj.Tables {
		name := path
		if rel, err := filepath.Rel(proj.Root, absPath(path)); err == nil && !strings.HasPrefix(rel, "..") {
			name = rel
		}

		d, err := bundle.Load(path, key)
		if err != nil {
			fmt.Fprintf(stderr, "%s%s%s\n", colorRed, name, colorReset)
			fmt.Fprintf(stderr, "  %v\n\n", err)
			continue
		}

		stats := d.Stats()
		fmt.Fprintf(stderr, "%s%s%s\n", colorBlue, name, colorReset)
		if len(stats) == 0 {
			fmt.Fprintf(stderr, "  %s\n\n", i18n.T("no language columns"))
			continue
		}

		langs := d.Languages()
		width := langColumnWidth(langs)
		for _, s := range stats {
			percent := 0
			if s.Total > 0 {
				percent = s.Translated * 100 / s.Total
			}
			fmt.Fprintf(stderr, "  %-*s %s  %d/%d\n", width, s.Language, progressBar(percent, 20), s.Translated, s.Total)
		}
		fmt.Fprintln(stderr)
	}
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// langColumnWidth returns the width of the widest language name.
func langColumnWidth(langs []string) int {
	width := 0
	for _, l := range langs {
		if n := len([]rune(l)); n > width {
			width = n
		}
	}
	return width
}

// progressBar renders a colored bar followed by a right-aligned percentage.
func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	color := colorGreen
	switch {
	case percent < 50:
		color = colorRed
	case percent < 100:
		color = colorYellow
	}

	filled := percent * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s%s%s %3d%%", color, bar, colorReset, percent)
}
