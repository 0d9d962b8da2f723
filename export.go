package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minios-linux/i18ncsv/config"
	"github.com/minios-linux/i18ncsv/csvtable"
	"github.com/minios-linux/i18ncsv/i18n"
	"github.com/minios-linux/i18ncsv/merge"
)

// ---------------------------------------------------------------------------
// export (merge per-file tables into one sheet)
// ---------------------------------------------------------------------------

type exportArgs struct {
	columns     columnFlags
	files       []string
	out         string
	showVersion bool
}

func newExportCmd() *cobra.Command {
	var a exportArgs

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Merge CSV tables into one sheet",
		Long: `Merge several CSV translation tables into a single sheet.

Every row of the result is identified by its source file (the --fkey
column) and its key. Languages from all tables become columns, in the
order they are first seen. Missing input files are reported and skipped.

Files are given with -f (once per file) or as arguments. Each value is one
path, so names containing commas are accepted as is.`,
		Example: `  i18ncsv export -f app.csv -f web.csv -o strings.csv
  i18ncsv export app.csv web.csv --key id > strings.csv`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.showVersion {
				printVersion()
				return nil
			}
			cfg, err := config.Load(rootDir)
			if err != nil {
				return err
			}
			a.columns.applyConfig(cmd.Flags(), cfg)
			a.files = append(a.files, args...)
			if len(a.files) == 0 {
				a.files = cfg.Files
			}
			if !cmd.Flags().Changed("out") {
				a.out = cfg.Out
			}
			if len(a.files) == 0 {
				logError(i18n.T("No files to export"))
				_ = cmd.Usage()
				return errReported
			}
			return runExport(a)
		},
	}

	a.columns.register(cmd.Flags(), true)
	cmd.Flags().StringArrayVarP(&a.files, "files", "f", nil, ".csv file to merge (repeatable)")
	cmd.Flags().StringVarP(&a.out, "out", "o", "", "Output file (default: stdout)")
	addVersionFlag(cmd.Flags(), &a.showVersion)

	return cmd
}

func runExport(a exportArgs) error {
	var tables []*csvtable.Table
	for _, fn := range a.files {
		t, err := csvtable.ParseFile(fn)
		if err != nil {
			var mf *csvtable.MissingFileError
			if errors.As(err, &mf) {
				logWarning(i18n.T("File not found: %s"), fn)
				continue
			}
			return err
		}
		tables = append(tables, t)
	}
	if len(tables) == 0 {
		return fmt.Errorf("%s: %w", i18n.T("nothing to export"), merge.ErrNoInput)
	}

	merged, err := merge.Merge(tables, a.columns.options())
	if err != nil {
		return err
	}

	data, err := merged.Marshal()
	if err != nil {
		return &csvtable.WriteError{Path: a.out, Err: err}
	}
	if err := writeOutput(a.out, data); err != nil {
		return err
	}

	if a.out != "" {
		logSuccess(i18n.T("Exported %d strings from %d files to %s"), len(merged.Rows), len(tables), a.out)
	}
	return nil
}
