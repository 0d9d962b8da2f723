package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/minios-linux/i18ncsv/config"
	"github.com/minios-linux/i18ncsv/csvtable"
	"github.com/minios-linux/i18ncsv/i18n"
	"github.com/minios-linux/i18ncsv/merge"
)

// ---------------------------------------------------------------------------
// import (split an edited sheet back into its source tables)
// ---------------------------------------------------------------------------

type importArgs struct {
	columns     columnFlags
	input       string
	skipMissing bool
	showVersion bool
}

func newImportCmd() *cobra.Command {
	var a importArgs

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy an edited sheet back into the source tables",
		Long: `Distribute the rows of a merged sheet (as written by export) back into
the tables named in its --fkey column.

Rows are matched by key; the first row with that key in the target wins.
The sheet's columns are copied onto the matched row, except the --fkey
column, which is never written into a target. A language column the target
lacks is added only when the sheet has a non-empty value for it. Keys that
do not exist in the target are ignored. Each target is rewritten in full.

A missing target file stops the import before anything is written, unless
--skip-missing is given.`,
		Example: `  i18ncsv import -i strings.csv
  i18ncsv import -i strings.csv --skip-missing`,
		Args: cobra.NoArgs,
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
			if !cmd.Flags().Changed("input") {
				a.input = cfg.Input
			}
			if !cmd.Flags().Changed("skip-missing") {
				a.skipMissing = cfg.SkipMissing
			}
			if a.input == "" {
				logError(i18n.T("Input file is required"))
				_ = cmd.Usage()
				return errReported
			}
			if !fileExists(a.input) {
				return &csvtable.MissingFileError{Path: a.input, Err: os.ErrNotExist}
			}
			return runImport(a)
		},
	}

	a.columns.register(cmd.Flags(), true)
	cmd.Flags().StringVarP(&a.input, "input", "i", "", "Merged .csv file to import")
	cmd.Flags().BoolVar(&a.skipMissing, "skip-missing", false, "Skip target files that do not exist")
	addVersionFlag(cmd.Flags(), &a.showVersion)

	return cmd
}

func runImport(a importArgs) error {
	merged, err := csvtable.ParseFile(a.input)
	if err != nil {
		return err
	}

	res, err := merge.Split(merged, csvtable.ParseFile, merge.SplitOptions{
		Options:     a.columns.options(),
		SkipMissing: a.skipMissing,
	})
	if err != nil {
		var mf *csvtable.MissingFileError
		if errors.As(err, &mf) {
			logError(i18n.T("Target file not found: %s (use --skip-missing to skip files not found)"), mf.Path)
			return errReported
		}
		return err
	}

	for _, fn := range res.Skipped {
		logWarning(i18n.T("Target file not found: %s (skipped)"), fn)
	}

	for _, t := range res.Tables {
		if err := t.WriteFile(t.Filename); err != nil {
			return err
		}
		logInfo(i18n.T("Wrote %s"), t.Filename)
	}

	logSuccess(i18n.N("Updated %d row", "Updated %d rows", res.Updated), res.Updated)
	if res.Dropped > 0 {
		logWarning(i18n.N("%d row had no matching key and was ignored", "%d rows had no matching key and were ignored", res.Dropped), res.Dropped)
	}
	return nil
}
