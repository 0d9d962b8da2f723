package main

import (
	"github.com/spf13/cobra"

	"github.com/minios-linux/i18ncsv/bundle"
	"github.com/minios-linux/i18ncsv/config"
	"github.com/minios-linux/i18ncsv/i18n"
)

// ---------------------------------------------------------------------------
// bundle (render one table for a front-end bundler)
// ---------------------------------------------------------------------------

func newBundleCmd() *cobra.Command {
	var (
		columns columnFlags
		format  string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "bundle FILE",
		Short: "Render a table as an ES module, JSON, or YAML",
		Long: `Convert one CSV translation table into a language → key → string
tree that a bundler can import directly.

Formats:
  js    export default {...}  (default)
  json  plain JSON object
  yaml  YAML mapping

Columns whose header starts with "_" are not treated as languages.
Rows without a key are ignored.`,
		Example: `  i18ncsv bundle strings/app.csv > src/i18n/app.js
  i18ncsv bundle strings/app.csv --format json -o public/app.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rootDir)
			if err != nil {
				return err
			}
			columns.applyConfig(cmd.Flags(), cfg)
			if !cmd.Flags().Changed("format") && cfg.Format != "" {
				format = cfg.Format
			}
			f, err := bundle.ParseFormat(format)
			if err != nil {
				return err
			}
			return runBundle(args[0], columns.key, f, out)
		},
	}

	columns.register(cmd.Flags(), false)
	cmd.Flags().StringVar(&format, "format", string(bundle.FormatJS), "Output format: js, json, yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, f := range bundle.Formats {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runBundle(path, key string, f bundle.Format, out string) error {
	d, err := bundle.Load(path, key)
	if err != nil {
		return err
	}
	data, err := bundle.Render(d, f)
	if err != nil {
		return err
	}
	if err := writeOutput(out, data); err != nil {
		return err
	}
	if out != "" {
		logSuccess(i18n.T("Wrote %s (%s)"), out, string(f))
	}
	return nil
}
