// i18ncsv merges per-file CSV translation tables into one sheet for
// translators and splits the edited sheet back into the original files.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/minios-linux/i18ncsv/config"
	"github.com/minios-linux/i18ncsv/csvtable"
	"github.com/minios-linux/i18ncsv/i18n"
	"github.com/minios-linux/i18ncsv/merge"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors, cleared when stderr is not a terminal.
var (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func init() {
	if os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stderr.Fd()) {
		colorReset, colorRed, colorGreen, colorYellow, colorBlue = "", "", "", "", ""
	}
}

// stderr and stdout are swapped out by tests.
var (
	stderr io.Writer = os.Stderr
	stdout io.Writer = os.Stdout
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var (
	rootDir  string
	langFlag string
)

// errReported is returned once the failure has been logged.
var errReported = errors.New("error already reported")

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "i18ncsv",
		Short: "Merge and split CSV translation tables",
		Long: `i18ncsv: merge and split CSV translation tables.

Each table has a key column (default "_key") and one column per language.
Columns whose header starts with "_" hold metadata and are not languages.

Commands:
  export   Merge several tables into one sheet with a "_file" column
  import   Copy an edited sheet back into the original tables
  bundle   Render one table as an ES module, JSON, or YAML
  status   Show tables, languages and translation progress

Settings can be stored in .i18ncsv.yaml in the project root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLanguage()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	// Global persistent flag, inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory (location of "+config.FileName+")")
	root.PersistentFlags().StringVar(&langFlag, "lang", "", "Language of messages (default: from config or locale)")

	root.AddCommand(
		newExportCmd(),
		newImportCmd(),
		newBundleCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// initLanguage picks the message language: --lang, then the config file's
// lang, then the locale environment.
func initLanguage() {
	lang := langFlag
	if lang == "" {
		// A broken config is reported by the command itself.
		if cfg, err := config.Load(rootDir); err == nil {
			lang = cfg.Lang
		}
	}
	i18n.Init(lang)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			logError("%v", err)
		}
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// Shared flags
// ---------------------------------------------------------------------------

// columnFlags holds the key and file marker column names.
type columnFlags struct {
	key  string
	fkey string
}

func (c *columnFlags) register(fs *pflag.FlagSet, withFileKey bool) {
	fs.StringVarP(&c.key, "key", "k", config.DefaultKey, "Key column header")
	if withFileKey {
		fs.StringVar(&c.fkey, "fkey", config.DefaultFileKey, "Column storing the source filename (used when reimporting strings)")
	}
}

// applyConfig fills unset flags from the project config.
func (c *columnFlags) applyConfig(fs *pflag.FlagSet, cfg *config.File) {
	if !fs.Changed("key") {
		c.key = cfg.Key
	}
	if fs.Lookup("fkey") != nil && !fs.Changed("fkey") {
		c.fkey = cfg.FileKey
	}
}

func (c *columnFlags) options() merge.Options {
	return merge.Options{KeyColumn: c.key, FileColumn: c.fkey}
}

func addVersionFlag(fs *pflag.FlagSet, v *bool) {
	fs.BoolVarP(v, "version", "v", false, "Show the version number")
}

func printVersion() {
	fmt.Fprintln(stdout, version)
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "i18ncsv version %s\n", version)
			fmt.Fprintf(stdout, "  commit:    %s\n", commit)
			fmt.Fprintf(stdout, "  built:     %s\n", date)
		},
	}
}

// fileExists returns true if the file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return &csvtable.WriteError{Path: "stdout", Err: err}
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &csvtable.WriteError{Path: path, Err: err}
	}
	return nil
}
