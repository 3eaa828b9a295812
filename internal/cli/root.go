package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nomenworks/nomen/internal/config"
	"github.com/nomenworks/nomen/internal/logging"
	"github.com/nomenworks/nomen/internal/tui"
	"github.com/nomenworks/nomen/pkg/nomen"
)

var rootCmd = &cobra.Command{
	Use:   "nomen",
	Short: "Naming grammar enforcement for file trees",
	Long: asciiLogo + `

nomen enforces a four-segment naming grammar over a file tree:

    {layer}.{role}.{domain}.{extension}

Files carry metadata through JSON sidecars paired by filename. nomen
validates names and sidecars, builds a content-addressed registry
manifest of every validated file, and verifies a tree against the
manifest it last wrote.

The vocabulary (layers, extensions, profiles) is configuration: nomen
reads core.config.taxonomy.yaml from the tree root when present and
falls back to the compiled defaults otherwise.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid taxonomy configuration
  20 - Violations found or manifest drift
  21 - Tree root missing or unreadable`,
	SilenceUsage: true,
}

// rootFlagValues holds the persistent flags shared by every command.
type rootFlagValues struct {
	config  string
	verbose bool
	quiet   bool
	noInput bool
}

var rootFlags rootFlagValues

// Execute runs the root command
func Execute() error {
	// .env is a local convenience; a missing file is not an error.
	_ = godotenv.Load()

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.config, "config", "",
		"Taxonomy configuration file\n"+
			"Precedence: --config > $NOMEN_CONFIG > <tree>/"+nomen.DefaultConfigFileName+" > defaults")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false,
		"Enable verbose output for all commands")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.quiet, "quiet", "q", false,
		"Suppress informational output (errors are still written)")
	rootCmd.PersistentFlags().BoolVar(&rootFlags.noInput, "no-input", false,
		"Never prompt; run every command non-interactively\n"+
			"Also implied by $NOMEN_NON_INTERACTIVE=1, $CI, or a non-terminal stdin")
}

// newLogger builds the console logger configured by the persistent
// flags, with $NOMEN_LOG_LEVEL as the fallback when neither flag is set.
func newLogger() nomen.Logger {
	verbose, quiet := rootFlags.verbose, rootFlags.quiet
	if !verbose && !quiet {
		switch os.Getenv("NOMEN_LOG_LEVEL") {
		case "verbose", "debug":
			verbose = true
		case "quiet", "error":
			quiet = true
		}
	}
	return logging.NewConsoleLogger(verbose, quiet)
}

// resolveTaxonomy loads the taxonomy governing a pass over treePath.
func resolveTaxonomy(treePath string) (*nomen.Taxonomy, error) {
	return config.Resolve(treePath, rootFlags.config)
}

// useColor reports whether styled output should be rendered.
func useColor() bool {
	return tui.ColorEnabled()
}

// interactiveAllowed reports whether a command may open a prompt or
// wizard: the terminal must be interactive and --no-input must be off.
func interactiveAllowed() bool {
	return !rootFlags.noInput && tui.IsInteractive()
}
