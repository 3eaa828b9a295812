package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nomenworks/nomen/internal/report"
	"github.com/nomenworks/nomen/internal/runner"
	"github.com/nomenworks/nomen/pkg/nomen"
)

var checkCmd = &cobra.Command{
	Use:   "check <tree_path>",
	Short: "Validate every name and sidecar under a tree",
	Long: `Check runs the full validation pass over a tree: every filename
through the grammar, every metadata sidecar through the schema
validator. All findings are collected into one report; a single bad
file never hides the rest.

This is the CI gate. The process exits non-zero (code 20) when any
violation is found, so wiring 'nomen check .' into a pipeline blocks
merges that break the grammar.

Sidecar filenames are exempt from grammar validation: they derive from
their subject's name plus the sidecar suffix. Hidden entries, ignore
patterns from the taxonomy, and the registry manifest are skipped.

Examples:
  # Check the current directory
  nomen check .

  # Names only, skipping sidecar schema validation
  nomen check ./tree --names-only

  # Restrict the pass to one subtree
  nomen check . --pattern 'src/**'

  # Machine-readable report for tooling
  nomen check . --format json`,
	Args:              RequireTreePath,
	ValidArgsFunction: completeDirectories,
	RunE:              runCheck,
}

type checkFlagValues struct {
	namesOnly bool
	metaOnly  bool
	pattern   string
	format    string
}

var checkFlags checkFlagValues

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkFlags.namesOnly, "names-only", false,
		"Validate filenames only; skip sidecar schema validation")
	checkCmd.Flags().BoolVar(&checkFlags.metaOnly, "meta-only", false,
		"Validate sidecars only; skip filename grammar validation")
	checkCmd.Flags().StringVar(&checkFlags.pattern, "pattern", "",
		"Restrict the pass to relative paths matching a doublestar pattern\n"+
			"Example: --pattern 'src/**'")
	checkCmd.Flags().StringVarP(&checkFlags.format, "format", "f", "text",
		"Output format: text|json")
	_ = checkCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func runCheck(cmd *cobra.Command, args []string) error {
	treePath := args[0]

	if checkFlags.namesOnly && checkFlags.metaOnly {
		return fmt.Errorf("invalid argument: --names-only and --meta-only are mutually exclusive")
	}
	format, err := report.ParseFormat(checkFlags.format)
	if err != nil {
		return err
	}

	tax, err := resolveTaxonomy(treePath)
	if err != nil {
		return err
	}

	r := runner.NewRunner(tax, newLogger())
	checkReport, err := r.Check(context.Background(), treePath, nomen.CheckOptions{
		NamesOnly: checkFlags.namesOnly,
		MetaOnly:  checkFlags.metaOnly,
		Pattern:   checkFlags.pattern,
	})
	if err != nil {
		return err
	}

	printer := report.NewPrinter(cmd.OutOrStdout(), format, useColor())
	if err := printer.CheckReport(checkReport); err != nil {
		return err
	}

	if !checkReport.Clean() {
		return fmt.Errorf("%d violations in %d files: %w",
			checkReport.ViolationCount(), len(checkReport.Findings), nomen.ErrViolationsFound)
	}
	return nil
}
