package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nomenworks/nomen/internal/registry"
	"github.com/nomenworks/nomen/internal/report"
	"github.com/nomenworks/nomen/pkg/nomen"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <tree_path>",
	Short: "Compare a tree against its written manifest",
	Long: `Verify rebuilds the registry manifest in memory and compares it
against the manifest written at the tree root. Because builds are
deterministic, any difference means the tree changed after the
manifest was last written: subjects added, removed, re-written, or
their metadata edited.

Drift is reported per subject and the process exits non-zero
(code 20), so 'nomen verify .' in CI catches trees whose checked-in
manifest is stale. A tree with no manifest fails the same way.

Examples:
  # Verify the current directory
  nomen verify .

  # Machine-readable drift report
  nomen verify . --format json`,
	Args:              RequireTreePath,
	ValidArgsFunction: completeDirectories,
	RunE:              runVerify,
}

type verifyFlagValues struct {
	format string
}

var verifyFlags verifyFlagValues

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&verifyFlags.format, "format", "f", "text",
		"Output format: text|json")
	_ = verifyCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func runVerify(cmd *cobra.Command, args []string) error {
	treePath := args[0]

	format, err := report.ParseFormat(verifyFlags.format)
	if err != nil {
		return err
	}

	tax, err := resolveTaxonomy(treePath)
	if err != nil {
		return err
	}

	builder := registry.NewBuilder(tax, newLogger())
	result, err := builder.Verify(context.Background(), treePath)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(cmd.OutOrStdout(), format, useColor())
	if err := printer.VerifyResult(result); err != nil {
		return err
	}

	if !result.Match() {
		return fmt.Errorf("manifest does not match tree (%d added, %d removed, %d changed): %w",
			len(result.Added), len(result.Removed), len(result.Changed), nomen.ErrViolationsFound)
	}
	return nil
}
