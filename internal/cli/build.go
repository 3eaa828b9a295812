package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/nomenworks/nomen/internal/registry"
	"github.com/nomenworks/nomen/internal/report"
)

var buildCmd = &cobra.Command{
	Use:   "build <tree_path>",
	Short: "Build and write the registry manifest",
	Long: `Build scans a tree, validates every metadata sidecar, hashes the
subject file of each valid sidecar (SHA-256), and writes the registry
manifest to ` + "`core.registry.manifest.json`" + ` at the tree root.

The manifest is deterministic: entries are ordered by subject path and
carry no wall-clock data, so rebuilding an unchanged tree produces a
byte-identical file. It is meant to be checked into version control
and reviewed as a diff.

Sidecars that fail validation are reported as diagnostics and excluded
from the manifest; they never abort the build. Use 'nomen check' as
the gate that refuses such trees.

Examples:
  # Build and write the manifest
  nomen build .

  # Print the manifest to stdout instead of writing it
  nomen build . --stdout

  # Machine-readable build report (manifest plus diagnostics)
  nomen build . --format json`,
	Args:              RequireTreePath,
	ValidArgsFunction: completeDirectories,
	RunE:              runBuild,
}

type buildFlagValues struct {
	stdout bool
	format string
}

var buildFlags buildFlagValues

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().BoolVar(&buildFlags.stdout, "stdout", false,
		"Print the manifest to stdout instead of writing it to the tree")
	buildCmd.Flags().StringVarP(&buildFlags.format, "format", "f", "text",
		"Output format for the build report: text|json")
	_ = buildCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func runBuild(cmd *cobra.Command, args []string) error {
	treePath := args[0]

	format, err := report.ParseFormat(buildFlags.format)
	if err != nil {
		return err
	}

	tax, err := resolveTaxonomy(treePath)
	if err != nil {
		return err
	}

	builder := registry.NewBuilder(tax, newLogger())
	result, err := builder.Build(context.Background(), treePath)
	if err != nil {
		return err
	}

	if buildFlags.stdout {
		// The manifest owns stdout; the report goes to stderr so the
		// output stays pipeable.
		data, err := registry.Encode(result.Manifest)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
		printer := report.NewPrinter(os.Stderr, format, useColor())
		return printer.BuildResult(result)
	}

	if err := builder.Write(treePath, result.Manifest); err != nil {
		return err
	}
	printer := report.NewPrinter(cmd.OutOrStdout(), format, useColor())
	return printer.BuildResult(result)
}
