package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nomenworks/nomen/internal/naming"
	"github.com/nomenworks/nomen/internal/report"
	"github.com/nomenworks/nomen/pkg/nomen"
)

var nameCmd = &cobra.Command{
	Use:   "name [filename...]",
	Short: "Validate filenames against the grammar",
	Long: `Validate one or more filenames against the naming grammar:

    {layer}.{role}.{domain}.{extension}

Validation is pure string checking; the files do not have to exist.
Every violation is reported, not just the first, so one run shows
everything there is to fix.

With --glob, every regular file matched by a doublestar pattern is
validated by its base name instead of (or in addition to) the
positional arguments. The pattern supports ** for recursive matching.

Examples:
  # Validate a single name
  nomen name core.validator.naming.py

  # Validate several names at once
  nomen name core.parser.config.yaml logic.worker.queue.go

  # Validate every Python file under src/
  nomen name --glob './src/**/*.py'

  # Machine-readable output for tooling
  nomen name core.validator.naming.py --format json`,
	RunE: runName,
}

type nameFlagValues struct {
	glob   string
	format string
}

var nameFlags nameFlagValues

func init() {
	rootCmd.AddCommand(nameCmd)

	nameCmd.Flags().StringVar(&nameFlags.glob, "glob", "",
		"Validate every file matched by a doublestar pattern\n"+
			"Example: --glob './src/**/*.py'")
	nameCmd.Flags().StringVarP(&nameFlags.format, "format", "f", "text",
		"Output format: text|json")
	_ = nameCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func runName(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && nameFlags.glob == "" {
		return fmt.Errorf(`missing required argument: <filename> (or --glob)

Usage: %s

Examples:
  nomen name core.validator.naming.py
  nomen name --glob './src/**/*.py'`, cmd.UseLine())
	}

	format, err := report.ParseFormat(nameFlags.format)
	if err != nil {
		return err
	}

	// Pure name validation has no tree root; the taxonomy comes from
	// --config, $NOMEN_CONFIG, or the working directory.
	tax, err := resolveTaxonomy(".")
	if err != nil {
		return err
	}
	validator := naming.NewValidator(tax)

	var results []report.PathResult
	for _, arg := range args {
		results = append(results, report.PathResult{
			Path:   arg,
			Result: validator.Validate(filepath.Base(arg)),
		})
	}
	if nameFlags.glob != "" {
		err := validator.ValidateGlob(nameFlags.glob, func(path string, res nomen.NameResult) error {
			results = append(results, report.PathResult{Path: path, Result: res})
			return nil
		})
		if err != nil {
			return err
		}
	}

	printer := report.NewPrinter(cmd.OutOrStdout(), format, useColor())
	if err := printer.NameResults(results); err != nil {
		return err
	}

	invalid := 0
	for _, r := range results {
		if !r.Result.Valid() {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d names invalid: %w", invalid, len(results), nomen.ErrViolationsFound)
	}
	return nil
}
