package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nomenworks/nomen/internal/registry"
	"github.com/nomenworks/nomen/internal/report"
	"github.com/nomenworks/nomen/internal/runner"
	"github.com/nomenworks/nomen/internal/watch"
	"github.com/nomenworks/nomen/pkg/nomen"
)

var watchCmd = &cobra.Command{
	Use:   "watch <tree_path>",
	Short: "Re-run the check pass whenever the tree changes",
	Long: `Watch keeps a validation loop running over a tree. Filesystem
changes are coalesced over a debounce window, then the full check pass
runs again and prints a fresh report.

Unlike 'nomen check', findings never stop the loop: watch is a
feedback tool for editing sessions, not a gate. The loop runs until
interrupted (Ctrl-C), and interruption exits 0 regardless of what the
last pass found.

With --build, every clean pass also rewrites the registry manifest.
Manifest rewrites do not retrigger the loop; the watcher excludes the
manifest path from its events.

Hidden entries and the taxonomy's ignore patterns are excluded the
same way the scanner excludes them, so editor droppings and build
output do not cause spurious passes.

Examples:
  # Watch the current directory
  nomen watch .

  # Keep the manifest current while editing
  nomen watch . --build

  # Calmer loop for large trees
  nomen watch . --debounce 2s`,
	Args:              RequireTreePath,
	ValidArgsFunction: completeDirectories,
	RunE:              runWatch,
}

type watchFlagValues struct {
	build    bool
	debounce time.Duration
	format   string
}

var watchFlags watchFlagValues

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchFlags.build, "build", false,
		"Rewrite the registry manifest after every clean pass")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", nomen.DefaultWatchDebounce,
		"Quiet window before a change burst triggers a pass\n"+
			"Examples: 500ms, 2s")
	watchCmd.Flags().StringVarP(&watchFlags.format, "format", "f", "text",
		"Output format for each pass report: text|json")
	_ = watchCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func runWatch(cmd *cobra.Command, args []string) error {
	treePath := args[0]

	format, err := report.ParseFormat(watchFlags.format)
	if err != nil {
		return err
	}

	tax, err := resolveTaxonomy(treePath)
	if err != nil {
		return err
	}

	logger := newLogger()
	checker := runner.NewRunner(tax, logger)
	builder := registry.NewBuilder(tax, logger)
	printer := report.NewPrinter(cmd.OutOrStdout(), format, useColor())

	pass := func(ctx context.Context) error {
		checkReport, err := checker.Check(ctx, treePath, nomen.CheckOptions{})
		if err != nil {
			return err
		}
		if err := printer.CheckReport(checkReport); err != nil {
			return err
		}
		if !watchFlags.build {
			return nil
		}
		if !checkReport.Clean() {
			logger.Info("manifest not rewritten: tree has violations")
			return nil
		}
		result, err := builder.Build(ctx, treePath)
		if err != nil {
			return err
		}
		if err := builder.Write(treePath, result.Manifest); err != nil {
			return err
		}
		logger.Info("manifest rewritten (%d entries)", len(result.Manifest.Entries))
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nStopping watch...")
		cancel()
	}()

	// One pass up front so the first report does not wait for a change.
	// Findings are expected output here, not a reason to stop.
	if err := pass(ctx); err != nil {
		return err
	}

	watcher, err := watch.NewWatcher(tax, treePath, watchFlags.debounce, logger)
	if err != nil {
		return err
	}
	return watcher.Run(ctx, pass)
}
