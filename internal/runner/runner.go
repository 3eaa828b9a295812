package runner

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/nomenworks/nomen/internal/files/filesystem"
	"github.com/nomenworks/nomen/internal/files/loader"
	"github.com/nomenworks/nomen/internal/files/scanner"
	"github.com/nomenworks/nomen/internal/naming"
	"github.com/nomenworks/nomen/pkg/nomen"
)

// Runner implements the tree-wide check pass.
// Safe for concurrent use by multiple goroutines as long as the provided
// fsProvider is also thread-safe.
type Runner struct {
	scanner       nomen.TreeScanner
	loader        *loader.Loader
	nameValidator nomen.NameValidator
	logger        nomen.Logger
}

// NewRunner creates a runner for the given taxonomy backed by the OS
// filesystem. Panics if tax or logger is nil.
func NewRunner(tax *nomen.Taxonomy, logger nomen.Logger) *Runner {
	return NewRunnerWithFS(tax, logger, filesystem.NewOSFileSystem())
}

// NewRunnerWithFS creates a runner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if tax, logger or fsProvider is nil.
func NewRunnerWithFS(tax *nomen.Taxonomy, logger nomen.Logger, fsProvider filesystem.FileSystemProvider) *Runner {
	if tax == nil {
		panic("taxonomy cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Runner{
		scanner:       scanner.NewScannerWithFS(tax, fsProvider),
		loader:        loader.NewLoaderWithFS(tax, fsProvider),
		nameValidator: naming.NewValidator(tax),
		logger:        logger,
	}
}

// Check validates every filename and sidecar under root. Violations are
// collected in the report; only an unreadable root, a bad pattern or a
// cancelled context abort the pass.
func (r *Runner) Check(ctx context.Context, root string, opts nomen.CheckOptions) (nomen.CheckReport, error) {
	if opts.Pattern != "" && !doublestar.ValidatePattern(opts.Pattern) {
		return nomen.CheckReport{}, fmt.Errorf("invalid argument %q for pattern", opts.Pattern)
	}

	scan, err := r.scanner.ScanTree(root)
	if err != nil {
		return nomen.CheckReport{}, err
	}
	r.logger.Verbose("checking %d files under %s", len(scan.Files), root)

	report := nomen.CheckReport{Root: root}

	if !opts.MetaOnly {
		if err := ctx.Err(); err != nil {
			return nomen.CheckReport{}, err
		}
		r.checkNames(scan, opts, &report)
	}
	if !opts.NamesOnly {
		if err := ctx.Err(); err != nil {
			return nomen.CheckReport{}, err
		}
		r.checkSidecars(scan, opts, &report)
	}

	r.logger.Verbose("check found %d violations in %d files",
		report.ViolationCount(), len(report.Findings))
	return report, nil
}

// checkNames runs the grammar over every non-sidecar file. Sidecar
// names are derived from their subjects, so validating them would only
// repeat the subject's verdict with noise appended.
func (r *Runner) checkNames(scan nomen.TreeScan, opts nomen.CheckOptions, report *nomen.CheckReport) {
	for _, f := range scan.Files {
		if f.IsSidecar || !matches(opts.Pattern, f.RelPath) {
			continue
		}
		report.FilesChecked++

		result := r.nameValidator.Validate(f.Name())
		if result.Valid() {
			continue
		}
		report.Findings = append(report.Findings, nomen.CheckFinding{
			Path:   f.RelPath,
			Source: nomen.SourceName,
			Issues: result.Issues,
		})
	}
}

// checkSidecars loads and validates every sidecar in the scan.
func (r *Runner) checkSidecars(scan nomen.TreeScan, opts nomen.CheckOptions, report *nomen.CheckReport) {
	for _, rec := range r.loader.LoadSidecars(scan) {
		if !matches(opts.Pattern, rec.Sidecar.RelPath) {
			continue
		}
		report.SidecarsChecked++

		if rec.Valid() {
			continue
		}
		report.Findings = append(report.Findings, nomen.CheckFinding{
			Path:   rec.Sidecar.RelPath,
			Source: nomen.SourceSidecar,
			Issues: rec.Result.Issues,
		})
	}
}

// matches applies the optional path pattern; an empty pattern matches
// everything. Patterns are validated before the pass starts.
func matches(pattern, rel string) bool {
	if pattern == "" {
		return true
	}
	ok, err := doublestar.Match(pattern, rel)
	return err == nil && ok
}

// Verify Runner implements the interface at compile time
var _ nomen.TreeChecker = (*Runner)(nil)
