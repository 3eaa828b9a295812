package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/nomenworks/nomen/internal/checksum"
	"github.com/nomenworks/nomen/internal/files/filesystem"
	"github.com/nomenworks/nomen/internal/files/loader"
	"github.com/nomenworks/nomen/internal/files/scanner"
	"github.com/nomenworks/nomen/pkg/nomen"
)

// Builder assembles the registry manifest for a tree.
// Safe for concurrent use by multiple goroutines as long as the provided
// fsProvider is also thread-safe.
type Builder struct {
	tax        *nomen.Taxonomy
	scanner    nomen.TreeScanner
	loader     *loader.Loader
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
	logger     nomen.Logger
}

// NewBuilder creates a builder for the given taxonomy backed by the OS
// filesystem. Panics if tax or logger is nil.
func NewBuilder(tax *nomen.Taxonomy, logger nomen.Logger) *Builder {
	return NewBuilderWithFS(tax, logger, filesystem.NewOSFileSystem())
}

// NewBuilderWithFS creates a builder with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if tax, logger or fsProvider is nil.
func NewBuilderWithFS(tax *nomen.Taxonomy, logger nomen.Logger, fsProvider filesystem.FileSystemProvider) *Builder {
	if tax == nil {
		panic("taxonomy cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Builder{
		tax:        tax,
		scanner:    scanner.NewScannerWithFS(tax, fsProvider),
		loader:     loader.NewLoaderWithFS(tax, fsProvider),
		calculator: checksum.New(),
		fsProvider: fsProvider,
		logger:     logger,
	}
}

// Build scans the tree, validates every sidecar and produces the
// manifest plus diagnostics for the sidecars that were excluded. One
// bad sidecar never blocks the rest of the tree; only an unreadable
// root aborts the build.
func (b *Builder) Build(ctx context.Context, root string) (nomen.BuildResult, error) {
	scan, err := b.scanner.ScanTree(root)
	if err != nil {
		return nomen.BuildResult{}, err
	}
	b.logger.Verbose("scanned %d files under %s", len(scan.Files), root)

	records := b.loader.LoadSidecars(scan)

	var result nomen.BuildResult
	var accepted []loader.SidecarRecord

	for _, rec := range records {
		if rec.Valid() {
			accepted = append(accepted, rec)
			continue
		}
		result.Diagnostics = append(result.Diagnostics, nomen.Diagnostic{
			Path:   rec.Sidecar.RelPath,
			Issues: rec.Result.Issues,
		})
		b.countRejection(&result.Manifest.Summary, rec)
	}

	entries, hashDiags, err := b.hashSubjects(ctx, accepted)
	if err != nil {
		return nomen.BuildResult{}, err
	}
	result.Diagnostics = append(result.Diagnostics, hashDiags...)
	result.Manifest.Summary.Orphaned += len(hashDiags)
	result.Manifest.Summary.Valid = len(entries)

	result.Manifest.SchemaVersion = nomen.ManifestSchemaVersion
	result.Manifest.HashAlgorithm = b.calculator.Algorithm()
	result.Manifest.Entries = entries
	result.Manifest.TreeDigest = treeDigest(entries)

	sortDiagnostics(result.Diagnostics)

	b.logger.Verbose("built manifest: %d entries, %d diagnostics",
		len(entries), len(result.Diagnostics))
	return result, nil
}

// countRejection buckets a rejected record into the summary.
func (b *Builder) countRejection(summary *nomen.RegistrySummary, rec loader.SidecarRecord) {
	if rec.Orphan {
		summary.Orphaned++
		return
	}
	for _, issue := range rec.Result.Issues {
		if issue.Kind == nomen.IssueMalformedSidecar {
			summary.Malformed++
			return
		}
	}
	summary.Invalid++
}

// hashSubjects computes content hashes for the accepted records with a
// bounded worker pool and assembles the manifest entries in record
// order, which is already sorted by path. A subject that vanishes or
// becomes unreadable between scan and hash is excluded like an orphan;
// it must not abort the build.
func (b *Builder) hashSubjects(ctx context.Context, records []loader.SidecarRecord) ([]nomen.RegistryEntry, []nomen.Diagnostic, error) {
	if len(records) == 0 {
		return nil, nil, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > nomen.MaxHashWorkers {
		workers = nomen.MaxHashWorkers
	}

	hashes := make([]string, len(records))
	hashErrs := make([]error, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hashes[i], hashErrs[i] = b.hashFile(rec.Subject.AbsPath)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("hashing subjects: %w", err)
	}

	var entries []nomen.RegistryEntry
	var diags []nomen.Diagnostic
	for i, rec := range records {
		if hashErrs[i] != nil {
			b.logger.Error("hashing %s: %v", rec.Subject.RelPath, hashErrs[i])
			diags = append(diags, nomen.Diagnostic{
				Path: rec.Sidecar.RelPath,
				Issues: []nomen.Issue{{
					Kind:    nomen.IssueOrphanSidecar,
					Message: fmt.Sprintf("subject file %s is unreadable: %v", rec.Subject.RelPath, hashErrs[i]),
				}},
			})
			continue
		}
		entries = append(entries, nomen.RegistryEntry{
			ID:          EntryID(rec.Subject.RelPath).String(),
			Subject:     rec.Subject.RelPath,
			Sidecar:     rec.Sidecar.RelPath,
			ContentHash: hashes[i],
			Profile:     rec.Result.Profile,
			Metadata:    rec.Result.Fields,
		})
	}

	// Records arrive sorted by sidecar path; the manifest contract is
	// subject-path order, which is not always the same thing.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Subject < entries[j].Subject })
	return entries, diags, nil
}

// hashFile streams a subject through the calculator.
func (b *Builder) hashFile(absPath string) (string, error) {
	f, err := b.fsProvider.OpenFile(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return b.calculator.SumReader(f)
}

// treeDigest folds every entry's subject and hash into one digest so a
// manifest can be compared with a single string. Entries are already
// sorted by subject path.
func treeDigest(entries []nomen.RegistryEntry) string {
	h := sha256.New()
	for _, e := range entries {
		h.Write([]byte(e.Subject))
		h.Write([]byte{0})
		h.Write([]byte(e.ContentHash))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// sortDiagnostics keeps the diagnostics list ordered by path so reports
// are stable. Loader records arrive sorted, but hash failures are
// appended after them.
func sortDiagnostics(diags []nomen.Diagnostic) {
	sort.Slice(diags, func(i, j int) bool { return diags[i].Path < diags[j].Path })
}

// Verify Builder implements the interface at compile time
var _ nomen.RegistryBuilder = (*Builder)(nil)
