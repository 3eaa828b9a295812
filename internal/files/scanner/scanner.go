package scanner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/nomenworks/nomen/internal/files/filesystem"
	"github.com/nomenworks/nomen/pkg/nomen"
)

// Scanner discovers regular files under a tree root and pairs sidecars
// with their subjects. Hidden entries, ignore-pattern matches and the
// registry manifest never appear in a scan.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	tax        *nomen.Taxonomy
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner for the given taxonomy backed by the OS
// filesystem. Panics if tax is nil.
func NewScanner(tax *nomen.Taxonomy) *Scanner {
	if tax == nil {
		panic("taxonomy cannot be nil")
	}
	return &Scanner{
		tax:        tax,
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if tax or fsProvider is nil.
func NewScannerWithFS(tax *nomen.Taxonomy, fsProvider filesystem.FileSystemProvider) *Scanner {
	if tax == nil {
		panic("taxonomy cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		tax:        tax,
		fsProvider: fsProvider,
	}
}

// ScanTree recursively scans root and returns file metadata sorted by
// relative path. An inaccessible root is the one scanning failure that
// aborts a pass, so it wraps nomen.ErrFatalIO.
func (s *Scanner) ScanTree(root string) (nomen.TreeScan, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return nomen.TreeScan{}, fmt.Errorf("opening tree root %s: %v: %w", root, err, nomen.ErrFatalIO)
	}

	var files []nomen.ScannedFile

	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("walking tree: %w", err)
		}

		rel := file.RelativePath()
		name := file.Info().Name()

		if file.Info().IsDir() {
			if rel == "." {
				return nil
			}
			if strings.HasPrefix(name, ".") || IgnoredDir(s.tax, rel) {
				return filesystem.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		if rel == s.tax.ManifestName {
			return nil
		}
		if Ignored(s.tax, rel) {
			return nil
		}

		scanned := nomen.ScannedFile{
			RelPath: rel,
			AbsPath: file.Path(),
			Size:    file.Info().Size(),
		}
		suffix := s.tax.SidecarSuffix
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			scanned.IsSidecar = true
			scanned.SubjectRel = strings.TrimSuffix(rel, suffix)
		}

		files = append(files, scanned)
		return nil
	})
	if err != nil {
		return nomen.TreeScan{}, err
	}

	// The walks already visit in lexicographic order; sorting again makes
	// the ordering a contract rather than an implementation detail.
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })

	return nomen.TreeScan{Root: root, Files: files}, nil
}

// Ignored reports whether a file's relative path matches any of the
// taxonomy's ignore patterns. Exported because the file watcher must
// filter events with the same rules the scanner prunes with.
func Ignored(tax *nomen.Taxonomy, rel string) bool {
	for _, pattern := range tax.Ignore {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// IgnoredDir reports whether every path under rel is ignored, so a
// walk can prune the whole subtree.
func IgnoredDir(tax *nomen.Taxonomy, rel string) bool {
	for _, pattern := range tax.Ignore {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		// A "dir/**" pattern ignores everything under dir.
		if trimmed, found := strings.CutSuffix(pattern, "/**"); found {
			if ok, err := doublestar.Match(trimmed, rel); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// Verify Scanner implements the interface at compile time
var _ nomen.TreeScanner = (*Scanner)(nil)
