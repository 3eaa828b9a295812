package nomen

import "strings"

// TreeScanner defines the interface for discovering the files a pass
// operates on. Implementations must be safe for concurrent use by
// multiple goroutines.
type TreeScanner interface {
	// ScanTree recursively scans a tree root and returns file metadata
	// sorted lexicographically by relative path. Hidden entries, ignore
	// matches and the registry manifest are excluded.
	ScanTree(root string) (TreeScan, error)
}

// ScannedFile is one regular file found by a scan.
type ScannedFile struct {
	// RelPath is slash-separated and relative to the scan root.
	RelPath string

	// AbsPath locates the file for reading.
	AbsPath string

	// Size in bytes, from the walk.
	Size int64

	// IsSidecar is true when RelPath ends with the sidecar suffix.
	IsSidecar bool

	// SubjectRel is the paired subject's relative path; only set for
	// sidecars.
	SubjectRel string
}

// Name returns the base filename, the unit the grammar governs.
func (f ScannedFile) Name() string {
	if i := strings.LastIndexByte(f.RelPath, '/'); i >= 0 {
		return f.RelPath[i+1:]
	}
	return f.RelPath
}

// TreeScan contains the results of scanning a tree.
type TreeScan struct {
	Root  string
	Files []ScannedFile
}

// Sidecars returns the scanned sidecar files in scan order.
func (s TreeScan) Sidecars() []ScannedFile {
	var out []ScannedFile
	for _, f := range s.Files {
		if f.IsSidecar {
			out = append(out, f)
		}
	}
	return out
}

// Contains reports whether the scan saw the given relative path.
func (s TreeScan) Contains(rel string) bool {
	_, ok := s.Lookup(rel)
	return ok
}

// Lookup returns the scanned file at the given relative path.
func (s TreeScan) Lookup(rel string) (ScannedFile, bool) {
	for _, f := range s.Files {
		if f.RelPath == rel {
			return f, true
		}
	}
	return ScannedFile{}, false
}
