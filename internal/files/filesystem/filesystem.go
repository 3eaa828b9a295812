package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// SkipDir is returned by a Walk callback on a directory to prune its
// subtree without stopping the walk. Alias of fs.SkipDir.
var SkipDir = fs.SkipDir

// File represents an individual file or directory with its metadata and
// content accessor.
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the slash-separated path relative to the
	// walk root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree in lexicographic order, calling
	// fn for each file and directory. Returning SkipDir from fn on a
	// directory prunes that subtree; any other non-nil error stops the
	// walk and is returned.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is a factory for creating Directory instances plus
// the file-level operations tree passes need.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// OpenFile opens a file for streaming reads. The caller closes it.
	OpenFile(path string) (io.ReadCloser, error)

	// WriteFile writes data to path, replacing any existing content.
	// Implementations backed by a real disk must make the replacement
	// atomic so a crashed pass never leaves a torn manifest.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}
