package filesystem

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// embedFile implements File interface for embed.FS
type embedFile struct {
	embedFS *embed.FS
	absPath string // path within embed.FS (always uses forward slashes)
	relPath string // relative path from root
	info    fs.FileInfo
}

func (f *embedFile) Path() string         { return f.absPath }
func (f *embedFile) RelativePath() string { return f.relPath }
func (f *embedFile) Info() FileInfo       { return f.info }

func (f *embedFile) ReadContent() ([]byte, error) {
	return f.embedFS.ReadFile(f.absPath)
}

// embedDirectory implements Directory interface for embed.FS
type embedDirectory struct {
	embedFS *embed.FS
	absPath string // path within embed.FS (always uses forward slashes)
	root    string // root path for calculating relative paths
}

func (d *embedDirectory) Path() string { return d.absPath }

func (d *embedDirectory) Walk(fn func(File, error) error) error {
	return fs.WalkDir(d.embedFS, d.absPath, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fn(nil, err)
		}

		info, err := entry.Info()
		if err != nil {
			return fn(nil, fmt.Errorf("failed to get file info for %s: %w", filePath, err))
		}

		relPath, err := filepath.Rel(d.root, filePath)
		if err != nil {
			return fn(nil, fmt.Errorf("failed to calculate relative path: %w", err))
		}

		file := &embedFile{
			embedFS: d.embedFS,
			absPath: filePath,
			relPath: filepath.ToSlash(relPath),
			info:    info,
		}

		// SkipDir passes through so fs.WalkDir prunes the subtree.
		return fn(file, nil)
	})
}

// EmbedFileSystem implements FileSystemProvider for embed.FS trees.
// It is read-only; WriteFile always fails.
type EmbedFileSystem struct {
	embedFS embed.FS
	root    string // root path within the embed.FS (always uses forward slashes)
}

// NewEmbedFileSystem creates a new filesystem provider wrapping an embed.FS.
// The root parameter specifies the subdirectory within the embed.FS to treat as the root.
func NewEmbedFileSystem(embedFS embed.FS, root string) *EmbedFileSystem {
	root = path.Clean(root)
	return &EmbedFileSystem{
		embedFS: embedFS,
		root:    root,
	}
}

// Open implements FileSystemProvider.Open
func (e *EmbedFileSystem) Open(openPath string) (Directory, error) {
	absPath := e.abs(openPath)

	if _, err := e.embedFS.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("directory not found: %s", openPath)
	}

	return &embedDirectory{
		embedFS: &e.embedFS,
		absPath: absPath,
		root:    e.root,
	}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (e *EmbedFileSystem) ReadFile(filePath string) ([]byte, error) {
	return e.embedFS.ReadFile(e.abs(filePath))
}

// OpenFile implements FileSystemProvider.OpenFile
func (e *EmbedFileSystem) OpenFile(filePath string) (io.ReadCloser, error) {
	content, err := e.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// WriteFile implements FileSystemProvider.WriteFile
func (e *EmbedFileSystem) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	return fmt.Errorf("embedded filesystem is read-only: cannot write %s", filePath)
}

// Stat implements FileSystemProvider.Stat
func (e *EmbedFileSystem) Stat(statPath string) (FileInfo, error) {
	f, err := e.embedFS.Open(e.abs(statPath))
	if err != nil {
		return nil, fmt.Errorf("path not found: %s", statPath)
	}
	defer f.Close()
	return f.Stat()
}

// abs resolves a path against the embedded root. Paths that already
// carry the root prefix (File.Path values handed back by a walk) pass
// through unchanged.
func (e *EmbedFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "." || p == "" {
		return e.root
	}
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	p = path.Clean(p)
	if p == e.root || strings.HasPrefix(p, e.root+"/") {
		return p
	}
	return path.Join(e.root, p)
}
