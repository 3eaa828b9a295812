// Package scanner discovers the files a validation or registry pass
// operates on.
//
// The scanner walks a tree root through a filesystem.FileSystemProvider,
// prunes hidden directories and ignore-pattern matches, pairs sidecar
// files with their subjects by the suffix convention, and returns the
// survivors sorted by relative path so every downstream pass is
// deterministic.
package scanner
