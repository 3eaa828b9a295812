package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomenworks/nomen/internal/files/filesystem"
	"github.com/nomenworks/nomen/pkg/nomen"
)

func TestScanTree_PairsSidecarsWithSubjects(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFile("/project/core.parser.config.yaml", "key: value")
	mfs.AddFile("/project/core.parser.config.yaml.meta.json", `{"layer": "core"}`)
	mfs.AddFile("/project/logic.transform.pipeline.go", "package pipeline")

	s := NewScannerWithFS(nomen.DefaultTaxonomy(), mfs)
	scan, err := s.ScanTree("/project")
	require.NoError(t, err)
	require.Len(t, scan.Files, 3)

	sidecars := scan.Sidecars()
	require.Len(t, sidecars, 1)
	assert.Equal(t, "core.parser.config.yaml.meta.json", sidecars[0].RelPath)
	assert.Equal(t, "core.parser.config.yaml", sidecars[0].SubjectRel)
	assert.True(t, scan.Contains(sidecars[0].SubjectRel))
}

func TestScanTree_SortedByRelativePath(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFile("/project/zeta/interface.view.home.html", "<html>")
	mfs.AddFile("/project/alpha/core.model.user.go", "package user")
	mfs.AddFile("/project/core.readme.project.md", "# readme")

	s := NewScannerWithFS(nomen.DefaultTaxonomy(), mfs)
	scan, err := s.ScanTree("/project")
	require.NoError(t, err)

	var got []string
	for _, f := range scan.Files {
		got = append(got, f.RelPath)
	}
	assert.Equal(t, []string{
		"alpha/core.model.user.go",
		"core.readme.project.md",
		"zeta/interface.view.home.html",
	}, got)
}

func TestScanTree_SkipsHiddenEntries(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFile("/project/.env", "SECRET=1")
	mfs.AddFile("/project/.git/config", "[core]")
	mfs.AddFile("/project/core.model.user.go", "package user")

	s := NewScannerWithFS(nomen.DefaultTaxonomy(), mfs)
	scan, err := s.ScanTree("/project")
	require.NoError(t, err)

	require.Len(t, scan.Files, 1)
	assert.Equal(t, "core.model.user.go", scan.Files[0].RelPath)
}

func TestScanTree_PrunesIgnorePatterns(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFile("/project/node_modules/pkg/index.js", "module.exports = {}")
	mfs.AddFile("/project/vendor/lib/code.go", "package lib")
	mfs.AddFile("/project/src/logic.service.auth.go", "package auth")

	s := NewScannerWithFS(nomen.DefaultTaxonomy(), mfs)
	scan, err := s.ScanTree("/project")
	require.NoError(t, err)

	require.Len(t, scan.Files, 1)
	assert.Equal(t, "src/logic.service.auth.go", scan.Files[0].RelPath)
}

func TestScanTree_CustomIgnorePatterns(t *testing.T) {
	tax := nomen.DefaultTaxonomy()
	tax.Ignore = append(tax.Ignore, "**/*.tmp", "build/**")

	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFile("/project/core.cache.session.tmp", "scratch")
	mfs.AddFile("/project/deep/core.cache.other.tmp", "scratch")
	mfs.AddFile("/project/build/core.artifact.bundle.js", "bundled")
	mfs.AddFile("/project/core.model.user.go", "package user")

	s := NewScannerWithFS(tax, mfs)
	scan, err := s.ScanTree("/project")
	require.NoError(t, err)

	// "**" also matches zero segments, so the root-level .tmp file is
	// ignored too.
	require.Len(t, scan.Files, 1)
	assert.Equal(t, "core.model.user.go", scan.Files[0].RelPath)
}

func TestScanTree_ExcludesManifest(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFile("/project/"+nomen.DefaultManifestName, `{"schema_version": "1"}`)
	mfs.AddFile("/project/core.model.user.go", "package user")

	s := NewScannerWithFS(nomen.DefaultTaxonomy(), mfs)
	scan, err := s.ScanTree("/project")
	require.NoError(t, err)

	require.Len(t, scan.Files, 1)
	assert.Equal(t, "core.model.user.go", scan.Files[0].RelPath)
}

func TestScanTree_SuffixAloneIsNotASidecar(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFile("/project/sub/meta.json", "{}")

	s := NewScannerWithFS(nomen.DefaultTaxonomy(), mfs)
	scan, err := s.ScanTree("/project")
	require.NoError(t, err)

	require.Len(t, scan.Files, 1)
	assert.False(t, scan.Files[0].IsSidecar)
	assert.Empty(t, scan.Files[0].SubjectRel)
}

func TestScanTree_InaccessibleRootIsFatal(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")

	s := NewScannerWithFS(nomen.DefaultTaxonomy(), mfs)
	_, err := s.ScanTree("/missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, nomen.ErrFatalIO))
}

func TestScannedFile_Name(t *testing.T) {
	tests := []struct {
		relPath string
		want    string
	}{
		{"core.model.user.go", "core.model.user.go"},
		{"nested/dir/interface.view.home.html", "interface.view.home.html"},
	}

	for _, tt := range tests {
		f := nomen.ScannedFile{RelPath: tt.relPath}
		assert.Equal(t, tt.want, f.Name())
	}
}

func TestNewScanner_PanicsOnNilTaxonomy(t *testing.T) {
	assert.Panics(t, func() { NewScanner(nil) })
	assert.Panics(t, func() { NewScannerWithFS(nomen.DefaultTaxonomy(), nil) })
}
