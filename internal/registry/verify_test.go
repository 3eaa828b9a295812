package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomenworks/nomen/internal/files/filesystem"
	"github.com/nomenworks/nomen/pkg/nomen"
)

// writeBaseline builds and writes a manifest for the current tree.
func writeBaseline(t *testing.T, b *Builder) {
	t.Helper()
	built, err := b.Build(context.Background(), "/project")
	require.NoError(t, err)
	require.NoError(t, b.Write("/project", built.Manifest))
}

func TestVerify_Match(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	addPair(mfs, "core.parser.config.yaml", "key: value")
	addPair(mfs, "docs/logic.transform.pipeline.md", "# pipeline")

	b := newTestBuilder(mfs)
	writeBaseline(t, b)

	result, err := b.Verify(context.Background(), "/project")
	require.NoError(t, err)
	assert.True(t, result.Match())
	assert.Equal(t, nomen.VerifyMatch, result.Status)
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
	assert.Empty(t, result.Changed)
}

func TestVerify_AddedSubject(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	addPair(mfs, "core.parser.config.yaml", "key: value")

	b := newTestBuilder(mfs)
	writeBaseline(t, b)

	addPair(mfs, "core.schema.metadata.json", `{"a": 1}`)

	result, err := b.Verify(context.Background(), "/project")
	require.NoError(t, err)
	assert.Equal(t, nomen.VerifyDrift, result.Status)
	assert.Equal(t, []string{"core.schema.metadata.json"}, result.Added)
	assert.Empty(t, result.Removed)
	assert.Empty(t, result.Changed)
}

func TestVerify_RemovedSubject(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	addPair(mfs, "core.parser.config.yaml", "key: value")
	addPair(mfs, "core.schema.metadata.json", `{"a": 1}`)

	b := newTestBuilder(mfs)
	writeBaseline(t, b)

	mfs.RemoveFile("/project/core.schema.metadata.json")
	mfs.RemoveFile("/project/core.schema.metadata.json.meta.json")

	result, err := b.Verify(context.Background(), "/project")
	require.NoError(t, err)
	assert.Equal(t, nomen.VerifyDrift, result.Status)
	assert.Equal(t, []string{"core.schema.metadata.json"}, result.Removed)
	assert.Empty(t, result.Added)
}

func TestVerify_ChangedContent(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	addPair(mfs, "core.parser.config.yaml", "key: value")

	b := newTestBuilder(mfs)
	writeBaseline(t, b)

	mfs.AddFile("/project/core.parser.config.yaml", "key: tampered")

	result, err := b.Verify(context.Background(), "/project")
	require.NoError(t, err)
	assert.Equal(t, nomen.VerifyDrift, result.Status)
	assert.Equal(t, []string{"core.parser.config.yaml"}, result.Changed)
}

func TestVerify_ChangedMetadata(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	addPair(mfs, "core.parser.config.yaml", "key: value")

	b := newTestBuilder(mfs)
	writeBaseline(t, b)

	// Same subject bytes, edited sidecar.
	mfs.AddFile("/project/core.parser.config.yaml.meta.json", `{
		"layer": "core",
		"role": "parser",
		"domain": "config",
		"description": "Rewritten description."
	}`)

	result, err := b.Verify(context.Background(), "/project")
	require.NoError(t, err)
	assert.Equal(t, nomen.VerifyDrift, result.Status)
	assert.Equal(t, []string{"core.parser.config.yaml"}, result.Changed)
}

func TestVerify_SidecarBecomesInvalid(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	addPair(mfs, "core.parser.config.yaml", "key: value")

	b := newTestBuilder(mfs)
	writeBaseline(t, b)

	// The entry drops out of the rebuild entirely, so it reads as
	// removed rather than changed.
	mfs.AddFile("/project/core.parser.config.yaml.meta.json", "{broken")

	result, err := b.Verify(context.Background(), "/project")
	require.NoError(t, err)
	assert.Equal(t, nomen.VerifyDrift, result.Status)
	assert.Equal(t, []string{"core.parser.config.yaml"}, result.Removed)
}

func TestVerify_MissingManifest(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	addPair(mfs, "core.parser.config.yaml", "key: value")

	_, err := newTestBuilder(mfs).Verify(context.Background(), "/project")
	require.Error(t, err)
	assert.ErrorIs(t, err, nomen.ErrManifestMissing)
}
