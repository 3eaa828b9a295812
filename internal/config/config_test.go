package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomenworks/nomen/pkg/nomen"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, nomen.DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_ParsesAllSections(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
layers:
  - name: kernel
    label: marrow
  - name: surface
extensions: [py, md]
sidecar_suffix: .about.json
manifest: kernel.registry.manifest.json
ignore:
  - "build/**"
profiles:
  light: [layer, role, domain, summary]
  full: [layer, role, domain, summary, author, created]
fields:
  summary: string
  created: date
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Len(t, cfg.Layers, 2)
	assert.Equal(t, "kernel", cfg.Layers[0].Name)
	assert.Equal(t, "marrow", cfg.Layers[0].Label)
	assert.Equal(t, []string{"py", "md"}, cfg.Extensions)
	assert.Equal(t, ".about.json", cfg.SidecarSuffix)
	assert.Equal(t, "kernel.registry.manifest.json", cfg.Manifest)
	assert.Equal(t, []string{"build/**"}, cfg.Ignore)
	assert.Equal(t, []string{"layer", "role", "domain", "summary"}, cfg.Profiles.Light)
	assert.Equal(t, "date", cfg.Fields["created"])
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "layers: [unclosed")

	_, err := Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, nomen.ErrInvalidConfig)
}

func TestTaxonomy_PartialConfigKeepsDefaults(t *testing.T) {
	cfg := &TaxonomyConfig{
		Extensions: []string{"py", "md"},
	}

	tax, err := cfg.Taxonomy()
	require.NoError(t, err)

	// Overridden section.
	assert.Equal(t, []string{"py", "md"}, tax.Extensions)

	// Untouched sections keep their defaults.
	assert.True(t, tax.HasLayer("core"))
	assert.Equal(t, nomen.DefaultSidecarSuffix, tax.SidecarSuffix)
	assert.Equal(t, nomen.DefaultManifestName, tax.ManifestName)
	assert.Equal(t, nomen.FieldKindDate, tax.KindOf("created"))
}

func TestTaxonomy_CustomFieldsLayerOverDefaults(t *testing.T) {
	cfg := &TaxonomyConfig{
		Profiles: ProfilesConfig{
			Light: []string{"layer", "role", "domain", "description"},
			Full: []string{
				"layer", "role", "domain", "description",
				"author", "created", "version", "schema_type", "tags",
				"reviewed_by",
			},
		},
		Fields: map[string]string{"reviewed_by": "string"},
	}

	tax, err := cfg.Taxonomy()
	require.NoError(t, err)

	assert.Equal(t, nomen.FieldKindString, tax.KindOf("reviewed_by"))
	assert.Equal(t, nomen.FieldKindDate, tax.KindOf("created"), "default assignments survive")
	assert.Contains(t, tax.FullFields, "reviewed_by")
}

func TestTaxonomy_InvalidMergeRejected(t *testing.T) {
	cfg := &TaxonomyConfig{
		Extensions: []string{"PY"},
	}

	_, err := cfg.Taxonomy()
	require.Error(t, err)
	assert.ErrorIs(t, err, nomen.ErrInvalidConfig)
}

func TestTaxonomy_UnknownFieldKindRejected(t *testing.T) {
	cfg := &TaxonomyConfig{
		Fields: map[string]string{"created": "timestamp"},
	}

	_, err := cfg.Taxonomy()
	require.Error(t, err)
	assert.ErrorIs(t, err, nomen.ErrInvalidConfig)
}

func TestResolve_DefaultsWhenNoFile(t *testing.T) {
	tax, err := Resolve(t.TempDir(), "")
	require.NoError(t, err)
	assert.True(t, tax.HasLayer("application"))
}

func TestResolve_TreeFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "extensions: [py]\n")

	tax, err := Resolve(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"py"}, tax.Extensions)
}

func TestResolve_ExplicitPathWins(t *testing.T) {
	treeDir := t.TempDir()
	writeConfig(t, treeDir, "extensions: [py]\n")

	otherDir := t.TempDir()
	explicit := filepath.Join(otherDir, "alt.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("extensions: [md]\n"), 0644))

	tax, err := Resolve(treeDir, explicit)
	require.NoError(t, err)
	assert.Equal(t, []string{"md"}, tax.Extensions)
}

func TestResolve_ExplicitPathMustExist(t *testing.T) {
	_, err := Resolve(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, nomen.ErrInvalidConfig)
}

func TestResolve_EnvOverride(t *testing.T) {
	treeDir := t.TempDir()
	writeConfig(t, treeDir, "extensions: [py]\n")

	envDir := t.TempDir()
	envPath := filepath.Join(envDir, "env.yaml")
	require.NoError(t, os.WriteFile(envPath, []byte("extensions: [go]\n"), 0644))
	t.Setenv(EnvConfigPath, envPath)

	tax, err := Resolve(treeDir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, tax.Extensions)
}
