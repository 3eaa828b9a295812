package nomen

import "context"

// RegistryBuilder defines the interface for building, writing and
// verifying the content-addressed registry manifest of a tree.
type RegistryBuilder interface {
	// Build scans the tree, validates every sidecar and produces the
	// manifest plus the diagnostics for sidecars that were excluded.
	// A sidecar problem never aborts the build; only an unreadable tree
	// root returns an error (wrapping ErrFatalIO).
	Build(ctx context.Context, root string) (BuildResult, error)

	// Write atomically writes the canonical encoding of a manifest to
	// the manifest path under root.
	Write(root string, m Manifest) error

	// Verify rebuilds the manifest and compares it against the one
	// written under root. Drift is reported as data; a missing manifest
	// returns an error wrapping ErrManifestMissing.
	Verify(ctx context.Context, root string) (VerifyResult, error)
}

// RegistryEntry is one validated subject in the manifest.
type RegistryEntry struct {
	// ID is a deterministic UUID derived from the subject path, stable
	// across rebuilds and machines.
	ID string `json:"id"`

	// Subject and Sidecar are slash-relative paths from the tree root.
	Subject string `json:"subject"`
	Sidecar string `json:"sidecar"`

	// ContentHash is the lower-case hex SHA-256 of the subject bytes.
	ContentHash string `json:"content_hash"`

	// Profile the sidecar matched.
	Profile Profile `json:"profile"`

	// Metadata is the sidecar document as validated.
	Metadata map[string]any `json:"metadata"`
}

// RegistrySummary counts the sidecars a build saw by outcome.
type RegistrySummary struct {
	Valid     int `json:"valid"`
	Orphaned  int `json:"orphaned"`
	Malformed int `json:"malformed"`
	Invalid   int `json:"invalid"`
}

// Manifest is the registry document written at the tree root. It
// carries no wall-clock data so rebuilding an unchanged tree is
// byte-identical.
type Manifest struct {
	SchemaVersion string          `json:"schema_version"`
	HashAlgorithm string          `json:"hash_algorithm"`
	TreeDigest    string          `json:"tree_digest"`
	Entries       []RegistryEntry `json:"entries"`
	Summary       RegistrySummary `json:"summary"`
}

// Diagnostic records why a sidecar was excluded from the manifest.
type Diagnostic struct {
	Path   string  `json:"path"`
	Issues []Issue `json:"issues"`
}

// BuildResult is the complete outcome of one build pass.
type BuildResult struct {
	Manifest    Manifest     `json:"manifest"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Clean reports whether every scanned sidecar made it into the manifest.
func (r BuildResult) Clean() bool {
	return len(r.Diagnostics) == 0
}

// VerifyStatus is the outcome of comparing a rebuild against the
// written manifest.
type VerifyStatus string

const (
	VerifyMatch VerifyStatus = "match"
	VerifyDrift VerifyStatus = "drift"
)

// VerifyResult describes how the tree diverged from its manifest.
// Subject lists are sorted and slash-relative.
type VerifyResult struct {
	Status VerifyStatus `json:"status"`

	// Added: subjects present in the rebuild but not the manifest.
	// Removed: subjects in the manifest whose entry disappeared.
	// Changed: subjects whose content hash or metadata differ.
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
	Changed []string `json:"changed,omitempty"`
}

// Match reports whether the tree still corresponds to its manifest.
func (r VerifyResult) Match() bool {
	return r.Status == VerifyMatch
}
