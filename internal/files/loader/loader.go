package loader

import (
	"fmt"

	"github.com/nomenworks/nomen/internal/files/filesystem"
	"github.com/nomenworks/nomen/internal/metadata"
	"github.com/nomenworks/nomen/pkg/nomen"
)

// SidecarRecord is the outcome of loading one sidecar from a scan.
type SidecarRecord struct {
	// Sidecar is the sidecar file itself.
	Sidecar nomen.ScannedFile

	// Subject is the paired subject file. Zero value when Orphan.
	Subject nomen.ScannedFile

	// Orphan is true when the subject file does not exist in the scan.
	Orphan bool

	// Result holds the validation outcome. Orphaned, unreadable and
	// malformed sidecars carry their issue here too, so Result.Issues
	// is the complete problem list for the record.
	Result nomen.MetaResult
}

// Valid reports whether the record can enter the registry.
func (r SidecarRecord) Valid() bool {
	return len(r.Result.Issues) == 0
}

// Loader reads and validates the sidecars a scan discovered.
// Safe for concurrent use by multiple goroutines as long as the provided
// fsProvider is also thread-safe.
type Loader struct {
	validator  nomen.MetadataValidator
	fsProvider filesystem.FileSystemProvider
}

// NewLoader creates a loader for the given taxonomy backed by the OS
// filesystem. Panics if tax is nil.
func NewLoader(tax *nomen.Taxonomy) *Loader {
	if tax == nil {
		panic("taxonomy cannot be nil")
	}
	return &Loader{
		validator:  metadata.NewValidator(tax),
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewLoaderWithFS creates a loader with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if tax or fsProvider is nil.
func NewLoaderWithFS(tax *nomen.Taxonomy, fsProvider filesystem.FileSystemProvider) *Loader {
	if tax == nil {
		panic("taxonomy cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Loader{
		validator:  metadata.NewValidator(tax),
		fsProvider: fsProvider,
	}
}

// LoadSidecars loads every sidecar in the scan, in scan order.
func (l *Loader) LoadSidecars(scan nomen.TreeScan) []SidecarRecord {
	var records []SidecarRecord
	for _, f := range scan.Sidecars() {
		records = append(records, l.load(scan, f))
	}
	return records
}

// load pairs, reads and validates a single sidecar. An orphaned sidecar
// is not read at all; its content cannot matter without a subject.
func (l *Loader) load(scan nomen.TreeScan, sidecar nomen.ScannedFile) SidecarRecord {
	record := SidecarRecord{Sidecar: sidecar}

	subject, ok := scan.Lookup(sidecar.SubjectRel)
	if !ok {
		record.Orphan = true
		record.Result.Issues = []nomen.Issue{{
			Kind:    nomen.IssueOrphanSidecar,
			Message: fmt.Sprintf("subject file %s does not exist", sidecar.SubjectRel),
		}}
		return record
	}
	record.Subject = subject

	data, err := l.fsProvider.ReadFile(sidecar.AbsPath)
	if err != nil {
		// An unreadable sidecar is a per-file problem, not a pass
		// failure.
		record.Result.Issues = []nomen.Issue{{
			Kind:    nomen.IssueMalformedSidecar,
			Message: fmt.Sprintf("reading sidecar: %v", err),
		}}
		return record
	}

	record.Result = l.validator.ValidateBytes(data)
	return record
}
