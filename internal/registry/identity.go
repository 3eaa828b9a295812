package registry

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceRegistryEntry is the fixed UUID namespace for deriving entry
// identities from subject paths. It is itself a UUID v5 of the
// canonical string "nomenworks.dev/registry-entry/v1" under the
// standard URL namespace, so anyone can reproduce both the namespace
// and every entry ID independently.
var NamespaceRegistryEntry = uuid.NewSHA1(uuid.NameSpaceURL, []byte("nomenworks.dev/registry-entry/v1"))

// EntryID derives the deterministic UUID v5 for a subject path. The
// same relative path always yields the same ID across rebuilds and
// machines, which keeps manifest diffs minimal when unrelated files
// change.
//
// The path keeps its case. The grammar is case-sensitive, so two
// subjects differing only in case are distinct resources.
func EntryID(subjectRel string) uuid.UUID {
	normalized := strings.TrimPrefix(subjectRel, "./")
	return uuid.NewSHA1(NamespaceRegistryEntry, []byte(normalized))
}
