package registry

import (
	"context"
	"reflect"
	"sort"

	"github.com/nomenworks/nomen/pkg/nomen"
)

// Verify rebuilds the manifest in memory and compares it against the
// one written under root. Drift is data, not an error; the caller maps
// it to an exit code. A missing manifest is an error because there is
// nothing to compare against.
func (b *Builder) Verify(ctx context.Context, root string) (nomen.VerifyResult, error) {
	written, err := b.ReadManifest(root)
	if err != nil {
		return nomen.VerifyResult{}, err
	}

	rebuilt, err := b.Build(ctx, root)
	if err != nil {
		return nomen.VerifyResult{}, err
	}

	result := diffManifests(written, rebuilt.Manifest)
	if result.Match() {
		b.logger.Verbose("manifest matches tree (%d entries)", len(written.Entries))
	} else {
		b.logger.Verbose("manifest drift: %d added, %d removed, %d changed",
			len(result.Added), len(result.Removed), len(result.Changed))
	}
	return result, nil
}

// diffManifests compares entry sets by subject path.
func diffManifests(written, rebuilt nomen.Manifest) nomen.VerifyResult {
	oldBySubject := make(map[string]nomen.RegistryEntry, len(written.Entries))
	for _, e := range written.Entries {
		oldBySubject[e.Subject] = e
	}

	var result nomen.VerifyResult
	seen := make(map[string]bool, len(rebuilt.Entries))

	for _, e := range rebuilt.Entries {
		seen[e.Subject] = true
		old, ok := oldBySubject[e.Subject]
		if !ok {
			result.Added = append(result.Added, e.Subject)
			continue
		}
		if entryChanged(old, e) {
			result.Changed = append(result.Changed, e.Subject)
		}
	}
	for _, e := range written.Entries {
		if !seen[e.Subject] {
			result.Removed = append(result.Removed, e.Subject)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Strings(result.Changed)

	result.Status = nomen.VerifyMatch
	if len(result.Added)+len(result.Removed)+len(result.Changed) > 0 {
		result.Status = nomen.VerifyDrift
	}
	return result
}

// entryChanged reports whether a subject's content or metadata drifted.
// Both sides of the metadata comparison went through encoding/json, so
// their value types line up.
func entryChanged(old, rebuilt nomen.RegistryEntry) bool {
	if old.ContentHash != rebuilt.ContentHash {
		return true
	}
	if old.Profile != rebuilt.Profile {
		return true
	}
	return !reflect.DeepEqual(old.Metadata, rebuilt.Metadata)
}
