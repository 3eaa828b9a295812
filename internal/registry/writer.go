package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/nomenworks/nomen/pkg/nomen"
)

// Encode renders the canonical manifest bytes: two-space indented JSON
// with a trailing newline. Every byte is a function of the manifest, so
// unchanged trees produce identical files.
func Encode(m nomen.Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// Write writes the canonical encoding of a manifest to the manifest
// path under root. The filesystem provider makes the replacement
// atomic on real disks.
func (b *Builder) Write(root string, m nomen.Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}

	path := filepath.Join(root, b.tax.ManifestName)
	if err := b.fsProvider.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %v: %w", path, err, nomen.ErrFatalIO)
	}
	b.logger.Info("wrote %s (%d entries)", path, len(m.Entries))
	return nil
}

// ReadManifest loads and decodes the manifest written under root.
func (b *Builder) ReadManifest(root string) (nomen.Manifest, error) {
	path := filepath.Join(root, b.tax.ManifestName)

	data, err := b.fsProvider.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nomen.Manifest{}, fmt.Errorf("%s: %w", path, nomen.ErrManifestMissing)
		}
		return nomen.Manifest{}, fmt.Errorf("reading manifest %s: %v: %w", path, err, nomen.ErrFatalIO)
	}

	var m nomen.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nomen.Manifest{}, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	return m, nil
}
