package nomen

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Layer is one entry of the layer vocabulary. The label is a symbolic
// alias shown in documentation and reports; validation only ever
// consults the name.
type Layer struct {
	Name  string
	Label string
}

// FieldKind is the typing vocabulary for sidecar metadata fields.
type FieldKind string

const (
	// FieldKindLayer: a string drawn from the layer vocabulary.
	FieldKindLayer FieldKind = "layer"

	// FieldKindString: a non-empty JSON string.
	FieldKindString FieldKind = "string"

	// FieldKindDate: a string in YYYY-MM-DD form naming a real date.
	FieldKindDate FieldKind = "date"

	// FieldKindStringList: a JSON array of non-empty strings.
	FieldKindStringList FieldKind = "string_list"
)

// Taxonomy is the complete configured vocabulary a pass validates
// against: layers, the extension allow-list, sidecar pairing, profile
// field sets and their kinds. The zero value is not usable; start from
// DefaultTaxonomy or the config loader.
type Taxonomy struct {
	// Layers is the layer vocabulary in declaration order.
	Layers []Layer

	// Extensions is the allow-list of recognized extensions, all lower
	// case. Entries may be dot-delimited compounds such as "tar.gz".
	Extensions []string

	// SidecarSuffix appended to a subject filename names its sidecar.
	SidecarSuffix string

	// ManifestName is the registry manifest filename at the tree root.
	ManifestName string

	// Ignore holds doublestar glob patterns matched against
	// slash-relative paths; matching files and directories are skipped
	// by tree passes.
	Ignore []string

	// LightFields and FullFields are the exact field sets of the two
	// profiles. Light must be a strict subset of full.
	LightFields []string
	FullFields  []string

	// FieldKinds assigns kinds to fields. Fields without an assignment
	// default to FieldKindString.
	FieldKinds map[string]FieldKind
}

// DefaultTaxonomy returns the compiled-in vocabulary used when a tree
// carries no configuration file.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		Layers: []Layer{
			{Name: "core", Label: "bones"},
			{Name: "interface", Label: "skins"},
			{Name: "logic", Label: "breath"},
			{Name: "application", Label: "body"},
		},
		Extensions: []string{
			"c", "csv", "go", "h", "js", "json", "md", "meta.json",
			"py", "rs", "sh", "sql", "tar.gz", "toml", "ts", "txt",
			"yaml", "yml",
		},
		SidecarSuffix: DefaultSidecarSuffix,
		ManifestName:  DefaultManifestName,
		Ignore: []string{
			".git/**",
			"node_modules/**",
			"vendor/**",
		},
		LightFields: []string{"layer", "role", "domain", "description"},
		FullFields: []string{
			"layer", "role", "domain", "description",
			"author", "created", "version", "schema_type", "tags",
		},
		FieldKinds: map[string]FieldKind{
			"layer":   FieldKindLayer,
			"created": FieldKindDate,
			"tags":    FieldKindStringList,
		},
	}
}

// extTokenRE constrains each dot-delimited token of an extension entry.
var extTokenRE = regexp.MustCompile(`^[a-z0-9]+$`)

// Validate checks the taxonomy for internal consistency.
// It returns a multi-error if multiple validation failures occur.
func (t *Taxonomy) Validate() error {
	var errs []error

	if len(t.Layers) == 0 {
		errs = append(errs, fmt.Errorf("at least one layer is required: %w", ErrInvalidConfig))
	}
	seenLayers := make(map[string]bool, len(t.Layers))
	for _, l := range t.Layers {
		switch {
		case l.Name == "":
			errs = append(errs, fmt.Errorf("layer name cannot be empty: %w", ErrInvalidConfig))
		case !IsLexicalIdent(l.Name):
			errs = append(errs, fmt.Errorf("layer name %q is not a valid identifier: %w", l.Name, ErrInvalidConfig))
		case seenLayers[l.Name]:
			errs = append(errs, fmt.Errorf("duplicate layer %q: %w", l.Name, ErrInvalidConfig))
		}
		seenLayers[l.Name] = true
	}

	if len(t.Extensions) == 0 {
		errs = append(errs, fmt.Errorf("at least one extension is required: %w", ErrInvalidConfig))
	}
	seenExts := make(map[string]bool, len(t.Extensions))
	for _, e := range t.Extensions {
		if !validExtensionEntry(e) {
			errs = append(errs, fmt.Errorf("extension %q must be lower-case dot-delimited tokens: %w", e, ErrInvalidConfig))
		} else if seenExts[e] {
			errs = append(errs, fmt.Errorf("duplicate extension %q: %w", e, ErrInvalidConfig))
		}
		seenExts[e] = true
	}

	if !strings.HasPrefix(t.SidecarSuffix, ".") || len(t.SidecarSuffix) < 2 {
		errs = append(errs, fmt.Errorf("sidecar suffix %q must start with a dot: %w", t.SidecarSuffix, ErrInvalidConfig))
	}
	if t.ManifestName == "" {
		errs = append(errs, fmt.Errorf("manifest name is required: %w", ErrInvalidConfig))
	}

	errs = append(errs, t.validateProfiles()...)

	for field, kind := range t.FieldKinds {
		if field == "" {
			errs = append(errs, fmt.Errorf("field kind assignment with empty field name: %w", ErrInvalidConfig))
		}
		switch kind {
		case FieldKindLayer, FieldKindString, FieldKindDate, FieldKindStringList:
		default:
			errs = append(errs, fmt.Errorf("unknown field kind %q for field %q: %w", kind, field, ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

func (t *Taxonomy) validateProfiles() []error {
	var errs []error

	light := make(map[string]bool, len(t.LightFields))
	for _, f := range t.LightFields {
		if light[f] {
			errs = append(errs, fmt.Errorf("duplicate field %q in light profile: %w", f, ErrInvalidConfig))
		}
		light[f] = true
	}
	full := make(map[string]bool, len(t.FullFields))
	for _, f := range t.FullFields {
		if full[f] {
			errs = append(errs, fmt.Errorf("duplicate field %q in full profile: %w", f, ErrInvalidConfig))
		}
		full[f] = true
	}

	// Both profiles must carry the identity fields that tie a sidecar
	// back to the grammar.
	for _, id := range []string{"layer", "role", "domain"} {
		if !light[id] {
			errs = append(errs, fmt.Errorf("light profile must include %q: %w", id, ErrInvalidConfig))
		}
		if !full[id] {
			errs = append(errs, fmt.Errorf("full profile must include %q: %w", id, ErrInvalidConfig))
		}
	}

	// Profile detection relies on light being a strict subset of full.
	for _, f := range t.LightFields {
		if !full[f] {
			errs = append(errs, fmt.Errorf("light field %q missing from full profile: %w", f, ErrInvalidConfig))
		}
	}
	if len(t.FullFields) <= len(t.LightFields) {
		errs = append(errs, fmt.Errorf("full profile must extend the light profile: %w", ErrInvalidConfig))
	}

	return errs
}

func validExtensionEntry(e string) bool {
	if e == "" {
		return false
	}
	for _, tok := range strings.Split(e, ".") {
		if !extTokenRE.MatchString(tok) {
			return false
		}
	}
	return true
}

// HasLayer reports whether name is in the layer vocabulary.
func (t *Taxonomy) HasLayer(name string) bool {
	for _, l := range t.Layers {
		if l.Name == name {
			return true
		}
	}
	return false
}

// LayerNames returns the layer vocabulary in declaration order.
func (t *Taxonomy) LayerNames() []string {
	names := make([]string, len(t.Layers))
	for i, l := range t.Layers {
		names[i] = l.Name
	}
	return names
}

// HasExtension reports whether ext is in the allow-list.
// Matching is case-sensitive; the allow-list is lower case.
func (t *Taxonomy) HasExtension(ext string) bool {
	for _, e := range t.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// MaxExtensionTokens returns the token count of the longest compound
// extension in the allow-list. Extension resolution never looks at a
// longer trailing run than this.
func (t *Taxonomy) MaxExtensionTokens() int {
	max := 1
	for _, e := range t.Extensions {
		if n := strings.Count(e, ".") + 1; n > max {
			max = n
		}
	}
	return max
}

// ProfileFields returns the exact field set of the given profile.
func (t *Taxonomy) ProfileFields(p Profile) []string {
	if p == ProfileFull {
		return t.FullFields
	}
	return t.LightFields
}

// KindOf returns the kind assigned to a field, defaulting to
// FieldKindString.
func (t *Taxonomy) KindOf(field string) FieldKind {
	if k, ok := t.FieldKinds[field]; ok {
		return k
	}
	return FieldKindString
}
