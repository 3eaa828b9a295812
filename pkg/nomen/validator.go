package nomen

// NameValidator defines the interface for grammar validation of
// filenames. Implementations are pure functions of the taxonomy and
// must be safe for concurrent use by multiple goroutines.
type NameValidator interface {
	// Validate checks one filename (not a path) against the grammar and
	// returns all violations as data. It never performs I/O.
	Validate(filename string) NameResult

	// ValidateGlob validates the base name of every regular file
	// matched by a doublestar pattern, streaming one result per path
	// through fn in match order. A non-nil error from fn stops the walk
	// and is returned; the walk is restartable by calling again.
	ValidateGlob(pattern string, fn NameResultFunc) error
}

// NameResultFunc receives one batch validation result per matched path.
type NameResultFunc func(path string, result NameResult) error

// MetadataValidator defines the interface for sidecar schema
// validation. Implementations never consult the filesystem; pairing a
// sidecar with its subject is the scanner's concern.
type MetadataValidator interface {
	// Validate checks a decoded sidecar document: profile detection by
	// exact field-set match, then field kind checks scoped to the
	// detected profile.
	Validate(doc map[string]any) MetaResult

	// ValidateBytes decodes raw sidecar bytes and validates the result.
	// Malformed JSON becomes a single malformed_sidecar issue carrying
	// the line and column of the syntax error.
	ValidateBytes(data []byte) MetaResult
}
