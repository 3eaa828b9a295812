package nomen

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Check/build/verify completed with no findings
	ExitGeneralError = 1  // Unknown or unclassified error
	ExitUsageError   = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Invalid taxonomy configuration
	ExitViolations   = 20 // Grammar/schema violations or manifest drift found
	ExitFatalIO      = 21 // Tree root missing or unreadable
)

const (
	// DefaultConfigFileName is the taxonomy configuration file looked up at
	// the tree root. The name itself conforms to the grammar it configures.
	DefaultConfigFileName = "core.config.taxonomy.yaml"

	// DefaultSidecarSuffix pairs a metadata document with its subject:
	// the sidecar for foo.bar.baz.py is foo.bar.baz.py.meta.json.
	DefaultSidecarSuffix = ".meta.json"

	// DefaultManifestName is the registry manifest written at the tree root.
	// It is excluded from scans so a build never manifests itself.
	DefaultManifestName = "core.registry.manifest.json"

	// ManifestSchemaVersion is stamped into every manifest.
	ManifestSchemaVersion = "1"

	// HashAlgorithmSHA256 is the only supported content hash algorithm.
	HashAlgorithmSHA256 = "sha256"

	// DateLayout is the required form of date-kind metadata fields.
	DateLayout = "2006-01-02"

	// DefaultWatchDebounce is how long the watcher coalesces filesystem
	// events before re-running a pass.
	DefaultWatchDebounce = 500 * time.Millisecond

	// MaxHashWorkers caps the registry builder's hashing pool.
	MaxHashWorkers = 8
)
