package nomen

import (
	"errors"
	"strings"
)

// Sentinel errors for environmental failures.
// Grammar and schema violations are never Go errors; they travel as
// Issue values inside results. Only conditions that prevent a pass from
// producing a result at all surface here, so callers can distinguish
// them with errors.Is().
//
// Example usage:
//
//	report, err := checker.Check(root, opts)
//	if errors.Is(err, nomen.ErrFatalIO) {
//	    // Tree root missing or unreadable; no report was produced.
//	}
var (
	// ErrInvalidConfig indicates the taxonomy configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFatalIO indicates the tree root could not be read.
	ErrFatalIO = errors.New("tree not accessible")

	// ErrViolationsFound is returned by CLI gates when a pass completed
	// but produced findings. The report itself carries the detail.
	ErrViolationsFound = errors.New("violations found")

	// ErrManifestMissing indicates verify ran against a tree that has no
	// written manifest.
	ErrManifestMissing = errors.New("manifest not found")
)

// usageErrorPatterns match the argument and flag errors produced by the
// CLI layer (cobra and the Require* validators).
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"invalid argument",
	"required flag",
	"missing required argument",
	"arg(s), received",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrViolationsFound):
		return ExitViolations
	case errors.Is(err, ErrManifestMissing):
		return ExitViolations
	case errors.Is(err, ErrFatalIO):
		return ExitFatalIO
	}

	// Check for CLI usage error patterns
	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
