package nomen

import "context"

// TreeChecker defines the interface for the batch gate: one scan, all
// names and sidecars validated, everything aggregated into one report.
type TreeChecker interface {
	// Check validates the tree under root. Findings never abort the
	// pass; only an unreadable root returns an error (wrapping
	// ErrFatalIO).
	Check(ctx context.Context, root string, opts CheckOptions) (CheckReport, error)
}

// CheckOptions narrows what a check pass examines.
type CheckOptions struct {
	// NamesOnly skips sidecar schema validation.
	NamesOnly bool

	// MetaOnly skips filename grammar validation.
	MetaOnly bool

	// Pattern, when set, restricts the pass to files whose relative
	// path matches this doublestar glob.
	Pattern string
}

// FindingSource says which validator produced a finding.
type FindingSource string

const (
	SourceName    FindingSource = "name"
	SourceSidecar FindingSource = "sidecar"
)

// CheckFinding is one invalid file in a check report.
type CheckFinding struct {
	Path   string        `json:"path"`
	Source FindingSource `json:"source"`
	Issues []Issue       `json:"issues"`
}

// CheckReport aggregates one check pass.
type CheckReport struct {
	Root            string         `json:"root"`
	FilesChecked    int            `json:"files_checked"`
	SidecarsChecked int            `json:"sidecars_checked"`
	Findings        []CheckFinding `json:"findings,omitempty"`
}

// Clean reports whether the pass found no violations.
func (r CheckReport) Clean() bool {
	return len(r.Findings) == 0
}

// ViolationCount totals the issues across all findings.
func (r CheckReport) ViolationCount() int {
	n := 0
	for _, f := range r.Findings {
		n += len(f.Issues)
	}
	return n
}
