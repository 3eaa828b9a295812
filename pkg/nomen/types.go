package nomen

import (
	"fmt"
	"regexp"
)

// Segment identifies one of the four logical segments of a parsed name.
type Segment string

const (
	SegmentLayer     Segment = "layer"
	SegmentRole      Segment = "role"
	SegmentDomain    Segment = "domain"
	SegmentExtension Segment = "extension"
)

// IssueKind classifies a single violation. Violations are data carried
// inside results, never Go errors; a pass that finds a thousand of them
// still completes normally.
type IssueKind string

const (
	// IssueStructural: the filename does not decompose into exactly four
	// logical segments (too few tokens, empty segment, wrong leading count).
	IssueStructural IssueKind = "structural"

	// IssueLexical: a role or domain segment violates the identifier rule.
	IssueLexical IssueKind = "lexical"

	// IssueVocabulary: a layer or extension is not in the configured set.
	IssueVocabulary IssueKind = "vocabulary"

	// IssueProfile: a sidecar's field set matches neither profile exactly.
	IssueProfile IssueKind = "profile"

	// IssueType: a sidecar field has the wrong kind of value.
	IssueType IssueKind = "type"

	// IssueOrphanSidecar: a sidecar whose subject file does not exist.
	IssueOrphanSidecar IssueKind = "orphan_sidecar"

	// IssueMalformedSidecar: a sidecar that is not a valid JSON object.
	IssueMalformedSidecar IssueKind = "malformed_sidecar"
)

// Issue is a single violation found by a validator or builder.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Segment  Segment   `json:"segment,omitempty"`
	Field    string    `json:"field,omitempty"`
	Expected string    `json:"expected,omitempty"`
	Actual   string    `json:"actual,omitempty"`
	Line     int       `json:"line,omitempty"`
	Column   int       `json:"column,omitempty"`
	Message  string    `json:"message"`
}

// String renders the issue for human-readable reports.
func (i Issue) String() string {
	switch {
	case i.Segment != "":
		return fmt.Sprintf("[%s] %s: %s", i.Kind, i.Segment, i.Message)
	case i.Field != "":
		return fmt.Sprintf("[%s] %s: %s", i.Kind, i.Field, i.Message)
	case i.Line > 0:
		return fmt.Sprintf("[%s] line %d, column %d: %s", i.Kind, i.Line, i.Column, i.Message)
	default:
		return fmt.Sprintf("[%s] %s", i.Kind, i.Message)
	}
}

// NameResult is the outcome of validating one filename against the
// grammar. Segment fields are populated only when the name decomposed
// structurally; a structural failure leaves them empty because segment
// assignment is unreliable.
type NameResult struct {
	Input     string  `json:"input"`
	Layer     string  `json:"layer,omitempty"`
	Role      string  `json:"role,omitempty"`
	Domain    string  `json:"domain,omitempty"`
	Extension string  `json:"extension,omitempty"`
	Issues    []Issue `json:"issues,omitempty"`
}

// Valid reports whether the name conforms to the grammar.
func (r NameResult) Valid() bool {
	return len(r.Issues) == 0
}

// Profile names one of the two sidecar field sets.
type Profile string

const (
	ProfileLight Profile = "light"
	ProfileFull  Profile = "full"
)

// MetaResult is the outcome of validating one sidecar document.
// Profile is empty when the field set matched neither profile, in which
// case Issues holds exactly one profile issue and no field checks ran.
type MetaResult struct {
	Profile Profile        `json:"profile,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
	Issues  []Issue        `json:"issues,omitempty"`
}

// Valid reports whether the sidecar conforms to its detected profile.
func (r MetaResult) Valid() bool {
	return len(r.Issues) == 0
}

// identRE is the lexical rule shared by role and domain segments and by
// layer vocabulary entries: alphanumeric with interior underscores or
// hyphens, no leading or trailing separator.
var identRE = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9_-]*[A-Za-z0-9])?$`)

// IsLexicalIdent reports whether s satisfies the segment identifier rule.
func IsLexicalIdent(s string) bool {
	return identRE.MatchString(s)
}
