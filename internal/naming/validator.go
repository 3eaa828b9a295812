package naming

import (
	"fmt"
	"strings"

	"github.com/nomenworks/nomen/pkg/nomen"
)

// Validator checks filenames against the grammar defined by a taxonomy.
// Safe for concurrent use by multiple goroutines.
type Validator struct {
	tax *nomen.Taxonomy
}

// NewValidator creates a Validator for the given taxonomy.
func NewValidator(tax *nomen.Taxonomy) *Validator {
	return &Validator{tax: tax}
}

// Validate checks one filename against the grammar and returns all
// violations as data. The filename is the base name only; callers strip
// directories first.
func (v *Validator) Validate(filename string) nomen.NameResult {
	result := nomen.NameResult{Input: filename}

	tokens := strings.Split(filename, ".")

	for _, tok := range tokens {
		if tok == "" {
			result.Issues = append(result.Issues, nomen.Issue{
				Kind:    nomen.IssueStructural,
				Actual:  filename,
				Message: "name contains an empty segment (leading, trailing or consecutive dots)",
			})
			return result
		}
	}

	if len(tokens) < 4 {
		result.Issues = append(result.Issues, nomen.Issue{
			Kind:    nomen.IssueStructural,
			Actual:  filename,
			Message: fmt.Sprintf("name must have four dot-separated segments, got %d", len(tokens)),
		})
		return result
	}

	extension, leading := v.resolveExtension(tokens)
	if len(leading) != 3 {
		result.Issues = append(result.Issues, nomen.Issue{
			Kind:   nomen.IssueStructural,
			Actual: filename,
			Message: fmt.Sprintf(
				"name must have exactly three segments before the extension %q, got %d",
				extension, len(leading)),
		})
		return result
	}

	result.Layer = leading[0]
	result.Role = leading[1]
	result.Domain = leading[2]
	result.Extension = extension

	// Segment checks run in name order so reports read left to right.
	if !v.tax.HasLayer(result.Layer) {
		result.Issues = append(result.Issues, nomen.Issue{
			Kind:     nomen.IssueVocabulary,
			Segment:  nomen.SegmentLayer,
			Expected: strings.Join(v.tax.LayerNames(), ", "),
			Actual:   result.Layer,
			Message:  fmt.Sprintf("layer %q is not in the vocabulary", result.Layer),
		})
	}
	if !nomen.IsLexicalIdent(result.Role) {
		result.Issues = append(result.Issues, nomen.Issue{
			Kind:    nomen.IssueLexical,
			Segment: nomen.SegmentRole,
			Actual:  result.Role,
			Message: fmt.Sprintf("role %q must be alphanumeric with interior '_' or '-'", result.Role),
		})
	}
	if !nomen.IsLexicalIdent(result.Domain) {
		result.Issues = append(result.Issues, nomen.Issue{
			Kind:    nomen.IssueLexical,
			Segment: nomen.SegmentDomain,
			Actual:  result.Domain,
			Message: fmt.Sprintf("domain %q must be alphanumeric with interior '_' or '-'", result.Domain),
		})
	}
	if !v.tax.HasExtension(result.Extension) {
		result.Issues = append(result.Issues, nomen.Issue{
			Kind:    nomen.IssueVocabulary,
			Segment: nomen.SegmentExtension,
			Actual:  result.Extension,
			Message: fmt.Sprintf("extension %q is not recognized", result.Extension),
		})
	}

	return result
}

// resolveExtension finds the longest trailing token run present in the
// allow-list. When no run matches, the final token stands in as the
// extension so segment counting still works; the vocabulary check will
// flag it.
func (v *Validator) resolveExtension(tokens []string) (string, []string) {
	maxRun := v.tax.MaxExtensionTokens()
	if m := len(tokens) - 1; maxRun > m {
		maxRun = m
	}

	for n := maxRun; n >= 1; n-- {
		candidate := strings.Join(tokens[len(tokens)-n:], ".")
		if v.tax.HasExtension(candidate) {
			return candidate, tokens[:len(tokens)-n]
		}
	}

	return tokens[len(tokens)-1], tokens[:len(tokens)-1]
}
