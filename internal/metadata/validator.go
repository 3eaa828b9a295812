package metadata

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nomenworks/nomen/pkg/nomen"
)

// Validator checks sidecar documents against the profiles defined by a
// taxonomy. Safe for concurrent use by multiple goroutines.
type Validator struct {
	tax *nomen.Taxonomy
}

// NewValidator creates a Validator for the given taxonomy.
func NewValidator(tax *nomen.Taxonomy) *Validator {
	return &Validator{tax: tax}
}

// ValidateBytes decodes raw sidecar bytes and validates the document.
// Malformed bytes become a single malformed_sidecar issue with the
// position of the syntax error.
func (v *Validator) ValidateBytes(data []byte) nomen.MetaResult {
	doc, err := Parse(data)
	if err != nil {
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			parseErr = &ParseError{Line: 1, Column: 1, Msg: err.Error()}
		}
		return nomen.MetaResult{
			Issues: []nomen.Issue{{
				Kind:    nomen.IssueMalformedSidecar,
				Line:    parseErr.Line,
				Column:  parseErr.Column,
				Message: parseErr.Msg,
			}},
		}
	}
	return v.Validate(doc)
}

// Validate checks a decoded sidecar document. The returned result
// carries the document itself so callers can embed it after a clean
// pass.
func (v *Validator) Validate(doc map[string]any) nomen.MetaResult {
	result := nomen.MetaResult{Fields: doc}

	profile, ok := v.detectProfile(doc)
	if !ok {
		result.Issues = append(result.Issues, v.profileIssue(doc))
		return result
	}
	result.Profile = profile

	// Field checks run in the profile's configured order so reports are
	// stable run to run.
	for _, field := range v.tax.ProfileFields(profile) {
		result.Issues = append(result.Issues, v.checkField(field, doc[field])...)
	}

	return result
}

// detectProfile matches the document's exact field set against the
// profiles, light first.
func (v *Validator) detectProfile(doc map[string]any) (nomen.Profile, bool) {
	for _, p := range []nomen.Profile{nomen.ProfileLight, nomen.ProfileFull} {
		if fieldSetEquals(doc, v.tax.ProfileFields(p)) {
			return p, true
		}
	}
	return "", false
}

func fieldSetEquals(doc map[string]any, fields []string) bool {
	if len(doc) != len(fields) {
		return false
	}
	for _, f := range fields {
		if _, ok := doc[f]; !ok {
			return false
		}
	}
	return true
}

// profileIssue builds the single issue reported when a document matches
// neither profile, phrased against the nearest profile (fewest missing
// plus unexpected fields; ties prefer light).
func (v *Validator) profileIssue(doc map[string]any) nomen.Issue {
	lightMissing, lightExtra := fieldSetDiff(doc, v.tax.LightFields)
	fullMissing, fullExtra := fieldSetDiff(doc, v.tax.FullFields)

	nearest := nomen.ProfileLight
	missing, extra := lightMissing, lightExtra
	if len(fullMissing)+len(fullExtra) < len(lightMissing)+len(lightExtra) {
		nearest = nomen.ProfileFull
		missing, extra = fullMissing, fullExtra
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing %s", strings.Join(missing, ", ")))
	}
	if len(extra) > 0 {
		parts = append(parts, fmt.Sprintf("unexpected %s", strings.Join(extra, ", ")))
	}

	return nomen.Issue{
		Kind:     nomen.IssueProfile,
		Expected: string(nearest),
		Message: fmt.Sprintf("field set matches neither profile; relative to %s: %s",
			nearest, strings.Join(parts, "; ")),
	}
}

// fieldSetDiff returns the profile fields absent from the document and
// the document fields absent from the profile, both sorted.
func fieldSetDiff(doc map[string]any, fields []string) (missing, extra []string) {
	want := make(map[string]bool, len(fields))
	for _, f := range fields {
		want[f] = true
		if _, ok := doc[f]; !ok {
			missing = append(missing, f)
		}
	}
	for f := range doc {
		if !want[f] {
			extra = append(extra, f)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}

// checkField validates one field value against its configured kind.
func (v *Validator) checkField(field string, value any) []nomen.Issue {
	if value == nil {
		return []nomen.Issue{{
			Kind:    nomen.IssueType,
			Field:   field,
			Message: fmt.Sprintf("%s must not be null", field),
		}}
	}

	switch v.tax.KindOf(field) {
	case nomen.FieldKindLayer:
		return v.checkLayerField(field, value)
	case nomen.FieldKindDate:
		return v.checkDateField(field, value)
	case nomen.FieldKindStringList:
		return v.checkStringListField(field, value)
	default:
		return v.checkStringField(field, value)
	}
}

func (v *Validator) checkStringField(field string, value any) []nomen.Issue {
	s, ok := value.(string)
	if !ok {
		return []nomen.Issue{{
			Kind:    nomen.IssueType,
			Field:   field,
			Actual:  typeName(value),
			Message: fmt.Sprintf("%s must be a string", field),
		}}
	}
	if s == "" {
		return []nomen.Issue{{
			Kind:    nomen.IssueType,
			Field:   field,
			Message: fmt.Sprintf("%s must not be empty", field),
		}}
	}
	return nil
}

func (v *Validator) checkLayerField(field string, value any) []nomen.Issue {
	if issues := v.checkStringField(field, value); issues != nil {
		return issues
	}
	s := value.(string)
	if !v.tax.HasLayer(s) {
		return []nomen.Issue{{
			Kind:     nomen.IssueType,
			Field:    field,
			Expected: strings.Join(v.tax.LayerNames(), ", "),
			Actual:   s,
			Message:  fmt.Sprintf("%s %q is not in the layer vocabulary", field, s),
		}}
	}
	return nil
}

func (v *Validator) checkDateField(field string, value any) []nomen.Issue {
	if issues := v.checkStringField(field, value); issues != nil {
		return issues
	}
	s := value.(string)
	if _, err := time.Parse(nomen.DateLayout, s); err != nil {
		return []nomen.Issue{{
			Kind:     nomen.IssueType,
			Field:    field,
			Expected: "YYYY-MM-DD",
			Actual:   s,
			Message:  fmt.Sprintf("%s %q must be a real date in YYYY-MM-DD form", field, s),
		}}
	}
	return nil
}

func (v *Validator) checkStringListField(field string, value any) []nomen.Issue {
	list, ok := value.([]any)
	if !ok {
		return []nomen.Issue{{
			Kind:    nomen.IssueType,
			Field:   field,
			Actual:  typeName(value),
			Message: fmt.Sprintf("%s must be an array of strings", field),
		}}
	}

	var issues []nomen.Issue
	for i, elem := range list {
		s, ok := elem.(string)
		if !ok {
			issues = append(issues, nomen.Issue{
				Kind:    nomen.IssueType,
				Field:   field,
				Actual:  typeName(elem),
				Message: fmt.Sprintf("%s[%d] must be a string", field, i),
			})
			continue
		}
		if s == "" {
			issues = append(issues, nomen.Issue{
				Kind:    nomen.IssueType,
				Field:   field,
				Message: fmt.Sprintf("%s[%d] must not be empty", field, i),
			})
		}
	}
	return issues
}

// typeName renders a JSON value's type for error messages.
func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
