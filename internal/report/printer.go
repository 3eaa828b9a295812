package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/nomenworks/nomen/pkg/nomen"
)

// Format selects the output rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("invalid argument %q for format: must be text or json", s)
	}
}

// PathResult pairs a path with its grammar verdict for batch output.
type PathResult struct {
	Path   string           `json:"path"`
	Result nomen.NameResult `json:"result"`
}

// Printer renders results to a writer. Not safe for concurrent use;
// each pass owns its printer.
type Printer struct {
	out    io.Writer
	format Format
	color  bool
}

// NewPrinter creates a printer. When color is false, styled renderings
// degrade to plain text; JSON output never carries styling.
func NewPrinter(out io.Writer, format Format, color bool) *Printer {
	return &Printer{out: out, format: format, color: color}
}

// NameResults renders one verdict per validated path.
func (p *Printer) NameResults(results []PathResult) error {
	if p.format == FormatJSON {
		return p.encodeJSON(results)
	}

	for _, r := range results {
		if r.Result.Valid() {
			p.line("%s %s %s",
				p.render(successStyle, symbolCheck),
				p.render(pathStyle, r.Path),
				p.render(mutedStyle, describeSegments(r.Result)))
			continue
		}
		p.line("%s %s", p.render(errorStyle, symbolCross), p.render(pathStyle, r.Path))
		p.issues(r.Result.Issues)
	}
	return nil
}

// CheckReport renders a full tree check.
func (p *Printer) CheckReport(r nomen.CheckReport) error {
	if p.format == FormatJSON {
		return p.encodeJSON(r)
	}

	for _, f := range r.Findings {
		p.line("%s %s %s",
			p.render(errorStyle, symbolCross),
			p.render(pathStyle, f.Path),
			p.render(mutedStyle, "("+string(f.Source)+")"))
		p.issues(f.Issues)
	}

	checked := fmt.Sprintf("%d %s, %d %s checked",
		r.FilesChecked, plural(r.FilesChecked, "file"),
		r.SidecarsChecked, plural(r.SidecarsChecked, "sidecar"))

	if r.Clean() {
		p.line("%s %s: all names and sidecars conform",
			p.render(successStyle, symbolCheck), checked)
		return nil
	}
	p.line("%s %s: %d %s in %d %s",
		p.render(errorStyle, symbolCross), checked,
		r.ViolationCount(), plural(r.ViolationCount(), "violation"),
		len(r.Findings), plural(len(r.Findings), "file"))
	return nil
}

// BuildResult renders a registry build outcome.
func (p *Printer) BuildResult(r nomen.BuildResult) error {
	if p.format == FormatJSON {
		return p.encodeJSON(r)
	}

	for _, d := range r.Diagnostics {
		p.line("%s %s", p.render(warningStyle, symbolCross), p.render(pathStyle, d.Path))
		p.issues(d.Issues)
	}

	s := r.Manifest.Summary
	p.line("%s manifest: %d %s (%s)",
		p.render(successStyle, symbolCheck),
		len(r.Manifest.Entries), plural(len(r.Manifest.Entries), "entry"),
		r.Manifest.HashAlgorithm)
	p.line("  valid %d, orphaned %d, malformed %d, invalid %d",
		s.Valid, s.Orphaned, s.Malformed, s.Invalid)
	return nil
}

// VerifyResult renders a drift comparison.
func (p *Printer) VerifyResult(r nomen.VerifyResult) error {
	if p.format == FormatJSON {
		return p.encodeJSON(r)
	}

	if r.Match() {
		p.line("%s manifest matches tree", p.render(successStyle, symbolCheck))
		return nil
	}

	p.line("%s manifest drift", p.render(errorStyle, symbolCross))
	p.driftList("added", r.Added)
	p.driftList("removed", r.Removed)
	p.driftList("changed", r.Changed)
	return nil
}

func (p *Printer) driftList(label string, subjects []string) {
	for _, s := range subjects {
		p.line("  %s %s: %s", p.render(mutedStyle, symbolBullet), label, s)
	}
}

func (p *Printer) issues(issues []nomen.Issue) {
	for _, issue := range issues {
		p.line("  %s %s", p.render(mutedStyle, symbolBullet), issue.String())
	}
}

func (p *Printer) line(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// render applies a style only when color output is enabled.
func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

func (p *Printer) encodeJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describeSegments summarizes a valid decomposition for text output.
func describeSegments(r nomen.NameResult) string {
	return fmt.Sprintf("(layer=%s role=%s domain=%s extension=%s)",
		r.Layer, r.Role, r.Domain, r.Extension)
}

// plural is just enough inflection for report footers.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	if word == "entry" {
		return "entries"
	}
	return word + "s"
}
