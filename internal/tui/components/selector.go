package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nomenworks/nomen/internal/tui"
)

// Option represents a selectable option in the selector.
type Option struct {
	Label       string
	Description string
	Value       string
}

// Selector is a vertical pick list meant to be embedded in a larger
// model. Update never quits the program; it records the outcome so the
// parent can read Submitted or Cancelled and decide what happens next.
type Selector struct {
	title    string
	options  []Option
	cursor   int
	selected int
	keys     tui.KeyMap

	submitted bool
	cancelled bool
}

// NewSelector creates a selector over the given options.
func NewSelector(title string, options []Option) Selector {
	return Selector{
		title:    title,
		options:  options,
		selected: -1,
		keys:     tui.DefaultKeyMap(),
	}
}

// Update handles one message. The returned command is always nil; the
// signature matches the other components so parents can treat them
// uniformly.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(keyMsg, s.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(keyMsg, s.keys.Down):
		if s.cursor < len(s.options)-1 {
			s.cursor++
		}
	case key.Matches(keyMsg, s.keys.Select):
		s.selected = s.cursor
		s.submitted = true
	case key.Matches(keyMsg, s.keys.Back), key.Matches(keyMsg, s.keys.Quit):
		s.cancelled = true
	}
	return s, nil
}

// View implements the rendering half of tea.Model.
func (s Selector) View() string {
	var b strings.Builder

	if s.title != "" {
		b.WriteString(tui.SubtitleStyle.Render(s.title))
		b.WriteString("\n\n")
	}

	for _, line := range s.optionLines() {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(tui.HelpStyle.Render("\n" + s.keys.HelpText()))
	return b.String()
}

// optionLines renders each option with its cursor state.
func (s Selector) optionLines() []string {
	lines := make([]string, 0, len(s.options)*2)
	for i, opt := range s.options {
		style := tui.UnselectedStyle
		symbol := tui.SymbolUnselected
		if i == s.cursor {
			style = tui.SelectedStyle
			symbol = tui.SymbolSelected
		}

		lines = append(lines, style.Render(symbol+" "+opt.Label))
		if opt.Description != "" {
			lines = append(lines, tui.DescriptionStyle.Render(opt.Description))
		}
	}
	return lines
}

// Reset clears the outcome flags so the selector can be shown again,
// keeping the cursor where the user left it.
func (s *Selector) Reset() {
	s.submitted = false
	s.cancelled = false
	s.selected = -1
}

// Selected returns the selected option index, or -1 if none selected.
func (s Selector) Selected() int {
	return s.selected
}

// SelectedOption returns the selected option, or nil if none selected.
func (s Selector) SelectedOption() *Option {
	if s.selected >= 0 && s.selected < len(s.options) {
		return &s.options[s.selected]
	}
	return nil
}

// Cancelled returns true if the user backed out of the selection.
func (s Selector) Cancelled() bool {
	return s.cancelled
}

// Submitted returns true if the user made a selection.
func (s Selector) Submitted() bool {
	return s.submitted
}

// Value returns the value of the selected option.
func (s Selector) Value() string {
	if opt := s.SelectedOption(); opt != nil {
		return opt.Value
	}
	return ""
}
