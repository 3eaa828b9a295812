package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testOptions() []Option {
	return []Option{
		{Label: "Basic", Description: "A minimal starting point", Value: "basic"},
		{Label: "Guided", Description: "Worked examples included", Value: "guided"},
		{Label: "Empty", Value: "empty"},
	}
}

func TestSelector_CursorMovement(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	if s.cursor != 1 {
		t.Errorf("expected cursor 1 after down, got %d", s.cursor)
	}

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	if s.cursor != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", s.cursor)
	}

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyUp})
	if s.cursor != 1 {
		t.Errorf("expected cursor 1 after up, got %d", s.cursor)
	}
}

func TestSelector_CursorDoesNotGoNegative(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyUp})
	if s.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", s.cursor)
	}
}

func TestSelector_Submit(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !s.Submitted() {
		t.Fatal("expected selector to be submitted after enter")
	}
	if s.Selected() != 1 {
		t.Errorf("expected selected index 1, got %d", s.Selected())
	}
	if s.Value() != "guided" {
		t.Errorf("expected value 'guided', got %q", s.Value())
	}
	opt := s.SelectedOption()
	if opt == nil || opt.Label != "Guided" {
		t.Errorf("expected selected option 'Guided', got %+v", opt)
	}
}

func TestSelector_EscCancels(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if !s.Cancelled() {
		t.Error("expected selector to be cancelled after esc")
	}
	if s.Submitted() {
		t.Error("expected selector not to be submitted after esc")
	}
}

func TestSelector_CtrlCCancels(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	if !s.Cancelled() {
		t.Error("expected selector to be cancelled after ctrl+c")
	}
}

func TestSelector_NoSelectionBeforeSubmit(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	if s.Selected() != -1 {
		t.Errorf("expected selected -1 before submit, got %d", s.Selected())
	}
	if s.SelectedOption() != nil {
		t.Error("expected nil selected option before submit")
	}
	if s.Value() != "" {
		t.Errorf("expected empty value before submit, got %q", s.Value())
	}
}

func TestSelector_Reset(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s.Reset()

	if s.Submitted() || s.Cancelled() {
		t.Error("expected flags cleared after reset")
	}
	if s.Selected() != -1 {
		t.Errorf("expected selection cleared after reset, got %d", s.Selected())
	}
	if s.cursor != 1 {
		t.Errorf("expected cursor preserved across reset, got %d", s.cursor)
	}
}

func TestSelector_ViewShowsOptionsAndHelp(t *testing.T) {
	s := NewSelector("Pick a template", testOptions())

	view := s.View()

	if !strings.Contains(view, "Pick a template") {
		t.Error("expected view to contain the title")
	}
	for _, want := range []string{"Basic", "Guided", "A minimal starting point"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if !strings.Contains(view, "enter select") {
		t.Error("expected view to contain help text")
	}
}

func TestSelector_IgnoresNonKeyMessages(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	s, cmd := s.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if cmd != nil {
		t.Error("expected nil command for non-key message")
	}
	if s.Submitted() || s.Cancelled() || s.cursor != 0 {
		t.Error("expected non-key message to leave state untouched")
	}
}
