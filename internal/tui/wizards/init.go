package wizards

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nomenworks/nomen/internal/tui"
	"github.com/nomenworks/nomen/internal/tui/components"
)

// TemplateChoice holds template metadata for the picker.
type TemplateChoice struct {
	Name        string
	Description string
}

// InitResult holds the result of the init wizard.
type InitResult struct {
	Cancelled   bool
	Template    string
	ProjectName string
}

// InitWizard walks the user through template choice, project name, and
// a final confirmation before anything is written to disk.
type InitWizard struct {
	step initStep

	templates components.Selector
	nameField components.TextField

	result InitResult

	// Dimensions
	width  int
	height int

	keys tui.KeyMap
}

type initStep int

const (
	initStepTemplate initStep = iota
	initStepName
	initStepConfirm
)

// NewInitWizard creates an init wizard. The project name field is
// pre-filled with defaultName.
func NewInitWizard(defaultName string, templates []TemplateChoice) InitWizard {
	options := make([]components.Option, 0, len(templates))
	for _, t := range templates {
		options = append(options, components.Option{
			Label:       t.Name,
			Description: t.Description,
			Value:       t.Name,
		})
	}

	nameField := components.NewTextField("Project name", "my-tree").
		WithRequired(true).
		WithValue(defaultName)

	return InitWizard{
		step:      initStepTemplate,
		templates: components.NewSelector("Select a template", options),
		nameField: nameField,
		width:     80,
		height:    24,
		keys:      tui.DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (w InitWizard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (w InitWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		if key.Matches(msg, w.keys.Quit) {
			w.result.Cancelled = true
			return w, tea.Quit
		}

		switch w.step {
		case initStepTemplate:
			return w.updateTemplate(msg)
		case initStepName:
			return w.updateName(msg)
		case initStepConfirm:
			return w.updateConfirm(msg)
		}
	}

	return w, nil
}

func (w InitWizard) updateTemplate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	w.templates, cmd = w.templates.Update(msg)

	if w.templates.Cancelled() {
		w.result.Cancelled = true
		return w, tea.Quit
	}
	if w.templates.Submitted() {
		w.result.Template = w.templates.Value()
		w.templates.Reset()
		w.step = initStepName
		return w, w.nameField.Focus()
	}
	return w, cmd
}

func (w InitWizard) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		if err := w.nameField.Validate(); err != nil {
			// Field renders the error; stay on this step.
			return w, nil
		}
		w.result.ProjectName = strings.TrimSpace(w.nameField.Value())
		w.nameField.Blur()
		w.step = initStepConfirm
		return w, nil
	case key.Matches(msg, w.keys.Back):
		w.nameField.Blur()
		w.step = initStepTemplate
		return w, nil
	}

	var cmd tea.Cmd
	w.nameField, cmd = w.nameField.Update(msg)
	return w, cmd
}

func (w InitWizard) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		return w, tea.Quit
	case key.Matches(msg, w.keys.Back):
		w.step = initStepName
		return w, w.nameField.Focus()
	}
	return w, nil
}

// View implements tea.Model.
func (w InitWizard) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("nomen init - Tree Setup"))
	b.WriteString("\n")

	switch w.step {
	case initStepTemplate:
		b.WriteString(w.templates.View())
	case initStepName:
		b.WriteString(w.viewName())
	case initStepConfirm:
		b.WriteString(w.viewConfirm())
	}

	return b.String()
}

func (w InitWizard) viewName() string {
	var b strings.Builder

	b.WriteString(tui.SubtitleStyle.Render("Name the tree"))
	b.WriteString("\n\n")
	b.WriteString(w.nameField.View())
	b.WriteString("\n")
	b.WriteString(tui.HelpStyle.Render("\n" + w.keys.InputHelpText()))

	return b.String()
}

func (w InitWizard) viewConfirm() string {
	var b strings.Builder

	b.WriteString(tui.SuccessStyle.Render(tui.SymbolCheck + " Ready to create"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Template:     %s\n", w.result.Template))
	b.WriteString(fmt.Sprintf("Project name: %s\n", w.result.ProjectName))
	b.WriteString(tui.HelpStyle.Render("\nenter create • esc back"))

	return b.String()
}

// Result returns the wizard result.
func (w InitWizard) Result() InitResult {
	return w.result
}

// RunInitWizard executes the init wizard and reports what the user
// chose. Creation itself stays with the caller.
func RunInitWizard(defaultName string, templates []TemplateChoice) (InitResult, error) {
	if len(templates) == 0 {
		return InitResult{Cancelled: true}, fmt.Errorf("no templates available")
	}

	wizard := NewInitWizard(defaultName, templates)
	p := tea.NewProgram(wizard, tea.WithAltScreen())

	model, err := p.Run()
	if err != nil {
		return InitResult{Cancelled: true}, err
	}

	return model.(InitWizard).Result(), nil
}
