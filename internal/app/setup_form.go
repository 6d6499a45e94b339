package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/treykane/logicalroot/internal/setup"
	"github.com/treykane/logicalroot/internal/tree"
)

const (
	setupFormWidth     = 80
	statementCharLimit = 400
)

// newSetupForm builds the intake form bound to a fresh copy of prev, so a
// rejected submission comes back with the user's text intact.
func (m *Model) newSetupForm(prev setup.Input) *huh.Form {
	in := prev
	if in.Type == "" {
		in.Type = string(tree.Business)
	}
	m.intake = &in

	types := make([]huh.Option[string], 0, len(tree.ProblemTypes))
	for _, pt := range tree.ProblemTypes {
		types = append(types, huh.NewOption(string(pt), string(pt)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What is the core problem?").
				Placeholder(setup.StatementPlaceholder).
				CharLimit(statementCharLimit).
				Lines(3).
				Value(&m.intake.Statement).
				Validate(setup.StatementError),
			huh.NewSelect[string]().
				Title("Problem category").
				Options(types...).
				Value(&m.intake.Type),
			huh.NewInput().
				Title("Success criteria").
				Placeholder(setup.CriteriaPlaceholder).
				Value(&m.intake.SuccessCriteria),
			huh.NewInput().
				Title("Scope & constraints").
				Placeholder(setup.ScopePlaceholder).
				Value(&m.intake.Scope).
				Validate(setup.ScopeError),
		).
			Title("Structure your problem").
			Description("Define your objective to begin building a MECE issue tree."),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(true)
	if m.width > 0 {
		form = form.WithWidth(min(m.width, setupFormWidth))
	}
	// Embedded forms must not quit the program on submit or abort.
	form.SubmitCmd = nil
	form.CancelCmd = nil
	return form
}

// updateSetup forwards every message to the form, which needs its own
// internal messages as well as key presses.
func (m *Model) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	model, cmd := m.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		m.form = form
	}
	switch m.form.State {
	case huh.StateCompleted:
		return m, tea.Batch(cmd, m.startProject())
	case huh.StateAborted:
		return m, tea.Quit
	}
	return m, cmd
}

// startProject turns the submitted intake into a new tree. A submission that
// fails validation reopens the form with the entered values.
func (m *Model) startProject() tea.Cmd {
	in := *m.intake
	problem, err := in.ToProblem()
	if err != nil {
		m.setStatusError("Problem definition is incomplete", err)
		m.form = m.newSetupForm(in)
		return m.form.Init()
	}
	m.applyLayout(m.calculateLayout())
	if err := m.session.Start(problem); err != nil {
		m.setStatusError("Could not start the issue tree", err)
		m.form = m.newSetupForm(in)
		return m.form.Init()
	}
	m.screen = screenCanvas
	m.form = nil
	m.tab = tabSuggestions
	m.applyLayout(m.calculateLayout())
	m.session.ResetView()
	m.status = "Issue tree started. Press " + m.primaryActionKey(actionAddChild, "a") + " to add a branch"
	appLog.Info("project started", "type", problem.Type)
	return nil
}

// newProject drops the current tree and returns to the intake form.
func (m *Model) newProject() tea.Cmd {
	m.closeOverlay()
	m.stopEditor()
	m.session.Close()
	m.drag.End()
	m.screen = screenSetup
	m.form = m.newSetupForm(setup.Input{})
	m.status = "Describe the problem to begin"
	return m.form.Init()
}

func (m *Model) renderSetup(width, height int) string {
	if m.form == nil {
		return ""
	}
	intro := mutedStyle.Render("Problem statement (over 10 characters) and scope (over 5 characters) are required.")
	body := lipgloss.JoinVertical(lipgloss.Left, intro, "", m.form.View())
	return padBlock(lipgloss.PlaceHorizontal(width, lipgloss.Center, body), width, height)
}
