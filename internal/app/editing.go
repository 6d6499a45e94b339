package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/treykane/logicalroot/internal/tree"
)

const untitledLabel = "Untitled Issue..."

// beginEdit opens the label editor on id, loading its current text.
func (m *Model) beginEdit(id tree.NodeID) {
	if !m.session.BeginEdit(id) {
		return
	}
	m.editInput.SetValue(m.session.Buffer())
	m.editInput.CursorEnd()
	m.editInput.Focus()
	m.status = "Editing label"
}

// stopEditor detaches the text input after the session ended an edit,
// whichever way it ended.
func (m *Model) stopEditor() {
	m.editInput.Blur()
	m.editInput.SetValue("")
}

// syncEditor drops the input when the session no longer has an edit open.
// Selection changes commit edits inside the session, so this runs after
// every operation that can move the selection.
func (m *Model) syncEditor() {
	if _, editing := m.session.Editing(); !editing && m.editInput.Focused() {
		m.stopEditor()
	}
}

func (m *Model) commitEdit() {
	if m.session.CommitEdit() {
		m.status = "Label updated"
	} else {
		m.status = "No changes"
	}
	m.stopEditor()
}

func (m *Model) cancelEdit() {
	m.session.CancelEdit()
	m.stopEditor()
	m.status = "Edit cancelled"
}

// handleEditKey routes key presses while a label is being edited.
func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.commitEdit()
		return m, nil
	case "esc":
		m.cancelEdit()
		return m, nil
	case "tab":
		m.commitEdit()
		m.addChild()
		return m, nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	m.session.SetBuffer(m.editInput.Value())
	return m, cmd
}
