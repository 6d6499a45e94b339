package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// handleKey routes key presses on the canvas screen.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.shouldIgnoreInput(msg) {
		return m, nil
	}
	switch m.overlay {
	case overlayHelp:
		return m.handleHelpKey(msg)
	case overlayExport:
		return m.handleExportKey(msg)
	}
	if _, editing := m.session.Editing(); editing {
		return m.handleEditKey(msg)
	}
	key := msg.String()
	if i, ok := quickPickIndex(key); ok {
		return m.handleQuickPick(i)
	}
	return m.handleCanvasAction(m.actionForKey(key))
}

// handleCanvasAction dispatches one bound action.
func (m *Model) handleCanvasAction(action string) (tea.Model, tea.Cmd) {
	s := m.session
	switch action {
	case actionQuit:
		return m, tea.Quit
	case actionHelp:
		m.openOverlay(overlayHelp)
		return m, nil
	case actionSelectPrev:
		s.SelectVisible(-1)
	case actionSelectNext:
		s.SelectVisible(1)
	case actionSelectParent:
		s.SelectParent()
	case actionSelectChild:
		s.SelectFirstChild()
	case actionSelectPrevSibling:
		s.SelectSibling(-1)
	case actionSelectNextSibling:
		s.SelectSibling(1)
	case actionSelectClear:
		s.ClearSelection()
		m.status = "Selection cleared"
	case actionAddChild:
		m.addChild()
	case actionEdit:
		if id, ok := s.Selected(); ok {
			m.beginEdit(id)
		} else {
			m.status = "Select a node to edit"
		}
	case actionDelete:
		m.deleteSelected()
	case actionToggle:
		m.toggleSelected()
	case actionZoomIn:
		s.ZoomIn()
		m.status = fmt.Sprintf("Zoom %d%%", s.Transform().Percent())
	case actionZoomOut:
		s.ZoomOut()
		m.status = fmt.Sprintf("Zoom %d%%", s.Transform().Percent())
	case actionResetView:
		s.ResetView()
		m.status = "View reset"
	case actionCenter:
		if id, ok := s.Selected(); ok {
			s.CenterOn(id)
		}
	case actionPanLeft:
		s.Pan(KeyPanStep, 0)
	case actionPanRight:
		s.Pan(-KeyPanStep, 0)
	case actionPanUp:
		s.Pan(0, KeyPanStep)
	case actionPanDown:
		s.Pan(0, -KeyPanStep)
	case actionSuggest:
		return m, m.requestSuggestions()
	case actionAudit:
		return m, m.requestAudit()
	case actionTabNext:
		m.cycleTab(1)
	case actionTabPrev:
		m.cycleTab(-1)
	case actionExport:
		m.openExport()
	case actionCopyOutline:
		m.copyOutlineToClipboard()
	case actionNewProject:
		return m, m.newProject()
	}
	m.syncEditor()
	return m, nil
}

// quickPickIndex maps the digit keys 1-9 to a zero-based list index.
func quickPickIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '0'+MaxQuickPicks {
		return 0, false
	}
	return int(key[0] - '1'), true
}

// handleQuickPick applies item i of the active sidebar list.
func (m *Model) handleQuickPick(i int) (tea.Model, tea.Cmd) {
	switch m.tab {
	case tabSuggestions:
		m.acceptSuggestion(i)
	case tabAudit:
		m.focusFeedback(i)
	}
	return m, nil
}

func (m *Model) addChild() {
	parent, ok := m.session.Selected()
	if !ok {
		m.status = "Select a node to add a branch"
		return
	}
	if _, ok := m.session.AddChildToSelected(""); !ok {
		m.status = "Could not add a branch"
		appLog.Warn("add child failed", "parent", parent)
		return
	}
	m.editInput.SetValue("")
	m.editInput.Focus()
	m.status = "New branch: type a label, Enter to save"
}

func (m *Model) deleteSelected() {
	n, ok := m.session.SelectedNode()
	if !ok {
		m.status = "Select a node to delete"
		return
	}
	if n.IsRoot() {
		m.status = "The root problem cannot be deleted"
		return
	}
	count := m.session.Document().SubtreeSize(n.ID)
	if !m.session.DeleteSelected() {
		m.status = "Delete failed"
		return
	}
	m.stopEditor()
	if count == 1 {
		m.status = "Deleted 1 node"
	} else {
		m.status = fmt.Sprintf("Deleted %d nodes", count)
	}
}

func (m *Model) toggleSelected() {
	n, ok := m.session.SelectedNode()
	if !ok {
		m.status = "Select a node to collapse"
		return
	}
	if len(n.Children) == 0 {
		m.status = "Nothing to collapse"
		return
	}
	m.session.ToggleSelected()
	if n.Expanded {
		m.status = "Branch collapsed"
	} else {
		m.status = "Branch expanded"
	}
}

func (m *Model) cycleTab(delta int) {
	i := (int(m.tab) + delta) % len(sidebarTabs)
	if i < 0 {
		i += len(sidebarTabs)
	}
	m.tab = sidebarTabs[i]
}

// handleHelpKey closes the help overlay; any bound help key or Esc works.
func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" || key == "q" || m.actionForKey(key) == actionHelp {
		m.closeOverlay()
	}
	return m, nil
}
