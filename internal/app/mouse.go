package app

import (
	tea "github.com/charmbracelet/bubbletea"
	vport "github.com/treykane/logicalroot/internal/viewport"
)

// handleMouse routes pointer input on the canvas screen.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouseEnabled {
		return m, nil
	}
	if m.overlay == overlayExport {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	if m.overlay != overlayNone {
		return m, nil
	}

	layout := m.calculateLayout()
	ev := tea.MouseEvent(msg)
	if ev.IsWheel() {
		if m.inCanvas(msg.X, msg.Y, layout) {
			m.session.Wheel(wheelEvent(msg))
		}
		return m, nil
	}

	at := vport.Point{X: float64(msg.X), Y: float64(msg.Y - HeaderRows)}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		switch {
		case m.inCanvas(msg.X, msg.Y, layout):
			m.pressCanvas(at)
		case layout.SidebarWidth > 0 && msg.X >= layout.CanvasWidth:
			m.pressSidebar(msg.X-layout.CanvasWidth, msg.Y-HeaderRows, layout)
		}
	case tea.MouseActionMotion:
		if dx, dy, ok := m.drag.Move(at); ok {
			m.session.Pan(dx, dy)
		}
	case tea.MouseActionRelease:
		m.drag.End()
	}
	return m, nil
}

func (m *Model) inCanvas(x, y int, layout LayoutDimensions) bool {
	y -= HeaderRows
	return x >= 0 && y >= 0 && x < layout.CanvasWidth && y < layout.CanvasHeight
}

// wheelEvent converts a terminal wheel report. Ctrl or Alt turns the wheel
// into zoom, since terminals do not report the platform zoom modifier.
func wheelEvent(msg tea.MouseMsg) vport.WheelEvent {
	ev := vport.WheelEvent{ZoomModifier: msg.Ctrl || msg.Alt, Shift: msg.Shift}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		ev.DY = -1
	case tea.MouseButtonWheelDown:
		ev.DY = 1
	case tea.MouseButtonWheelLeft:
		ev.DX = -1
	case tea.MouseButtonWheelRight:
		ev.DX = 1
	}
	return ev
}

// pressCanvas handles a left press on the canvas. A node is selected, or
// edited when it already was; a hidden-branch marker expands its parent;
// bare background starts a pan.
func (m *Model) pressCanvas(at vport.Point) {
	if id, ok := m.session.NodeAt(at); ok {
		m.drag.Begin(vport.TargetNode, at)
		_, editing := m.session.Editing()
		if sel, ok := m.session.Selected(); ok && sel == id && !editing {
			m.beginEdit(id)
			return
		}
		m.session.Select(id)
		m.syncEditor()
		return
	}
	if parent, ok := m.markerAt(int(at.X), int(at.Y)); ok {
		m.drag.Begin(vport.TargetControl, at)
		m.session.Select(parent)
		m.session.ToggleExpanded(parent)
		m.syncEditor()
		m.status = "Branch expanded"
		return
	}
	if _, editing := m.session.Editing(); editing {
		m.commitEdit()
	}
	m.drag.Begin(vport.TargetBackground, at)
}

// pressSidebar handles a left press inside the sidebar pane. x and y are
// relative to the pane's top-left corner.
func (m *Model) pressSidebar(x, y int, layout LayoutDimensions) {
	row := y - sidebarPane.GetBorderTopSize()
	col := x - sidebarPane.GetBorderLeftSize() - sidebarPane.GetPaddingLeft()
	if row < 0 || row >= layout.SidebarInnerHeight || col < 0 {
		return
	}
	if row == 0 {
		if t, ok := tabAtColumn(col); ok {
			m.tab = t
		}
		return
	}
	i := row - sidebarListTop
	if i < 0 {
		return
	}
	switch m.tab {
	case tabSuggestions:
		m.acceptSuggestion(i)
	case tabAudit:
		m.focusFeedback(i)
	}
}
