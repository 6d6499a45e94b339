package app

// openOverlay activates one overlay and ensures any previous overlay state is cleaned up.
func (m *Model) openOverlay(mode overlayMode) {
	if m.overlay == mode {
		return
	}
	m.closeOverlay()
	m.overlay = mode
}

// closeOverlay dismisses the active overlay and resets overlay-specific state.
func (m *Model) closeOverlay() {
	switch m.overlay {
	case overlayExport:
		m.preview.SetContent("")
		m.preview.GotoTop()
	}
	m.overlay = overlayNone
}

func (m *Model) isOverlay(mode overlayMode) bool {
	return m.overlay == mode
}
