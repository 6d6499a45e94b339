package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View draws the full UI (header + canvas and sidebar + status footer).
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	footerHeight := m.footerHeightForWidth(m.width)
	layout := m.calculateLayout()

	var body string
	switch {
	case m.overlay != overlayNone:
		body = m.renderActiveOverlay(m.width, layout.ContentHeight)
	case m.screen == screenSetup:
		body = m.renderSetup(m.width, layout.ContentHeight)
	default:
		body = padBlock(m.renderCanvas(layout.CanvasWidth, layout.CanvasHeight), layout.CanvasWidth, layout.CanvasHeight)
		if layout.SidebarWidth > 0 {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderSidebar(layout.SidebarWidth, layout.ContentHeight))
		}
	}
	body = padBlock(body, m.width, layout.ContentHeight)

	view := m.renderHeader(m.width) + "\n" + body + "\n" + m.renderStatus(m.width, footerHeight)
	return padBlock(view, m.width, m.height)
}

// renderHeader draws the title bar: app name, then the problem framing once
// a tree is open.
func (m *Model) renderHeader(width int) string {
	line := " LogicalRoot"
	if doc := m.session.Document(); doc != nil {
		p := doc.Problem()
		line += " │ " + singleLine(p.Statement)
		badge := badgeStyle.Render(string(p.Type)) + " " + fmt.Sprintf("%d nodes ", doc.Len())
		room := width - lipgloss.Width(badge) - 1
		line = truncateWithEllipsis(line, max(0, room))
		gap := max(1, width-lipgloss.Width(line)-lipgloss.Width(badge))
		return headerStyle.Width(width).Render(truncate(line+strings.Repeat(" ", gap)+badge, width))
	}
	line += " │ Define the problem"
	return headerStyle.Width(width).Render(truncate(line, width))
}
