package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) renderStatus(width, rows int) string {
	statusRows, _ := m.buildStatusRows(width, rows)
	style := statusStyle
	if _, editing := m.session.Editing(); editing {
		style = editStatus
	}
	for len(statusRows) < rows {
		statusRows = append(statusRows, "")
	}

	rendered := make([]string, 0, len(statusRows))
	for _, line := range statusRows {
		line = " " + truncate(line, max(0, width-1))
		rendered = append(rendered, style.Width(width).Render(line))
	}
	return strings.Join(rendered, "\n")
}

func (m *Model) buildStatusRows(width, rowLimit int) ([]string, bool) {
	if width <= 0 || rowLimit <= 0 {
		return nil, true
	}

	help := m.statusHelpSegments()
	context := m.statusContextSegments()
	status := m.statusMessageSegment()

	segments := make([]string, 0, len(help)+len(context)+2)
	if len(help) > 0 {
		segments = append(segments, "Keys: "+help[0])
		segments = append(segments, help[1:]...)
	}
	if len(context) > 0 {
		segments = append(segments, "Context: "+context[0])
		segments = append(segments, context[1:]...)
	}
	if status != "" {
		segments = append(segments, "Status: "+status)
	}

	rows := make([]string, 1, rowLimit)
	rowIndex := 0
	fit := true
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		segment := seg
		if lipgloss.Width(segment) > width {
			segment = truncateWithEllipsis(segment, width)
		}

		candidate := segment
		if rows[rowIndex] != "" {
			candidate = rows[rowIndex] + " | " + segment
		}
		if lipgloss.Width(candidate) <= width {
			rows[rowIndex] = candidate
			continue
		}
		if rowIndex+1 < rowLimit {
			rowIndex++
			rows = append(rows, segment)
			continue
		}

		fit = false
		if rows[rowIndex] == "" {
			rows[rowIndex] = truncateWithEllipsis(segment, width)
		} else {
			rows[rowIndex] = truncateWithEllipsis(rows[rowIndex]+" | "+segment, width)
		}
		break
	}
	return rows, fit
}

func truncateWithEllipsis(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(value) <= width {
		return value
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(value, width-1, "") + "…"
}

func (m *Model) statusHelpSegments() []string {
	if m.screen == screenSetup {
		return []string{"Tab/Enter next field", "Shift+Tab back", "Ctrl+C quit"}
	}
	switch m.overlay {
	case overlayHelp:
		return []string{"Help", "? or Esc close"}
	case overlayExport:
		return []string{"Export", "Tab format", "Enter write", "y copy", "↑/↓ scroll", "Esc close"}
	}
	if _, editing := m.session.Editing(); editing {
		return []string{"Enter save", "Tab save+child", "Esc cancel"}
	}
	k := m.primaryActionKey
	return []string{
		"↑/↓/←/→ move",
		k(actionAddChild, "a") + " add",
		k(actionEdit, "Enter") + " edit",
		k(actionDelete, "d") + " delete",
		k(actionToggle, "o") + " collapse",
		k(actionSuggest, "s") + " suggest",
		k(actionAudit, "Shift+A") + " audit",
		k(actionZoomIn, "+") + "/" + k(actionZoomOut, "-") + " zoom",
		k(actionResetView, "0") + " reset",
		k(actionExport, "x") + " export",
		k(actionHelp, "?") + " help",
		k(actionQuit, "q") + " quit",
	}
}

func (m *Model) statusContextSegments() []string {
	doc := m.session.Document()
	if m.screen != screenCanvas || doc == nil {
		return nil
	}
	parts := []string{
		fmt.Sprintf("%d nodes", doc.Len()),
		fmt.Sprintf("Zoom %d%%", m.session.Transform().Percent()),
	}
	if n, ok := m.session.SelectedNode(); ok {
		parts = append(parts, fmt.Sprintf("Level %d", n.Level))
	}
	parts = append(parts, "Assistant: "+m.providerLabel())
	return parts
}

func (m *Model) providerLabel() string {
	if m.assist == nil {
		return "off"
	}
	if p := m.cfg.Assistant.Provider; p != "" {
		return p
	}
	return "heuristic"
}

func (m *Model) statusMessageSegment() string {
	return strings.TrimSpace(m.status)
}
