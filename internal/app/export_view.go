package app

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/treykane/logicalroot/internal/export"
)

// openExport shows the print preview for the current format.
func (m *Model) openExport() {
	if !m.session.Active() {
		return
	}
	m.session.CommitEdit()
	m.syncEditor()
	m.openOverlay(overlayExport)
	m.refreshExportPreview()
	m.status = "Export preview"
}

// refreshExportPreview renders the document in the selected format into the
// preview pane. Markdown goes through glamour; the other formats are shown
// as the exact bytes that would be written.
func (m *Model) refreshExportPreview() {
	doc := m.session.Document()
	if doc == nil {
		m.preview.SetContent("")
		return
	}
	var content string
	if m.exportFormat == export.FormatMarkdown {
		rendered, err := renderMarkdown(export.Markdown(doc), m.preview.Width)
		if err != nil {
			appLog.Warn("render export preview", "error", err)
		}
		content = rendered
	} else {
		data, err := export.Render(doc, m.exportFormat)
		if err != nil {
			m.setStatusError("Export preview failed", err, "format", m.exportFormat)
			return
		}
		content = strings.TrimRight(string(data), "\n")
	}
	m.preview.SetContent(content)
	m.preview.GotoTop()
}

func (m *Model) cycleExportFormat(delta int) {
	i := slices.Index(export.Formats, m.exportFormat)
	i = (i + delta + len(export.Formats)) % len(export.Formats)
	m.exportFormat = export.Formats[i]
	m.refreshExportPreview()
}

// handleExportKey routes key presses while the export preview is open.
func (m *Model) handleExportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc", "q":
		m.closeOverlay()
		m.status = "Export closed"
		return m, nil
	case "tab", "right", "l":
		m.cycleExportFormat(1)
		return m, nil
	case "shift+tab", "left", "h":
		m.cycleExportFormat(-1)
		return m, nil
	case "enter", "w":
		m.writeExport(time.Now())
		return m, nil
	case "y":
		m.copyExportToClipboard()
		return m, nil
	}
	if m.actionForKey(key) == actionExport {
		m.closeOverlay()
		return m, nil
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

// writeExport saves the current format into the configured export directory.
func (m *Model) writeExport(now time.Time) {
	dir := m.cfg.ExportDir
	if strings.TrimSpace(dir) == "" {
		m.status = "No export directory configured"
		return
	}
	path, err := export.Write(dir, m.session.Document(), m.exportFormat, now)
	if err != nil {
		m.setStatusError("Export failed", err, "format", m.exportFormat, "dir", dir)
		return
	}
	m.status = fmt.Sprintf("Exported %s to %s", m.exportFormat, path)
}

func (m *Model) renderExportPopupOverlay(width, height int) string {
	tabs := make([]string, 0, len(export.Formats))
	for _, f := range export.Formats {
		label := strings.ToUpper(f.Ext())
		if f == m.exportFormat {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, inactiveTab.Render(label))
		}
	}
	popupWidth := max(0, width-2*ExportPopupPadding)
	inner := max(0, popupWidth-popupStyle.GetHorizontalFrameSize())
	lines := []string{
		titleStyle.Render("Export") + "  " + strings.Join(tabs, "  "),
		mutedStyle.Render(truncate("Tab format · Enter write · y copy · ↑/↓ scroll · Esc close", inner)),
		m.preview.View(),
	}
	body := padBlock(strings.Join(lines, "\n"), inner, max(0, height-popupStyle.GetVerticalFrameSize()))
	popup := popupStyle.Width(popupWidth - popupStyle.GetHorizontalBorderSize()).Render(body)
	return padBlock(indentBlock(popup, ExportPopupPadding), width, height)
}

// indentBlock shifts every line of s right by n spaces.
func indentBlock(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
