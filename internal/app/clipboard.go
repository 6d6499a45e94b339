package app

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/treykane/logicalroot/internal/export"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// copyOutlineToClipboard copies the Markdown outline of the tree, as drawn
// (collapsed branches stay collapsed), to the system clipboard.
func (m *Model) copyOutlineToClipboard() {
	doc := m.session.Document()
	if doc == nil {
		m.status = "Nothing to copy"
		return
	}
	outline := export.Outline(doc)
	if err := writeClipboard(outline); err != nil {
		m.setStatusError("Clipboard copy failed", err)
		return
	}
	m.status = fmt.Sprintf("Copied outline (%d nodes)", doc.Len())
}

// copyExportToClipboard copies the export in the previewed format.
func (m *Model) copyExportToClipboard() {
	doc := m.session.Document()
	if doc == nil {
		return
	}
	data, err := export.Render(doc, m.exportFormat)
	if err != nil {
		m.setStatusError("Export failed", err, "format", m.exportFormat)
		return
	}
	if err := writeClipboard(string(data)); err != nil {
		m.setStatusError("Clipboard copy failed", err)
		return
	}
	m.status = fmt.Sprintf("Copied %s export (%d chars)", m.exportFormat, len([]rune(string(data))))
}
