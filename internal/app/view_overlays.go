package app

import (
	"fmt"
	"strings"
)

var overlayRenderers = map[overlayMode]func(*Model, int, int) string{
	overlayHelp:   (*Model).renderHelp,
	overlayExport: (*Model).renderExportPopupOverlay,
}

func (m *Model) renderActiveOverlay(width, height int) string {
	if render, ok := overlayRenderers[m.overlay]; ok {
		return render(m, width, height)
	}
	return ""
}

// helpEntry is one row of the shortcut reference.
type helpEntry struct {
	action   string
	fallback string
	text     string
}

var canvasHelp = []helpEntry{
	{actionSelectPrev, "↑", "Select previous visible node"},
	{actionSelectNext, "↓", "Select next visible node"},
	{actionSelectParent, "←", "Select parent"},
	{actionSelectChild, "→", "Select first child (expands)"},
	{actionSelectPrevSibling, "Shift+K", "Previous sibling"},
	{actionSelectNextSibling, "Shift+J", "Next sibling"},
	{actionSelectClear, "Esc", "Clear selection"},
	{actionAddChild, "A", "Add child branch"},
	{actionEdit, "Enter", "Edit label"},
	{actionDelete, "D", "Delete branch"},
	{actionToggle, "O", "Collapse / expand branch"},
	{actionZoomIn, "+", "Zoom in"},
	{actionZoomOut, "-", "Zoom out"},
	{actionResetView, "0", "Reset view"},
	{actionCenter, "C", "Centre on selection"},
	{actionPanLeft, "Shift+←", "Pan left"},
	{actionPanRight, "Shift+→", "Pan right"},
	{actionPanUp, "Shift+↑", "Pan up"},
	{actionPanDown, "Shift+↓", "Pan down"},
	{actionSuggest, "S", "Suggest branches"},
	{actionAudit, "Shift+A", "Audit tree"},
	{actionTabNext, "]", "Next sidebar tab"},
	{actionTabPrev, "[", "Previous sidebar tab"},
	{actionExport, "X", "Export preview"},
	{actionCopyOutline, "Y", "Copy outline"},
	{actionNewProject, "N", "New project"},
	{actionHelp, "?", "Toggle help"},
	{actionQuit, "Q", "Quit"},
}

func (m *Model) renderHelp(width, height int) string {
	lines := []string{titleStyle.Render("Keyboard Shortcuts"), "", "Canvas"}
	for _, e := range canvasHelp {
		lines = append(lines, fmt.Sprintf("  %-22s %s", m.allActionKeys(e.action, e.fallback), e.text))
	}
	lines = append(lines,
		"  1-9                    Accept suggestion / jump to finding",
		"",
		"Mouse",
		"  Click node             Select (click again to edit)",
		"  Drag background        Pan",
		"  Wheel                  Pan (Shift for horizontal)",
		"  Ctrl/Alt+Wheel         Zoom",
		"  Click suggestion       Add branch",
		"",
		"Editing a label",
		"  Enter                  Save",
		"  Tab                    Save and add a child",
		"  Esc                    Cancel",
		"",
		"Export preview",
		"  Tab / Shift+Tab        Change format",
		"  Enter                  Write file",
		"  y                      Copy to clipboard",
		"  Esc                    Close",
		"",
		"Press ? to return.",
	)

	visible := min(height, len(lines))
	out := make([]string, 0, visible)
	for i := 0; i < visible; i++ {
		out = append(out, truncate(lines[i], width))
	}
	return strings.Join(out, "\n")
}
