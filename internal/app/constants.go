package app

import "time"

// Layout constants define the default dimensions and spacing for the UI
const (
	// SidebarWidth is the width of the assistant sidebar on wide terminals.
	SidebarWidth = 42

	// SidebarWidthDivider caps the sidebar at terminal_width / this value
	// on narrow terminals.
	SidebarWidthDivider = 3

	// MinCanvasWidth is the narrowest canvas kept before the sidebar is hidden.
	MinCanvasWidth = 40

	// HeaderRows is the height of the header bar above the canvas.
	HeaderRows = 1

	// ExportPopupPadding is the horizontal margin around the export preview.
	ExportPopupPadding = 4

	// FooterMinRows is the default number of rows reserved for the bottom
	// status/help area. The app targets two rows on typical terminal widths.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when content does not
	// fit within FooterMinRows.
	FooterMaxRows = 3
)

// Input limits define maximum sizes for user input
const (
	// InputCharLimit is the maximum number of characters in a node label.
	InputCharLimit = 120

	// MaxQuickPicks is how many suggestions or findings get a number key.
	MaxQuickPicks = 9
)

// Canvas constants
const (
	// KeyPanStep is how many cells one pan key moves the canvas.
	KeyPanStep = 4

	// MinBoxCells is the narrowest a box is drawn at any zoom level.
	MinBoxCells = 4
)

// AssistantTimeout bounds a call when the config leaves the timeout unset.
const AssistantTimeout = 30 * time.Second
