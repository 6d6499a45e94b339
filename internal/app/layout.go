// layout.go centralizes the terminal layout for the canvas screen.
//
// The screen is a one-row header, a body, and an adaptive footer. The body is
// the canvas on the left and the assistant sidebar on the right. The sidebar
// is dropped entirely when the terminal is too narrow to keep a usable canvas.
package app

import vport "github.com/treykane/logicalroot/internal/viewport"

// LayoutDimensions holds all calculated layout dimensions for the UI.
type LayoutDimensions struct {
	ContentHeight      int // rows between header and footer
	CanvasWidth        int // columns drawn by the canvas
	CanvasHeight       int // rows drawn by the canvas
	SidebarWidth       int // outer width of the sidebar pane, 0 when hidden
	SidebarInnerWidth  int // usable width inside the sidebar border/padding
	SidebarInnerHeight int // usable height inside the sidebar border
}

// calculateLayout computes all UI dimensions based on terminal size.
func (m *Model) calculateLayout() LayoutDimensions {
	contentHeight := max(0, m.height-HeaderRows-m.footerHeightForWidth(m.width))

	sidebar := min(SidebarWidth, m.width/SidebarWidthDivider)
	if m.width-sidebar < MinCanvasWidth {
		sidebar = 0
	}

	return LayoutDimensions{
		ContentHeight:      contentHeight,
		CanvasWidth:        max(0, m.width-sidebar),
		CanvasHeight:       contentHeight,
		SidebarWidth:       sidebar,
		SidebarInnerWidth:  max(0, sidebar-sidebarPane.GetHorizontalFrameSize()),
		SidebarInnerHeight: max(0, contentHeight-sidebarPane.GetVerticalFrameSize()),
	}
}

// footerHeightForWidth returns how many rows should be reserved for the footer.
// It prefers FooterMinRows and expands to FooterMaxRows when the footer
// segments cannot fit without dropping content.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// applyLayout pushes the calculated sizes into the session and widgets.
func (m *Model) applyLayout(layout LayoutDimensions) {
	m.session.SetCanvasSize(vport.Size{Width: layout.CanvasWidth, Height: layout.CanvasHeight})
	m.preview.Width = max(0, m.width-2*ExportPopupPadding-popupStyle.GetHorizontalFrameSize())
	m.preview.Height = max(0, layout.ContentHeight-popupStyle.GetVerticalFrameSize()-2)
	m.editInput.Width = max(1, m.session.Metrics().NodeWidth)
	if m.form != nil {
		m.form = m.form.WithWidth(min(m.width, setupFormWidth))
	}
}
