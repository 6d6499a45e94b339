package app

import "github.com/charmbracelet/lipgloss"

var (
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	popupStyle    = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1)
	sidebarPane   = paneStyle.BorderForeground(lipgloss.Color("62"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	editStatus    = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62"))
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("98")).Padding(0, 1)
	activeTab     = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("212"))
	inactiveTab   = mutedStyle
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

// Canvas cell classes. Each cell of the canvas grid carries one, and runs
// of equal class are styled together.
type cellClass uint8

const (
	cellBlank cellClass = iota
	cellEdge
	cellNode
	cellRoot
	cellSelected
	cellEditing
	cellMarker
	cellOverlay
	cellLevel0
	cellLevel1
	cellLevel2
	cellLevelN
)

var cellStyles = map[cellClass]lipgloss.Style{
	cellEdge:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	cellNode:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
	cellRoot:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("61")),
	cellSelected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("212")),
	cellEditing:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("229")),
	cellMarker:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
	cellOverlay:  mutedStyle,
	cellLevel0:   lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	cellLevel1:   lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	cellLevel2:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
	cellLevelN:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
}

// levelClass picks the colour of a box's level marker.
func levelClass(level int) cellClass {
	switch level {
	case 0:
		return cellLevel0
	case 1:
		return cellLevel1
	case 2:
		return cellLevel2
	default:
		return cellLevelN
	}
}

// feedbackStyles colour audit findings by kind.
var feedbackStyles = map[string]lipgloss.Style{
	"overlap":   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	"gap":       lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	"imbalance": lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	"info":      lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
}
