package app

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/treykane/logicalroot/internal/assistant"
	"github.com/treykane/logicalroot/internal/config"
	"github.com/treykane/logicalroot/internal/export"
	"github.com/treykane/logicalroot/internal/session"
	"github.com/treykane/logicalroot/internal/setup"
	vport "github.com/treykane/logicalroot/internal/viewport"
)

// screen selects between the intake form and the tree canvas.
type screen int

const (
	screenSetup screen = iota
	screenCanvas
)

// overlayMode identifies the popup drawn over the body, if any.
type overlayMode int

const (
	overlayNone overlayMode = iota
	overlayHelp
	overlayExport
)

// sidebarTab is the active assistant sidebar tab.
type sidebarTab int

const (
	tabSuggestions sidebarTab = iota
	tabAudit
	tabRules
)

var sidebarTabs = []sidebarTab{tabSuggestions, tabAudit, tabRules}

func (t sidebarTab) String() string {
	switch t {
	case tabSuggestions:
		return "Suggestions"
	case tabAudit:
		return "Audit"
	case tabRules:
		return "Rules"
	default:
		return "?"
	}
}

// Options configure New.
type Options struct {
	Config config.Config
	// Provider answers suggestion and audit requests. Nil switches the
	// assistant off.
	Provider assistant.Provider
}

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	cfg     config.Config
	session *session.Session
	assist  *assistant.Boundary

	// Intake
	screen screen
	intake *setup.Input
	form   *huh.Form

	// UI widgets
	editInput textinput.Model
	spinner   spinner.Model
	spinning  bool
	preview   viewport.Model

	exportFormat export.Format

	overlay    overlayMode
	tab        sidebarTab
	status     string
	debugInput bool

	// Layout sizing
	width  int
	height int

	// Pointer state
	mouseEnabled bool
	drag         vport.Drag

	// Keybindings
	keyToAction  map[string]string
	keyForAction map[string][]string
}

// New prepares the initial UI model on the intake screen.
func New(opts Options) *Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = InputCharLimit
	input.Placeholder = untitledLabel

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &Model{
		cfg:          opts.Config,
		session:      session.New(session.Options{}),
		screen:       screenSetup,
		editInput:    input,
		spinner:      spin,
		preview:      viewport.New(0, 0),
		exportFormat: export.FormatMarkdown,
		tab:          tabSuggestions,
		status:       "Describe the problem to begin",
		mouseEnabled: !opts.Config.DisableMouse,
		debugInput:   os.Getenv("LOGICALROOT_DEBUG_INPUT") != "",
	}
	if opts.Provider != nil {
		m.assist = assistant.NewBoundary(opts.Provider, boundaryOptions(opts.Config))
	}
	m.loadKeybindings(opts.Config)
	m.form = m.newSetupForm(setup.Input{})
	return m
}

// Init starts the intake form.
func (m *Model) Init() tea.Cmd {
	if m.form == nil {
		return nil
	}
	return m.form.Init()
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case suggestMsg:
		return m.handleSuggestResult(msg)
	case auditMsg:
		return m.handleAuditResult(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	if m.screen == screenSetup {
		return m.updateSetup(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// handleWindowResize updates layout dimensions after terminal resize.
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.applyLayout(m.calculateLayout())
	if m.overlay == overlayExport {
		m.refreshExportPreview()
	}
	if m.screen == screenSetup && m.form != nil {
		return m.updateSetup(msg)
	}
	return m, nil
}

// handleSpinnerTick animates the sidebar spinner while a request is out and
// lets the tick chain lapse once nothing is loading.
func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if !m.session.SuggestLoading() && !m.session.AuditLoading() {
		m.spinning = false
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// startSpinner begins the tick chain unless it is already running.
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}
