package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/treykane/logicalroot/internal/assistant"
	"github.com/treykane/logicalroot/internal/session"
)

// sidebarListTop is the content row of the first suggestion or finding.
// Rows above it hold the tab bar, a spacer, a heading and another spacer.
// Mouse hit testing relies on every list item taking exactly one row.
const sidebarListTop = 4

// renderSidebar draws the bordered assistant pane.
func (m *Model) renderSidebar(width, height int) string {
	inner := max(0, width-sidebarPane.GetHorizontalFrameSize())
	innerHeight := max(0, height-sidebarPane.GetVerticalFrameSize())
	content := padBlock(strings.Join(m.sidebarLines(inner), "\n"), inner, innerHeight)
	return sidebarPane.Width(width - sidebarPane.GetHorizontalBorderSize()).Render(content)
}

func (m *Model) sidebarLines(width int) []string {
	lines := []string{m.renderTabBar(), ""}
	switch m.tab {
	case tabSuggestions:
		lines = append(lines, m.suggestionLines(width)...)
	case tabAudit:
		lines = append(lines, m.auditLines()...)
	case tabRules:
		lines = append(lines, m.rulesLines(width)...)
	}
	for i, line := range lines {
		lines[i] = truncate(line, width)
	}
	return lines
}

func (m *Model) renderTabBar() string {
	parts := make([]string, 0, len(sidebarTabs))
	for _, t := range sidebarTabs {
		if t == m.tab {
			parts = append(parts, activeTab.Render(t.String()))
		} else {
			parts = append(parts, inactiveTab.Render(t.String()))
		}
	}
	return strings.Join(parts, tabSeparator)
}

const tabSeparator = "  "

// tabAtColumn maps a column of the tab bar to its tab.
func tabAtColumn(col int) (sidebarTab, bool) {
	x := 0
	for _, t := range sidebarTabs {
		w := lipgloss.Width(t.String())
		if col >= x && col < x+w {
			return t, true
		}
		x += w + len(tabSeparator)
	}
	return 0, false
}

func (m *Model) suggestionLines(width int) []string {
	heading := "Select a node"
	if n, ok := m.session.SelectedNode(); ok {
		heading = "Branches for: " + fitLabel(labelText(n.Text), max(1, width-14))
	}
	lines := []string{titleStyle.Render(heading), ""}

	items, _ := m.session.Suggestions()
	for i, s := range items {
		line := fmt.Sprintf("[%d] %s", i+1, singleLine(s.Text))
		if i >= MaxQuickPicks {
			line = "    " + singleLine(s.Text)
		}
		if s.Description != "" {
			line += mutedStyle.Render(": " + singleLine(s.Description))
		}
		lines = append(lines, line)
	}

	switch {
	case m.assist == nil:
		lines = append(lines, mutedStyle.Render("Assistant is off."))
	case m.session.SuggestLoading():
		lines = append(lines, m.spinner.View()+" Generating MECE suggestions...")
	case len(items) > 0:
		lines = append(lines, "", mutedStyle.Render("Click or press 1-9 to add a branch."))
	case m.session.Notice().Kind == session.NoticeNoSuggestions || m.session.Notice().Kind == session.NoticeSuggestFailed:
		lines = append(lines, noticeStyle(m.session.Notice().Kind).Render(m.session.Notice().Message))
	default:
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("Press %s to suggest branches for the selected node.", m.primaryActionKey(actionSuggest, "S"))))
	}
	return lines
}

func (m *Model) auditLines() []string {
	lines := []string{titleStyle.Render("Tree audit"), ""}
	items, audited := m.session.Feedback()
	for i, f := range items {
		tag := strings.ToUpper(string(f.Kind))
		style, ok := feedbackStyles[string(f.Kind)]
		if !ok {
			style = mutedStyle
		}
		prefix := fmt.Sprintf("[%d] ", i+1)
		if i >= MaxQuickPicks {
			prefix = "    "
		}
		lines = append(lines, prefix+style.Render(tag)+" "+singleLine(f.Message))
	}

	switch {
	case m.assist == nil:
		lines = append(lines, mutedStyle.Render("Assistant is off."))
	case m.session.AuditLoading():
		lines = append(lines, m.spinner.View()+" Reviewing tree structure...")
	case len(items) > 0:
		lines = append(lines, "", mutedStyle.Render("Click or press 1-9 to jump to a node."))
	case audited:
		lines = append(lines, noticeStyle(m.session.Notice().Kind).Render(m.session.Notice().Message))
	default:
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("Press %s to audit the whole tree for overlaps and gaps.", m.primaryActionKey(actionAudit, "Shift+A"))))
	}
	return lines
}

// noticeStyle colours an assistant outcome: failures in red, the rest green.
func noticeStyle(kind session.NoticeKind) lipgloss.Style {
	switch kind {
	case session.NoticeSuggestFailed, session.NoticeAuditFailed:
		return errorStyle
	default:
		return okStyle
	}
}

// rulesMarkdown is the Rules tab source.
func rulesMarkdown() string {
	var b strings.Builder
	b.WriteString("## MECE guidelines\n\n")
	for _, g := range assistant.Guidelines {
		b.WriteString("- " + g + "\n")
	}
	b.WriteString("\n> **Pro tip:** " + assistant.ProTip + "\n")
	return b.String()
}

func (m *Model) rulesLines(width int) []string {
	out, err := renderMarkdown(rulesMarkdown(), width)
	if err != nil {
		appLog.Warn("render rules", "error", err)
	}
	return strings.Split(out, "\n")
}
