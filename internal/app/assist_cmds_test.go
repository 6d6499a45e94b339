package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/treykane/logicalroot/internal/assistant"
)

// resolveSuggestions runs a heuristic suggestion round trip for the selected
// node and feeds the result back through Update.
func resolveSuggestions(t *testing.T, m *Model) {
	t.Helper()
	ticket, req, ok := m.session.BeginSuggestions()
	if !ok {
		t.Fatal("begin suggestions failed")
	}
	m.Update(suggestCmd(m.assist, ticket, req)())
	if items, _ := m.session.Suggestions(); len(items) == 0 {
		t.Fatalf("no suggestions applied, status %q", m.status)
	}
}

func TestRequestSuggestionsStartsSpinner(t *testing.T) {
	m := newCanvasModel(t)
	m.tab = tabRules
	cmd := m.requestSuggestions()
	if cmd == nil {
		t.Fatal("expected a command batch")
	}
	if !m.session.SuggestLoading() || !m.spinning {
		t.Fatal("loading state not set")
	}
	if m.tab != tabSuggestions {
		t.Fatalf("tab = %v, want suggestions", m.tab)
	}
	if again := m.startSpinner(); again != nil {
		t.Fatal("second spinner chain started")
	}
}

func TestSuggestResultShowsInSidebar(t *testing.T) {
	m := newCanvasModel(t)
	resolveSuggestions(t, m)
	if !strings.HasSuffix(m.status, "suggestions ready") {
		t.Fatalf("status = %q", m.status)
	}
	lines := strings.Join(m.sidebarLines(40), "\n")
	if !strings.Contains(lines, "[1] Usage vs. Retention") {
		t.Fatalf("sidebar missing first suggestion:\n%s", lines)
	}
}

func TestQuickPickAcceptsSuggestion(t *testing.T) {
	m := newCanvasModel(t)
	resolveSuggestions(t, m)
	before, _ := m.session.Suggestions()

	press(m, "2")
	children := m.session.Document().ChildrenOf(rootID(m))
	if len(children) != 1 || children[0].Text != before[1].Text {
		t.Fatalf("children = %+v, want %q", children, before[1].Text)
	}
	after, _ := m.session.Suggestions()
	if len(after) != len(before)-1 {
		t.Fatalf("accepted suggestion still listed: %v", after)
	}
	if m.status != "Added branch: "+before[1].Text {
		t.Fatalf("status = %q", m.status)
	}
}

func TestStaleSuggestionResultIgnored(t *testing.T) {
	m := newCanvasModel(t)
	a := addNode(t, m, rootID(m), "Acquisition")

	ticket, req, _ := m.session.BeginSuggestions()
	msg := suggestCmd(m.assist, ticket, req)()
	m.session.Select(a)
	m.status = "moved on"

	m.Update(msg)
	if items, _ := m.session.Suggestions(); len(items) != 0 {
		t.Fatalf("stale suggestions applied: %v", items)
	}
	if m.status != "moved on" {
		t.Fatalf("stale result touched the status: %q", m.status)
	}
}

func TestSuggestFailureSetsNotice(t *testing.T) {
	m := newCanvasModel(t)
	ticket, _, _ := m.session.BeginSuggestions()
	m.Update(suggestMsg{ticket: ticket, result: assistant.SuggestResult{Status: assistant.StatusFailed, Err: errors.New("timeout")}})
	if m.status != "Suggestion request failed. Try again." {
		t.Fatalf("status = %q", m.status)
	}
	lines := strings.Join(m.sidebarLines(40), "\n")
	if !strings.Contains(lines, "Suggestion request failed") {
		t.Fatalf("sidebar missing failure notice:\n%s", lines)
	}
}

func TestAuditRoundTripAndFocus(t *testing.T) {
	m := newCanvasModel(t)
	ticket, req, ok := m.session.BeginAudit()
	if !ok {
		t.Fatal("begin audit failed")
	}
	m.Update(auditCmd(m.assist, ticket, req)())

	items, done := m.session.Feedback()
	if !done || len(items) == 0 {
		t.Fatalf("audit not applied, status %q", m.status)
	}
	m.tab = tabAudit
	lines := strings.Join(m.sidebarLines(40), "\n")
	if !strings.Contains(lines, "[1] INFO") {
		t.Fatalf("audit line missing:\n%s", lines)
	}

	// A single-node tree only gets a whole-tree finding.
	press(m, "1")
	if items[0].NodeID != "" || m.status != items[0].Message {
		t.Fatalf("finding = %+v, status %q", items[0], m.status)
	}
}

func TestAuditFindingFocusesNode(t *testing.T) {
	m := newCanvasModel(t)
	root := rootID(m)
	addNode(t, m, root, "Only branch")
	ticket, req, _ := m.session.BeginAudit()
	m.Update(auditCmd(m.assist, ticket, req)())

	items, _ := m.session.Feedback()
	target := -1
	for i, f := range items {
		if f.NodeID != "" && i < MaxQuickPicks {
			target = i
			break
		}
	}
	if target < 0 {
		t.Fatalf("no node-specific finding in %+v", items)
	}
	m.session.ClearSelection()
	m.tab = tabAudit
	press(m, string(rune('1'+target)))
	if got, _ := m.session.Selected(); got != items[target].NodeID {
		t.Fatalf("focus selected %q, want %q", got, items[target].NodeID)
	}
}

func TestSpinnerTickLapsesWhenIdle(t *testing.T) {
	m := newCanvasModel(t)
	m.spinning = true
	_, cmd := m.Update(m.spinner.Tick())
	if cmd != nil || m.spinning {
		t.Fatal("spinner kept ticking with nothing loading")
	}
}
