package app

import (
	"strings"
	"testing"
)

func TestAddChildEditAndCommit(t *testing.T) {
	m := newCanvasModel(t)
	root := rootID(m)

	press(m, "a")
	id, editing := m.session.Editing()
	if !editing {
		t.Fatal("add child did not open the editor")
	}
	if n, _ := m.session.Document().Node(id); n.ParentID != root {
		t.Fatalf("new node parent = %q, want root", n.ParentID)
	}
	if !m.editInput.Focused() {
		t.Fatal("edit input not focused")
	}

	press(m, "Pricing")
	if got := nodeText(t, m, id); got != "" {
		t.Fatalf("typing leaked into the tree before commit: %q", got)
	}
	press(m, "enter")
	if got := nodeText(t, m, id); got != "Pricing" {
		t.Fatalf("committed text = %q", got)
	}
	if _, editing := m.session.Editing(); editing || m.editInput.Focused() {
		t.Fatal("editor still open after enter")
	}
	if m.status != "Label updated" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestEditTabSavesAndAddsChild(t *testing.T) {
	m := newCanvasModel(t)
	press(m, "a")
	first, _ := m.session.Editing()
	press(m, "Pricing", "tab")

	if got := nodeText(t, m, first); got != "Pricing" {
		t.Fatalf("tab did not save, text = %q", got)
	}
	second, editing := m.session.Editing()
	if !editing || second == first {
		t.Fatal("tab did not open a new child")
	}
	if n, _ := m.session.Document().Node(second); n.ParentID != first {
		t.Fatalf("new child parent = %q, want %q", n.ParentID, first)
	}
}

func TestEscCancelsEdit(t *testing.T) {
	m := newCanvasModel(t)
	root := rootID(m)
	before := nodeText(t, m, root)

	press(m, "e")
	if id, editing := m.session.Editing(); !editing || id != root {
		t.Fatal("edit key did not open the root")
	}
	press(m, " and churn", "esc")
	if got := nodeText(t, m, root); got != before {
		t.Fatalf("cancel changed the label to %q", got)
	}
	if m.status != "Edit cancelled" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestDeleteRefusesRoot(t *testing.T) {
	m := newCanvasModel(t)
	press(m, "d")
	if m.session.Document().Len() != 1 {
		t.Fatal("root deleted")
	}
	if m.status != "The root problem cannot be deleted" {
		t.Fatalf("status = %q", m.status)
	}
	if _, ok := m.session.Selected(); !ok {
		t.Fatal("refused delete cleared the selection")
	}
}

func TestDeleteRemovesSubtree(t *testing.T) {
	m := newCanvasModel(t)
	a := addNode(t, m, rootID(m), "Acquisition")
	addNode(t, m, a, "Paid")
	addNode(t, m, a, "Organic")
	m.session.Select(a)

	press(m, "d")
	if m.session.Document().Len() != 1 {
		t.Fatalf("len = %d, want 1", m.session.Document().Len())
	}
	if m.status != "Deleted 3 nodes" {
		t.Fatalf("status = %q", m.status)
	}
	if _, ok := m.session.Selected(); ok {
		t.Fatal("selection survived delete")
	}
	press(m, "d")
	if m.status != "Select a node to delete" {
		t.Fatalf("status with no selection = %q", m.status)
	}
}

func TestToggleCollapse(t *testing.T) {
	m := newCanvasModel(t)
	root := rootID(m)

	press(m, "o")
	if m.status != "Nothing to collapse" {
		t.Fatalf("status on leaf = %q", m.status)
	}
	addNode(t, m, root, "Acquisition")
	press(m, "o")
	if n, _ := m.session.Document().Node(root); n.Expanded {
		t.Fatal("root still expanded")
	}
	if len(m.session.Layout().Markers) != 1 {
		t.Fatalf("markers = %d, want 1", len(m.session.Layout().Markers))
	}
	press(m, "o")
	if n, _ := m.session.Document().Node(root); !n.Expanded {
		t.Fatal("root still collapsed")
	}
}

func TestSelectionKeys(t *testing.T) {
	m := newCanvasModel(t)
	root := rootID(m)
	a := addNode(t, m, root, "Acquisition")
	b := addNode(t, m, root, "Retention")

	press(m, "l")
	if got, _ := m.session.Selected(); got != a {
		t.Fatalf("right selected %q, want %q", got, a)
	}
	press(m, "J")
	if got, _ := m.session.Selected(); got != b {
		t.Fatalf("shift+j selected %q, want %q", got, b)
	}
	press(m, "h")
	if got, _ := m.session.Selected(); got != root {
		t.Fatalf("left selected %q, want root", got)
	}
	press(m, "esc")
	if _, ok := m.session.Selected(); ok {
		t.Fatal("esc did not clear the selection")
	}
}

func TestZoomKeysReportPercent(t *testing.T) {
	m := newCanvasModel(t)
	press(m, "+")
	if m.status != "Zoom 110%" {
		t.Fatalf("status = %q", m.status)
	}
	press(m, "-", "-")
	if m.status != "Zoom 90%" {
		t.Fatalf("status = %q", m.status)
	}
	press(m, "0")
	if got := m.session.Transform().Percent(); got != 100 {
		t.Fatalf("reset zoom = %d%%", got)
	}
}

func TestZoomDoesNotTouchTree(t *testing.T) {
	m := newCanvasModel(t)
	addNode(t, m, rootID(m), "Acquisition")
	doc := m.session.Document()
	press(m, "+", "+", "-", "0")
	if m.session.Document() != doc {
		t.Fatal("zoom replaced the document snapshot")
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	m := newCanvasModel(t)
	press(m, "?")
	if !m.isOverlay(overlayHelp) {
		t.Fatal("help did not open")
	}
	press(m, "a")
	if m.session.Document().Len() != 1 {
		t.Fatal("canvas action ran under the help overlay")
	}
	press(m, "?")
	if m.overlay != overlayNone {
		t.Fatal("help did not close")
	}
}

func TestSidebarTabCycle(t *testing.T) {
	m := newCanvasModel(t)
	press(m, "]")
	if m.tab != tabAudit {
		t.Fatalf("tab = %v", m.tab)
	}
	press(m, "[", "[")
	if m.tab != tabRules {
		t.Fatalf("tab wrap = %v", m.tab)
	}
}

func TestQuickPickIndex(t *testing.T) {
	cases := map[string]struct {
		want int
		ok   bool
	}{
		"1": {0, true},
		"9": {8, true},
		"0": {0, false},
		"a": {0, false},
		"":  {0, false},
	}
	for key, tc := range cases {
		got, ok := quickPickIndex(key)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("quickPickIndex(%q) = %d, %v", key, got, ok)
		}
	}
}

func TestKeysIgnoredWhenAssistantOff(t *testing.T) {
	m := newCanvasModel(t)
	m.assist = nil
	press(m, "s")
	if !strings.Contains(m.status, "Assistant is off") {
		t.Fatalf("status = %q", m.status)
	}
	if m.session.SuggestLoading() {
		t.Fatal("request issued with the assistant off")
	}
}
