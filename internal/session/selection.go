package session

import (
	"slices"

	"github.com/treykane/logicalroot/internal/tree"
)

// Selected returns the selected node id.
func (s *Session) Selected() (tree.NodeID, bool) {
	return s.selected, s.selected != ""
}

// SelectedNode returns a copy of the selected node.
func (s *Session) SelectedNode() (tree.Node, bool) {
	if s.doc == nil || s.selected == "" {
		return tree.Node{}, false
	}
	return s.doc.Node(s.selected)
}

// Select makes id the selection. Unknown ids are ignored. Moving the
// selection commits a pending edit and drops suggestions fetched for the
// previous node.
func (s *Session) Select(id tree.NodeID) bool {
	if s.doc == nil || !s.doc.Has(id) {
		return false
	}
	if id == s.selected {
		return true
	}
	s.CommitEdit()
	s.selected = id
	s.assist.dropSuggestions()
	return true
}

// ClearSelection deselects, committing any pending edit.
func (s *Session) ClearSelection() {
	if s.selected == "" {
		return
	}
	s.CommitEdit()
	s.selected = ""
	s.assist.dropSuggestions()
}

// SelectParent moves to the selected node's parent.
func (s *Session) SelectParent() bool {
	n, ok := s.SelectedNode()
	if !ok || n.IsRoot() {
		return false
	}
	return s.Select(n.ParentID)
}

// SelectFirstChild moves to the first child, expanding a collapsed node.
func (s *Session) SelectFirstChild() bool {
	n, ok := s.SelectedNode()
	if !ok || len(n.Children) == 0 {
		return false
	}
	if !n.Expanded {
		s.replace(s.doc.SetExpanded(n.ID, true), "expand")
	}
	return s.Select(n.Children[0])
}

// SelectSibling moves delta places among the selected node's siblings,
// stopping at either end.
func (s *Session) SelectSibling(delta int) bool {
	n, ok := s.SelectedNode()
	if !ok || n.IsRoot() {
		return false
	}
	parent, ok := s.doc.Node(n.ParentID)
	if !ok {
		return false
	}
	i := slices.Index(parent.Children, n.ID)
	j := clamp(i+delta, 0, len(parent.Children)-1)
	if i < 0 || j == i {
		return false
	}
	return s.Select(parent.Children[j])
}

// SelectVisible moves delta rows through the canvas order. With nothing
// selected it lands on the root.
func (s *Session) SelectVisible(delta int) bool {
	if s.doc == nil {
		return false
	}
	if s.selected == "" {
		return s.Select(s.doc.RootID())
	}
	order := s.doc.Visible()
	i := slices.Index(order, s.selected)
	if i < 0 {
		return s.Select(s.doc.RootID())
	}
	j := clamp(i+delta, 0, len(order)-1)
	if j == i {
		return false
	}
	return s.Select(order[j])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
