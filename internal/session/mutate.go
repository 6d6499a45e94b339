package session

import "github.com/treykane/logicalroot/internal/tree"

// AddChild appends a child labelled text under parent.
func (s *Session) AddChild(parent tree.NodeID, text string) (tree.NodeID, bool) {
	if s.doc == nil {
		return "", false
	}
	s.CommitEdit()
	next, id := s.doc.AddChild(parent, text)
	if id == "" {
		s.log.Debug("add child ignored", "parent", parent)
		return "", false
	}
	s.replace(next, "add_child")
	return id, true
}

// AddChildToSelected adds a child under the selection, selects it and starts
// editing it. A collapsed parent is expanded first.
func (s *Session) AddChildToSelected(text string) (tree.NodeID, bool) {
	if s.selected == "" {
		return "", false
	}
	parent := s.selected
	if n, ok := s.doc.Node(parent); ok && !n.Expanded {
		s.replace(s.doc.SetExpanded(parent, true), "expand")
	}
	id, ok := s.AddChild(parent, text)
	if !ok {
		return "", false
	}
	s.BeginEdit(id)
	return id, true
}

// DeleteSelected removes the selected subtree. The selection is cleared only
// when something was deleted; the root can never be.
func (s *Session) DeleteSelected() bool {
	n, ok := s.SelectedNode()
	if !ok {
		return false
	}
	if n.IsRoot() {
		s.log.Debug("refused to delete root", "id", n.ID)
		return false
	}
	s.CancelEdit()
	if !s.replace(s.doc.DeleteSubtree(n.ID), "delete_subtree") {
		return false
	}
	s.selected = ""
	s.assist.dropSuggestions()
	return true
}

// ToggleExpanded flips a node's collapse state.
func (s *Session) ToggleExpanded(id tree.NodeID) bool {
	if s.doc == nil {
		return false
	}
	return s.replace(s.doc.ToggleExpanded(id), "toggle_expanded")
}

// ToggleSelected flips the selected node's collapse state.
func (s *Session) ToggleSelected() bool {
	if s.selected == "" {
		return false
	}
	return s.ToggleExpanded(s.selected)
}
