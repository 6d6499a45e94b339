package session

import "github.com/treykane/logicalroot/internal/tree"

// Editing returns the node being edited.
func (s *Session) Editing() (tree.NodeID, bool) {
	return s.editing, s.editing != ""
}

// Buffer returns the pending label text.
func (s *Session) Buffer() string {
	return s.buffer
}

// BeginEdit selects id and loads its label into the buffer. A pending edit
// on another node is committed first.
func (s *Session) BeginEdit(id tree.NodeID) bool {
	if s.doc == nil {
		return false
	}
	n, ok := s.doc.Node(id)
	if !ok {
		return false
	}
	if s.editing == id {
		return true
	}
	s.CommitEdit()
	s.Select(id)
	s.editing = id
	s.buffer = n.Text
	return true
}

// SetBuffer replaces the pending text. The tree is untouched until commit.
func (s *Session) SetBuffer(text string) {
	if s.editing == "" {
		return
	}
	s.buffer = text
}

// CommitEdit writes the buffer back and ends the edit. An unchanged buffer
// produces no new snapshot.
func (s *Session) CommitEdit() bool {
	if s.editing == "" {
		return false
	}
	id, text := s.editing, s.buffer
	s.editing, s.buffer = "", ""
	return s.replace(s.doc.UpdateText(id, text), "update_text")
}

// CancelEdit ends the edit and discards the buffer.
func (s *Session) CancelEdit() {
	s.editing, s.buffer = "", ""
}
