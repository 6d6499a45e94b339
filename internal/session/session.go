// Package session owns one open issue tree and everything the canvas needs
// around it: the current snapshot, the selection and edit buffer, the
// viewport transform, and the bookkeeping for in-flight assistant requests.
//
// A Session is driven from a single event loop and is not safe for
// concurrent use. Assistant calls run elsewhere; their results come back
// through ResolveSuggestions and ResolveAudit, which discard anything that no
// longer matches the current state.
package session

import (
	"log/slog"

	"github.com/treykane/logicalroot/internal/logging"
	"github.com/treykane/logicalroot/internal/tree"
	"github.com/treykane/logicalroot/internal/viewport"
)

// Options configure a Session.
type Options struct {
	Metrics tree.Metrics
}

// Session is the single writer for a document and its view state.
type Session struct {
	doc    *tree.Document
	epoch  uint64
	layout tree.Layout

	selected tree.NodeID
	editing  tree.NodeID
	buffer   string

	view    viewport.Transform
	size    viewport.Size
	metrics tree.Metrics

	assist assistState

	log *slog.Logger
}

// New returns a session with no open document.
func New(opts Options) *Session {
	m := opts.Metrics
	if m.NodeWidth <= 0 || m.RowHeight <= 0 {
		m = tree.DefaultMetrics()
	}
	return &Session{
		view:    viewport.New(),
		metrics: m,
		log:     logging.New("session"),
	}
}

// Start opens a new document for problem and selects its root.
func (s *Session) Start(problem tree.Problem) error {
	doc, err := tree.NewDocument(problem)
	if err != nil {
		s.log.Error("create document", "error", err)
		return err
	}
	s.Close()
	s.doc = doc
	s.selected = doc.RootID()
	s.view.ResetView(s.size)
	s.relayout()
	s.log.Info("document started", "type", problem.Type, "epoch", s.epoch)
	return nil
}

// Close drops the document and all transient state. Outstanding assistant
// responses for the old document are discarded when they arrive.
func (s *Session) Close() {
	s.epoch++
	s.doc = nil
	s.layout = tree.Layout{}
	s.selected = ""
	s.editing = ""
	s.buffer = ""
	s.assist = assistState{seq: s.assist.seq}
}

// Active reports whether a document is open.
func (s *Session) Active() bool {
	return s.doc != nil
}

// Document returns the current snapshot, or nil.
func (s *Session) Document() *tree.Document {
	return s.doc
}

// Epoch identifies the current document. It changes on every Start and Close.
func (s *Session) Epoch() uint64 {
	return s.epoch
}

// Layout returns the positioned render structure of the current snapshot.
func (s *Session) Layout() tree.Layout {
	return s.layout
}

// Metrics returns the grid metrics used for layout.
func (s *Session) Metrics() tree.Metrics {
	return s.metrics
}

// replace installs next as the current snapshot when it differs.
func (s *Session) replace(next *tree.Document, op string) bool {
	if next == s.doc {
		s.log.Debug("mutation was a no-op", "op", op)
		return false
	}
	if err := tree.Validate(next); err != nil {
		s.log.Debug("snapshot failed validation", "op", op, "error", err)
	}
	s.doc = next
	if s.editing != "" && !next.Has(s.editing) {
		s.editing, s.buffer = "", ""
	}
	s.relayout()
	return true
}

func (s *Session) relayout() {
	s.layout = tree.ComputeLayout(s.doc, s.metrics)
}
