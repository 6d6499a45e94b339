package session

import (
	"slices"

	"github.com/treykane/logicalroot/internal/assistant"
	"github.com/treykane/logicalroot/internal/tree"
)

// RequestKind tells suggestion tickets from audit tickets.
type RequestKind int

const (
	RequestSuggest RequestKind = iota + 1
	RequestAudit
)

// Ticket tags an assistant request with the state it was issued against.
type Ticket struct {
	Kind   RequestKind
	Seq    uint64
	NodeID tree.NodeID
	Epoch  uint64
}

// NoticeKind classifies the last assistant outcome shown to the user.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeNoSuggestions
	NoticeSuggestFailed
	NoticeAuditClean
	NoticeAuditFailed
)

// Notice is a one-line outcome message for the sidebar.
type Notice struct {
	Kind    NoticeKind
	Message string
}

type assistState struct {
	seq uint64

	suggestTicket  Ticket
	suggestLoading bool
	suggestions    []assistant.Suggestion
	suggestedFor   tree.NodeID

	auditTicket  Ticket
	auditLoading bool
	feedback     []assistant.Feedback
	audited      bool

	notice Notice
}

// dropSuggestions clears the list and orphans any outstanding ticket.
func (a *assistState) dropSuggestions() {
	a.suggestTicket = Ticket{}
	a.suggestLoading = false
	a.suggestions = nil
	a.suggestedFor = ""
	if a.notice.Kind == NoticeNoSuggestions || a.notice.Kind == NoticeSuggestFailed {
		a.notice = Notice{}
	}
}

func (a *assistState) next(kind RequestKind, id tree.NodeID, epoch uint64) Ticket {
	a.seq++
	return Ticket{Kind: kind, Seq: a.seq, NodeID: id, Epoch: epoch}
}

// BeginSuggestions issues a ticket for the selected node and returns the
// request payload to send with it.
func (s *Session) BeginSuggestions() (Ticket, assistant.SuggestRequest, bool) {
	if s.doc == nil || s.selected == "" {
		return Ticket{}, assistant.SuggestRequest{}, false
	}
	s.CommitEdit()
	req, ok := assistant.SuggestRequestFor(s.doc, s.selected)
	if !ok {
		return Ticket{}, assistant.SuggestRequest{}, false
	}
	t := s.assist.next(RequestSuggest, s.selected, s.epoch)
	s.assist.suggestTicket = t
	s.assist.suggestLoading = true
	s.assist.suggestions = nil
	s.assist.suggestedFor = ""
	s.assist.notice = Notice{}
	return t, req, true
}

// ResolveSuggestions applies res if t is still the latest suggestion ticket,
// its node is still selected and the document has not been replaced.
// Anything else is discarded and false is returned.
func (s *Session) ResolveSuggestions(t Ticket, res assistant.SuggestResult) bool {
	cur := s.assist.suggestTicket
	if t.Kind != RequestSuggest || t != cur || t.Epoch != s.epoch || t.NodeID != s.selected {
		s.log.Debug("discarded stale suggestions", "seq", t.Seq, "node", t.NodeID, "current_seq", cur.Seq)
		return false
	}
	s.assist.suggestLoading = false
	s.assist.suggestTicket = Ticket{}
	switch res.Status {
	case assistant.StatusOK:
		s.assist.suggestions = slices.Clone(res.Items)
		s.assist.suggestedFor = t.NodeID
	case assistant.StatusEmpty:
		s.assist.notice = Notice{Kind: NoticeNoSuggestions, Message: "No new suggestions for this branch."}
	default:
		s.assist.notice = Notice{Kind: NoticeSuggestFailed, Message: "Suggestion request failed. Try again."}
	}
	return true
}

// Suggestions returns the current list and the node it was fetched for.
func (s *Session) Suggestions() ([]assistant.Suggestion, tree.NodeID) {
	return s.assist.suggestions, s.assist.suggestedFor
}

// SuggestLoading reports whether a suggestion request is outstanding.
func (s *Session) SuggestLoading() bool {
	return s.assist.suggestLoading
}

// AcceptSuggestion adds suggestion i as a child of the node it was fetched
// for and removes it from the list.
func (s *Session) AcceptSuggestion(i int) (tree.NodeID, bool) {
	items := s.assist.suggestions
	if i < 0 || i >= len(items) {
		return "", false
	}
	parent := s.assist.suggestedFor
	id, ok := s.AddChild(parent, items[i].Text)
	if !ok {
		return "", false
	}
	s.assist.suggestions = slices.Delete(slices.Clone(items), i, i+1)
	return id, true
}

// BeginAudit issues a ticket for a whole-tree audit.
func (s *Session) BeginAudit() (Ticket, assistant.AuditRequest, bool) {
	if s.doc == nil {
		return Ticket{}, assistant.AuditRequest{}, false
	}
	s.CommitEdit()
	t := s.assist.next(RequestAudit, "", s.epoch)
	s.assist.auditTicket = t
	s.assist.auditLoading = true
	s.assist.feedback = nil
	s.assist.audited = false
	if s.assist.notice.Kind == NoticeAuditClean || s.assist.notice.Kind == NoticeAuditFailed {
		s.assist.notice = Notice{}
	}
	return t, assistant.AuditRequestFor(s.doc), true
}

// ResolveAudit applies res if t is the latest audit ticket for the current
// document.
func (s *Session) ResolveAudit(t Ticket, res assistant.AuditResult) bool {
	cur := s.assist.auditTicket
	if t.Kind != RequestAudit || t != cur || t.Epoch != s.epoch {
		s.log.Debug("discarded stale audit", "seq", t.Seq, "current_seq", cur.Seq)
		return false
	}
	s.assist.auditLoading = false
	s.assist.auditTicket = Ticket{}
	s.assist.audited = true
	switch res.Status {
	case assistant.StatusOK:
		s.assist.feedback = slices.Clone(res.Items)
	case assistant.StatusEmpty:
		s.assist.notice = Notice{Kind: NoticeAuditClean, Message: "No issues found."}
	default:
		s.assist.notice = Notice{Kind: NoticeAuditFailed, Message: "Audit request failed. Try again."}
	}
	return true
}

// Feedback returns the last audit findings and whether an audit has
// completed for this document.
func (s *Session) Feedback() ([]assistant.Feedback, bool) {
	return s.assist.feedback, s.assist.audited
}

// AuditLoading reports whether an audit is outstanding.
func (s *Session) AuditLoading() bool {
	return s.assist.auditLoading
}

// FocusFeedback selects the node finding i points at, if it still exists.
func (s *Session) FocusFeedback(i int) bool {
	items := s.assist.feedback
	if i < 0 || i >= len(items) || items[i].NodeID == "" {
		return false
	}
	if !s.Select(items[i].NodeID) {
		return false
	}
	s.CenterOn(items[i].NodeID)
	return true
}

// Notice returns the latest assistant outcome message.
func (s *Session) Notice() Notice {
	return s.assist.notice
}
