package session

import (
	"errors"
	"testing"

	"github.com/treykane/logicalroot/internal/assistant"
	"github.com/treykane/logicalroot/internal/tree"
)

func okSuggestions(texts ...string) assistant.SuggestResult {
	items := make([]assistant.Suggestion, 0, len(texts))
	for _, text := range texts {
		items = append(items, assistant.Suggestion{Text: text})
	}
	return assistant.SuggestResult{Items: items, Status: assistant.StatusOK}
}

func TestSuggestionsApplyToIssuingNode(t *testing.T) {
	s := started(t)
	root := s.Document().RootID()

	ticket, req, ok := s.BeginSuggestions()
	if !ok {
		t.Fatal("begin suggestions")
	}
	if ticket.NodeID != root || req.NodeText != "Why is activation flat?" {
		t.Fatalf("ticket = %+v, req = %+v", ticket, req)
	}
	if !s.SuggestLoading() {
		t.Fatal("expected loading state")
	}

	if !s.ResolveSuggestions(ticket, okSuggestions("Signup", "First value")) {
		t.Fatal("fresh result discarded")
	}
	items, forID := s.Suggestions()
	if len(items) != 2 || forID != root || s.SuggestLoading() {
		t.Fatalf("items = %v for %q loading=%v", items, forID, s.SuggestLoading())
	}
}

func TestStaleSuggestionsAfterSelectionChangeAreDiscarded(t *testing.T) {
	s := started(t)
	root := s.Document().RootID()
	a := mustAdd(t, s, root, "Signup")
	b := mustAdd(t, s, root, "First value")

	s.Select(a)
	ticket, _, _ := s.BeginSuggestions()

	// User moves on before the response for A arrives.
	s.Select(b)
	if s.SuggestLoading() {
		t.Fatal("selection change should drop the loading state")
	}
	if s.ResolveSuggestions(ticket, okSuggestions("Form length")) {
		t.Fatal("stale response for A was applied while B is selected")
	}
	if items, _ := s.Suggestions(); len(items) != 0 {
		t.Fatalf("stale suggestions shown: %v", items)
	}

	// Returning to A does not resurrect the old ticket.
	s.Select(a)
	if s.ResolveSuggestions(ticket, okSuggestions("Form length")) {
		t.Fatal("orphaned ticket applied after reselecting its node")
	}
}

func TestNewerTicketSupersedesOlder(t *testing.T) {
	s := started(t)
	first, _, _ := s.BeginSuggestions()
	second, _, _ := s.BeginSuggestions()
	if first.Seq == second.Seq {
		t.Fatal("tickets share a sequence number")
	}
	if s.ResolveSuggestions(first, okSuggestions("old")) {
		t.Fatal("superseded ticket applied")
	}
	if !s.ResolveSuggestions(second, okSuggestions("new")) {
		t.Fatal("latest ticket discarded")
	}
	if s.ResolveSuggestions(second, okSuggestions("again")) {
		t.Fatal("ticket applied twice")
	}
}

func TestSuggestionsAcrossDocumentsAreDiscarded(t *testing.T) {
	s := started(t)
	ticket, _, _ := s.BeginSuggestions()
	if err := s.Start(tree.Problem{Statement: "A different problem entirely"}); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.ResolveSuggestions(ticket, okSuggestions("x")) {
		t.Fatal("response from previous document applied")
	}
}

func TestSuggestionNotices(t *testing.T) {
	s := started(t)

	ticket, _, _ := s.BeginSuggestions()
	s.ResolveSuggestions(ticket, assistant.SuggestResult{Status: assistant.StatusEmpty})
	if s.Notice().Kind != NoticeNoSuggestions {
		t.Fatalf("notice = %+v, want no suggestions", s.Notice())
	}

	ticket, _, _ = s.BeginSuggestions()
	if s.Notice().Kind != NoticeNone {
		t.Fatal("notice not cleared by a new request")
	}
	s.ResolveSuggestions(ticket, assistant.SuggestResult{Status: assistant.StatusFailed, Err: errors.New("timeout")})
	if s.Notice().Kind != NoticeSuggestFailed {
		t.Fatalf("notice = %+v, want failed", s.Notice())
	}
	if items, _ := s.Suggestions(); len(items) != 0 {
		t.Fatal("failed request produced items")
	}
}

func TestAcceptSuggestionAddsChild(t *testing.T) {
	s := started(t)
	root := s.Document().RootID()
	ticket, _, _ := s.BeginSuggestions()
	s.ResolveSuggestions(ticket, okSuggestions("Signup", "Activation moment"))

	id, ok := s.AcceptSuggestion(1)
	if !ok {
		t.Fatal("accept failed")
	}
	n, _ := s.Document().Node(id)
	if n.Text != "Activation moment" || n.ParentID != root || n.Level != 1 {
		t.Fatalf("accepted node = %+v", n)
	}
	items, _ := s.Suggestions()
	if len(items) != 1 || items[0].Text != "Signup" {
		t.Fatalf("remaining suggestions = %v", items)
	}
	if _, ok := s.AcceptSuggestion(5); ok {
		t.Fatal("accepted out-of-range suggestion")
	}
	mustValid(t, s)
}

func TestAuditTickets(t *testing.T) {
	s := started(t)
	root := s.Document().RootID()
	a := mustAdd(t, s, root, "Only child")

	ticket, req, ok := s.BeginAudit()
	if !ok || len(req.Nodes) != 2 || !s.AuditLoading() {
		t.Fatalf("begin audit = %+v, %v", req, ok)
	}

	// Selection changes do not invalidate an audit.
	s.Select(a)
	res := assistant.AuditResult{
		Status: assistant.StatusOK,
		Items:  []assistant.Feedback{{ID: "f1", Kind: assistant.KindGap, Message: "Only one branch", NodeID: root}},
	}
	if !s.ResolveAudit(ticket, res) {
		t.Fatal("audit discarded")
	}
	items, done := s.Feedback()
	if !done || len(items) != 1 {
		t.Fatalf("feedback = %v done=%v", items, done)
	}

	if !s.FocusFeedback(0) {
		t.Fatal("focus feedback")
	}
	if got, _ := s.Selected(); got != root {
		t.Fatalf("focus selected %q", got)
	}

	stale, _, _ := s.BeginAudit()
	s.Close()
	if s.ResolveAudit(stale, res) {
		t.Fatal("audit applied after close")
	}
}

func TestAuditEmptyAndFailedNotices(t *testing.T) {
	s := started(t)
	ticket, _, _ := s.BeginAudit()
	s.ResolveAudit(ticket, assistant.AuditResult{Status: assistant.StatusEmpty})
	if s.Notice().Kind != NoticeAuditClean {
		t.Fatalf("notice = %+v", s.Notice())
	}
	ticket, _, _ = s.BeginAudit()
	s.ResolveAudit(ticket, assistant.AuditResult{Status: assistant.StatusFailed})
	if s.Notice().Kind != NoticeAuditFailed {
		t.Fatalf("notice = %+v", s.Notice())
	}
}

func TestTicketKindsDoNotCross(t *testing.T) {
	s := started(t)
	st, _, _ := s.BeginSuggestions()
	at, _, _ := s.BeginAudit()
	if s.ResolveAudit(st, assistant.AuditResult{Status: assistant.StatusEmpty}) {
		t.Fatal("suggestion ticket resolved an audit")
	}
	if s.ResolveSuggestions(at, okSuggestions("x")) {
		t.Fatal("audit ticket resolved suggestions")
	}
}
