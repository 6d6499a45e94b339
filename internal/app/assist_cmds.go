package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/treykane/logicalroot/internal/assistant"
	"github.com/treykane/logicalroot/internal/session"
)

// suggestMsg carries a finished suggestion call back to the event loop with
// the ticket it was issued under.
type suggestMsg struct {
	ticket session.Ticket
	result assistant.SuggestResult
}

// auditMsg carries a finished audit call.
type auditMsg struct {
	ticket session.Ticket
	result assistant.AuditResult
}

func suggestCmd(b *assistant.Boundary, t session.Ticket, req assistant.SuggestRequest) tea.Cmd {
	return func() tea.Msg {
		return suggestMsg{ticket: t, result: b.Suggest(context.Background(), req)}
	}
}

func auditCmd(b *assistant.Boundary, t session.Ticket, req assistant.AuditRequest) tea.Cmd {
	return func() tea.Msg {
		return auditMsg{ticket: t, result: b.Audit(context.Background(), req)}
	}
}

// requestSuggestions issues a suggestion call for the selected node.
func (m *Model) requestSuggestions() tea.Cmd {
	if m.assist == nil {
		m.status = "Assistant is off (set assistant.provider in config)"
		return nil
	}
	t, req, ok := m.session.BeginSuggestions()
	m.syncEditor()
	if !ok {
		m.status = "Select a node to get suggestions"
		return nil
	}
	m.tab = tabSuggestions
	m.status = "Asking for branches..."
	appLog.Debug("suggest requested", "seq", t.Seq, "node", t.NodeID)
	return tea.Batch(suggestCmd(m.assist, t, req), m.startSpinner())
}

// requestAudit issues a whole-tree audit.
func (m *Model) requestAudit() tea.Cmd {
	if m.assist == nil {
		m.status = "Assistant is off (set assistant.provider in config)"
		return nil
	}
	t, req, ok := m.session.BeginAudit()
	m.syncEditor()
	if !ok {
		return nil
	}
	m.tab = tabAudit
	m.status = "Auditing tree..."
	appLog.Debug("audit requested", "seq", t.Seq, "nodes", len(req.Nodes))
	return tea.Batch(auditCmd(m.assist, t, req), m.startSpinner())
}

// handleSuggestResult hands the result to the session, which drops it when
// the selection or document moved on since the request went out.
func (m *Model) handleSuggestResult(msg suggestMsg) (tea.Model, tea.Cmd) {
	if !m.session.ResolveSuggestions(msg.ticket, msg.result) {
		return m, nil
	}
	switch msg.result.Status {
	case assistant.StatusOK:
		m.status = fmt.Sprintf("%d suggestions ready", len(msg.result.Items))
	case assistant.StatusFailed:
		m.setStatusError(m.session.Notice().Message, msg.result.Err, "seq", msg.ticket.Seq)
	default:
		m.status = m.session.Notice().Message
	}
	return m, nil
}

func (m *Model) handleAuditResult(msg auditMsg) (tea.Model, tea.Cmd) {
	if !m.session.ResolveAudit(msg.ticket, msg.result) {
		return m, nil
	}
	switch msg.result.Status {
	case assistant.StatusOK:
		m.status = fmt.Sprintf("Audit found %d issues", len(msg.result.Items))
	case assistant.StatusFailed:
		m.setStatusError(m.session.Notice().Message, msg.result.Err, "seq", msg.ticket.Seq)
	default:
		m.status = m.session.Notice().Message
	}
	return m, nil
}

// acceptSuggestion adds suggestion i under the node it was fetched for.
func (m *Model) acceptSuggestion(i int) {
	items, _ := m.session.Suggestions()
	if i < 0 || i >= len(items) {
		return
	}
	text := items[i].Text
	if _, ok := m.session.AcceptSuggestion(i); !ok {
		m.status = "Could not add suggestion"
		return
	}
	m.syncEditor()
	m.status = "Added branch: " + text
}

// focusFeedback selects and centres the node finding i points at.
func (m *Model) focusFeedback(i int) {
	items, _ := m.session.Feedback()
	if i < 0 || i >= len(items) {
		return
	}
	if items[i].NodeID == "" {
		m.status = items[i].Message
		return
	}
	if !m.session.FocusFeedback(i) {
		m.status = "That node no longer exists"
		return
	}
	m.syncEditor()
	m.status = "Focused: " + items[i].Message
}
