// Package assistant is the boundary to the text-generation collaborator that
// proposes child branches and audits a tree for MECE problems.
//
// Providers may fail, time out or return junk. Boundary absorbs all of that:
// callers always get a result value, never an error to propagate, and an
// empty result is "nothing to show" rather than a fault.
package assistant

import (
	"context"

	"github.com/treykane/logicalroot/internal/tree"
)

// Suggestion is a proposed child branch.
type Suggestion struct {
	Text        string `json:"text"`
	Description string `json:"description"`
}

// FeedbackKind classifies an audit finding.
type FeedbackKind string

const (
	KindOverlap   FeedbackKind = "overlap"
	KindGap       FeedbackKind = "gap"
	KindImbalance FeedbackKind = "imbalance"
	KindInfo      FeedbackKind = "info"
)

// Feedback is one audit finding, optionally pointing at a node.
type Feedback struct {
	ID      string       `json:"id"`
	Kind    FeedbackKind `json:"type"`
	Message string       `json:"message"`
	NodeID  tree.NodeID  `json:"nodeId,omitempty"`
}

// SuggestRequest carries the context for branch suggestions.
type SuggestRequest struct {
	ProblemStatement string
	ProblemType      tree.ProblemType
	NodeText         string
	NodeLevel        int
	ExistingChildren []string
}

// AuditRequest carries the flattened tree for a MECE audit.
type AuditRequest struct {
	ProblemStatement string
	ProblemType      tree.ProblemType
	Nodes            []tree.NodeSummary
}

// Provider is a source of suggestions and audits.
type Provider interface {
	Suggest(ctx context.Context, req SuggestRequest) ([]Suggestion, error)
	Audit(ctx context.Context, req AuditRequest) ([]Feedback, error)
}

// Guidelines are the MECE rules shown alongside the tree.
var Guidelines = []string{
	"Mutually Exclusive: Ensure branches don't overlap in scope.",
	"Collectively Exhaustive: Together, the branches must cover the entire parent issue.",
	"Same Level of Abstraction: Try to keep sibling nodes at a similar depth of reasoning.",
	"Depth vs. Breadth: Aim for 2-5 branches per level for clarity.",
}

// ProTip closes the rules panel.
const ProTip = "The power of a tree isn't in its depth, but in its ability to isolate the specific branch where the root cause lives."

// SuggestRequestFor builds the suggestion payload for node id of doc.
func SuggestRequestFor(doc *tree.Document, id tree.NodeID) (SuggestRequest, bool) {
	node, ok := doc.Node(id)
	if !ok {
		return SuggestRequest{}, false
	}
	children := doc.ChildrenOf(id)
	existing := make([]string, 0, len(children))
	for _, c := range children {
		existing = append(existing, c.Text)
	}
	p := doc.Problem()
	return SuggestRequest{
		ProblemStatement: p.Statement,
		ProblemType:      p.Type,
		NodeText:         node.Text,
		NodeLevel:        node.Level,
		ExistingChildren: existing,
	}, true
}

// AuditRequestFor builds the audit payload for doc.
func AuditRequestFor(doc *tree.Document) AuditRequest {
	p := doc.Problem()
	return AuditRequest{
		ProblemStatement: p.Statement,
		ProblemType:      p.Type,
		Nodes:            doc.Summary(),
	}
}
