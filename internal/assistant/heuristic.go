package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/treykane/logicalroot/internal/tree"
)

// starterFrames are first-level decompositions offered for a fresh root.
var starterFrames = map[tree.ProblemType][]string{
	tree.Business:  {"Revenue vs. Cost", "Internal vs. External", "Acquisition vs. Retention"},
	tree.Product:   {"Usage vs. Retention", "User Needs vs. Technical Feasibility", "New Users vs. Existing Users"},
	tree.Strategic: {"Strengths vs. Weaknesses", "Market Trends vs. Operational Capabilities", "Short-term Growth vs. Long-term Stability"},
	tree.Personal:  {"Physical Health vs. Mental Wellbeing", "Career Goals vs. Work-Life Balance", "Immediate Rewards vs. Future Value"},
}

var genericFrames = []Suggestion{
	{Text: "Internal factors", Description: "Drivers within your control."},
	{Text: "External factors", Description: "Drivers outside your control."},
}

// maxBranches is the widest a level should get before it reads as a list.
const maxBranches = 5

// Heuristic is an offline Provider. It offers canned decompositions and
// checks the tree shape with fixed rules.
type Heuristic struct{}

// Suggest implements Provider.
func (Heuristic) Suggest(ctx context.Context, req SuggestRequest) ([]Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if left, right, ok := splitFrame(req.NodeText); ok {
		return []Suggestion{
			{Text: left, Description: fmt.Sprintf("One side of %q.", req.NodeText)},
			{Text: right, Description: fmt.Sprintf("The other side of %q.", req.NodeText)},
		}, nil
	}
	if req.NodeLevel == 0 {
		frames := starterFrames[req.ProblemType]
		out := make([]Suggestion, 0, len(frames))
		for _, f := range frames {
			out = append(out, Suggestion{Text: f, Description: "A common first split for " + strings.ToLower(string(req.ProblemType)) + " problems."})
		}
		return out, nil
	}
	return append([]Suggestion(nil), genericFrames...), nil
}

func splitFrame(text string) (string, string, bool) {
	left, right, ok := strings.Cut(text, " vs. ")
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if !ok || left == "" || right == "" {
		return "", "", false
	}
	return left, right, true
}

// Audit implements Provider.
func (Heuristic) Audit(ctx context.Context, req AuditRequest) ([]Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Nodes) <= 1 {
		return []Feedback{{
			ID:      "info-empty",
			Kind:    KindInfo,
			Message: "The tree has no branches yet. Start by splitting the root into 2-5 parts.",
		}}, nil
	}

	children := make(map[tree.NodeID][]tree.NodeSummary, len(req.Nodes))
	for _, n := range req.Nodes {
		if n.ParentID != "" {
			children[n.ParentID] = append(children[n.ParentID], n)
		}
	}

	var out []Feedback
	for _, n := range req.Nodes {
		if strings.TrimSpace(n.Text) == "" {
			out = append(out, Feedback{
				ID:      "info-" + string(n.ID),
				Kind:    KindInfo,
				Message: "This branch has no label.",
				NodeID:  n.ID,
			})
		}

		kids := children[n.ID]
		switch {
		case len(kids) == 1:
			out = append(out, Feedback{
				ID:      "gap-" + string(n.ID),
				Kind:    KindGap,
				Message: fmt.Sprintf("%q has a single branch. A lone child rarely covers the whole parent.", n.Text),
				NodeID:  n.ID,
			})
		case len(kids) > maxBranches:
			out = append(out, Feedback{
				ID:      "imbalance-width-" + string(n.ID),
				Kind:    KindImbalance,
				Message: fmt.Sprintf("%q has %d branches. Group them into at most %d.", n.Text, len(kids), maxBranches),
				NodeID:  n.ID,
			})
		}

		seen := make(map[string]bool, len(kids))
		for _, k := range kids {
			key := strings.ToLower(strings.TrimSpace(k.Text))
			if key == "" {
				continue
			}
			if seen[key] {
				out = append(out, Feedback{
					ID:      "overlap-" + string(k.ID),
					Kind:    KindOverlap,
					Message: fmt.Sprintf("%q appears more than once under %q.", k.Text, n.Text),
					NodeID:  k.ID,
				})
			}
			seen[key] = true
		}
	}

	if f, ok := depthImbalance(req.Nodes, children); ok {
		out = append(out, f)
	}
	return out, nil
}

// depthImbalance flags trees whose leaves sit more than one level apart,
// pointing at the shallowest leaf.
func depthImbalance(nodes []tree.NodeSummary, children map[tree.NodeID][]tree.NodeSummary) (Feedback, bool) {
	var shallow tree.NodeSummary
	minLevel, maxLevel := -1, -1
	for _, n := range nodes {
		if n.ParentID == "" || len(children[n.ID]) > 0 {
			continue
		}
		if minLevel < 0 || n.Level < minLevel {
			minLevel, shallow = n.Level, n
		}
		if n.Level > maxLevel {
			maxLevel = n.Level
		}
	}
	if minLevel < 0 || maxLevel-minLevel <= 1 {
		return Feedback{}, false
	}
	return Feedback{
		ID:      "imbalance-depth",
		Kind:    KindImbalance,
		Message: fmt.Sprintf("Leaves range from level %d to %d. %q may need more breakdown.", minLevel, maxLevel, shallow.Text),
		NodeID:  shallow.ID,
	}, true
}
