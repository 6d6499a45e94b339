package assistant

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

const systemPrompt = "You are a professional consultant who structures problems into MECE issue trees. Reply with JSON only."

func suggestPrompt(req SuggestRequest) string {
	existing := strings.Join(req.ExistingChildren, ", ")
	if strings.TrimSpace(existing) == "" {
		existing = "None"
	}
	var b strings.Builder
	b.WriteString("Given a problem and a specific branch, suggest 3-5 MECE (Mutually Exclusive, Collectively Exhaustive) sub-branches.\n\n")
	fmt.Fprintf(&b, "Problem Statement: %s\n", req.ProblemStatement)
	fmt.Fprintf(&b, "Problem Category: %s\n", req.ProblemType)
	fmt.Fprintf(&b, "Parent Issue/Branch: %s\n", req.NodeText)
	fmt.Fprintf(&b, "Already existing sub-branches: %s\n\n", existing)
	b.WriteString("Provide suggestions that help break down the parent issue logically.\n")
	b.WriteString(`Respond with {"suggestions": [{"text": "short title for the branch", "description": "brief explanation of why this is important"}]}.`)
	return b.String()
}

func auditPrompt(req AuditRequest) (string, error) {
	summary, err := json.MarshalIndent(req.Nodes, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode tree summary: %w", err)
	}
	var b strings.Builder
	b.WriteString("Analyze the following issue tree for MECE (Mutually Exclusive, Collectively Exhaustive) logical errors.\n\n")
	fmt.Fprintf(&b, "Context:\nProblem: %s\nType: %s\n\n", req.ProblemStatement, req.ProblemType)
	fmt.Fprintf(&b, "Tree Structure:\n%s\n\n", summary)
	b.WriteString("Check for:\n1. Overlapping branches (ME error).\n2. Missing dimensions or logic gaps (CE error).\n3. Uneven depth or logic inconsistency.\n\n")
	b.WriteString(`Respond with {"feedback": [{"id": "unique id", "type": "overlap|gap|imbalance|info", "message": "constructive feedback", "nodeId": "optional id of the problematic node"}]}.`)
	return b.String(), nil
}
