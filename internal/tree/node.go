// Package tree holds the issue-tree document model: an immutable snapshot of
// a rooted hierarchy of labelled nodes plus the problem it decomposes.
//
// Every mutation returns a new *Document (or the receiver itself when the
// request is a no-op), so a snapshot handed to a renderer, an exporter, or an
// in-flight assistant request is never modified underneath it.
package tree

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// NodeID identifies a node for its whole lifetime.
type NodeID string

// ProblemType is the category the user picks when framing the problem.
type ProblemType string

const (
	Business  ProblemType = "Business"
	Product   ProblemType = "Product"
	Strategic ProblemType = "Strategic"
	Personal  ProblemType = "Personal"
)

// ProblemTypes lists the categories in display order.
var ProblemTypes = []ProblemType{Business, Product, Strategic, Personal}

var ErrUnknownProblemType = errors.New("unknown problem type")

// ParseProblemType matches a category name case-insensitively.
func ParseProblemType(value string) (ProblemType, error) {
	value = strings.TrimSpace(value)
	for _, pt := range ProblemTypes {
		if strings.EqualFold(value, string(pt)) {
			return pt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProblemType, value)
}

// Problem is the document-level framing captured by the intake form.
type Problem struct {
	Statement       string      `json:"problemStatement" yaml:"problemStatement"`
	Type            ProblemType `json:"problemType" yaml:"problemType"`
	SuccessCriteria string      `json:"successCriteria" yaml:"successCriteria"`
	Scope           string      `json:"scope" yaml:"scope"`
}

// Node is one issue in the tree.
type Node struct {
	ID       NodeID   `json:"id" yaml:"id"`
	Text     string   `json:"text" yaml:"text"`
	ParentID NodeID   `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Children []NodeID `json:"children" yaml:"children"`
	Expanded bool     `json:"isExpanded" yaml:"isExpanded"`
	Level    int      `json:"level" yaml:"level"`
	Notes    string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool {
	return n.ParentID == ""
}

func (n Node) clone() Node {
	n.Children = slices.Clone(n.Children)
	return n
}

// NodeSummary is the flattened per-node view sent to the audit collaborator.
type NodeSummary struct {
	ID       NodeID `json:"id"`
	Text     string `json:"text"`
	ParentID NodeID `json:"parentId,omitempty"`
	Level    int    `json:"level"`
}
