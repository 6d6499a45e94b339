package tree

import (
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/treykane/logicalroot/internal/logging"
)

var storeLog = logging.New("tree")

// newID generates node identifiers. Tests swap it to exercise failures.
var newID = func() (NodeID, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return NodeID(id.String()), nil
}

// Document is an immutable issue-tree snapshot. The zero value is not usable;
// build one with NewDocument.
type Document struct {
	rootID  NodeID
	nodes   map[NodeID]Node
	problem Problem
}

// NewDocument creates a tree with a single expanded root whose label starts
// as the problem statement. Later edits to the root label do not touch
// Problem.Statement.
func NewDocument(problem Problem) (*Document, error) {
	if problem.Type == "" {
		problem.Type = Business
	}
	rootID, err := newID()
	if err != nil {
		return nil, err
	}
	return &Document{
		rootID: rootID,
		nodes: map[NodeID]Node{
			rootID: {
				ID:       rootID,
				Text:     problem.Statement,
				Children: []NodeID{},
				Expanded: true,
				Level:    0,
			},
		},
		problem: problem,
	}, nil
}

// RootID returns the identifier of the root node.
func (d *Document) RootID() NodeID {
	return d.rootID
}

// Problem returns the document framing.
func (d *Document) Problem() Problem {
	return d.problem
}

// Len returns the number of nodes in the tree.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.nodes)
}

// Has reports whether id names a node in this snapshot.
func (d *Document) Has(id NodeID) bool {
	if d == nil {
		return false
	}
	_, ok := d.nodes[id]
	return ok
}

// Node returns a copy of the node with the given id.
func (d *Document) Node(id NodeID) (Node, bool) {
	if d == nil {
		return Node{}, false
	}
	n, ok := d.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// Parent returns the parent of id, if id exists and is not the root.
func (d *Document) Parent(id NodeID) (Node, bool) {
	n, ok := d.Node(id)
	if !ok || n.IsRoot() {
		return Node{}, false
	}
	return d.Node(n.ParentID)
}

// ChildrenOf returns the existing children of id in display order.
func (d *Document) ChildrenOf(id NodeID) []Node {
	n, ok := d.nodes[id]
	if !ok {
		return nil
	}
	out := make([]Node, 0, len(n.Children))
	for _, childID := range n.Children {
		if child, ok := d.nodes[childID]; ok {
			out = append(out, child.clone())
		}
	}
	return out
}

// AddChild appends a new expanded leaf under parentID and returns the new
// snapshot with the child's id. A missing parent leaves the document as is
// and returns an empty id.
func (d *Document) AddChild(parentID NodeID, text string) (*Document, NodeID) {
	parent, ok := d.nodes[parentID]
	if !ok {
		storeLog.Debug("add child ignored: unknown parent", "parent", parentID)
		return d, ""
	}
	id, err := newID()
	if err != nil {
		storeLog.Error("add child: generate id", "parent", parentID, "error", err)
		return d, ""
	}

	nodes := maps.Clone(d.nodes)
	parent.Children = append(slices.Clip(parent.Children), id)
	nodes[parentID] = parent
	nodes[id] = Node{
		ID:       id,
		Text:     text,
		ParentID: parentID,
		Children: []NodeID{},
		Expanded: true,
		Level:    parent.Level + 1,
	}
	return d.with(nodes), id
}

// UpdateText replaces the label of id. Unknown ids and unchanged text return
// the receiver.
func (d *Document) UpdateText(id NodeID, text string) *Document {
	node, ok := d.nodes[id]
	if !ok {
		storeLog.Debug("update text ignored: unknown node", "node", id)
		return d
	}
	if node.Text == text {
		return d
	}
	nodes := maps.Clone(d.nodes)
	node.Text = text
	nodes[id] = node
	return d.with(nodes)
}

// SetExpanded shows or hides the descendants of id. Structure is unaffected.
func (d *Document) SetExpanded(id NodeID, expanded bool) *Document {
	node, ok := d.nodes[id]
	if !ok {
		storeLog.Debug("set expanded ignored: unknown node", "node", id)
		return d
	}
	if node.Expanded == expanded {
		return d
	}
	nodes := maps.Clone(d.nodes)
	node.Expanded = expanded
	nodes[id] = node
	return d.with(nodes)
}

// ToggleExpanded flips the collapse state of id.
func (d *Document) ToggleExpanded(id NodeID) *Document {
	node, ok := d.nodes[id]
	if !ok {
		storeLog.Debug("toggle expanded ignored: unknown node", "node", id)
		return d
	}
	return d.SetExpanded(id, !node.Expanded)
}

// DeleteSubtree removes id and everything below it. The root cannot be
// deleted; asking to is a no-op, as is an unknown id.
//
// The doomed set is collected first and the new arena is built in one pass,
// so no snapshot ever holds a partially removed subtree.
func (d *Document) DeleteSubtree(id NodeID) *Document {
	node, ok := d.nodes[id]
	if !ok {
		storeLog.Debug("delete ignored: unknown node", "node", id)
		return d
	}
	if node.IsRoot() {
		storeLog.Debug("delete ignored: root is protected", "node", id)
		return d
	}

	doomed := d.subtree(id)
	nodes := make(map[NodeID]Node, len(d.nodes)-len(doomed))
	for nodeID, n := range d.nodes {
		if _, gone := doomed[nodeID]; !gone {
			nodes[nodeID] = n
		}
	}
	if parent, ok := nodes[node.ParentID]; ok {
		parent.Children = slices.DeleteFunc(slices.Clone(parent.Children), func(c NodeID) bool {
			return c == id
		})
		nodes[parent.ID] = parent
	}
	return d.with(nodes)
}

// SubtreeSize counts id and all of its descendants; zero for unknown ids.
func (d *Document) SubtreeSize(id NodeID) int {
	if !d.Has(id) {
		return 0
	}
	return len(d.subtree(id))
}

// Descendants returns every node below id in pre-order, ignoring collapse.
func (d *Document) Descendants(id NodeID) []NodeID {
	ids := d.preorder(id)
	if len(ids) == 0 {
		return nil
	}
	return ids[1:]
}

// IDs returns every node id in pre-order from the root, ignoring collapse.
func (d *Document) IDs() []NodeID {
	if d == nil {
		return nil
	}
	return d.preorder(d.rootID)
}

// Summary flattens the whole tree (collapsed branches included) in pre-order.
func (d *Document) Summary() []NodeSummary {
	ids := d.IDs()
	out := make([]NodeSummary, 0, len(ids))
	for _, id := range ids {
		n := d.nodes[id]
		out = append(out, NodeSummary{ID: n.ID, Text: n.Text, ParentID: n.ParentID, Level: n.Level})
	}
	return out
}

func (d *Document) with(nodes map[NodeID]Node) *Document {
	return &Document{rootID: d.rootID, nodes: nodes, problem: d.problem}
}

// subtree collects id and its descendants with an explicit worklist. Dangling
// references are skipped and revisits are ignored so a corrupt arena cannot
// loop forever.
func (d *Document) subtree(id NodeID) map[NodeID]struct{} {
	seen := map[NodeID]struct{}{}
	stack := []NodeID{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, dup := seen[current]; dup {
			continue
		}
		node, ok := d.nodes[current]
		if !ok {
			continue
		}
		seen[current] = struct{}{}
		stack = append(stack, node.Children...)
	}
	return seen
}

func (d *Document) preorder(start NodeID) []NodeID {
	if _, ok := d.nodes[start]; !ok {
		return nil
	}
	var out []NodeID
	seen := map[NodeID]struct{}{}
	stack := []NodeID{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node, ok := d.nodes[current]
		if !ok {
			continue
		}
		if _, dup := seen[current]; dup {
			continue
		}
		seen[current] = struct{}{}
		out = append(out, current)
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
	return out
}
