package tree

import (
	"iter"
	"slices"
)

// RowKind distinguishes node rows from the placeholder emitted for a
// collapsed branch.
type RowKind int

const (
	RowNode RowKind = iota
	RowHidden
)

// Row is one entry of the render sequence.
//
// For RowHidden rows, Node is the collapsed node, Depth is one deeper than
// that node and Hidden holds its child count. Path lists ancestor ids from
// the walk start down to (but excluding) the row's own position; rows share
// Path backing arrays, so callers must not modify it.
type Row struct {
	Kind   RowKind
	Node   Node
	Depth  int
	Path   []NodeID
	Hidden int
}

// ParentID returns the id of the row's visual parent, or "" for the start row.
func (r Row) ParentID() NodeID {
	if len(r.Path) == 0 {
		return ""
	}
	return r.Path[len(r.Path)-1]
}

// Walk yields the visible rows below start in depth-first pre-order.
//
// Children of a collapsed node are not visited; a single RowHidden row stands
// in for them. Child references that do not resolve, and nodes already
// emitted, are skipped. The sequence is a pure function of the snapshot and
// can be iterated any number of times.
func (d *Document) Walk(start NodeID) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		if d == nil {
			return
		}
		type frame struct {
			id    NodeID
			depth int
			path  []NodeID
		}
		stack := []frame{{id: start}}
		seen := map[NodeID]struct{}{}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			node, ok := d.nodes[f.id]
			if !ok {
				continue
			}
			if _, again := seen[f.id]; again {
				continue
			}
			seen[f.id] = struct{}{}
			if !yield(Row{Kind: RowNode, Node: node.clone(), Depth: f.depth, Path: f.path}) {
				return
			}
			if len(node.Children) == 0 {
				continue
			}

			childPath := append(slices.Clip(f.path), node.ID)
			if !node.Expanded {
				hidden := Row{Kind: RowHidden, Node: node.clone(), Depth: f.depth + 1, Path: childPath, Hidden: len(node.Children)}
				if !yield(hidden) {
					return
				}
				continue
			}
			for i := len(node.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{id: node.Children[i], depth: f.depth + 1, path: childPath})
			}
		}
	}
}

// Visible returns the ids of the node rows Walk would emit from the root.
func (d *Document) Visible() []NodeID {
	if d == nil {
		return nil
	}
	var out []NodeID
	for row := range d.Walk(d.rootID) {
		if row.Kind == RowNode {
			out = append(out, row.Node.ID)
		}
	}
	return out
}
