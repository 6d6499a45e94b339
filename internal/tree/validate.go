package tree

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks the structural invariants of a snapshot and reports every
// violation it finds:
//   - the root exists, has no parent and sits at level 0
//   - every other node has a parent that lists it exactly once
//   - every child reference resolves and points back at its parent
//   - level == parent level + 1
//   - every node is reachable from the root exactly once (no cycles, no orphans)
func Validate(d *Document) error {
	if d == nil {
		return errors.New("nil document")
	}

	var errs []error
	root, ok := d.nodes[d.rootID]
	switch {
	case !ok:
		errs = append(errs, fmt.Errorf("root %q missing from nodes", d.rootID))
	case !root.IsRoot():
		errs = append(errs, fmt.Errorf("root %q has parent %q", d.rootID, root.ParentID))
	case root.Level != 0:
		errs = append(errs, fmt.Errorf("root %q at level %d", d.rootID, root.Level))
	}

	ids := make([]NodeID, 0, len(d.nodes))
	for id := range d.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		n := d.nodes[id]
		if n.ID != id {
			errs = append(errs, fmt.Errorf("node keyed %q carries id %q", id, n.ID))
		}
		if n.IsRoot() && id != d.rootID {
			errs = append(errs, fmt.Errorf("node %q has no parent but is not the root", id))
		}
		if !n.IsRoot() {
			parent, ok := d.nodes[n.ParentID]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("node %q references missing parent %q", id, n.ParentID))
			case !slices.Contains(parent.Children, id):
				errs = append(errs, fmt.Errorf("node %q not listed by parent %q", id, n.ParentID))
			case n.Level != parent.Level+1:
				errs = append(errs, fmt.Errorf("node %q at level %d, parent %q at level %d", id, n.Level, n.ParentID, parent.Level))
			}
		}

		seen := make(map[NodeID]struct{}, len(n.Children))
		for _, childID := range n.Children {
			if _, dup := seen[childID]; dup {
				errs = append(errs, fmt.Errorf("node %q lists child %q twice", id, childID))
				continue
			}
			seen[childID] = struct{}{}
			child, ok := d.nodes[childID]
			if !ok {
				errs = append(errs, fmt.Errorf("node %q references missing child %q", id, childID))
				continue
			}
			if child.ParentID != id {
				errs = append(errs, fmt.Errorf("child %q of %q claims parent %q", childID, id, child.ParentID))
			}
		}
	}

	if ok {
		visited := map[NodeID]struct{}{}
		stack := []NodeID{d.rootID}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if _, again := visited[current]; again {
				errs = append(errs, fmt.Errorf("node %q reachable more than once", current))
				continue
			}
			node, exists := d.nodes[current]
			if !exists {
				continue
			}
			visited[current] = struct{}{}
			stack = append(stack, node.Children...)
		}
		if len(visited) != len(d.nodes) {
			errs = append(errs, fmt.Errorf("%d of %d nodes unreachable from root", len(d.nodes)-len(visited), len(d.nodes)))
		}
	}

	return errors.Join(errs...)
}
