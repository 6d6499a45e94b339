package tree

import (
	"strings"
	"testing"
)

func TestValidateReportsViolations(t *testing.T) {
	base := mustDocument(t, "Root")
	root := base.RootID()
	base, a := mustAdd(t, base, root, "A")
	base, b := mustAdd(t, base, a, "B")

	tests := []struct {
		name    string
		corrupt func(nodes map[NodeID]Node)
		want    string
	}{
		{
			name: "second root",
			corrupt: func(nodes map[NodeID]Node) {
				nodes["orphan"] = Node{ID: "orphan", Level: 0}
			},
			want: "not the root",
		},
		{
			name: "duplicate child",
			corrupt: func(nodes map[NodeID]Node) {
				r := nodes[root]
				r.Children = append(r.Children, a)
				nodes[root] = r
			},
			want: "twice",
		},
		{
			name: "level drift",
			corrupt: func(nodes map[NodeID]Node) {
				n := nodes[b]
				n.Level = 7
				nodes[b] = n
			},
			want: "at level 7",
		},
		{
			name: "missing parent",
			corrupt: func(nodes map[NodeID]Node) {
				n := nodes[b]
				n.ParentID = "gone"
				nodes[b] = n
			},
			want: "missing parent",
		},
		{
			name: "cycle",
			corrupt: func(nodes map[NodeID]Node) {
				n := nodes[b]
				n.Children = []NodeID{a}
				nodes[b] = n
			},
			want: "more than once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := cloneNodes(base)
			tt.corrupt(nodes)
			err := Validate(base.with(nodes))
			if err == nil {
				t.Fatal("expected a violation")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in error, got:\n%v", tt.want, err)
			}
		})
	}
}

func TestValidateNilDocument(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Fatal("expected error for nil document")
	}
}
