package tree

import (
	"testing"

	"pgregory.net/rapid"
)

// TestRandomMutationsPreserveInvariants drives a document through a random
// mix of mutations, checking invariants and snapshot isolation after every
// step.
func TestRandomMutationsPreserveInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc, err := NewDocument(Problem{Statement: "Why are margins shrinking?", Type: Business})
		if err != nil {
			t.Fatalf("new document: %v", err)
		}

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			ids := doc.IDs()
			target := rapid.SampledFrom(ids).Draw(t, "target")
			before := doc
			beforeLen := before.Len()

			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				var id NodeID
				doc, id = doc.AddChild(target, rapid.StringN(0, 12, -1).Draw(t, "text"))
				if doc.Len() != beforeLen+1 {
					t.Fatalf("add: expected %d nodes, got %d", beforeLen+1, doc.Len())
				}
				n, _ := doc.Node(id)
				parent, _ := doc.Node(target)
				if n.Level != parent.Level+1 {
					t.Fatalf("add: level %d under parent level %d", n.Level, parent.Level)
				}
			case 1:
				doc = doc.UpdateText(target, rapid.StringN(0, 12, -1).Draw(t, "text"))
				if doc.Len() != beforeLen {
					t.Fatal("update changed node count")
				}
			case 2:
				size := doc.SubtreeSize(target)
				doc = doc.DeleteSubtree(target)
				if target == doc.RootID() {
					if doc != before {
						t.Fatal("root delete produced a new snapshot")
					}
					break
				}
				if doc.Len() != beforeLen-size {
					t.Fatalf("delete: expected %d nodes, got %d", beforeLen-size, doc.Len())
				}
				if doc.Has(target) {
					t.Fatal("delete left the target behind")
				}
			case 3:
				doc = doc.ToggleExpanded(target)
			}

			if err := Validate(doc); err != nil {
				t.Fatalf("invariants violated after step %d:\n%v", i, err)
			}
			if before.Len() != beforeLen {
				t.Fatal("mutation modified the previous snapshot")
			}
			if err := Validate(before); err != nil {
				t.Fatalf("previous snapshot corrupted:\n%v", err)
			}
		}
	})
}

func TestWalkNeverEmitsCollapsedDescendants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc, _ := NewDocument(Problem{Statement: "root"})
		for i, n := 0, rapid.IntRange(1, 40).Draw(t, "n"); i < n; i++ {
			parent := rapid.SampledFrom(doc.IDs()).Draw(t, "parent")
			doc, _ = doc.AddChild(parent, "")
		}
		for _, id := range doc.IDs() {
			if rapid.Bool().Draw(t, "collapse") {
				doc = doc.SetExpanded(id, false)
			}
		}

		hiddenUnder := map[NodeID]bool{}
		for _, id := range doc.IDs() {
			n, _ := doc.Node(id)
			if !n.Expanded {
				for _, d := range doc.Descendants(id) {
					hiddenUnder[d] = true
				}
			}
		}

		emitted := 0
		for row := range doc.Walk(doc.RootID()) {
			if row.Kind != RowNode {
				continue
			}
			emitted++
			if hiddenUnder[row.Node.ID] {
				t.Fatalf("node %q emitted below a collapsed ancestor", row.Node.ID)
			}
		}
		if emitted != doc.Len()-len(hiddenUnder) {
			t.Fatalf("emitted %d rows, expected %d", emitted, doc.Len()-len(hiddenUnder))
		}
	})
}
