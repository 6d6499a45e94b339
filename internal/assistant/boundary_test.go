package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/treykane/logicalroot/internal/tree"
)

type fakeProvider struct {
	suggestions []Suggestion
	feedback    []Feedback
	err         error
	delay       time.Duration
	calls       int
}

func (f *fakeProvider) Suggest(ctx context.Context, _ SuggestRequest) ([]Suggestion, error) {
	f.calls++
	if err := f.block(ctx); err != nil {
		return nil, err
	}
	return f.suggestions, f.err
}

func (f *fakeProvider) Audit(ctx context.Context, _ AuditRequest) ([]Feedback, error) {
	f.calls++
	if err := f.block(ctx); err != nil {
		return nil, err
	}
	return f.feedback, f.err
}

func (f *fakeProvider) block(ctx context.Context) error {
	if f.delay == 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestBoundarySuggestStatuses(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		want     Status
		wantLen  int
	}{
		{
			name:     "ok",
			provider: &fakeProvider{suggestions: []Suggestion{{Text: "Pricing"}, {Text: "Onboarding"}}},
			want:     StatusOK,
			wantLen:  1,
		},
		{
			name:     "empty list",
			provider: &fakeProvider{},
			want:     StatusEmpty,
		},
		{
			name:     "only blanks and existing",
			provider: &fakeProvider{suggestions: []Suggestion{{Text: "  "}, {Text: "pricing"}}},
			want:     StatusEmpty,
		},
		{
			name:     "provider error",
			provider: &fakeProvider{err: errors.New("boom")},
			want:     StatusFailed,
		},
		{
			name:     "malformed payload",
			provider: &fakeProvider{err: ErrMalformedPayload},
			want:     StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoundary(tt.provider, Options{})
			// "Pricing" already exists as a child.
			got := b.Suggest(context.Background(), SuggestRequest{ExistingChildren: []string{"Pricing"}})
			if got.Status != tt.want {
				t.Fatalf("status = %v, want %v (err %v)", got.Status, tt.want, got.Err)
			}
			if len(got.Items) != tt.wantLen {
				t.Fatalf("items = %d, want %d", len(got.Items), tt.wantLen)
			}
			if tt.want == StatusFailed && got.Err == nil {
				t.Fatal("expected error on failed result")
			}
		})
	}
}

func TestBoundaryTimeoutBecomesFailed(t *testing.T) {
	p := &fakeProvider{delay: time.Second, suggestions: []Suggestion{{Text: "late"}}}
	b := NewBoundary(p, Options{Timeout: 20 * time.Millisecond})

	got := b.Suggest(context.Background(), SuggestRequest{})
	if got.Status != StatusFailed {
		t.Fatalf("status = %v, want failed", got.Status)
	}
	if !errors.Is(got.Err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", got.Err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("expected no items, got %v", got.Items)
	}
}

func TestBoundaryRateLimitFailsFast(t *testing.T) {
	p := &fakeProvider{suggestions: []Suggestion{{Text: "A"}}}
	b := NewBoundary(p, Options{Timeout: 50 * time.Millisecond, RequestsPerMinute: 1})

	if got := b.Suggest(context.Background(), SuggestRequest{}); got.Status != StatusOK {
		t.Fatalf("first call status = %v", got.Status)
	}
	got := b.Suggest(context.Background(), SuggestRequest{})
	if got.Status != StatusFailed {
		t.Fatalf("second call status = %v, want failed", got.Status)
	}
	if p.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", p.calls)
	}
}

func TestBoundaryNeverRetries(t *testing.T) {
	p := &fakeProvider{err: errors.New("down")}
	b := NewBoundary(p, Options{})
	b.Audit(context.Background(), AuditRequest{})
	if p.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", p.calls)
	}
}

func TestBoundaryAuditSanitises(t *testing.T) {
	p := &fakeProvider{feedback: []Feedback{
		{ID: "a", Kind: KindOverlap, Message: "Pricing overlaps Revenue", NodeID: "n1"},
		{Kind: "weird", Message: "something odd", NodeID: "ghost"},
		{ID: "c", Kind: KindGap, Message: "   "},
	}}
	b := NewBoundary(p, Options{})
	req := AuditRequest{Nodes: []tree.NodeSummary{{ID: "root"}, {ID: "n1", ParentID: "root", Level: 1}}}

	got := b.Audit(context.Background(), req)
	if got.Status != StatusOK {
		t.Fatalf("status = %v", got.Status)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %+v, want 2", got.Items)
	}
	if got.Items[0].NodeID != "n1" {
		t.Fatalf("known node reference dropped: %+v", got.Items[0])
	}
	second := got.Items[1]
	if second.Kind != KindInfo {
		t.Fatalf("unknown kind = %q, want info", second.Kind)
	}
	if second.ID == "" {
		t.Fatal("expected generated id")
	}
	if second.NodeID != "" {
		t.Fatalf("unknown node reference kept: %q", second.NodeID)
	}
}

func TestBoundaryAuditEmpty(t *testing.T) {
	b := NewBoundary(&fakeProvider{}, Options{})
	if got := b.Audit(context.Background(), AuditRequest{}); got.Status != StatusEmpty {
		t.Fatalf("status = %v, want empty", got.Status)
	}
}

func TestRequestBuilders(t *testing.T) {
	doc, err := tree.NewDocument(tree.Problem{Statement: "Why is churn rising in Q3?", Type: tree.Product})
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	doc, a := doc.AddChild(doc.RootID(), "Usage")
	doc, _ = doc.AddChild(doc.RootID(), "Retention")

	req, ok := SuggestRequestFor(doc, doc.RootID())
	if !ok {
		t.Fatal("expected request for root")
	}
	if req.NodeText != "Why is churn rising in Q3?" || req.ProblemType != tree.Product {
		t.Fatalf("unexpected request: %+v", req)
	}
	if len(req.ExistingChildren) != 2 || req.ExistingChildren[0] != "Usage" {
		t.Fatalf("existing children = %v", req.ExistingChildren)
	}
	if _, ok := SuggestRequestFor(doc, "missing"); ok {
		t.Fatal("expected no request for missing node")
	}

	leaf, _ := SuggestRequestFor(doc, a)
	if leaf.NodeLevel != 1 || len(leaf.ExistingChildren) != 0 {
		t.Fatalf("leaf request = %+v", leaf)
	}

	audit := AuditRequestFor(doc)
	if len(audit.Nodes) != 3 {
		t.Fatalf("audit nodes = %d, want 3", len(audit.Nodes))
	}
}
