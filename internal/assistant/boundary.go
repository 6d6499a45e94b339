package assistant

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/treykane/logicalroot/internal/logging"
	"golang.org/x/time/rate"
)

// Status tells "nothing found" apart from "request failed".
type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SuggestResult is the outcome of a suggestion request. Items is empty
// unless Status is StatusOK.
type SuggestResult struct {
	Items  []Suggestion
	Status Status
	Err    error
}

// AuditResult is the outcome of an audit request.
type AuditResult struct {
	Items  []Feedback
	Status Status
	Err    error
}

// Options tune a Boundary.
type Options struct {
	// Timeout bounds each call. Zero means DefaultTimeout.
	Timeout time.Duration
	// RequestsPerMinute caps call rate. Zero disables limiting.
	RequestsPerMinute int
}

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 30 * time.Second

// Boundary wraps a Provider so calls never fail loudly: errors, timeouts and
// malformed payloads become empty results with StatusFailed. Calls are not
// retried.
type Boundary struct {
	provider Provider
	timeout  time.Duration
	limiter  *rate.Limiter
	log      *slog.Logger
}

// NewBoundary wraps p.
func NewBoundary(p Provider, opts Options) *Boundary {
	b := &Boundary{
		provider: p,
		timeout:  opts.Timeout,
		log:      logging.New("assistant"),
	}
	if b.timeout <= 0 {
		b.timeout = DefaultTimeout
	}
	if opts.RequestsPerMinute > 0 {
		b.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}
	return b
}

// Suggest asks the provider for child branches.
func (b *Boundary) Suggest(ctx context.Context, req SuggestRequest) SuggestResult {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.wait(ctx); err != nil {
		b.log.Warn("suggest rate limited", "error", err)
		return SuggestResult{Status: StatusFailed, Err: err}
	}
	items, err := b.provider.Suggest(ctx, req)
	if err != nil {
		b.log.Error("suggest request failed", "node", req.NodeText, "error", err)
		return SuggestResult{Status: StatusFailed, Err: err}
	}
	items = cleanSuggestions(items, req.ExistingChildren)
	if len(items) == 0 {
		return SuggestResult{Status: StatusEmpty}
	}
	b.log.Debug("suggestions received", "node", req.NodeText, "count", len(items))
	return SuggestResult{Items: items, Status: StatusOK}
}

// Audit asks the provider to review the whole tree.
func (b *Boundary) Audit(ctx context.Context, req AuditRequest) AuditResult {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.wait(ctx); err != nil {
		b.log.Warn("audit rate limited", "error", err)
		return AuditResult{Status: StatusFailed, Err: err}
	}
	items, err := b.provider.Audit(ctx, req)
	if err != nil {
		b.log.Error("audit request failed", "nodes", len(req.Nodes), "error", err)
		return AuditResult{Status: StatusFailed, Err: err}
	}
	known := make(map[string]bool, len(req.Nodes))
	for _, n := range req.Nodes {
		known[string(n.ID)] = true
	}
	items = cleanFeedback(items, known)
	if len(items) == 0 {
		return AuditResult{Status: StatusEmpty}
	}
	b.log.Debug("audit received", "count", len(items))
	return AuditResult{Items: items, Status: StatusOK}
}

func (b *Boundary) wait(ctx context.Context) error {
	if b.limiter == nil {
		return nil
	}
	return b.limiter.Wait(ctx)
}

// cleanSuggestions trims labels and drops blanks and case-insensitive
// duplicates, including labels that already exist as children.
func cleanSuggestions(items []Suggestion, existing []string) []Suggestion {
	seen := make(map[string]bool, len(existing)+len(items))
	for _, e := range existing {
		seen[strings.ToLower(strings.TrimSpace(e))] = true
	}
	out := make([]Suggestion, 0, len(items))
	for _, s := range items {
		s.Text = strings.TrimSpace(s.Text)
		s.Description = strings.TrimSpace(s.Description)
		key := strings.ToLower(s.Text)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// cleanFeedback drops empty messages, maps unknown kinds to info, fills in
// missing ids and clears node references that do not exist in the request.
func cleanFeedback(items []Feedback, known map[string]bool) []Feedback {
	out := make([]Feedback, 0, len(items))
	for _, f := range items {
		f.Message = strings.TrimSpace(f.Message)
		if f.Message == "" {
			continue
		}
		switch f.Kind {
		case KindOverlap, KindGap, KindImbalance, KindInfo:
		default:
			f.Kind = KindInfo
		}
		if strings.TrimSpace(f.ID) == "" {
			f.ID = uuid.NewString()
		}
		if f.NodeID != "" && !known[string(f.NodeID)] {
			f.NodeID = ""
		}
		out = append(out, f)
	}
	return out
}
