package app

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/treykane/logicalroot/internal/assistant"
	"github.com/treykane/logicalroot/internal/config"
)

func TestRenderWidthBucket(t *testing.T) {
	cases := map[int]int{
		0:   1,
		7:   7,
		19:  19,
		20:  20,
		81:  80,
		119: 110,
	}
	for in, want := range cases {
		if got := renderWidthBucket(in); got != want {
			t.Fatalf("renderWidthBucket(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestRenderMarkdownReusesRenderer(t *testing.T) {
	t.Setenv("LOGICALROOT_GLAMOUR_STYLE", "notty")
	out, err := renderMarkdown("## MECE guidelines\n\n- Mutually exclusive\n", 60)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(ansi.Strip(out), "Mutually exclusive") {
		t.Fatalf("rendered = %q", out)
	}
	first, _ := markdownRenderer(renderWidthBucket(65))
	second, _ := markdownRenderer(renderWidthBucket(69))
	if first == nil || first != second {
		t.Fatal("widths in one bucket did not share a renderer")
	}
}

func TestRulesTabRendersGuidelines(t *testing.T) {
	m := newCanvasModel(t)
	m.tab = tabRules
	text := ansi.Strip(strings.Join(m.sidebarLines(60), "\n"))
	if !strings.Contains(text, "MECE") {
		t.Fatalf("rules tab = %q", text)
	}
}

func TestNewProvider(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvOpenAIAPIKey, "")

	p, err := NewProvider(config.Config{Assistant: config.Assistant{Provider: config.ProviderOff}})
	if err != nil || p != nil {
		t.Fatalf("off = %v, %v", p, err)
	}
	p, err = NewProvider(config.Config{})
	if err != nil {
		t.Fatalf("default provider: %v", err)
	}
	if _, ok := p.(assistant.Heuristic); !ok {
		t.Fatalf("default provider = %T", p)
	}
	if _, err := NewProvider(config.Config{Assistant: config.Assistant{Provider: config.ProviderOpenAI}}); err == nil {
		t.Fatal("openai without a key should fail")
	}
	if _, err := NewProvider(config.Config{Assistant: config.Assistant{Provider: "bard"}}); err == nil {
		t.Fatal("unknown provider accepted")
	}

	t.Setenv(config.EnvAPIKey, "sk-test")
	p, err = NewProvider(config.Config{Assistant: config.Assistant{Provider: config.ProviderOpenAI}})
	if err != nil {
		t.Fatalf("openai provider: %v", err)
	}
	if _, ok := p.(*assistant.OpenAI); !ok {
		t.Fatalf("openai provider = %T", p)
	}
}

func TestBoundaryOptionsDefaultTimeout(t *testing.T) {
	if got := boundaryOptions(config.Config{}).Timeout; got != AssistantTimeout {
		t.Fatalf("timeout = %v", got)
	}
	cfg := config.Config{Assistant: config.Assistant{TimeoutSeconds: 5, RequestsPerMinute: 12}}
	opts := boundaryOptions(cfg)
	if opts.Timeout != 5*time.Second || opts.RequestsPerMinute != 12 {
		t.Fatalf("options = %+v", opts)
	}
}
