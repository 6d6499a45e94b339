package app

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Glamour renderers are costly to build, so one is kept per wrap width.
// Widths are bucketed to keep the cache small while the terminal is resized.
var (
	rendererMu    sync.Mutex
	rendererCache = map[int]*glamour.TermRenderer{}
)

const (
	maxRendererCacheEntries = 8
	renderWidthStep         = 10
)

// renderMarkdown renders md for a pane of the given width. On failure the
// source is returned unchanged so the pane never goes blank.
func renderMarkdown(md string, width int) (string, error) {
	renderer, err := markdownRenderer(renderWidthBucket(width))
	if err != nil {
		return md, err
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md, err
	}
	return strings.Trim(out, "\n"), nil
}

func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if r, ok := rendererCache[width]; ok {
		return r, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamourStyleOption(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	if len(rendererCache) >= maxRendererCacheEntries {
		clear(rendererCache)
	}
	rendererCache[width] = renderer
	return renderer, nil
}

// renderWidthBucket rounds a pane width down so nearby widths share a renderer.
func renderWidthBucket(width int) int {
	if width < renderWidthStep*2 {
		return max(width, 1)
	}
	return (width / renderWidthStep) * renderWidthStep
}

// glamourStyleOption resolves the Glamour rendering style from environment
// variables. The lookup order is:
//
//  1. LOGICALROOT_GLAMOUR_STYLE (app-specific override)
//  2. GLAMOUR_STYLE (Glamour's own environment variable)
//  3. "dark", which avoids the OSC background query auto-detection sends
//
// The special value "auto" delegates to Glamour's auto-detection. All other
// values are passed through as standard style names (dark, light, notty).
func glamourStyleOption() glamour.TermRendererOption {
	style := strings.ToLower(strings.TrimSpace(os.Getenv("LOGICALROOT_GLAMOUR_STYLE")))
	if style == "" {
		style = strings.ToLower(strings.TrimSpace(os.Getenv("GLAMOUR_STYLE")))
	}
	if style == "" {
		style = "dark"
	}
	if style == "auto" {
		return glamour.WithAutoStyle()
	}
	switch style {
	case "dark", "light", "notty":
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStandardStyle("dark")
	}
}
