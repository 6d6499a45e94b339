package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/treykane/logicalroot/internal/export"
)

func stubClipboard(t *testing.T, err error) *string {
	t.Helper()
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		if err != nil {
			return err
		}
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })
	return &copied
}

func TestExportOverlayCyclesFormats(t *testing.T) {
	m := newCanvasModel(t)
	press(m, "x")
	if !m.isOverlay(overlayExport) {
		t.Fatal("export overlay did not open")
	}
	if m.exportFormat != export.FormatMarkdown {
		t.Fatalf("initial format = %v", m.exportFormat)
	}

	press(m, "tab")
	if m.exportFormat != export.FormatHTML {
		t.Fatalf("tab format = %v", m.exportFormat)
	}
	press(m, "shift+tab", "shift+tab")
	if m.exportFormat != export.FormatYAML {
		t.Fatalf("wrapped format = %v", m.exportFormat)
	}
	if !strings.Contains(m.preview.View(), "problemStatement:") {
		t.Fatalf("yaml preview missing statement:\n%s", m.preview.View())
	}

	press(m, "esc")
	if m.overlay != overlayNone {
		t.Fatal("esc did not close export")
	}
}

func TestExportOverlayCommitsOpenEdit(t *testing.T) {
	m := newCanvasModel(t)
	press(m, "a", "Pricing")
	id, _ := m.session.Editing()
	m.openExport()
	if _, editing := m.session.Editing(); editing {
		t.Fatal("edit still open under export")
	}
	if got := nodeText(t, m, id); got != "Pricing" {
		t.Fatalf("text = %q", got)
	}
}

func TestWriteExportToConfiguredDir(t *testing.T) {
	m := newCanvasModel(t)
	addNode(t, m, rootID(m), "Acquisition")
	dir := t.TempDir()
	m.cfg.ExportDir = dir
	m.exportFormat = export.FormatJSON

	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	m.writeExport(now)

	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("exports = %v, %v (status %q)", matches, err, m.status)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "Acquisition") {
		t.Fatalf("export content missing child:\n%s", data)
	}
	if !strings.HasPrefix(m.status, "Exported json to ") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestWriteExportWithoutDir(t *testing.T) {
	m := newCanvasModel(t)
	m.cfg.ExportDir = ""
	m.writeExport(time.Now())
	if m.status != "No export directory configured" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestCopyOutline(t *testing.T) {
	copied := stubClipboard(t, nil)
	m := newCanvasModel(t)
	addNode(t, m, rootID(m), "Acquisition")

	press(m, "y")
	if !strings.Contains(*copied, "  - Acquisition") {
		t.Fatalf("outline = %q", *copied)
	}
	if m.status != "Copied outline (2 nodes)" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestCopyFailureReported(t *testing.T) {
	stubClipboard(t, errors.New("no clipboard"))
	m := newCanvasModel(t)
	m.copyOutlineToClipboard()
	if m.status != "Clipboard copy failed" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestCopyExportInPreviewFormat(t *testing.T) {
	copied := stubClipboard(t, nil)
	m := newCanvasModel(t)
	press(m, "x", "tab", "y")
	if !strings.Contains(*copied, "<html") {
		t.Fatalf("copied %q, want html", *copied)
	}
}
