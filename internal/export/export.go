// Package export renders a tree snapshot for printing and for downstream
// tools. Outline formats follow the canvas: collapsed branches are shown as
// hidden-branch markers rather than expanded.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/treykane/logicalroot/internal/logging"
	"github.com/treykane/logicalroot/internal/tree"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

var exportLog = logging.New("export")

// Format selects an output encoding.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists every supported format in menu order.
var Formats = []Format{FormatMarkdown, FormatHTML, FormatJSON, FormatYAML}

var ErrUnknownFormat = errors.New("unknown export format")

const (
	dirPermission   = 0o755
	filePermission  = 0o644
	timestampLayout = "20060102-150405"
	maxSlugLen      = 48
)

// ParseFormat accepts a format name or file extension.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), ".")) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
}

// Ext returns the file extension, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatHTML:
		return "html"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return ""
}

// Data is the whole-document snapshot shape.
type Data struct {
	tree.Problem `yaml:",inline"`

	RootID tree.NodeID               `json:"rootId" yaml:"rootId"`
	Nodes  map[tree.NodeID]tree.Node `json:"nodes" yaml:"nodes"`
}

// Snapshot copies doc into its serialisable shape.
func Snapshot(doc *tree.Document) Data {
	ids := doc.IDs()
	nodes := make(map[tree.NodeID]tree.Node, len(ids))
	for _, id := range ids {
		if n, ok := doc.Node(id); ok {
			nodes[id] = n
		}
	}
	return Data{RootID: doc.RootID(), Nodes: nodes, Problem: doc.Problem()}
}

// Markdown renders the visible outline with the problem framing on top.
func Markdown(doc *tree.Document) string {
	p := doc.Problem()
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", orUntitled(p.Statement))
	fmt.Fprintf(&b, "- **Category:** %s\n", p.Type)
	if p.SuccessCriteria != "" {
		fmt.Fprintf(&b, "- **Success criteria:** %s\n", p.SuccessCriteria)
	}
	if p.Scope != "" {
		fmt.Fprintf(&b, "- **Scope:** %s\n", p.Scope)
	}
	b.WriteString("\n## Issue tree\n\n")
	b.WriteString(Outline(doc))
	return b.String()
}

// Outline renders just the nested bullet list.
func Outline(doc *tree.Document) string {
	var b strings.Builder
	for row := range doc.Walk(doc.RootID()) {
		b.WriteString(strings.Repeat("  ", row.Depth))
		if row.Kind == tree.RowHidden {
			fmt.Fprintf(&b, "- *(%s)*\n", tree.MarkerLabel(row.Hidden))
			continue
		}
		fmt.Fprintf(&b, "- %s\n", orUntitled(row.Node.Text))
	}
	return b.String()
}

// HTML renders Markdown as a standalone printable page.
func HTML(doc *tree.Document) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(doc)), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}
	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&out, "<title>%s</title>\n", html.EscapeString(orUntitled(doc.Problem().Statement)))
	out.WriteString("<style>body{font-family:sans-serif;max-width:60rem;margin:2rem auto}li{margin:.2rem 0}@media print{body{margin:0}}</style>\n")
	out.WriteString("</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

// JSON encodes the full snapshot, collapsed branches included.
func JSON(doc *tree.Document) ([]byte, error) {
	out, err := json.MarshalIndent(Snapshot(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(out, '\n'), nil
}

// YAML encodes the full snapshot.
func YAML(doc *tree.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Snapshot(doc)); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Render encodes doc in format.
func Render(doc *tree.Document, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return []byte(Markdown(doc)), nil
	case FormatHTML:
		return HTML(doc)
	case FormatJSON:
		return JSON(doc)
	case FormatYAML:
		return YAML(doc)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Write renders doc into dir as <slug>-<timestamp>.<ext> and returns the
// path written.
func Write(dir string, doc *tree.Document, format Format, now time.Time) (string, error) {
	content, err := Render(doc, format)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, dirPermission); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.%s", Slug(doc.Problem().Statement), now.Format(timestampLayout), format.Ext())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, filePermission); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	exportLog.Info("exported tree", "path", path, "format", format, "nodes", doc.Len())
	return path, nil
}

// Slug turns a statement into a short file-name stem.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
		if b.Len() >= maxSlugLen {
			break
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "issue-tree"
	}
	return slug
}

func orUntitled(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
