package ingest

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"gopkg.in/yaml.v3"
)

// document is one parsed markdown file: optional YAML frontmatter plus
// sections titled by their level 1 or 2 headings.
type document struct {
	frontmatter map[string]any
	sections    map[string]string
}

// parseDocument splits a markdown file into frontmatter and heading-titled
// sections. It never fails: broken frontmatter is treated as body text, and
// content before the first heading is ignored.
func parseDocument(content []byte) *document {
	doc := &document{sections: make(map[string]string)}

	body := string(content)
	if strings.HasPrefix(body, "---\n") || strings.HasPrefix(body, "---\r\n") {
		if fm, rest, err := extractFrontmatter(body); err == nil {
			doc.frontmatter = fm
			body = rest
		}
	}

	// A parser instance is single-use; one per document.
	p := parser.NewWithExtensions(parser.CommonExtensions)
	root := p.Parse([]byte(body))

	var current string
	var parts []string
	flush := func() {
		if current == "" {
			return
		}
		doc.sections[current] = strings.TrimSpace(strings.Join(parts, "\n"))
	}

	for _, node := range root.GetChildren() {
		if h, ok := node.(*ast.Heading); ok && h.Level <= 2 {
			flush()
			current = sectionTitle(h)
			parts = nil
			continue
		}
		if current == "" {
			continue
		}
		if text := nodeText(node); text != "" {
			parts = append(parts, text)
		}
	}
	flush()

	return doc
}

// section returns the trimmed content under the given heading.
func (d *document) section(title string) string {
	return d.sections[title]
}

// sectionWithPrefix returns the content of the first section whose title
// starts with the given prefix, compared case-insensitively. Submission
// forms vary the tail of some headings ("Confidence score (0-100) ...")
// between events.
func (d *document) sectionWithPrefix(prefix string) (string, bool) {
	prefix = strings.ToLower(prefix)
	for title, content := range d.sections {
		if strings.HasPrefix(strings.ToLower(title), prefix) {
			return content, true
		}
	}
	return "", false
}

// frontmatterString returns a string-typed frontmatter value.
func (d *document) frontmatterString(key string) (string, bool) {
	v, ok := d.frontmatter[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// frontmatterInt returns an int-typed frontmatter value.
func (d *document) frontmatterInt(key string) (int, bool) {
	v, ok := d.frontmatter[key]
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}

// sectionTitle renders a heading as plain text. A trailing colon is dropped;
// submission templates are inconsistent about them.
func sectionTitle(h *ast.Heading) string {
	title := strings.TrimSpace(nodeText(h))
	title = strings.TrimSuffix(title, ":")
	return strings.TrimSpace(title)
}

// nodeText extracts the plain text of a block node. Paragraphs, list items,
// and table rows are separated by newlines so that line-oriented extraction
// (links, confidence digits) still works on structured content.
func nodeText(node ast.Node) string {
	var b strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		switch v := n.(type) {
		case *ast.Text:
			if entering {
				b.Write(v.Literal)
			}
		case *ast.Code:
			if entering {
				b.Write(v.Literal)
			}
		case *ast.CodeBlock:
			if entering {
				b.Write(v.Literal)
			}
		case *ast.Hardbreak:
			if entering {
				b.WriteByte('\n')
			}
		case *ast.Paragraph, *ast.ListItem, *ast.Heading, *ast.TableRow:
			if !entering {
				b.WriteByte('\n')
			}
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(b.String())
}

// extractFrontmatter parses a leading YAML block delimited by "---" lines.
// Returns the parsed map and the remaining body.
func extractFrontmatter(content string) (map[string]any, string, error) {
	const delimiter = "---"

	start := len(delimiter)
	if len(content) > start && content[start] == '\r' {
		start++
	}
	if len(content) > start && content[start] == '\n' {
		start++
	}

	closeIdx := strings.Index(content[start:], "\n"+delimiter)
	if closeIdx == -1 {
		return nil, content, fmt.Errorf("no closing frontmatter delimiter")
	}

	yamlContent := content[start : start+closeIdx]

	bodyStart := start + closeIdx + 1 + len(delimiter)
	for bodyStart < len(content) && (content[bodyStart] == '\n' || content[bodyStart] == '\r') {
		bodyStart++
	}
	body := ""
	if bodyStart < len(content) {
		body = content[bodyStart:]
	}

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(yamlContent), &fm); err != nil {
		return nil, content, fmt.Errorf("parse YAML frontmatter: %w", err)
	}
	return fm, body, nil
}
