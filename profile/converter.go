package profile

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

var (
	excessiveNewlines = regexp.MustCompile(`\n{3,}`)
	whitespaceRuns    = regexp.MustCompile(`\s+`)
)

// Converter turns profile page HTML into a title plus plain-text snippets
// that the classifier can scan for role keywords.
type Converter struct {
	converter *md.Converter
}

// NewConverter creates a converter with GitHub Flavored Markdown rules.
func NewConverter() *Converter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &Converter{converter: converter}
}

// Convert extracts the page title and up to maxSnippets text snippets from
// the given HTML content.
func (c *Converter) Convert(htmlContent []byte, maxSnippets int) (string, []string, error) {
	doc, err := html.Parse(bytes.NewReader(htmlContent))
	if err != nil {
		return "", nil, fmt.Errorf("parse HTML: %w", err)
	}

	title := extractHTMLTitle(doc)

	markdown, err := c.converter.ConvertString(string(htmlContent))
	if err != nil {
		return title, nil, fmt.Errorf("convert to markdown: %w", err)
	}

	return title, extractSnippets(markdown, maxSnippets), nil
}

// extractHTMLTitle walks the parsed document for the <title> element.
func extractHTMLTitle(doc *html.Node) string {
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return title
}

// extractSnippets splits cleaned markdown into short plain-text snippets,
// keeping only lines with enough words to carry a role or bio statement.
func extractSnippets(markdown string, maxSnippets int) []string {
	if maxSnippets <= 0 {
		return nil
	}

	cleaned := excessiveNewlines.ReplaceAllString(markdown, "\n\n")

	var snippets []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = stripMarkdownSyntax(line)
		line = whitespaceRuns.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)
		if len(strings.Fields(line)) < 3 {
			continue
		}
		if len(line) > 240 {
			line = line[:240]
		}
		snippets = append(snippets, line)
		if len(snippets) >= maxSnippets {
			break
		}
	}
	return snippets
}

// stripMarkdownSyntax removes heading markers, list bullets, emphasis and
// link syntax so snippet matching sees plain words.
func stripMarkdownSyntax(line string) string {
	line = strings.TrimLeft(line, "#>*- \t")
	line = strings.ReplaceAll(line, "**", "")
	line = strings.ReplaceAll(line, "__", "")

	// Collapse [text](url) links to their text.
	for {
		open := strings.Index(line, "[")
		if open < 0 {
			break
		}
		closeIdx := strings.Index(line[open:], "](")
		if closeIdx < 0 {
			break
		}
		end := strings.Index(line[open+closeIdx:], ")")
		if end < 0 {
			break
		}
		text := line[open+1 : open+closeIdx]
		line = line[:open] + text + line[open+closeIdx+end+1:]
	}
	return line
}
