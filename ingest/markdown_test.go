package ingest

import (
	"strings"
	"testing"
)

func TestParseDocumentSections(t *testing.T) {
	content := `Intro text before any heading is ignored.

# Project Name

Cluster Billing

## Project Description (max 400 words):

A billing reconciler for multi-tenant clusters.

It splits usage by namespace.

### Details

Nested headings stay inside the parent section.

## Hackathon ID

hack-2026
`
	doc := parseDocument([]byte(content))

	if got := doc.section("Project Name"); got != "Cluster Billing" {
		t.Errorf("Project Name = %q, want %q", got, "Cluster Billing")
	}
	desc := doc.section("Project Description (max 400 words)")
	if !strings.Contains(desc, "billing reconciler") {
		t.Errorf("description missing body text: %q", desc)
	}
	if !strings.Contains(desc, "namespace") {
		t.Errorf("description lost a later paragraph: %q", desc)
	}
	if !strings.Contains(desc, "Nested headings") {
		t.Errorf("level-3 content not folded into parent section: %q", desc)
	}
	if got := doc.section("Hackathon ID"); got != "hack-2026" {
		t.Errorf("Hackathon ID = %q, want %q", got, "hack-2026")
	}
	if got := doc.section("No Such Section"); got != "" {
		t.Errorf("missing section = %q, want empty", got)
	}
}

func TestParseDocumentFrontmatter(t *testing.T) {
	content := `---
reviewer: Jane Doe
confidence: 85
---

## Text review of the project (max 400 words)

Solid work.
`
	doc := parseDocument([]byte(content))

	name, ok := doc.frontmatterString("reviewer")
	if !ok || name != "Jane Doe" {
		t.Errorf("frontmatterString(reviewer) = %q, %v, want %q, true", name, ok, "Jane Doe")
	}
	n, ok := doc.frontmatterInt("confidence")
	if !ok || n != 85 {
		t.Errorf("frontmatterInt(confidence) = %d, %v, want 85, true", n, ok)
	}
	if _, ok := doc.frontmatterString("confidence"); ok {
		t.Error("an integer value should not read back as a string")
	}
	if got := doc.section("Text review of the project (max 400 words)"); got != "Solid work." {
		t.Errorf("section after frontmatter = %q", got)
	}
}

func TestParseDocumentBrokenFrontmatter(t *testing.T) {
	content := "---\nnot: [valid\n---\n\n# Reviewer name\n\nJane\n"
	doc := parseDocument([]byte(content))

	if doc.frontmatter != nil {
		t.Errorf("frontmatter = %v, want nil for unparseable YAML", doc.frontmatter)
	}
	if got := doc.section("Reviewer name"); got != "Jane" {
		t.Errorf("Reviewer name = %q, want %q", got, "Jane")
	}
}

func TestSectionWithPrefix(t *testing.T) {
	content := `## Confidence score (0-100) _How much confidence do you have in your own review?_

90 - I work in this space.
`
	doc := parseDocument([]byte(content))

	got, ok := doc.sectionWithPrefix("confidence score")
	if !ok {
		t.Fatal("prefix lookup missed the emphasized heading")
	}
	if !strings.Contains(got, "90") {
		t.Errorf("section content = %q, want the score text", got)
	}
	if _, ok := doc.sectionWithPrefix("reviewer"); ok {
		t.Error("prefix lookup matched a section that does not exist")
	}
}

func TestParseDocumentListContent(t *testing.T) {
	content := `## Links

- LinkedIn: https://linkedin.com/in/jane
- Github: https://github.com/jane
`
	doc := parseDocument([]byte(content))

	links := doc.section("Links")
	for _, line := range []string{
		"LinkedIn: https://linkedin.com/in/jane",
		"Github: https://github.com/jane",
	} {
		if !strings.Contains(links, line) {
			t.Errorf("Links section missing %q: %q", line, links)
		}
	}
	if strings.Contains(links, "janeGithub") {
		t.Errorf("list items ran together: %q", links)
	}
}

func TestSectionTitleTrimsTrailingColon(t *testing.T) {
	doc := parseDocument([]byte("## Reviewer name:\n\nJane Doe\n"))
	if got := doc.section("Reviewer name"); got != "Jane Doe" {
		t.Errorf("section = %q, want %q", got, "Jane Doe")
	}
}
