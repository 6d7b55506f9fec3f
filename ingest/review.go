package ingest

import (
	"regexp"
	"strings"

	"github.com/c360studio/semreview/workflow"
)

// Section headings of the review submission form. The confidence heading
// varies between events, so it is matched by prefix instead.
const (
	reviewerSection     = "Reviewer name"
	linksSection        = "Links"
	reviewTextSection   = "Text review of the project (max 400 words)"
	confidencePrefix    = "confidence score"
	defaultReviewerName = "Anonymous"
)

var (
	linkedinRe = regexp.MustCompile(`LinkedIn\s*:\s*(https?://\S+)`)
	scholarRe  = regexp.MustCompile(`Google Scholar\s*:\s*(https?://\S+)`)
	githubRe   = regexp.MustCompile(`Github\s*:\s*(https?://\S+)`)

	digitsRe = regexp.MustCompile(`\d+`)
)

// parseReview assembles a human review from a parsed submission file.
// Frontmatter keys "reviewer" and "confidence" take precedence over the
// corresponding sections when present.
func parseReview(doc *document) *workflow.Review {
	review := &workflow.Review{
		ReviewerName:    defaultReviewerName,
		Text:            doc.section(reviewTextSection),
		ConfidenceScore: parseConfidence(doc),
		Links:           extractLinks(doc.section(linksSection)),
	}

	if name := strings.TrimSpace(doc.section(reviewerSection)); name != "" {
		review.ReviewerName = name
	}
	if name, ok := doc.frontmatterString("reviewer"); ok && strings.TrimSpace(name) != "" {
		review.ReviewerName = strings.TrimSpace(name)
	}

	return review
}

// parseConfidence reads the reviewer's self-reported confidence: frontmatter
// first, then the first digits under any confidence-score heading. Missing
// or unparseable values default to 0, which the acceptance filter rejects.
func parseConfidence(doc *document) int {
	if n, ok := doc.frontmatterInt("confidence"); ok {
		return clampScore(n)
	}
	text, ok := doc.sectionWithPrefix(confidencePrefix)
	if !ok {
		return 0
	}
	match := digitsRe.FindString(text)
	if match == "" {
		return 0
	}
	n := 0
	for _, r := range match {
		n = n*10 + int(r-'0')
		if n > 100 {
			return 100
		}
	}
	return clampScore(n)
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// extractLinks pulls the recognized profile URLs out of a Links section.
func extractLinks(section string) map[string]string {
	if section == "" {
		return nil
	}

	links := make(map[string]string)
	if m := linkedinRe.FindStringSubmatch(section); m != nil {
		links["linkedin"] = m[1]
	}
	if m := scholarRe.FindStringSubmatch(section); m != nil {
		links["google_scholar"] = m[1]
	}
	if m := githubRe.FindStringSubmatch(section); m != nil {
		links["github"] = m[1]
	}
	if len(links) == 0 {
		return nil
	}
	return links
}
