// Package gap synthesizes artificial expert reviews for ontology domains no
// accepted human review covers. Generated reviews follow a structured format:
//
//	REVIEW: [review text]
//	CONFIDENCE: [0-100]
//
// The parser extracts the confidence score and strips the markers so the
// review text can flow through sentiment scoring like any human review.
package gap

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultConfidence is assigned when a generated review carries no
// confidence marker. Artificial reviews are prompted as domain experts, so
// the default sits in the expert band.
const DefaultConfidence = 90

// Generated is a parsed artificial review completion.
type Generated struct {
	Text       string `json:"text"`
	Confidence int    `json:"confidence"`
}

// Parser extracts review text and confidence from generated completions.
type Parser struct {
	confidencePattern *regexp.Regexp
	reviewPrefix      *regexp.Regexp
}

// NewParser creates a parser for the REVIEW/CONFIDENCE response format.
func NewParser() *Parser {
	return &Parser{
		confidencePattern: regexp.MustCompile(`(?i)CONFIDENCE:\s*(\d+)`),
		reviewPrefix:      regexp.MustCompile(`(?i)^\s*REVIEW:\s*`),
	}
}

// Parse splits a completion into review text and confidence score. A missing
// confidence marker defaults to DefaultConfidence; values above 100 are
// capped. The REVIEW: prefix and all confidence markers are removed from the
// text.
func (p *Parser) Parse(content string) Generated {
	generated := Generated{Confidence: DefaultConfidence}

	if matches := p.confidencePattern.FindStringSubmatch(content); len(matches) > 1 {
		if v, err := strconv.Atoi(matches[1]); err == nil {
			if v > 100 {
				v = 100
			}
			generated.Confidence = v
		}
	}

	text := p.confidencePattern.ReplaceAllString(content, "")
	text = p.reviewPrefix.ReplaceAllString(text, "")
	generated.Text = strings.TrimSpace(text)

	return generated
}

// DefaultParser is the shared parser instance.
var DefaultParser = NewParser()

// ParseGenerated uses the default parser to split a completion into review
// text and confidence.
func ParseGenerated(content string) Generated {
	return DefaultParser.Parse(content)
}
