// Package prompts builds the model prompts used by the analysis pipeline.
// Every builder takes its domains and dimensions as arguments sourced from
// the live knowledge graph, so ontology edits change prompt content and
// scoring behavior without code changes.
package prompts

import (
	"fmt"
	"strings"

	"github.com/c360studio/semreview/ontology"
)

// ReviewerClassification builds the prompt that asks the model to assign a
// reviewer to exactly one domain id, chosen from the domains passed in.
func ReviewerClassification(reviewerName, reviewText string, domains []ontology.Domain) string {
	options := make([]string, 0, len(domains))
	for _, d := range domains {
		options = append(options, fmt.Sprintf("- %s (%s): %s\n  Keywords: %s",
			d.Name, d.ID, d.Description, strings.Join(d.Keywords, ", ")))
	}

	return fmt.Sprintf(`Based on the following review, classify the reviewer into the most appropriate domain.

Reviewer: %s
Review Text:
%s

Available Domains:
%s

Analyze the language, focus areas, and expertise demonstrated in the review.
Consider:
1. Technical terminology used
2. Aspects of the project they focus on
3. Type of concerns or suggestions raised
4. Professional perspective evident in the review

Return ONLY the domain ID (e.g., "technical", "clinical", "business") that best matches this reviewer's expertise.
Do not include any explanation or additional text.`,
		reviewerName,
		reviewText,
		strings.Join(options, "\n"))
}
