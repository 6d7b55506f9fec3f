package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/semreview/ontology"
)

// FinalReviewSynthesis builds the prompt that merges every accepted review
// into one balanced narrative. reviewsByDomain maps a domain display name to
// preformatted one-line review summaries; scores maps dimension ids to their
// aggregated values. Domains are emitted in sorted name order so the prompt
// is stable for identical inputs.
func FinalReviewSynthesis(projectName, projectDescription string, reviewsByDomain map[string][]string, scores map[string]float64, dims []ontology.ImpactDimension) string {
	total := 0
	domainNames := make([]string, 0, len(reviewsByDomain))
	for name, lines := range reviewsByDomain {
		domainNames = append(domainNames, name)
		total += len(lines)
	}
	sort.Strings(domainNames)

	var scoreLines strings.Builder
	for _, dim := range dims {
		if score, ok := scores[dim.ID]; ok {
			fmt.Fprintf(&scoreLines, "- %s: %.1f/5.0\n", dim.Name, score)
		}
	}

	var insights strings.Builder
	for _, name := range domainNames {
		fmt.Fprintf(&insights, "\n%s Perspective:\n", name)
		for _, line := range reviewsByDomain[name] {
			fmt.Fprintf(&insights, "- %s\n", line)
		}
	}

	return fmt.Sprintf(`You are an expert reviewer synthesizing multiple perspectives on a hackathon project.

Project: %s
Description: %s

Based on %d reviews from different domain experts, the project received these scores:
%s
Domain-Specific Insights:
%s
Please synthesize these perspectives into a comprehensive final review that:
1. Integrates insights from all domain perspectives
2. Highlights the project's key strengths across different evaluation dimensions
3. Identifies critical weaknesses or challenges noted by reviewers
4. Provides balanced, constructive feedback
5. Suggests concrete next steps for improvement
6. Concludes with an overall assessment of the project's potential

The review should be professional, balanced, and actionable. Length should be 400-500 words.
Focus on providing value to the project team by synthesizing the multi-perspective feedback into coherent guidance.`,
		projectName,
		projectDescription,
		total,
		scoreLines.String(),
		insights.String())
}
