package prompts

import (
	"fmt"
	"strings"

	"github.com/c360studio/semreview/ontology"
)

// ArtificialReview builds the prompt that asks the model to review a project
// from one domain's expert perspective. The dimensions passed in are the ones
// relevant to that domain, taken from the live graph at call time.
func ArtificialReview(projectDescription string, domain ontology.Domain, dims []ontology.ImpactDimension) string {
	dimLines := make([]string, 0, len(dims))
	for _, dim := range dims {
		dimLines = append(dimLines, fmt.Sprintf("- %s: %s", dim.Name, dim.Description))
	}

	return fmt.Sprintf(`You are an expert reviewer with deep expertise in %[1]s.

Domain Context: %[2]s
Your expertise encompasses: %[3]s

You are reviewing a hackathon project with the following description:

%[4]s

Please provide a detailed review of this project from your expertise perspective of %[1]s.

Focus particularly on these evaluation dimensions that are most relevant to your domain:
%[5]s

Your review should:
1. Assess the project from your specific domain perspective
2. Consider practical implications for %[1]s stakeholders
3. Evaluate feasibility and potential impact within your field
4. Provide constructive criticism and suggestions
5. Be thorough but concise (around 300-400 words)

Also provide a confidence score between 0-100 that reflects how confident you are in your assessment.
As an expert in %[1]s, your confidence score should typically be high (85-95) when reviewing projects relevant to your domain.

Structure your response as:
REVIEW: [Your detailed review text]
CONFIDENCE: [Your confidence score 0-100]`,
		domain.Name,
		domain.Description,
		strings.Join(domain.Keywords, ", "),
		projectDescription,
		strings.Join(dimLines, "\n"))
}
