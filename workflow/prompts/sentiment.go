package prompts

import (
	"fmt"
	"strings"

	"github.com/c360studio/semreview/ontology"
)

// SentimentAnalysis builds the prompt that asks the model to score a review
// on every impact dimension currently in the graph. The reply contract is a
// bare JSON object with one float per dimension id plus overall_sentiment,
// all values in [1.0, 5.0].
func SentimentAnalysis(reviewText string, dims []ontology.ImpactDimension) string {
	infos := make([]string, 0, len(dims))
	keys := make([]string, 0, len(dims))
	for _, dim := range dims {
		var scale strings.Builder
		scale.WriteString("Scale:\n")
		for i := 1; i <= 5; i++ {
			if desc, ok := dim.Scale[i]; ok {
				fmt.Fprintf(&scale, "  %d: %s\n", i, desc)
			}
		}
		infos = append(infos, fmt.Sprintf("%s (%s):\n%s\n%s", dim.Name, dim.ID, dim.Description, scale.String()))
		keys = append(keys, fmt.Sprintf("  %q: 3.0,", dim.ID))
	}

	return fmt.Sprintf(`Analyze the following project review and rate it on each evaluation dimension.

Review Text:
%s

Evaluation Dimensions:
%s

For each dimension, provide a score from 1.0 to 5.0 based on what the review indicates about the project.
If a dimension is not addressed in the review, infer a reasonable score based on the overall tone.

Also provide an overall_sentiment score (1.0 to 5.0) representing the general positivity/negativity of the review.

You MUST respond with ONLY a valid JSON object in this exact format:
{
%s
  "overall_sentiment": 3.0
}

Replace the example values with your actual ratings. Use only numbers between 1.0 and 5.0.
Do not include any other text or explanation.`,
		reviewText,
		strings.Join(infos, "\n"),
		strings.Join(keys, "\n"))
}
