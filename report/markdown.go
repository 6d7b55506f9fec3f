package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/semreview/workflow"
)

// Render produces the markdown feedback report for one analyzed project.
func Render(project *workflow.Project, result *workflow.AnalysisResult) string {
	var sb strings.Builder

	sb.WriteString("# Feedback Report: ")
	sb.WriteString(projectName(project))
	sb.WriteString("\n\n")

	sb.WriteString("## Project Description\n\n")
	if desc := strings.TrimSpace(project.Description); desc != "" {
		sb.WriteString(desc)
	} else {
		sb.WriteString("No description provided.")
	}
	sb.WriteString("\n\n")

	writeScores(&sb, result)

	sb.WriteString("## Synthesized Review\n\n")
	sb.WriteString(strings.TrimSpace(result.FinalReview))
	sb.WriteString("\n\n")

	writeDomainFeedback(&sb, project, result)
	writeRecommendations(&sb, result)
	writeArtificialNote(&sb, result)
	writeMethodology(&sb)

	return sb.String()
}

func writeScores(sb *strings.Builder, result *workflow.AnalysisResult) {
	sb.WriteString("## Feedback Scores\n\n")
	fmt.Fprintf(sb, "**Overall Score:** %.1f/5\n\n", result.OverallScore)

	sb.WriteString("| Dimension | Score (1-5) |\n")
	sb.WriteString("|-----------|-------------|\n")
	for _, id := range orderedDimensions(result) {
		fmt.Fprintf(sb, "| %s | %.1f |\n", displayName(id), result.FeedbackScores[id])
	}
	sb.WriteString("\n")
	sb.WriteString("> Note: a radar chart of these scores can be drawn from the accompanying visualization JSON.\n\n")
}

func writeDomainFeedback(sb *strings.Builder, project *workflow.Project, result *workflow.AnalysisResult) {
	byDomain := reviewsByDomain(project)
	present := make(map[string]bool, len(byDomain))
	for id := range byDomain {
		present[id] = true
	}
	for id := range result.DomainInsights {
		present[id] = true
	}
	if len(present) == 0 {
		return
	}

	sb.WriteString("## Domain-Specific Feedback\n\n")
	for _, id := range orderedDomains(result, present) {
		fmt.Fprintf(sb, "### %s Perspective\n\n", domainDisplayName(result, id))

		if insight, ok := result.DomainInsights[id]; ok {
			if insight.Summary != "" {
				sb.WriteString(insight.Summary)
				sb.WriteString("\n\n")
			}
			writeInsightList(sb, "Key strengths", insight.KeyPoints)
			writeInsightList(sb, "Concerns", insight.Concerns)
		}

		for _, review := range byDomain[id] {
			writeReview(sb, result, review)
		}
	}
}

func writeInsightList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("**")
	sb.WriteString(title)
	sb.WriteString(":**\n\n")
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func writeReview(sb *strings.Builder, result *workflow.AnalysisResult, review *workflow.Review) {
	kind := "Human"
	if review.IsArtificial {
		kind = "AI-generated"
	}
	fmt.Fprintf(sb, "#### %s %s Reviewer: %s\n\n", kind, displayName(review.ExpertiseLevel), review.ReviewerName)
	fmt.Fprintf(sb, "**Confidence Score:** %d/100\n\n", review.ConfidenceScore)
	sb.WriteString(strings.TrimSpace(review.Text))
	sb.WriteString("\n\n")

	rows := reviewDimensions(result, review)
	if len(rows) == 0 {
		return
	}
	sb.WriteString("**Dimension Scores:**\n\n")
	sb.WriteString("| Dimension | Score |\n")
	sb.WriteString("|-----------|-------|\n")
	for _, id := range rows {
		fmt.Fprintf(sb, "| %s | %.1f |\n", displayName(id), review.SentimentScores[id])
	}
	sb.WriteString("\n")
}

func writeRecommendations(sb *strings.Builder, result *workflow.AnalysisResult) {
	if len(result.Recommendations) == 0 {
		return
	}
	sb.WriteString("## Recommendations\n\n")
	for i, rec := range result.Recommendations {
		fmt.Fprintf(sb, "%d. %s\n", i+1, rec)
	}
	sb.WriteString("\n")
}

func writeArtificialNote(sb *strings.Builder, result *workflow.AnalysisResult) {
	n := result.Metadata.ArtificialReviews
	if n == 0 {
		return
	}
	sb.WriteString("## Note on AI-Generated Reviews\n\n")
	fmt.Fprintf(sb, "This report includes %d AI-generated review(s) covering domains where no human review was available. They are marked as such above and carry less weight in the final scores than human reviews.\n\n", n)
}

func writeMethodology(sb *strings.Builder) {
	sb.WriteString("## Methodology\n\n")
	sb.WriteString("This feedback was generated by an ontology-driven review system that:\n\n")
	sb.WriteString("1. Classified human reviewers by domain expertise\n")
	sb.WriteString("2. Filtered reviews based on domain relevance and confidence\n")
	sb.WriteString("3. Generated additional reviews for missing domain perspectives\n")
	sb.WriteString("4. Scored the project across every evaluation dimension\n")
	sb.WriteString("5. Synthesized a comprehensive review from all perspectives\n\n")
	sb.WriteString("Scores weight reviewer expertise (1.0 for beginners up to 3.0 for experts), discount AI-generated reviews by 0.7, and emphasize dimensions relevant to each reviewer's domain by 1.5.\n")
}

// reviewDimensions orders one review's scored dimensions like the main score
// table and drops the overall_sentiment entry, which has its own column in
// the aggregate view.
func reviewDimensions(result *workflow.AnalysisResult, review *workflow.Review) []string {
	if len(review.SentimentScores) == 0 {
		return nil
	}

	ordered := make([]string, 0, len(review.SentimentScores))
	seen := map[string]bool{"overall_sentiment": true}
	for _, id := range result.Metadata.DimensionsEvaluated {
		if _, ok := review.SentimentScores[id]; ok && !seen[id] {
			ordered = append(ordered, id)
			seen[id] = true
		}
	}

	rest := make([]string, 0)
	for id := range review.SentimentScores {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

// displayName renders a snake_case identifier for humans.
func displayName(id string) string {
	words := strings.Fields(strings.ReplaceAll(id, "_", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
