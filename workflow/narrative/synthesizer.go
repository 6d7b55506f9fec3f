// Package narrative turns accepted reviews and aggregated dimension scores
// into the final review text, per-domain insights, and a short list of
// actionable recommendations. The review text comes from the completion
// port; when that fails the package falls back to a summary templated from
// the scores alone, so the narrative is never empty.
package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode"

	"github.com/c360studio/semreview/llm"
	"github.com/c360studio/semreview/ontology"
	"github.com/c360studio/semreview/workflow"
	"github.com/c360studio/semreview/workflow/aggregation"
	"github.com/c360studio/semreview/workflow/prompts"
)

// Score bands for insights and recommendations.
const (
	strongScore  = 4.0
	weakScore    = 3.0
	concernScore = 2.5
)

const (
	maxKeyPoints       = 3
	maxConcerns        = 3
	maxRecommendations = 5
	snippetRunes       = 100
)

// Synthesizer produces narratives from scored reviews.
type Synthesizer struct {
	completer llm.Completer
	graph     *ontology.Graph
	logger    *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		s.logger = logger
	}
}

// New creates a Synthesizer.
func New(completer llm.Completer, graph *ontology.Graph, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		completer: completer,
		graph:     graph,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize builds the narrative for a project from its accepted reviews
// and the aggregated dimension scores. A completion failure degrades to the
// templated summary; the returned error is non-nil only when ctx ends before
// the narrative is assembled.
func (s *Synthesizer) Synthesize(ctx context.Context, project *workflow.Project, accepted []*workflow.Review, scores map[string]float64) (workflow.Narrative, error) {
	if err := ctx.Err(); err != nil {
		return workflow.Narrative{}, err
	}

	insights := s.domainInsights(accepted)

	final, err := s.finalReview(ctx, project, accepted, scores)
	if err != nil {
		return workflow.Narrative{}, err
	}

	return workflow.Narrative{
		FinalReview:     final,
		DomainInsights:  insights,
		Recommendations: s.recommendations(scores, insights),
	}, nil
}

// finalReview asks the model to merge every accepted review into one
// balanced narrative, degrading to the templated summary on failure or an
// empty reply.
func (s *Synthesizer) finalReview(ctx context.Context, project *workflow.Project, accepted []*workflow.Review, scores map[string]float64) (string, error) {
	byDomain := make(map[string][]string, 4)
	for _, review := range accepted {
		name := s.domainName(review.Domain)
		byDomain[name] = append(byDomain[name], reviewLine(review))
	}

	description := project.Description
	if project.WorkDone != "" {
		description = fmt.Sprintf("%s\n\nWork done: %s", project.Description, project.WorkDone)
	}

	prompt := prompts.FinalReviewSynthesis(project.Name, description, byDomain, scores, s.graph.ImpactDimensions())
	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		s.logger.Warn("final review completion failed, using templated summary",
			"project", project.Name, "error", err)
		return s.templatedSummary(project.Name, scores), nil
	}
	if final := strings.TrimSpace(reply); final != "" {
		return final, nil
	}
	s.logger.Warn("final review completion returned empty text, using templated summary",
		"project", project.Name)
	return s.templatedSummary(project.Name, scores), nil
}

// domainInsights groups accepted reviews by domain and extracts the
// dimensions each domain's reviewers rated strongly or poorly. Dimension
// names are collected in graph order, deduplicated, and capped.
func (s *Synthesizer) domainInsights(accepted []*workflow.Review) map[string]workflow.DomainInsight {
	byDomain := make(map[string][]*workflow.Review, 4)
	for _, review := range accepted {
		if review.Domain == "" {
			continue
		}
		byDomain[review.Domain] = append(byDomain[review.Domain], review)
	}

	dims := s.graph.ImpactDimensions()
	insights := make(map[string]workflow.DomainInsight, len(byDomain))
	for id, reviews := range byDomain {
		var keyPoints, concerns []string
		artificial := 0
		for _, review := range reviews {
			if review.IsArtificial {
				artificial++
			}
			for _, dim := range dims {
				score, ok := review.SentimentScores[dim.ID]
				if !ok {
					continue
				}
				switch {
				case score >= strongScore:
					keyPoints = appendDistinct(keyPoints, dim.Name, maxKeyPoints)
				case score <= concernScore:
					concerns = appendDistinct(concerns, dim.Name, maxConcerns)
				}
			}
		}

		name := s.domainName(id)
		insights[id] = workflow.DomainInsight{
			DomainName:      name,
			Summary:         fmt.Sprintf("Perspective from %d %s reviewer(s)", len(reviews), name),
			KeyPoints:       keyPoints,
			Concerns:        concerns,
			ReviewCount:     len(reviews),
			ArtificialCount: artificial,
		}
	}
	return insights
}

// recommendations derives 1-5 suggestions from weak dimensions, per-domain
// concerns, and score patterns. Dimensions and domains are visited in graph
// order so the output is stable for identical inputs.
func (s *Synthesizer) recommendations(scores map[string]float64, insights map[string]workflow.DomainInsight) []string {
	recs := make([]string, 0, maxRecommendations)

	for _, dim := range s.graph.ImpactDimensions() {
		score, ok := scores[dim.ID]
		if !ok || score >= weakScore {
			continue
		}
		switch dim.ID {
		case "technical_feasibility":
			recs = append(recs, fmt.Sprintf("Address technical challenges to improve %s", dim.Name))
		case "implementation_complexity":
			recs = append(recs, "Simplify implementation approach for easier adoption")
		case "scalability":
			recs = append(recs, "Develop a clear scaling strategy")
		case "return_on_investment":
			recs = append(recs, "Clarify value proposition and ROI metrics")
		default:
			recs = append(recs, genericImprovement(dim))
		}
	}

	for _, domain := range s.graph.Domains() {
		insight, ok := insights[domain.ID]
		if !ok || len(insight.Concerns) == 0 {
			continue
		}
		concerns := insight.Concerns
		if len(concerns) > 2 {
			concerns = concerns[:2]
		}
		recs = append(recs, fmt.Sprintf("Address %s concerns: %s", domain.ID, strings.Join(concerns, ", ")))
	}

	if scores["innovation"] > strongScore && scores["technical_feasibility"] < weakScore {
		recs = append(recs, "Consider simplifying innovative features for better feasibility")
	}
	if scores["impact"] > strongScore {
		recs = append(recs, "Leverage high impact potential with clear implementation roadmap")
	}

	if len(recs) == 0 {
		return []string{"Maintain the current approach; reviewers rated the project positively across all dimensions"}
	}
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// templatedSummary renders a review built only from the aggregated scores.
// It is the fallback when the model cannot produce a narrative and never
// returns an empty string.
func (s *Synthesizer) templatedSummary(projectName string, scores map[string]float64) string {
	name := projectName
	if name == "" {
		name = "This project"
	}

	rated := 0
	var lines strings.Builder
	var best, worst ontology.ImpactDimension
	bestScore, worstScore := math.Inf(-1), math.Inf(1)
	for _, dim := range s.graph.ImpactDimensions() {
		score, ok := scores[dim.ID]
		if !ok {
			continue
		}
		rated++
		fmt.Fprintf(&lines, "- %s: %.1f/5.0\n", dim.Name, score)
		if score > bestScore {
			best, bestScore = dim, score
		}
		if score < worstScore {
			worst, worstScore = dim, score
		}
	}
	if rated == 0 {
		return fmt.Sprintf("%s received no dimension scores, so reviewer feedback could not be summarized.", name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s received an overall score of %.1f/5.0 across %d evaluation dimensions.\n\n", name, aggregation.Overall(scores), rated)
	b.WriteString(lines.String())
	if best.ID != worst.ID {
		fmt.Fprintf(&b, "\n%s stands out as the strongest area (%.1f/5.0), while %s needs the most attention (%.1f/5.0).\n",
			best.Name, bestScore, worst.Name, worstScore)
	}
	b.WriteString("\nThis summary reflects aggregated reviewer scores; a synthesized narrative was unavailable.")
	return b.String()
}

// domainName resolves a domain id to its display name, tolerating ids that
// are no longer in the graph.
func (s *Synthesizer) domainName(id string) string {
	if domain, ok := s.graph.DomainByID(id); ok {
		return domain.DisplayName()
	}
	if id == "" {
		return "Unknown"
	}
	return ontology.Domain{ID: id}.DisplayName()
}

// reviewLine renders one review the way the synthesis prompt expects:
// reviewer kind, expertise, and a one-line snippet of the text.
func reviewLine(review *workflow.Review) string {
	kind := "Human"
	if review.IsArtificial {
		kind = "AI-generated"
	}
	if review.ExpertiseLevel == "" {
		return fmt.Sprintf("%s Reviewer: %s...", kind, snippet(review.Text))
	}
	return fmt.Sprintf("%s %s Reviewer: %s...", kind, capitalize(review.ExpertiseLevel), snippet(review.Text))
}

// snippet collapses text onto a single line capped at snippetRunes runes.
func snippet(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) > snippetRunes {
		flat = strings.TrimSpace(string(runes[:snippetRunes]))
	}
	return flat
}

// genericImprovement phrases a recommendation for weak dimensions that have
// no bespoke template.
func genericImprovement(dim ontology.ImpactDimension) string {
	if dim.Description == "" {
		return fmt.Sprintf("Focus on improving %s", dim.Name)
	}
	return fmt.Sprintf("Focus on improving %s (%s)", dim.Name, lowerFirst(dim.Description))
}

// appendDistinct adds name to items unless it is already present or the
// limit is reached.
func appendDistinct(items []string, name string, limit int) []string {
	if len(items) >= limit {
		return items
	}
	for _, existing := range items {
		if existing == name {
			return items
		}
	}
	return append(items, name)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
