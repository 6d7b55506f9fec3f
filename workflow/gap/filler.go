package gap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/c360studio/semreview/llm"
	"github.com/c360studio/semreview/ontology"
	"github.com/c360studio/semreview/workflow"
	"github.com/c360studio/semreview/workflow/prompts"
)

// Scorer rates review text against the impact dimensions. Satisfied by
// sentiment.Scorer.
type Scorer interface {
	Score(ctx context.Context, reviewText string) map[string]float64
}

// Filler generates artificial expert reviews for uncovered domains.
type Filler struct {
	completer llm.Completer
	graph     *ontology.Graph
	scorer    Scorer
	threshold float64
	parser    *Parser
	logger    *slog.Logger
}

// Option configures a Filler.
type Option func(*Filler)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filler) {
		f.logger = logger
	}
}

// NewFiller creates a Filler. Domains whose relevance to the project falls
// below threshold are not synthesized.
func NewFiller(completer llm.Completer, graph *ontology.Graph, scorer Scorer, threshold float64, opts ...Option) *Filler {
	f := &Filler{
		completer: completer,
		graph:     graph,
		scorer:    scorer,
		threshold: threshold,
		parser:    DefaultParser,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FillGaps synthesizes one artificial review per relevant uncovered domain.
// A domain is covered when an accepted human review carries it. Domains are
// visited in graph order; a failed synthesis is logged and skipped so one
// domain's failure never blocks the others. The returned reviews are already
// sentiment-scored and accepted.
func (f *Filler) FillGaps(ctx context.Context, project *workflow.Project) ([]*workflow.Review, error) {
	covered := make(map[string]bool)
	for _, review := range project.Reviews {
		if review.IsAccepted && !review.IsArtificial && review.Domain != "" {
			covered[review.Domain] = true
		}
	}

	description := project.FullDescription()

	var generated []*workflow.Review
	for _, domain := range f.graph.Domains() {
		if err := ctx.Err(); err != nil {
			return generated, err
		}
		if covered[domain.ID] {
			continue
		}

		relevance := f.graph.DomainRelevance(description, domain.ID)
		if relevance < f.threshold {
			f.logger.Debug("domain not relevant enough to synthesize",
				"domain", domain.ID,
				"relevance", relevance,
				"threshold", f.threshold)
			continue
		}

		review, err := f.synthesize(ctx, description, domain, relevance)
		if err != nil {
			f.logger.Warn("artificial review failed, skipping domain",
				"domain", domain.ID,
				"error", err)
			continue
		}

		f.logger.Info("artificial review generated",
			"domain", domain.ID,
			"reviewer", review.ReviewerName,
			"confidence", review.ConfidenceScore)
		generated = append(generated, review)
	}

	return generated, nil
}

// synthesize generates, parses, and sentiment-scores one artificial review.
func (f *Filler) synthesize(ctx context.Context, description string, domain ontology.Domain, relevance float64) (*workflow.Review, error) {
	dims := f.relevantDimensions(domain.ID)

	reply, err := f.completer.Complete(ctx, prompts.ArtificialReview(description, domain, dims))
	if err != nil {
		return nil, fmt.Errorf("generate review for %s: %w", domain.ID, err)
	}

	parsed := f.parser.Parse(reply)
	if parsed.Text == "" {
		return nil, fmt.Errorf("generate review for %s: empty review text", domain.ID)
	}

	review := &workflow.Review{
		ID:              uuid.NewString(),
		ReviewerName:    fmt.Sprintf("AI %s Expert", domain.DisplayName()),
		Text:            parsed.Text,
		ConfidenceScore: parsed.Confidence,
		IsArtificial:    true,
		Domain:          domain.ID,
		ExpertiseLevel:  "expert",
		RelevanceScore:  relevance,
		IsAccepted:      true,
	}
	review.SentimentScores = f.scorer.Score(ctx, parsed.Text)

	return review, nil
}

// relevantDimensions resolves the domain's relevant dimension IDs against
// the live graph, dropping any that no longer exist.
func (f *Filler) relevantDimensions(domainID string) []ontology.ImpactDimension {
	ids := f.graph.RelevantDimensionsForDomain(domainID)
	dims := make([]ontology.ImpactDimension, 0, len(ids))
	for _, id := range ids {
		if dim, ok := f.graph.DimensionByID(id); ok {
			dims = append(dims, dim)
		}
	}
	return dims
}
