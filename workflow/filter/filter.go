// Package filter decides which reviews feed aggregation. Artificial reviews
// always pass. Human reviews pass when their self-reported confidence clears
// the minimum and, below the expert bar, their domain is relevant enough to
// the project.
package filter

import (
	"log/slog"

	"github.com/c360studio/semreview/config"
	"github.com/c360studio/semreview/ontology"
	"github.com/c360studio/semreview/workflow"
)

// Filter applies the acceptance rules for one analysis run.
type Filter struct {
	graph  *ontology.Graph
	cfg    config.AnalysisConfig
	logger *slog.Logger
}

// Option configures a Filter.
type Option func(*Filter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filter) {
		f.logger = logger
	}
}

// New creates a Filter using the given thresholds.
func New(graph *ontology.Graph, cfg config.AnalysisConfig, opts ...Option) *Filter {
	f := &Filter{
		graph:  graph,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ShouldAccept reports whether a review qualifies for aggregation. The
// computed domain relevance is stored on the review so later stages and
// reports can show why a review was kept or dropped.
//
// Raising a review's confidence never flips it from accepted to rejected.
func (f *Filter) ShouldAccept(review *workflow.Review, projectDescription string) bool {
	if review.IsArtificial {
		return true
	}

	if review.ConfidenceScore < f.cfg.MinConfidence {
		return false
	}

	if review.Domain != "" {
		relevance := f.graph.DomainRelevance(projectDescription, review.Domain)
		review.RelevanceScore = relevance

		if review.ConfidenceScore < f.cfg.ExpertConfidence && relevance < f.cfg.MinDomainRelevance {
			return false
		}
	}

	return true
}

// Apply runs ShouldAccept over every review in the project, marking each
// review's IsAccepted flag. It returns the number of accepted reviews.
func (f *Filter) Apply(project *workflow.Project) int {
	description := project.FullDescription()

	accepted := 0
	for _, review := range project.Reviews {
		review.IsAccepted = f.ShouldAccept(review, description)
		if review.IsAccepted {
			accepted++
			continue
		}
		f.logger.Debug("review rejected",
			"reviewer", review.ReviewerName,
			"domain", review.Domain,
			"confidence", review.ConfidenceScore,
			"relevance", review.RelevanceScore)
	}
	return accepted
}
