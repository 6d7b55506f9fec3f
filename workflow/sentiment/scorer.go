// Package sentiment scores review text against the ontology's impact
// dimensions on a 1-5 scale. Scoring never fails a pipeline run: when the
// model cannot be reached or its reply cannot be parsed, every dimension
// falls back to a neutral 3.0.
package sentiment

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/c360studio/semreview/llm"
	"github.com/c360studio/semreview/ontology"
	"github.com/c360studio/semreview/workflow"
	"github.com/c360studio/semreview/workflow/prompts"
)

// NeutralScore is the fallback for dimensions the model could not rate.
const NeutralScore = 3.0

const (
	minScore = 1.0
	maxScore = 5.0
)

// Scorer rates reviews against the live set of impact dimensions.
type Scorer struct {
	completer llm.Completer
	graph     *ontology.Graph
	logger    *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) {
		s.logger = logger
	}
}

// New creates a Scorer.
func New(completer llm.Completer, graph *ontology.Graph, opts ...Option) *Scorer {
	s := &Scorer{
		completer: completer,
		graph:     graph,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score rates the review text on every impact dimension plus overall
// sentiment. Values are clamped to [1.0, 5.0]; non-numeric entries are
// dropped and unknown keys are kept for downstream inspection. Any
// completion or parse failure yields neutral defaults instead of an error.
func (s *Scorer) Score(ctx context.Context, reviewText string) map[string]float64 {
	dims := s.graph.ImpactDimensions()

	reply, err := s.completer.Complete(ctx, prompts.SentimentAnalysis(reviewText, dims))
	if err != nil {
		s.logger.Warn("sentiment completion failed, using neutral defaults", "error", err)
		return s.defaults(dims)
	}

	raw := llm.ExtractJSON(reply)
	if raw == "" {
		s.logger.Warn("sentiment reply contained no JSON, using neutral defaults")
		return s.defaults(dims)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s.logger.Warn("sentiment JSON unparseable, using neutral defaults", "error", err)
		return s.defaults(dims)
	}

	scores := make(map[string]float64, len(parsed))
	for key, value := range parsed {
		num, ok := value.(float64)
		if !ok {
			continue
		}
		scores[key] = clamp(num)
	}
	if len(scores) == 0 {
		s.logger.Warn("sentiment JSON had no numeric entries, using neutral defaults")
		return s.defaults(dims)
	}
	return scores
}

// defaults returns a neutral score for every current dimension plus overall
// sentiment.
func (s *Scorer) defaults(dims []ontology.ImpactDimension) map[string]float64 {
	scores := make(map[string]float64, len(dims)+1)
	for _, dim := range dims {
		scores[dim.ID] = NeutralScore
	}
	scores[workflow.OverallSentimentKey] = NeutralScore
	return scores
}

func clamp(v float64) float64 {
	if v < minScore {
		return minScore
	}
	if v > maxScore {
		return maxScore
	}
	return v
}
