package workflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semreview/config"
	"github.com/c360studio/semreview/llm/testutil"
	"github.com/c360studio/semreview/ontology"
	"github.com/c360studio/semreview/workflow"
	"github.com/c360studio/semreview/workflow/aggregation"
	"github.com/c360studio/semreview/workflow/classify"
	"github.com/c360studio/semreview/workflow/filter"
	"github.com/c360studio/semreview/workflow/gap"
	"github.com/c360studio/semreview/workflow/narrative"
	"github.com/c360studio/semreview/workflow/sentiment"
)

func integrationGraph(t *testing.T) *ontology.Graph {
	t.Helper()
	g, err := ontology.New(ontology.Document{
		Domains: []ontology.Domain{
			{
				ID: "technical", Name: "Technical",
				Keywords:           []string{"kubernetes", "golang"},
				RelevantDimensions: []string{"technical_feasibility"},
			},
			{
				ID: "business", Name: "Business",
				Keywords:           []string{"revenue", "pricing"},
				RelevantDimensions: []string{"return_on_investment"},
			},
		},
		ImpactDimensions: []ontology.ImpactDimension{
			{ID: "technical_feasibility", Name: "Technical Feasibility"},
			{ID: "return_on_investment", Name: "Return on Investment"},
		},
		ExpertiseLevels: []ontology.ExpertiseLevel{
			{ID: "beginner", Name: "Beginner", ConfidenceRange: [2]int{0, 40}},
			{ID: "seasoned", Name: "Seasoned", ConfidenceRange: [2]int{41, 95}},
			{ID: "expert", Name: "Expert", ConfidenceRange: [2]int{96, 100}},
		},
	})
	require.NoError(t, err)
	return g
}

func realPipeline(t *testing.T, graph *ontology.Graph, mock *testutil.MockCompleter) *workflow.Pipeline {
	t.Helper()
	cfg := config.Default().Analysis
	scorer := sentiment.New(mock, graph)
	stages := workflow.Stages{
		Classifier:  classify.New(mock, graph),
		Filter:      filter.New(graph, cfg),
		Scorer:      scorer,
		GapFiller:   gap.NewFiller(mock, graph, scorer, cfg.GapRelevanceThreshold),
		Aggregator:  aggregation.New(graph),
		Synthesizer: narrative.New(mock, graph),
	}
	p, err := workflow.NewPipeline(graph, stages, cfg)
	require.NoError(t, err)
	return p
}

// One human technical review plus an uncovered relevant business domain:
// the pipeline classifies, scores, generates exactly one artificial business
// review, and aggregates both dimensions.
func TestPipelineEndToEnd(t *testing.T) {
	mock := &testutil.MockCompleter{Responses: []string{
		"technical", // classify Ana
		`{"technical_feasibility": 4.5, "return_on_investment": 3.5, "overall_sentiment": 4.0}`, // score Ana
		"REVIEW: The usage based pricing model is credible and fundable.\nCONFIDENCE: 92",       // generate business review
		`{"return_on_investment": 4.0, "overall_sentiment": 4.0}`,                               // score the artificial review
		"Strong engineering with a credible monetization path.",                                 // final synthesis
	}}
	graph := integrationGraph(t)
	p := realPipeline(t, graph, mock)

	project := &workflow.Project{
		ID:          "cluster-billing",
		Name:        "Cluster Billing",
		Description: "A golang control plane for kubernetes with usage based revenue reporting.",
		Reviews: []*workflow.Review{
			{
				ReviewerName:    "Ana",
				Text:            "The golang operator handles kubernetes failover cleanly.",
				ConfidenceScore: 90,
			},
		},
	}

	result, err := p.Analyze(context.Background(), project)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, workflow.StateCompleted, p.State())
	assert.Equal(t, 5, mock.CallCount())

	require.Len(t, project.Reviews, 2, "exactly one artificial review generated")
	generated := project.Reviews[1]
	assert.True(t, generated.IsArtificial)
	assert.True(t, generated.IsAccepted)
	assert.Equal(t, "business", generated.Domain)
	assert.Equal(t, "AI Business Expert", generated.ReviewerName)
	assert.Equal(t, "expert", generated.ExpertiseLevel)
	assert.Equal(t, 92, generated.ConfidenceScore)

	require.Len(t, result.FeedbackScores, 2, "one entry per graph dimension")
	// Ana: seasoned (2.5) and technical_feasibility is relevant to her
	// domain (x1.5); the artificial review does not rate it.
	assert.InDelta(t, 4.5, result.FeedbackScores["technical_feasibility"], 0.001)
	// Ana (3.5, weight 2.5) + artificial expert (4.0, weight 3.0*0.7*1.5).
	assert.InDelta(t, 3.8, result.FeedbackScores["return_on_investment"], 0.001)
	assert.InDelta(t, 4.2, result.OverallScore, 0.001)

	assert.Equal(t, "Strong engineering with a credible monetization path.", result.FinalReview)
	assert.Equal(t, []string{"technical", "business"}, result.Metadata.DomainsUsed)
	assert.Equal(t, 1, result.Metadata.HumanReviews)
	assert.Equal(t, 1, result.Metadata.ArtificialReviews)
	assert.Equal(t, 2, result.Metadata.AcceptedReviews)

	stats := result.DimensionStats["return_on_investment"]
	assert.Equal(t, 2, stats.Samples)
	assert.InDelta(t, 3.75, stats.Mean, 0.001)
}

// A malformed sentiment reply degrades that review to neutral defaults
// without failing the run.
func TestPipelineCompletesOnMalformedSentimentReply(t *testing.T) {
	mock := &testutil.MockCompleter{Responses: []string{
		"technical",
		"I am unable to produce ratings for this review.", // no JSON
		"REVIEW: Pricing holds up.\nCONFIDENCE: 90",
		`{"return_on_investment": 4.0, "overall_sentiment": 4.0}`,
		"Balanced final review.",
	}}
	graph := integrationGraph(t)
	p := realPipeline(t, graph, mock)

	project := &workflow.Project{
		ID:          "cluster-billing",
		Name:        "Cluster Billing",
		Description: "A golang control plane for kubernetes with usage based revenue reporting.",
		Reviews: []*workflow.Review{
			{
				ReviewerName:    "Ana",
				Text:            "The golang operator handles kubernetes failover cleanly.",
				ConfidenceScore: 90,
			},
		},
	}

	result, err := p.Analyze(context.Background(), project)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateCompleted, p.State())

	human := project.Reviews[0]
	assert.Equal(t, 3.0, human.SentimentScores["technical_feasibility"], "neutral default")
	assert.Equal(t, 3.0, human.SentimentScores["return_on_investment"])
	assert.Equal(t, 3.0, human.SentimentScores[workflow.OverallSentimentKey])

	// technical_feasibility: only Ana rates it, at the neutral default.
	assert.InDelta(t, 3.0, result.FeedbackScores["technical_feasibility"], 0.001)
	// return_on_investment: Ana 3.0 (weight 2.5) + artificial 4.0 (weight 3.15).
	assert.InDelta(t, 3.6, result.FeedbackScores["return_on_investment"], 0.001)
}
