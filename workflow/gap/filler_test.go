package gap

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semreview/llm/testutil"
	"github.com/c360studio/semreview/ontology"
	"github.com/c360studio/semreview/workflow"
)

type fakeScorer struct {
	scores map[string]float64
	calls  int
}

func (f *fakeScorer) Score(_ context.Context, _ string) map[string]float64 {
	f.calls++
	return f.scores
}

func fillerGraph(t *testing.T) *ontology.Graph {
	t.Helper()
	g, err := ontology.New(ontology.Document{
		Domains: []ontology.Domain{
			{
				ID: "technical", Name: "Technical",
				Keywords:           []string{"kubernetes", "golang"},
				RelevantDimensions: []string{"technical_feasibility"},
			},
			{
				ID: "clinical", Name: "Clinical",
				Keywords: []string{"patient", "triage"},
			},
			{
				ID: "business", Name: "Business",
				Keywords:           []string{"revenue", "pricing"},
				RelevantDimensions: []string{"return_on_investment"},
			},
		},
		ImpactDimensions: []ontology.ImpactDimension{
			{ID: "technical_feasibility", Name: "Technical Feasibility", Description: "Can it be built?"},
			{ID: "return_on_investment", Name: "Return on Investment", Description: "Is it worth building?"},
		},
	})
	require.NoError(t, err)
	return g
}

func fillerProject(reviews ...*workflow.Review) *workflow.Project {
	return &workflow.Project{
		Name:        "Cluster Billing",
		Description: "A golang control plane for kubernetes with usage based revenue reporting.",
		Reviews:     reviews,
	}
}

func TestFillGapsGeneratesUncoveredRelevantDomains(t *testing.T) {
	mock := &testutil.MockCompleter{Responses: []string{
		"REVIEW: From a business angle the usage based pricing is credible.\nCONFIDENCE: 88",
	}}
	scorer := &fakeScorer{scores: map[string]float64{"return_on_investment": 4.0, "overall_sentiment": 4.0}}
	f := NewFiller(mock, fillerGraph(t), scorer, 0.2)

	project := fillerProject(
		&workflow.Review{ReviewerName: "Ana", Domain: "technical", IsAccepted: true, ConfidenceScore: 90},
	)

	generated, err := f.FillGaps(context.Background(), project)
	require.NoError(t, err)
	require.Len(t, generated, 1, "business is uncovered and relevant; clinical is irrelevant")

	review := generated[0]
	assert.Equal(t, "business", review.Domain)
	assert.Equal(t, "AI Business Expert", review.ReviewerName)
	assert.Equal(t, "From a business angle the usage based pricing is credible.", review.Text)
	assert.Equal(t, 88, review.ConfidenceScore)
	assert.Equal(t, "expert", review.ExpertiseLevel)
	assert.True(t, review.IsArtificial)
	assert.True(t, review.IsAccepted)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, 1.0, review.RelevanceScore)
	assert.Equal(t, scorer.scores, review.SentimentScores)
	assert.Equal(t, 1, scorer.calls)

	prompt := mock.LastPrompt()
	assert.Contains(t, prompt, "Business")
	assert.Contains(t, prompt, "Cluster Billing")
	assert.Contains(t, prompt, "Return on Investment")
}

func TestFillGapsSkipsCoveredDomains(t *testing.T) {
	mock := &testutil.MockCompleter{}
	scorer := &fakeScorer{}
	f := NewFiller(mock, fillerGraph(t), scorer, 0.2)

	project := fillerProject(
		&workflow.Review{ReviewerName: "Ana", Domain: "technical", IsAccepted: true},
		&workflow.Review{ReviewerName: "Ben", Domain: "business", IsAccepted: true},
	)

	generated, err := f.FillGaps(context.Background(), project)
	require.NoError(t, err)
	assert.Empty(t, generated)
	assert.Equal(t, 0, mock.CallCount())
}

func TestFillGapsIgnoresRejectedAndArtificialCoverage(t *testing.T) {
	mock := &testutil.MockCompleter{ReplyFunc: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Business") {
			return "REVIEW: Pricing model holds up.\nCONFIDENCE: 90", nil
		}
		return "REVIEW: Build is realistic.\nCONFIDENCE: 92", nil
	}}
	scorer := &fakeScorer{scores: map[string]float64{"overall_sentiment": 3.5}}
	f := NewFiller(mock, fillerGraph(t), scorer, 0.2)

	// A rejected human review and an accepted artificial review: neither
	// counts as coverage.
	project := fillerProject(
		&workflow.Review{ReviewerName: "Ben", Domain: "business", IsAccepted: false, ConfidenceScore: 20},
		&workflow.Review{ReviewerName: "AI Technical Expert", Domain: "technical", IsAccepted: true, IsArtificial: true},
	)

	generated, err := f.FillGaps(context.Background(), project)
	require.NoError(t, err)
	require.Len(t, generated, 2)
	assert.Equal(t, "technical", generated[0].Domain)
	assert.Equal(t, "business", generated[1].Domain)
}

func TestFillGapsSkipsFailedDomain(t *testing.T) {
	mock := &testutil.MockCompleter{ReplyFunc: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Technical") {
			return "", errors.New("all endpoints failed")
		}
		return "REVIEW: Revenue model is sound.\nCONFIDENCE: 87", nil
	}}
	scorer := &fakeScorer{scores: map[string]float64{"overall_sentiment": 4.0}}
	f := NewFiller(mock, fillerGraph(t), scorer, 0.2)

	project := fillerProject()

	generated, err := f.FillGaps(context.Background(), project)
	require.NoError(t, err, "one domain failing must not abort the others")
	require.Len(t, generated, 1)
	assert.Equal(t, "business", generated[0].Domain)
}

func TestFillGapsSkipsEmptyReply(t *testing.T) {
	mock := &testutil.MockCompleter{ReplyFunc: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Technical") {
			return "CONFIDENCE: 90", nil // marker only, no review text
		}
		return "REVIEW: Solid monetization path.\nCONFIDENCE: 86", nil
	}}
	scorer := &fakeScorer{scores: map[string]float64{"overall_sentiment": 4.0}}
	f := NewFiller(mock, fillerGraph(t), scorer, 0.2)

	generated, err := f.FillGaps(context.Background(), fillerProject())
	require.NoError(t, err)
	require.Len(t, generated, 1)
	assert.Equal(t, "business", generated[0].Domain)
	assert.Equal(t, 1, scorer.calls, "scorer runs only for parseable reviews")
}

func TestFillGapsHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := &testutil.MockCompleter{}
	f := NewFiller(mock, fillerGraph(t), &fakeScorer{}, 0.2)

	_, err := f.FillGaps(ctx, fillerProject())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, mock.CallCount())
}
