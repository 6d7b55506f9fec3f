package commands

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semreview/config"
	"github.com/c360studio/semreview/llm"
	"github.com/c360studio/semreview/llm/testutil"
	"github.com/c360studio/semreview/model"
	"github.com/c360studio/semreview/ontology"
	"github.com/c360studio/semreview/workflow"
)

// fakeSource scripts one completer per capability.
type fakeSource struct {
	completers map[string]llm.Completer
}

func (f *fakeSource) For(capability string) llm.Completer {
	if c, ok := f.completers[capability]; ok {
		return c
	}
	return &testutil.MockCompleter{}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildStagesRunsPipeline(t *testing.T) {
	graph := ontology.Default()
	cfg := config.Default().Analysis

	src := &fakeSource{completers: map[string]llm.Completer{
		string(model.CapabilityClassification): &testutil.MockCompleter{
			Responses: []string{"technical"},
		},
		string(model.CapabilitySentiment): &testutil.MockCompleter{
			ReplyFunc: func(string) (string, error) {
				return `{"technical_feasibility": 4.5, "innovation": 4.0, "overall_sentiment": 4.2}`, nil
			},
		},
		string(model.CapabilityGeneration): &testutil.MockCompleter{
			ReplyFunc: func(string) (string, error) {
				return "REVIEW: Solid approach with realistic scope.\nCONFIDENCE: 90", nil
			},
		},
		string(model.CapabilitySynthesis): &testutil.MockCompleter{
			Responses: []string{"A balanced synthesis of all perspectives."},
		},
	}}

	stages := buildStages(src, graph, cfg, nil, quietLogger())
	require.NotNil(t, stages.Classifier)

	pipeline, err := workflow.NewPipeline(graph, stages, cfg, workflow.WithLogger(quietLogger()))
	require.NoError(t, err)

	project := &workflow.Project{
		ID:          "wearable-monitor",
		Name:        "Wearable Monitor",
		Description: "A software platform for monitoring patient vitals using machine learning.",
		WorkDone:    "Built a prototype with a web dashboard.",
		Reviews: []*workflow.Review{
			{ReviewerName: "Ada", Text: "Strong engineering, feasible architecture.", ConfidenceScore: 90},
		},
	}

	result, err := pipeline.Analyze(context.Background(), project)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateCompleted, pipeline.State())

	// Every graph dimension is scored.
	for _, dim := range graph.ImpactDimensions() {
		assert.Contains(t, result.FeedbackScores, dim.ID)
	}
	assert.Equal(t, "A balanced synthesis of all perspectives.", result.FinalReview)
	assert.GreaterOrEqual(t, len(result.Recommendations), 1)
	assert.LessOrEqual(t, len(result.Recommendations), 5)
}

func TestNewLLMClientRegistryDefaults(t *testing.T) {
	cfg := config.Default()
	client, err := newLLMClient(cfg, nil, quietLogger())
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestNewLLMClientBadRegistryPath(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.RegistryPath = "/nonexistent/registry.json"
	_, err := newLLMClient(cfg, nil, quietLogger())
	require.Error(t, err)
}

func TestOpenResultStoreFileBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Dir = t.TempDir()
	store, err := openResultStore(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, store)
}
