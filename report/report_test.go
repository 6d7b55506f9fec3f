package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semreview/workflow"
)

func sampleProject() *workflow.Project {
	return &workflow.Project{
		ID:          "cluster-billing",
		Name:        "Cluster Billing",
		Description: "Reconciles usage across tenants.",
		Reviews: []*workflow.Review{
			{
				ID:              "r1",
				ReviewerName:    "Jane Doe",
				Text:            "Strong data model.",
				ConfidenceScore: 88,
				Domain:          "technical",
				ExpertiseLevel:  "seasoned",
				RelevanceScore:  0.8,
				IsAccepted:      true,
				SentimentScores: map[string]float64{
					"technical_feasibility": 4.0,
					"scalability":           3.5,
					"overall_sentiment":     4.0,
				},
			},
			{
				ID:              "r2",
				ReviewerName:    "Business Perspective",
				Text:            "Clear market need.",
				ConfidenceScore: 75,
				Domain:          "business",
				ExpertiseLevel:  "talented",
				IsArtificial:    true,
				IsAccepted:      true,
				SentimentScores: map[string]float64{
					"return_on_investment": 3.0,
					"overall_sentiment":    3.0,
				},
			},
			{
				ID:              "r3",
				ReviewerName:    "Low Confidence",
				Text:            "Did not look closely.",
				ConfidenceScore: 10,
				Domain:          "technical",
				IsAccepted:      false,
			},
		},
	}
}

func sampleResult() *workflow.AnalysisResult {
	return &workflow.AnalysisResult{
		FeedbackScores: map[string]float64{
			"technical_feasibility": 4.0,
			"scalability":           3.5,
			"return_on_investment":  3.0,
		},
		OverallScore: 3.5,
		FinalReview:  "A capable platform with room to grow.",
		DomainInsights: map[string]workflow.DomainInsight{
			"technical": {
				DomainName:  "Technical",
				Summary:     "Perspective from 1 Technical reviewer(s)",
				KeyPoints:   []string{"Technical Feasibility"},
				ReviewCount: 1,
			},
			"business": {
				DomainName:      "Business",
				Summary:         "Perspective from 1 Business reviewer(s)",
				Concerns:        []string{"Return On Investment"},
				ReviewCount:     1,
				ArtificialCount: 1,
			},
		},
		Recommendations: []string{"Invest in a scalability spike."},
		Metadata: workflow.AnalysisMetadata{
			TotalReviews:        3,
			AcceptedReviews:     2,
			HumanReviews:        2,
			ArtificialReviews:   1,
			DimensionsEvaluated: []string{"technical_feasibility", "scalability", "return_on_investment"},
			DomainsUsed:         []string{"technical", "business"},
			DomainsAvailable:    6,
		},
	}
}

func TestRenderFullReport(t *testing.T) {
	md := Render(sampleProject(), sampleResult())

	assert.True(t, strings.HasPrefix(md, "# Feedback Report: Cluster Billing\n"))
	assert.Contains(t, md, "## Project Description\n\nReconciles usage across tenants.")
	assert.Contains(t, md, "**Overall Score:** 3.5/5")
	assert.Contains(t, md, "| Technical Feasibility | 4.0 |")
	assert.Contains(t, md, "| Scalability | 3.5 |")
	assert.Contains(t, md, "| Return On Investment | 3.0 |")
	assert.Contains(t, md, "## Synthesized Review\n\nA capable platform with room to grow.")
	assert.Contains(t, md, "#### Human Seasoned Reviewer: Jane Doe")
	assert.Contains(t, md, "**Confidence Score:** 88/100")
	assert.Contains(t, md, "#### AI-generated Talented Reviewer: Business Perspective")
	assert.Contains(t, md, "**Key strengths:**\n\n- Technical Feasibility")
	assert.Contains(t, md, "**Concerns:**\n\n- Return On Investment")
	assert.Contains(t, md, "## Recommendations\n\n1. Invest in a scalability spike.")
	assert.Contains(t, md, "## Note on AI-Generated Reviews")
	assert.Contains(t, md, "includes 1 AI-generated review(s)")
	assert.Contains(t, md, "## Methodology")

	assert.NotContains(t, md, "Low Confidence", "rejected reviews stay out of the report")
	assert.NotContains(t, md, "| Overall Sentiment |", "overall sentiment is not a table row")
}

func TestRenderOrdersSectionsByGraph(t *testing.T) {
	md := Render(sampleProject(), sampleResult())

	feasibility := strings.Index(md, "| Technical Feasibility |")
	scalability := strings.Index(md, "| Scalability |")
	roi := strings.Index(md, "| Return On Investment |")
	require.True(t, feasibility >= 0 && scalability >= 0 && roi >= 0)
	assert.Less(t, feasibility, scalability)
	assert.Less(t, scalability, roi)

	technical := strings.Index(md, "### Technical Perspective")
	business := strings.Index(md, "### Business Perspective")
	require.True(t, technical >= 0 && business >= 0)
	assert.Less(t, technical, business)
}

func TestRenderSkipsEmptySections(t *testing.T) {
	project := &workflow.Project{ID: "bare"}
	result := &workflow.AnalysisResult{
		FeedbackScores: map[string]float64{"impact": 3.0},
		OverallScore:   3.0,
		FinalReview:    "Nothing remarkable.",
		Metadata: workflow.AnalysisMetadata{
			DimensionsEvaluated: []string{"impact"},
		},
	}

	md := Render(project, result)

	assert.Contains(t, md, "# Feedback Report: bare")
	assert.Contains(t, md, "No description provided.")
	assert.NotContains(t, md, "## Domain-Specific Feedback")
	assert.NotContains(t, md, "## Recommendations")
	assert.NotContains(t, md, "## Note on AI-Generated Reviews")
	assert.Contains(t, md, "## Methodology")
}

func TestBuildDocument(t *testing.T) {
	doc := BuildDocument(sampleProject(), sampleResult())

	assert.Equal(t, "cluster-billing", doc.ProjectID)
	assert.Equal(t, "Cluster Billing", doc.ProjectName)
	assert.Equal(t, 3.5, doc.OverallScore)
	require.Len(t, doc.ReviewsByDomain, 2)

	technical := doc.ReviewsByDomain["technical"]
	require.Len(t, technical, 1)
	assert.Equal(t, "Jane Doe", technical[0].ReviewerName)
	assert.Equal(t, "seasoned", technical[0].ExpertiseLevel)
	assert.False(t, technical[0].IsArtificial)

	business := doc.ReviewsByDomain["business"]
	require.Len(t, business, 1)
	assert.True(t, business[0].IsArtificial)

	assert.Equal(t, 2, doc.Metadata.AcceptedReviews)
}

func TestBuildDocumentUnknownDomain(t *testing.T) {
	project := &workflow.Project{
		ID: "odd",
		Reviews: []*workflow.Review{
			{ID: "r1", ReviewerName: "Stray", Text: "ok", IsAccepted: true},
		},
	}
	doc := BuildDocument(project, &workflow.AnalysisResult{})

	require.Len(t, doc.ReviewsByDomain, 1)
	assert.Len(t, doc.ReviewsByDomain["unknown"], 1)
}

func TestVisualizationData(t *testing.T) {
	viz := VisualizationData(sampleProject(), sampleResult())

	assert.Equal(t, "Cluster Billing", viz.ProjectName)
	assert.Equal(t,
		[]string{"Technical Feasibility", "Scalability", "Return On Investment"},
		viz.RadarChart.Dimensions)
	assert.Equal(t, []float64{4.0, 3.5, 3.0}, viz.RadarChart.Scores)

	require.Len(t, viz.DomainBreakdown, 2)

	technical := viz.DomainBreakdown[0]
	assert.Equal(t, "Technical", technical.Name)
	assert.Equal(t, 1, technical.ReviewCount)
	assert.Equal(t, 0, technical.ArtificialCount)
	assert.Equal(t, map[string]float64{
		"Technical Feasibility": 4.0,
		"Scalability":           3.5,
	}, technical.DimensionScores)

	business := viz.DomainBreakdown[1]
	assert.Equal(t, "Business", business.Name)
	assert.Equal(t, 1, business.ArtificialCount)
	assert.Equal(t, map[string]float64{
		"Return On Investment": 3.0,
	}, business.DimensionScores)
}

func TestVisualizationAveragesDomainScores(t *testing.T) {
	project := &workflow.Project{
		ID: "avg",
		Reviews: []*workflow.Review{
			{
				ID: "r1", ReviewerName: "A", Text: "x", Domain: "technical", IsAccepted: true,
				SentimentScores: map[string]float64{"innovation": 4.0},
			},
			{
				ID: "r2", ReviewerName: "B", Text: "y", Domain: "technical", IsAccepted: true,
				SentimentScores: map[string]float64{"innovation": 3.0},
			},
			{
				ID: "r3", ReviewerName: "C", Text: "z", Domain: "technical", IsAccepted: true,
				SentimentScores: map[string]float64{"innovation": 3.0},
			},
		},
	}
	viz := VisualizationData(project, &workflow.AnalysisResult{})

	require.Len(t, viz.DomainBreakdown, 1)
	assert.Equal(t, 3.33, viz.DomainBreakdown[0].DimensionScores["Innovation"])
}

func TestWriterWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	writer := NewWriter(dir)

	paths, err := writer.Write(sampleProject(), sampleResult())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "cluster-billing_feedback.md"), paths.Markdown)

	md, err := os.ReadFile(paths.Markdown)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "# Feedback Report: Cluster Billing"))

	var doc Document
	data, err := os.ReadFile(paths.Feedback)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "cluster-billing", doc.ProjectID)

	var viz Visualization
	data, err = os.ReadFile(paths.Visualization)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &viz))
	assert.Equal(t, "Cluster Billing", viz.ProjectName)
	assert.Len(t, viz.RadarChart.Dimensions, 3)
}

func TestWriterWriteRequiresArgs(t *testing.T) {
	writer := NewWriter(t.TempDir())

	_, err := writer.Write(nil, sampleResult())
	assert.Error(t, err)

	_, err = writer.Write(sampleProject(), nil)
	assert.Error(t, err)
}
