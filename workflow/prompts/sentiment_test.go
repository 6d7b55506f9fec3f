package prompts

import (
	"strings"
	"testing"

	"github.com/c360studio/semreview/ontology"
)

func TestSentimentAnalysis(t *testing.T) {
	dims := []ontology.ImpactDimension{
		{
			ID:          "innovation",
			Name:        "Innovation",
			Description: "Novelty of the approach",
			Scale:       map[int]string{1: "Derivative", 3: "Fresh take", 5: "Groundbreaking"},
		},
		{
			ID:          "scalability",
			Name:        "Scalability",
			Description: "Ability to grow",
			Scale:       map[int]string{1: "Single user", 5: "Planet scale"},
		},
	}

	prompt := SentimentAnalysis("Great idea but the deployment story is shaky.", dims)

	if !strings.Contains(prompt, "Great idea but the deployment story is shaky.") {
		t.Error("SentimentAnalysis should embed the review text")
	}

	// Every dimension appears with id, description, and scale lines
	for _, want := range []string{
		"Innovation (innovation):",
		"Novelty of the approach",
		"  1: Derivative",
		"  3: Fresh take",
		"  5: Groundbreaking",
		"Scalability (scalability):",
		"  5: Planet scale",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("SentimentAnalysis missing %q", want)
		}
	}

	// The JSON contract lists one key per dimension plus overall_sentiment
	for _, want := range []string{
		`"innovation": 3.0,`,
		`"scalability": 3.0,`,
		`"overall_sentiment": 3.0`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("SentimentAnalysis JSON contract missing %q", want)
		}
	}
	if !strings.Contains(prompt, "ONLY a valid JSON object") {
		t.Error("SentimentAnalysis should demand a bare JSON reply")
	}
}

func TestSentimentAnalysisTracksGraphDimensions(t *testing.T) {
	base := []ontology.ImpactDimension{{ID: "impact", Name: "Impact", Description: "d"}}
	before := SentimentAnalysis("text", base)

	extended := append(base, ontology.ImpactDimension{ID: "regulatory_fit", Name: "Regulatory Fit", Description: "d"})
	after := SentimentAnalysis("text", extended)

	if strings.Contains(before, "regulatory_fit") {
		t.Error("prompt should not mention a dimension before it is added")
	}
	if !strings.Contains(after, `"regulatory_fit": 3.0,`) {
		t.Error("adding a dimension should add its key to the JSON contract")
	}
}
