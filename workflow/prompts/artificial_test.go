package prompts

import (
	"strings"
	"testing"

	"github.com/c360studio/semreview/ontology"
)

func TestArtificialReview(t *testing.T) {
	domain := ontology.Domain{
		ID:          "clinical",
		Name:        "Clinical",
		Description: "Medical or healthcare expertise",
		Keywords:    []string{"medical", "patient", "treatment"},
	}
	dims := []ontology.ImpactDimension{
		{ID: "impact", Name: "Impact", Description: "Potential to improve outcomes"},
		{ID: "technical_feasibility", Name: "Technical Feasibility", Description: "How realistic the build is"},
	}

	prompt := ArtificialReview("A triage assistant for rural clinics.", domain, dims)

	// Domain context is embedded
	for _, want := range []string{
		"deep expertise in Clinical",
		"Domain Context: Medical or healthcare expertise",
		"medical, patient, treatment",
		"A triage assistant for rural clinics.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("ArtificialReview missing %q", want)
		}
	}

	// Only the domain's relevant dimensions appear
	if !strings.Contains(prompt, "- Impact: Potential to improve outcomes") {
		t.Error("ArtificialReview should list the impact dimension")
	}
	if !strings.Contains(prompt, "- Technical Feasibility: How realistic the build is") {
		t.Error("ArtificialReview should list the technical feasibility dimension")
	}

	// Output contract
	if !strings.Contains(prompt, "REVIEW:") || !strings.Contains(prompt, "CONFIDENCE:") {
		t.Error("ArtificialReview should demand the REVIEW/CONFIDENCE structure")
	}
	if !strings.Contains(prompt, "85-95") {
		t.Error("ArtificialReview should steer confidence toward the expert band")
	}
}
