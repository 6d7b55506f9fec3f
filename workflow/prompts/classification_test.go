package prompts

import (
	"strings"
	"testing"

	"github.com/c360studio/semreview/ontology"
)

func TestReviewerClassification(t *testing.T) {
	domains := []ontology.Domain{
		{ID: "technical", Name: "Technical", Description: "Engineering expertise", Keywords: []string{"code", "software"}},
		{ID: "business", Name: "Business", Description: "Market expertise", Keywords: []string{"revenue", "market"}},
	}

	prompt := ReviewerClassification("Dana", "The API design is clean but lacks auth.", domains)

	if !strings.Contains(prompt, "Reviewer: Dana") {
		t.Error("ReviewerClassification should embed the reviewer name")
	}
	if !strings.Contains(prompt, "The API design is clean but lacks auth.") {
		t.Error("ReviewerClassification should embed the review text")
	}

	// Every domain option appears with id and keywords
	for _, want := range []string{
		"- Technical (technical): Engineering expertise",
		"Keywords: code, software",
		"- Business (business): Market expertise",
		"Keywords: revenue, market",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("ReviewerClassification missing %q", want)
		}
	}

	if !strings.Contains(prompt, "Return ONLY the domain ID") {
		t.Error("ReviewerClassification should demand a bare domain id reply")
	}
}
