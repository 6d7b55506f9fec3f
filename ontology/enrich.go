package ontology

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/c360studio/semreview/llm"
)

// Suggestions is an additive ontology update proposed by a model: new
// domains, impact dimensions, and project types. Entries whose IDs already
// exist in the graph are ignored on Apply; the model never overwrites
// curated definitions.
type Suggestions struct {
	Domains      []Domain          `json:"domains_to_add"`
	Dimensions   []ImpactDimension `json:"dimensions_to_add"`
	ProjectTypes []ProjectType     `json:"project_types_to_add"`
}

// Empty reports whether the suggestions contain nothing applicable.
func (s *Suggestions) Empty() bool {
	return s == nil || (len(s.Domains) == 0 && len(s.Dimensions) == 0 && len(s.ProjectTypes) == 0)
}

// Suggest asks the completion port for ontology additions that would better
// cover the given project context. The reply must contain a JSON object in
// the documented shape; anything else is an error, and nothing is applied.
func Suggest(ctx context.Context, completer llm.Completer, g *Graph, projectContext string) (*Suggestions, error) {
	reply, err := completer.Complete(ctx, suggestPrompt(g, projectContext))
	if err != nil {
		return nil, fmt.Errorf("suggest ontology updates: %w", err)
	}

	raw := llm.ExtractJSON(reply)
	if raw == "" {
		return nil, fmt.Errorf("suggest ontology updates: no JSON object in reply")
	}

	var s Suggestions
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("suggest ontology updates: parse reply: %w", err)
	}
	return &s, nil
}

// Apply adds the suggested entities to the graph and returns how many were
// added. Dimensions are applied before domains so that suggested domains may
// reference suggested dimensions. Entries with empty or already-known IDs
// are skipped.
func (s *Suggestions) Apply(g *Graph) (int, error) {
	if s.Empty() {
		return 0, nil
	}

	added := 0
	for _, dim := range s.Dimensions {
		if dim.ID == "" {
			continue
		}
		if _, exists := g.DimensionByID(dim.ID); exists {
			continue
		}
		if err := g.AddImpactDimension(dim); err != nil {
			return added, fmt.Errorf("apply suggested dimension %q: %w", dim.ID, err)
		}
		added++
	}

	for _, pt := range s.ProjectTypes {
		if pt.ID == "" {
			continue
		}
		if exists := g.hasProjectType(pt.ID); exists {
			continue
		}
		if err := g.AddProjectType(pt); err != nil {
			return added, fmt.Errorf("apply suggested project type %q: %w", pt.ID, err)
		}
		added++
	}

	for _, d := range s.Domains {
		if d.ID == "" {
			continue
		}
		if _, exists := g.DomainByID(d.ID); exists {
			continue
		}
		if err := g.AddDomain(d); err != nil {
			return added, fmt.Errorf("apply suggested domain %q: %w", d.ID, err)
		}
		added++
	}

	return added, nil
}

func suggestPrompt(g *Graph, projectContext string) string {
	var b strings.Builder
	b.WriteString("You are an expert in hackathon organization and knowledge representation.\n\n")
	b.WriteString("Current Ontology Structure:\n\nDomains:\n")
	for _, d := range g.Domains() {
		fmt.Fprintf(&b, "- %s: %s\n", d.Name, d.Description)
	}
	b.WriteString("\nImpact Dimensions:\n")
	for _, dim := range g.ImpactDimensions() {
		fmt.Fprintf(&b, "- %s: %s\n", dim.Name, dim.Description)
	}
	b.WriteString("\nProject Types:\n")
	for _, pt := range g.ProjectTypes() {
		fmt.Fprintf(&b, "- %s: %s\n", pt.Name, pt.Description)
	}
	b.WriteString("\nBased on the following new project context, suggest additions to the ontology:\n\n")
	fmt.Fprintf(&b, "Context:\n%s\n\n", projectContext)
	b.WriteString(`Analyze if:
1. New domains are needed to properly categorize expertise
2. Additional impact dimensions would better evaluate projects
3. New project types have emerged

Provide suggestions in this JSON format:
{
  "domains_to_add": [
    {
      "id": "suggested_id",
      "name": "Domain Name",
      "description": "Clear description of the domain",
      "keywords": ["keyword1", "keyword2"],
      "relevant_dimensions": ["dimension_id1", "dimension_id2"]
    }
  ],
  "dimensions_to_add": [
    {
      "id": "suggested_id",
      "name": "Dimension Name",
      "description": "What this dimension measures",
      "scale": {
        "1": "Lowest score description",
        "2": "Low score description",
        "3": "Medium score description",
        "4": "High score description",
        "5": "Highest score description"
      }
    }
  ],
  "project_types_to_add": [
    {
      "id": "suggested_id",
      "name": "Type Name",
      "description": "Type description",
      "keywords": ["keyword1", "keyword2"]
    }
  ]
}

Return empty arrays where nothing should be added. Respond with the JSON object only, no extra text.`)
	return b.String()
}
