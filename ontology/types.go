// Package ontology implements the knowledge graph that drives review
// aggregation: reviewer domains, impact dimensions, expertise levels, and
// project types, plus keyword relevance scoring over all of them.
package ontology

import "strings"

// Subdomain is a named keyword cluster nested under a Domain. Subdomain
// keyword matches count at half the weight of primary keyword matches.
type Subdomain struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Domain is a reviewer knowledge domain such as technical or clinical.
// RelevantDimensions lists the impact dimension IDs this domain's reviewers
// are considered authoritative on; every entry must resolve to a dimension
// in the same graph.
type Domain struct {
	ID                 string      `json:"id" yaml:"id"`
	Name               string      `json:"name" yaml:"name"`
	Description        string      `json:"description" yaml:"description"`
	Keywords           []string    `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Subdomains         []Subdomain `json:"subdomains,omitempty" yaml:"subdomains,omitempty"`
	RelevantDimensions []string    `json:"relevant_dimensions,omitempty" yaml:"relevant_dimensions,omitempty"`
}

// DisplayName returns the domain's name, falling back to the capitalized ID
// when no name is set.
func (d Domain) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	if d.ID == "" {
		return ""
	}
	return strings.ToUpper(d.ID[:1]) + d.ID[1:]
}

// ImpactDimension is an evaluation axis scored on a 1-5 scale. Scale maps
// each integer score to its human-readable meaning.
type ImpactDimension struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Scale       map[int]string `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// ExpertiseLevel maps a band of reviewer confidence scores (0-100) to a
// named level. ConfidenceRange holds the inclusive min and max.
type ExpertiseLevel struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Description     string `json:"description" yaml:"description"`
	ConfidenceRange [2]int `json:"confidence_range" yaml:"confidence_range"`
}

// ProjectType is an informational project classification. It never feeds
// into scoring.
type ProjectType struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Document is the serialized form of a Graph. Slice order is preserved on
// load and becomes the graph's stable iteration order.
type Document struct {
	Domains          []Domain          `json:"domains" yaml:"domains"`
	ImpactDimensions []ImpactDimension `json:"impact_dimensions" yaml:"impact_dimensions"`
	ExpertiseLevels  []ExpertiseLevel  `json:"expertise_levels" yaml:"expertise_levels"`
	ProjectTypes     []ProjectType     `json:"project_types" yaml:"project_types"`
}
