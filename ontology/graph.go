package ontology

import (
	"fmt"
	"math"
	"strings"
	"sync"
)

// Defaults applied when a lookup matches nothing.
const (
	// DefaultExpertiseLevel is returned when a confidence score falls in no
	// configured range.
	DefaultExpertiseLevel = "beginner"
	// DefaultProjectType is returned when no project type keyword matches.
	DefaultProjectType = "software"
)

// Graph is the in-memory knowledge graph queried by every pipeline stage.
// Domains and impact dimensions keep stable insertion order, so iteration
// and fallback decisions are deterministic. All methods are safe for
// concurrent use; reads take a shared lock, mutations an exclusive one.
type Graph struct {
	mu           sync.RWMutex
	domains      []Domain
	domainIdx    map[string]int
	dimensions   []ImpactDimension
	dimensionIdx map[string]int
	levels       []ExpertiseLevel
	types        []ProjectType
}

// New builds a graph from a document, validating referential integrity.
func New(doc Document) (*Graph, error) {
	g := &Graph{
		domainIdx:    make(map[string]int),
		dimensionIdx: make(map[string]int),
	}
	if err := g.Reload(doc); err != nil {
		return nil, err
	}
	return g, nil
}

// Reload atomically replaces the graph's contents with the document.
// The document is validated first; on error the existing contents are
// left untouched. This is how the store's file watcher applies edits
// without invalidating references held by running pipelines.
func (g *Graph) Reload(doc Document) error {
	dimensionIdx := make(map[string]int, len(doc.ImpactDimensions))
	for i, dim := range doc.ImpactDimensions {
		if dim.ID == "" {
			return fmt.Errorf("impact dimension %d: empty id", i)
		}
		if _, dup := dimensionIdx[dim.ID]; dup {
			return fmt.Errorf("impact dimension %q: duplicate id", dim.ID)
		}
		dimensionIdx[dim.ID] = i
	}

	domainIdx := make(map[string]int, len(doc.Domains))
	for i, d := range doc.Domains {
		if d.ID == "" {
			return fmt.Errorf("domain %d: empty id", i)
		}
		if _, dup := domainIdx[d.ID]; dup {
			return fmt.Errorf("domain %q: duplicate id", d.ID)
		}
		for _, dimID := range d.RelevantDimensions {
			if _, ok := dimensionIdx[dimID]; !ok {
				return &IntegrityError{DomainID: d.ID, DimensionID: dimID}
			}
		}
		domainIdx[d.ID] = i
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.domains = append([]Domain(nil), doc.Domains...)
	g.domainIdx = domainIdx
	g.dimensions = append([]ImpactDimension(nil), doc.ImpactDimensions...)
	g.dimensionIdx = dimensionIdx
	g.levels = append([]ExpertiseLevel(nil), doc.ExpertiseLevels...)
	g.types = append([]ProjectType(nil), doc.ProjectTypes...)
	return nil
}

// Document snapshots the graph's contents for persistence or export.
func (g *Graph) Document() Document {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Document{
		Domains:          append([]Domain(nil), g.domains...),
		ImpactDimensions: append([]ImpactDimension(nil), g.dimensions...),
		ExpertiseLevels:  append([]ExpertiseLevel(nil), g.levels...),
		ProjectTypes:     append([]ProjectType(nil), g.types...),
	}
}

// Domains returns all domains in stable insertion order. Callers must not
// mutate the returned values.
func (g *Graph) Domains() []Domain {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Domain(nil), g.domains...)
}

// DomainByID looks up a domain by its slug.
func (g *Graph) DomainByID(id string) (Domain, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	idx, ok := g.domainIdx[id]
	if !ok {
		return Domain{}, false
	}
	return g.domains[idx], true
}

// ImpactDimensions returns all impact dimensions in stable insertion order.
func (g *Graph) ImpactDimensions() []ImpactDimension {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]ImpactDimension(nil), g.dimensions...)
}

// DimensionByID looks up an impact dimension by its slug.
func (g *Graph) DimensionByID(id string) (ImpactDimension, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	idx, ok := g.dimensionIdx[id]
	if !ok {
		return ImpactDimension{}, false
	}
	return g.dimensions[idx], true
}

// ExpertiseLevels returns all expertise levels in configured order.
func (g *Graph) ExpertiseLevels() []ExpertiseLevel {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]ExpertiseLevel(nil), g.levels...)
}

// ProjectTypes returns all project types in configured order.
func (g *Graph) ProjectTypes() []ProjectType {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]ProjectType(nil), g.types...)
}

// RelevantDimensionsForDomain returns the dimension IDs a domain's reviewers
// are authoritative on. Unknown domains yield an empty slice, not an error.
func (g *Graph) RelevantDimensionsForDomain(domainID string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	idx, ok := g.domainIdx[domainID]
	if !ok {
		return nil
	}
	return append([]string(nil), g.domains[idx].RelevantDimensions...)
}

// ExpertiseLevelByConfidence maps a confidence score to the first expertise
// level whose range contains it, or DefaultExpertiseLevel if none does.
func (g *Graph) ExpertiseLevelByConfidence(score int) string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, lvl := range g.levels {
		if score >= lvl.ConfidenceRange[0] && score <= lvl.ConfidenceRange[1] {
			return lvl.ID
		}
	}
	return DefaultExpertiseLevel
}

// ClassifyProjectType picks the project type whose keywords match the text
// most often. Matching is case-insensitive substring containment. Ties keep
// the first type encountered; no match at all yields DefaultProjectType.
func (g *Graph) ClassifyProjectType(text string) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	lower := strings.ToLower(text)
	best := ""
	bestScore := 0
	for _, pt := range g.types {
		score := 0
		for _, kw := range pt.Keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = pt.ID
		}
	}
	if best == "" {
		return DefaultProjectType
	}
	return best
}

// DomainRelevance scores how relevant a domain is to the given text.
// A primary keyword found in the text counts 1.0, a subdomain keyword 0.5;
// with total the number of keywords at both levels, the score is
// min(1.0, matched / (total * 0.3)). The result is always in [0, 1].
// Unknown domains and domains without keywords score 0.
func (g *Graph) DomainRelevance(text, domainID string) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	idx, ok := g.domainIdx[domainID]
	if !ok {
		return 0.0
	}
	d := g.domains[idx]

	total := len(d.Keywords)
	for _, sd := range d.Subdomains {
		total += len(sd.Keywords)
	}
	if total == 0 {
		return 0.0
	}

	lower := strings.ToLower(text)
	var matched float64
	for _, kw := range d.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			matched += 1.0
		}
	}
	for _, sd := range d.Subdomains {
		for _, kw := range sd.Keywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				matched += 0.5
			}
		}
	}

	return math.Min(1.0, matched/(float64(total)*0.3))
}

// AddDomain inserts a domain, or replaces the definition in place when the
// ID already exists so iteration order never shifts. Every entry in
// RelevantDimensions must resolve to a known impact dimension.
func (g *Graph) AddDomain(d Domain) error {
	if d.ID == "" {
		return fmt.Errorf("add domain: empty id")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, dimID := range d.RelevantDimensions {
		if _, ok := g.dimensionIdx[dimID]; !ok {
			return &IntegrityError{DomainID: d.ID, DimensionID: dimID}
		}
	}

	if idx, ok := g.domainIdx[d.ID]; ok {
		g.domains[idx] = d
		return nil
	}
	g.domainIdx[d.ID] = len(g.domains)
	g.domains = append(g.domains, d)
	return nil
}

// AddImpactDimension inserts an impact dimension, or replaces the definition
// in place when the ID already exists. New dimensions immediately show up in
// prompts and aggregation output.
func (g *Graph) AddImpactDimension(dim ImpactDimension) error {
	if dim.ID == "" {
		return fmt.Errorf("add impact dimension: empty id")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if idx, ok := g.dimensionIdx[dim.ID]; ok {
		g.dimensions[idx] = dim
		return nil
	}
	g.dimensionIdx[dim.ID] = len(g.dimensions)
	g.dimensions = append(g.dimensions, dim)
	return nil
}

// LinkDomainToDimensions appends dimension IDs to a domain's relevant set,
// skipping IDs already linked. All IDs must resolve to known dimensions.
func (g *Graph) LinkDomainToDimensions(domainID string, dimensionIDs []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx, ok := g.domainIdx[domainID]
	if !ok {
		return fmt.Errorf("link domain %q: %w", domainID, ErrUnknownDomain)
	}
	for _, dimID := range dimensionIDs {
		if _, ok := g.dimensionIdx[dimID]; !ok {
			return &IntegrityError{DomainID: domainID, DimensionID: dimID}
		}
	}

	linked := make(map[string]bool, len(g.domains[idx].RelevantDimensions))
	for _, existing := range g.domains[idx].RelevantDimensions {
		linked[existing] = true
	}
	for _, dimID := range dimensionIDs {
		if linked[dimID] {
			continue
		}
		g.domains[idx].RelevantDimensions = append(g.domains[idx].RelevantDimensions, dimID)
		linked[dimID] = true
	}
	return nil
}

// AddProjectType inserts a project type, or replaces the definition in place
// when the ID already exists.
func (g *Graph) AddProjectType(pt ProjectType) error {
	if pt.ID == "" {
		return fmt.Errorf("add project type: empty id")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for i, existing := range g.types {
		if existing.ID == pt.ID {
			g.types[i] = pt
			return nil
		}
	}
	g.types = append(g.types, pt)
	return nil
}

func (g *Graph) hasProjectType(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, pt := range g.types {
		if pt.ID == id {
			return true
		}
	}
	return false
}

// Validate checks referential integrity: every relevant-dimension reference
// of every domain must resolve. Returns the first violation found.
func (g *Graph) Validate() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, d := range g.domains {
		for _, dimID := range d.RelevantDimensions {
			if _, ok := g.dimensionIdx[dimID]; !ok {
				return &IntegrityError{DomainID: d.ID, DimensionID: dimID}
			}
		}
	}
	return nil
}
