// Package export serializes the review ontology to RDF so it can be loaded
// into triple stores and queried with SPARQL. Turtle, N-Triples, and JSON-LD
// serializations are supported, with an optional SKOS alignment profile.
package export

import (
	"fmt"
	"sort"

	"github.com/c360studio/semreview/ontology"
	"github.com/c360studio/semreview/vocabulary/hackreview"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// IRI marks a string as a resource reference. Plain strings serialize as
// literals; IRI values serialize as <bracketed> references.
type IRI string

// Triple is one predicate-object pair attached to a subject.
type Triple struct {
	Predicate string
	Object    any
}

// Entity is one exportable subject: its instance IRI, its ontology kind, and
// its attribute triples.
type Entity struct {
	ID      string
	Kind    Kind
	Triples []Triple
}

// Exporter renders ontology entities to RDF under a vocabulary profile.
type Exporter struct {
	asserter *TypeAsserter
	config   ProfileConfig
	entities []Entity
	prefixes map[string]string
}

// NewExporter creates an exporter with the specified profile.
func NewExporter(profile Profile) *Exporter {
	return &Exporter{
		asserter: NewTypeAsserter(profile),
		config:   GetProfileConfig(profile),
		entities: make([]Entity, 0),
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":             "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":            "http://www.w3.org/2000/01/rdf-schema#",
		"owl":             "http://www.w3.org/2002/07/owl#",
		"xsd":             "http://www.w3.org/2001/XMLSchema#",
		"skos":            "http://www.w3.org/2004/02/skos/core#",
		hackreview.Prefix: hackreview.Namespace,
	}
}

// AddEntity adds a prebuilt entity to the export set.
func (e *Exporter) AddEntity(entity Entity) {
	e.entities = append(e.entities, entity)
}

// Entities returns the collected entities in addition order. Consumers that
// need another wire shape (e.g. the graph publisher) build it from these.
func (e *Exporter) Entities() []Entity {
	return e.entities
}

// TypeIRIs returns the RDF type assertions the active profile makes for an
// entity kind.
func (e *Exporter) TypeIRIs(kind Kind) []string {
	return e.asserter.TypeIRIs(kind)
}

// AddGraph flattens a knowledge graph into exportable entities: one per
// domain, subdomain, impact dimension, expertise level, and project type.
// Subdomains shared between domains are emitted once.
func (e *Exporter) AddGraph(g *ontology.Graph) {
	seenSub := make(map[string]bool)
	for _, domain := range g.Domains() {
		e.addDomain(domain)
		for _, sub := range domain.Subdomains {
			if seenSub[sub.ID] {
				continue
			}
			seenSub[sub.ID] = true
			e.addSubdomain(sub)
		}
	}
	for _, dim := range g.ImpactDimensions() {
		e.addDimension(dim)
	}
	for _, level := range g.ExpertiseLevels() {
		e.addExpertiseLevel(level)
	}
	for _, pt := range g.ProjectTypes() {
		e.addProjectType(pt)
	}
}

func (e *Exporter) addDomain(d ontology.Domain) {
	triples := e.labelTriples(d.Name, d.Description)
	for _, keyword := range d.Keywords {
		triples = append(triples, Triple{hackreview.PropHasKeyword, keyword})
	}
	for _, sub := range d.Subdomains {
		triples = append(triples, Triple{hackreview.PropHasSubdomain, IRI(hackreview.EntityIRI(sub.ID))})
	}
	for _, dimID := range d.RelevantDimensions {
		triples = append(triples, Triple{hackreview.PropHasRelevantDimension, IRI(hackreview.EntityIRI(dimID))})
	}
	e.AddEntity(Entity{ID: hackreview.EntityIRI(d.ID), Kind: KindDomain, Triples: triples})
}

func (e *Exporter) addSubdomain(sub ontology.Subdomain) {
	triples := e.labelTriples(sub.Name, "")
	for _, keyword := range sub.Keywords {
		triples = append(triples, Triple{hackreview.PropHasKeyword, keyword})
	}
	e.AddEntity(Entity{ID: hackreview.EntityIRI(sub.ID), Kind: KindSubdomain, Triples: triples})
}

func (e *Exporter) addDimension(dim ontology.ImpactDimension) {
	triples := e.labelTriples(dim.Name, dim.Description)

	// Scale anchors are emitted lowest first as "N, description" literals,
	// the layout downstream SPARQL consumers split on.
	values := make([]int, 0, len(dim.Scale))
	for value := range dim.Scale {
		values = append(values, value)
	}
	sort.Ints(values)
	for _, value := range values {
		literal := fmt.Sprintf("%d, %s", value, dim.Scale[value])
		triples = append(triples, Triple{hackreview.PropHasScaleValue, literal})
	}

	e.AddEntity(Entity{ID: hackreview.EntityIRI(dim.ID), Kind: KindDimension, Triples: triples})
}

func (e *Exporter) addExpertiseLevel(level ontology.ExpertiseLevel) {
	triples := e.labelTriples(level.Name, level.Description)
	triples = append(triples,
		Triple{hackreview.PropHasConfidenceRangeMin, level.ConfidenceRange[0]},
		Triple{hackreview.PropHasConfidenceRangeMax, level.ConfidenceRange[1]},
	)
	e.AddEntity(Entity{ID: hackreview.EntityIRI(level.ID), Kind: KindExpertiseLevel, Triples: triples})
}

func (e *Exporter) addProjectType(pt ontology.ProjectType) {
	triples := e.labelTriples(pt.Name, pt.Description)
	for _, keyword := range pt.Keywords {
		triples = append(triples, Triple{hackreview.PropHasKeyword, keyword})
	}
	e.AddEntity(Entity{ID: hackreview.EntityIRI(pt.ID), Kind: KindProjectType, Triples: triples})
}

// labelTriples builds the name and description triples shared by every
// entity kind, mirrored into SKOS terms when the profile asks for it.
func (e *Exporter) labelTriples(name, description string) []Triple {
	triples := make([]Triple, 0, 4)
	if name != "" {
		triples = append(triples, Triple{hackreview.PropHasName, name})
		if e.config.IncludeSKOS {
			triples = append(triples, Triple{skosPrefLabel, name})
		}
	}
	if description != "" {
		triples = append(triples, Triple{hackreview.PropHasDescription, description})
		if e.config.IncludeSKOS {
			triples = append(triples, Triple{skosDefinition, description})
		}
	}
	return triples
}

// Export serializes all entities to the specified format.
func (e *Exporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (e *Exporter) toTurtle() string {
	w := NewTurtleWriter()
	w.WritePrefixes()

	for _, entity := range e.entities {
		w.WriteSubject(entity.ID)

		types := e.asserter.TypeIRIs(entity.Kind)
		for i, typeIRI := range types {
			last := i == len(types)-1 && len(entity.Triples) == 0
			w.WriteType(typeIRI, last)
		}
		for i, triple := range entity.Triples {
			w.WritePredicate(triple.Predicate, triple.Object, i == len(entity.Triples)-1)
		}
		w.WriteBlank()
	}

	return w.String()
}

func (e *Exporter) toNTriples() string {
	w := NewNTriplesWriter()

	for _, entity := range e.entities {
		for _, typeIRI := range e.asserter.TypeIRIs(entity.Kind) {
			w.WriteTypeTriple(entity.ID, typeIRI)
		}
		for _, triple := range entity.Triples {
			w.WriteTriple(entity.ID, triple.Predicate, triple.Object)
		}
	}

	return w.String()
}

func (e *Exporter) toJSONLD() string {
	w := NewJSONLDWriter()
	w.SetContext(e.prefixes)

	for _, entity := range e.entities {
		properties := make(map[string]any, len(entity.Triples))
		for _, triple := range entity.Triples {
			value := jsonldObject(triple.Object)
			switch existing := properties[triple.Predicate].(type) {
			case nil:
				properties[triple.Predicate] = value
			case []any:
				properties[triple.Predicate] = append(existing, value)
			default:
				properties[triple.Predicate] = []any{existing, value}
			}
		}
		w.AddNode(entity.ID, e.asserter.TypeIRIs(entity.Kind), properties)
	}

	return w.String()
}

// jsonldObject converts a triple object to its JSON-LD value form.
func jsonldObject(obj any) any {
	if iri, ok := obj.(IRI); ok {
		return map[string]any{"@id": string(iri)}
	}
	return obj
}

// formatObject formats an object value for Turtle output.
func formatObject(obj any) string {
	switch v := obj.(type) {
	case IRI:
		return fmt.Sprintf("<%s>", string(v))
	case string:
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^xsd:integer", v)
	case float32, float64:
		return fmt.Sprintf("\"%v\"^^xsd:decimal", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^xsd:boolean", v)
	default:
		return fmt.Sprintf("\"%s\"", escapeString(fmt.Sprintf("%v", v)))
	}
}

// formatObjectNTriples formats an object value for N-Triples output, where
// datatype IRIs must be written in full.
func formatObjectNTriples(obj any) string {
	switch v := obj.(type) {
	case IRI:
		return fmt.Sprintf("<%s>", string(v))
	case string:
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^<http://www.w3.org/2001/XMLSchema#integer>", v)
	case float32, float64:
		return fmt.Sprintf("\"%v\"^^<http://www.w3.org/2001/XMLSchema#decimal>", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^<http://www.w3.org/2001/XMLSchema#boolean>", v)
	default:
		return fmt.Sprintf("\"%s\"", escapeString(fmt.Sprintf("%v", v)))
	}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '\\':
			out = append(out, '\\', '\\')
		case '"':
			out = append(out, '\\', '"')
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
