// Package graph publishes the review ontology to an external knowledge-graph
// ingestion subject over NATS. Each ontology entity becomes one message of
// timestamped triples, so downstream graph stores can index domains,
// dimensions, and expertise levels alongside other organizational data.
package graph

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semreview/export"
)

// IngestSubject is the NATS subject graph entity payloads are published to.
const IngestSubject = "graph.ingest.entity"

// Source identifies this engine as the triple provenance.
const Source = "semreview.ontology"

// Triple is one asserted statement about an entity, with provenance.
type Triple struct {
	Subject    string    `json:"subject"`
	Predicate  string    `json:"predicate"`
	Object     any       `json:"object"`
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"`
}

// EntityPayload is the message format for graph ingestion: one entity and
// its triples.
type EntityPayload struct {
	EntityID  string    `json:"id"`
	Triples   []Triple  `json:"triples"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the payload is publishable.
func (e *EntityPayload) Validate() error {
	if e.EntityID == "" {
		return errors.New("entity ID is required")
	}
	if len(e.Triples) == 0 {
		return errors.New("at least one triple is required")
	}
	return nil
}

// Marshal renders the payload as JSON for the wire.
func (e *EntityPayload) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// rdfType asserts an entity's class membership.
const rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// Payloads flattens exporter entities into ingestion payloads. Each entity
// yields its type assertions first, then its attribute triples, all stamped
// with the same timestamp and full provenance confidence.
func Payloads(exporter *export.Exporter, now time.Time) []*EntityPayload {
	entities := exporter.Entities()
	payloads := make([]*EntityPayload, 0, len(entities))
	for _, entity := range entities {
		triples := make([]Triple, 0, len(entity.Triples)+2)
		for _, typeIRI := range exporter.TypeIRIs(entity.Kind) {
			triples = append(triples, Triple{
				Subject:    entity.ID,
				Predicate:  rdfType,
				Object:     typeIRI,
				Source:     Source,
				Timestamp:  now,
				Confidence: 1.0,
			})
		}
		for _, t := range entity.Triples {
			triples = append(triples, Triple{
				Subject:    entity.ID,
				Predicate:  t.Predicate,
				Object:     objectValue(t.Object),
				Source:     Source,
				Timestamp:  now,
				Confidence: 1.0,
			})
		}
		payloads = append(payloads, &EntityPayload{
			EntityID:  entity.ID,
			Triples:   triples,
			UpdatedAt: now,
		})
	}
	return payloads
}

// objectValue unwraps export.IRI so references serialize as plain strings on
// the wire; the consumer re-types them by predicate.
func objectValue(obj any) any {
	if iri, ok := obj.(export.IRI); ok {
		return string(iri)
	}
	return obj
}
