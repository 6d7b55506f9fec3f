// Package hackreview defines the IRI vocabulary for the hackathon review
// ontology.
//
// The vocabulary covers the four entity classes the review engine reasons
// about (domains, impact dimensions, expertise levels, project types) and
// the properties that connect them. IRIs live under a single namespace so
// exported Turtle stays queryable with a one-prefix SPARQL setup:
//
//	PREFIX hr: <http://example.org/hackathon-review/>
//	SELECT ?domain WHERE { ?domain a hr:Domain }
package hackreview
