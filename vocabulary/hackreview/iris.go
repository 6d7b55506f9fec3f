package hackreview

// Namespace is the base IRI prefix for all hackathon review vocabulary terms.
const Namespace = "http://example.org/hackathon-review/"

// Prefix is the conventional short prefix bound to Namespace in serializations.
const Prefix = "hr"

// Class IRIs define the entity types of the review ontology.
const (
	// ClassDomain represents a reviewer expertise domain such as
	// technical, business, or clinical.
	ClassDomain = Namespace + "Domain"

	// ClassSubdomain represents a specialization nested under a domain.
	// Subdomain keywords contribute to relevance at half weight.
	ClassSubdomain = Namespace + "Subdomain"

	// ClassImpactDimension represents an evaluation axis scored on a
	// 1-5 scale, such as innovation or feasibility.
	ClassImpactDimension = Namespace + "ImpactDimension"

	// ClassExpertiseLevel represents a reviewer seniority band keyed to
	// a confidence score range.
	ClassExpertiseLevel = Namespace + "ExpertiseLevel"

	// ClassProjectType represents a coarse project category used to
	// classify submissions, such as software or hardware.
	ClassProjectType = Namespace + "ProjectType"
)

// Data property IRIs define literal-valued attributes.
const (
	// PropHasName is the human-readable name of any ontology entity.
	PropHasName = Namespace + "hasName"

	// PropHasDescription is the free-text description of any ontology entity.
	PropHasDescription = Namespace + "hasDescription"

	// PropHasKeyword attaches a matching keyword to a domain, subdomain,
	// or project type. Repeated once per keyword.
	PropHasKeyword = Namespace + "hasKeyword"

	// PropHasScaleValue attaches one scale anchor to an impact dimension.
	// The literal uses the form "3, Moderate improvement over existing solutions".
	PropHasScaleValue = Namespace + "hasScaleValue"

	// PropHasConfidenceRangeMin is the inclusive lower confidence bound
	// of an expertise level.
	PropHasConfidenceRangeMin = Namespace + "hasConfidenceRangeMin"

	// PropHasConfidenceRangeMax is the inclusive upper confidence bound
	// of an expertise level.
	PropHasConfidenceRangeMax = Namespace + "hasConfidenceRangeMax"
)

// Object property IRIs define relationships between ontology entities.
const (
	// PropHasSubdomain links a domain to one of its subdomains.
	// Domain: ClassDomain, Range: ClassSubdomain
	PropHasSubdomain = Namespace + "hasSubdomain"

	// PropHasRelevantDimension links a domain to an impact dimension its
	// reviewers weigh more heavily during aggregation.
	// Domain: ClassDomain, Range: ClassImpactDimension
	PropHasRelevantDimension = Namespace + "hasRelevantDimension"
)

// EntityIRI returns the instance IRI for an ontology entity ID.
func EntityIRI(id string) string {
	return Namespace + id
}
