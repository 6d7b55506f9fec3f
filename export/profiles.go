package export

import "github.com/c360studio/semreview/vocabulary/hackreview"

// SKOS vocabulary terms used by the skos profile.
const (
	skosConcept    = "http://www.w3.org/2004/02/skos/core#Concept"
	skosPrefLabel  = "http://www.w3.org/2004/02/skos/core#prefLabel"
	skosDefinition = "http://www.w3.org/2004/02/skos/core#definition"
)

// Profile determines how much standard-vocabulary alignment an export
// carries alongside the hackreview terms.
type Profile string

const (
	// ProfileMinimal types entities with hackreview classes only.
	ProfileMinimal Profile = "minimal"

	// ProfileSKOS additionally types every entity as skos:Concept and
	// mirrors names and descriptions as skos:prefLabel / skos:definition,
	// for loading into SKOS-aware taxonomy tooling.
	ProfileSKOS Profile = "skos"
)

// ProfileConfig contains the configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// IncludeSKOS enables skos:Concept typing and label mirroring.
	IncludeSKOS bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileMinimal: {
		Name:        ProfileMinimal,
		Description: "hackreview vocabulary only",
		IncludeSKOS: false,
	},
	ProfileSKOS: {
		Name:        ProfileSKOS,
		Description: "hackreview vocabulary plus SKOS concept alignment",
		IncludeSKOS: true,
	},
}

// GetProfileConfig returns the configuration for a profile. Unknown profiles
// fall back to minimal.
func GetProfileConfig(profile Profile) ProfileConfig {
	if config, ok := Profiles[profile]; ok {
		return config
	}
	return Profiles[ProfileMinimal]
}

// Kind identifies which ontology entity class a subject belongs to.
type Kind string

const (
	KindDomain         Kind = "domain"
	KindSubdomain      Kind = "subdomain"
	KindDimension      Kind = "impact_dimension"
	KindExpertiseLevel Kind = "expertise_level"
	KindProjectType    Kind = "project_type"
)

// classMap maps entity kinds to their hackreview class IRIs.
var classMap = map[Kind]string{
	KindDomain:         hackreview.ClassDomain,
	KindSubdomain:      hackreview.ClassSubdomain,
	KindDimension:      hackreview.ClassImpactDimension,
	KindExpertiseLevel: hackreview.ClassExpertiseLevel,
	KindProjectType:    hackreview.ClassProjectType,
}

// TypeAsserter resolves rdf:type IRIs for entities under a profile.
type TypeAsserter struct {
	profile ProfileConfig
}

// NewTypeAsserter creates a type asserter for the given profile.
func NewTypeAsserter(profile Profile) *TypeAsserter {
	return &TypeAsserter{profile: GetProfileConfig(profile)}
}

// TypeIRIs returns the type assertions for one entity kind.
func (t *TypeAsserter) TypeIRIs(kind Kind) []string {
	types := make([]string, 0, 2)
	if class, ok := classMap[kind]; ok {
		types = append(types, class)
	}
	if t.profile.IncludeSKOS {
		types = append(types, skosConcept)
	}
	return types
}
