// Package model provides capability-based model selection for pipeline stages.
// Instead of hardcoding model names, stages specify capabilities (classification,
// sentiment, generation) and the registry resolves them to available models with
// fallback chains.
package model

// Capability represents a semantic capability for model selection.
// Instead of specifying "llama3-70b", stages specify "classification" or "synthesis".
type Capability string

const (
	// CapabilityClassification is for mapping reviewers onto ontology domains.
	CapabilityClassification Capability = "classification"

	// CapabilitySentiment is for extracting per-dimension scores from review text.
	CapabilitySentiment Capability = "sentiment"

	// CapabilityGeneration is for writing artificial reviews from domain perspectives.
	CapabilityGeneration Capability = "generation"

	// CapabilitySynthesis is for merging perspectives into the final narrative.
	CapabilitySynthesis Capability = "synthesis"

	// CapabilityFast is for quick responses, simple tasks.
	CapabilityFast Capability = "fast"
)

// StageCapabilities maps LLM-backed pipeline stages to their default capability.
// Used when no explicit capability or model is specified.
var StageCapabilities = map[string]Capability{
	"classify":  CapabilityClassification,
	"sentiment": CapabilitySentiment,
	"gapfill":   CapabilityGeneration,
	"narrative": CapabilitySynthesis,
	"enrich":    CapabilitySynthesis,
}

// CapabilityForStage returns the default capability for a pipeline stage.
// Returns CapabilityFast as fallback for unknown stages.
func CapabilityForStage(stage string) Capability {
	if cap, ok := StageCapabilities[stage]; ok {
		return cap
	}
	return CapabilityFast
}

// IsValid checks if a capability string is a known capability.
func (c Capability) IsValid() bool {
	switch c {
	case CapabilityClassification, CapabilitySentiment, CapabilityGeneration, CapabilitySynthesis, CapabilityFast:
		return true
	}
	return false
}

// String returns the string representation of the capability.
func (c Capability) String() string {
	return string(c)
}

// ParseCapability converts a string to a Capability, returning empty for invalid values.
func ParseCapability(s string) Capability {
	cap := Capability(s)
	if cap.IsValid() {
		return cap
	}
	return ""
}
