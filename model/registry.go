package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Registry manages model selection based on capabilities.
// It maps capabilities to preferred models with fallback chains and tracks
// endpoint health for circuit breaking.
type Registry struct {
	mu           sync.RWMutex
	capabilities map[Capability]*CapabilityConfig
	endpoints    map[string]*EndpointConfig
	defaults     *DefaultsConfig
	health       *healthState
}

// CapabilityConfig defines model preferences for a capability.
type CapabilityConfig struct {
	// Description explains what this capability is for.
	Description string `json:"description"`

	// Preferred lists models in order of preference.
	// The first available model is used.
	Preferred []string `json:"preferred"`

	// Fallback lists backup models if all preferred fail.
	Fallback []string `json:"fallback"`
}

// EndpointConfig defines an available model endpoint.
type EndpointConfig struct {
	// Provider is the model provider (anthropic, ollama, openai, groq).
	Provider string `json:"provider"`

	// URL is the API endpoint URL (for non-Anthropic providers).
	URL string `json:"url,omitempty"`

	// Model is the actual model identifier to send to the provider.
	Model string `json:"model"`

	// MaxTokens is the context window size.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// DefaultsConfig holds default model settings.
type DefaultsConfig struct {
	// Model is the default model when no capability matches.
	Model string `json:"model"`
}

// NewRegistry creates a new model registry with the given configuration.
func NewRegistry(caps map[Capability]*CapabilityConfig, endpoints map[string]*EndpointConfig) *Registry {
	return &Registry{
		capabilities: caps,
		endpoints:    endpoints,
		defaults: &DefaultsConfig{
			Model: "default",
		},
	}
}

// NewDefaultRegistry creates a registry with sensible defaults.
// Used when no configuration is provided.
func NewDefaultRegistry() *Registry {
	return &Registry{
		capabilities: map[Capability]*CapabilityConfig{
			CapabilityClassification: {
				Description: "Map reviewers onto ontology domains",
				Preferred:   []string{"groq-llama3"},
				Fallback:    []string{"deepseek", "claude-haiku"},
			},
			CapabilitySentiment: {
				Description: "Extract per-dimension scores from review text",
				Preferred:   []string{"groq-llama3"},
				Fallback:    []string{"deepseek", "claude-haiku"},
			},
			CapabilityGeneration: {
				Description: "Write artificial reviews from domain perspectives",
				Preferred:   []string{"claude-sonnet", "gpt-4-turbo"},
				Fallback:    []string{"groq-llama3", "deepseek"},
			},
			CapabilitySynthesis: {
				Description: "Merge perspectives into the final narrative",
				Preferred:   []string{"claude-sonnet", "gpt-4-turbo"},
				Fallback:    []string{"groq-llama3"},
			},
			CapabilityFast: {
				Description: "Quick responses, simple tasks",
				Preferred:   []string{"groq-llama3"},
				Fallback:    []string{"deepseek"},
			},
		},
		endpoints: map[string]*EndpointConfig{
			"claude-sonnet": {
				Provider:  "anthropic",
				Model:     "claude-sonnet-4-20250514",
				MaxTokens: 200000,
			},
			"claude-haiku": {
				Provider:  "anthropic",
				Model:     "claude-haiku-3-5-20241022",
				MaxTokens: 200000,
			},
			"gpt-4-turbo": {
				Provider:  "openai",
				Model:     "gpt-4-turbo",
				MaxTokens: 128000,
			},
			"groq-llama3": {
				Provider:  "groq",
				Model:     "llama3-70b-8192",
				MaxTokens: 8192,
			},
			"deepseek": {
				Provider:  "ollama",
				URL:       "http://localhost:11434/v1",
				Model:     "deepseek-r1:1.5b",
				MaxTokens: 128000,
			},
		},
		defaults: &DefaultsConfig{
			Model: "deepseek",
		},
	}
}

// Resolve returns the preferred model for a capability.
// Returns the first model in the preferred list.
func (r *Registry) Resolve(cap Capability) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cfg, ok := r.capabilities[cap]; ok && len(cfg.Preferred) > 0 {
		return cfg.Preferred[0]
	}
	return r.defaults.Model
}

// GetFallbackChain returns all models for a capability in order of preference.
// Used by the LLM client when the primary fails to try alternatives.
func (r *Registry) GetFallbackChain(cap Capability) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cfg, ok := r.capabilities[cap]; ok {
		chain := make([]string, 0, len(cfg.Preferred)+len(cfg.Fallback))
		chain = append(chain, cfg.Preferred...)
		chain = append(chain, cfg.Fallback...)
		return chain
	}
	return []string{r.defaults.Model}
}

// ForStage returns the resolved model for a pipeline stage's default capability.
// Use this when no explicit capability or model is specified.
func (r *Registry) ForStage(stage string) string {
	cap := CapabilityForStage(stage)
	return r.Resolve(cap)
}

// GetFallbackChainForStage returns the full fallback chain for a pipeline stage.
func (r *Registry) GetFallbackChainForStage(stage string) []string {
	cap := CapabilityForStage(stage)
	return r.GetFallbackChain(cap)
}

// GetEndpoint returns the endpoint configuration for a model name.
// Returns nil if the model is not configured.
func (r *Registry) GetEndpoint(modelName string) *EndpointConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.endpoints[modelName]
}

// Validate checks that every model referenced by a capability or default
// resolves to a configured endpoint. All problems are reported, not just
// the first.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error

	for cap, cfg := range r.capabilities {
		for _, name := range cfg.Preferred {
			if _, ok := r.endpoints[name]; !ok {
				errs = append(errs, fmt.Errorf("capability %s: preferred model %q not found in endpoints", cap, name))
			}
		}
		for _, name := range cfg.Fallback {
			if _, ok := r.endpoints[name]; !ok {
				errs = append(errs, fmt.Errorf("capability %s: fallback model %q not found in endpoints", cap, name))
			}
		}
	}

	if r.defaults != nil && r.defaults.Model != "" && r.defaults.Model != "default" {
		if _, ok := r.endpoints[r.defaults.Model]; !ok {
			errs = append(errs, fmt.Errorf("default model %q not found in endpoints", r.defaults.Model))
		}
	}

	return errors.Join(errs...)
}

// SetCapability updates or adds a capability configuration.
func (r *Registry) SetCapability(cap Capability, cfg *CapabilityConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capabilities == nil {
		r.capabilities = make(map[Capability]*CapabilityConfig)
	}
	r.capabilities[cap] = cfg
}

// SetEndpoint updates or adds an endpoint configuration.
func (r *Registry) SetEndpoint(name string, cfg *EndpointConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.endpoints == nil {
		r.endpoints = make(map[string]*EndpointConfig)
	}
	r.endpoints[name] = cfg
}

// SetDefault sets the default model.
func (r *Registry) SetDefault(model string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.defaults == nil {
		r.defaults = &DefaultsConfig{}
	}
	r.defaults.Model = model
}

// ListCapabilities returns all configured capabilities.
func (r *Registry) ListCapabilities() []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caps := make([]Capability, 0, len(r.capabilities))
	for cap := range r.capabilities {
		caps = append(caps, cap)
	}
	return caps
}

// ListEndpoints returns all configured endpoint names.
func (r *Registry) ListEndpoints() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.endpoints))
	for name := range r.endpoints {
		names = append(names, name)
	}
	return names
}

// MarshalJSON implements json.Marshaler for the registry.
func (r *Registry) MarshalJSON() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return json.Marshal(struct {
		Capabilities map[Capability]*CapabilityConfig `json:"capabilities"`
		Endpoints    map[string]*EndpointConfig       `json:"endpoints"`
		Defaults     *DefaultsConfig                  `json:"defaults,omitempty"`
	}{
		Capabilities: r.capabilities,
		Endpoints:    r.endpoints,
		Defaults:     r.defaults,
	})
}

// UnmarshalJSON implements json.Unmarshaler for the registry.
func (r *Registry) UnmarshalJSON(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tmp struct {
		Capabilities map[Capability]*CapabilityConfig `json:"capabilities"`
		Endpoints    map[string]*EndpointConfig       `json:"endpoints"`
		Defaults     *DefaultsConfig                  `json:"defaults,omitempty"`
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	r.capabilities = tmp.Capabilities
	r.endpoints = tmp.Endpoints
	r.defaults = tmp.Defaults
	return nil
}
