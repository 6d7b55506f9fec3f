// Package config provides configuration loading and management for the
// review engine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete review engine configuration.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Ontology  OntologyConfig  `yaml:"ontology"`
	LLM       LLMConfig       `yaml:"llm"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Storage   StorageConfig   `yaml:"storage"`
	Events    EventsConfig    `yaml:"events"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// WorkspaceConfig configures the on-disk layout of projects and outputs.
type WorkspaceConfig struct {
	// ProjectsDir holds one subdirectory per submitted project.
	ProjectsDir string `yaml:"projects_dir"`
	// OutputDir receives feedback reports and visualization data.
	OutputDir string `yaml:"output_dir"`
	// DataDir holds the ontology and other engine data files.
	DataDir string `yaml:"data_dir"`
}

// OntologyConfig configures the knowledge graph backing store.
type OntologyConfig struct {
	// Path is the ontology YAML file (default: data/ontology.yaml).
	Path string `yaml:"path"`
	// Watch reloads the graph when the file changes on disk.
	Watch bool `yaml:"watch"`
	// Enrich lets the engine propose ontology additions via LLM after runs.
	Enrich bool `yaml:"enrich"`
}

// LLMConfig configures the LLM client shared by all pipeline stages.
type LLMConfig struct {
	// RegistryPath points to the model registry JSON (capability routing).
	// Empty uses built-in defaults.
	RegistryPath string `yaml:"registry_path"`
	// Temperature controls randomness (0.0-1.0, default: 0.2).
	Temperature float64 `yaml:"temperature"`
	// Timeout is the maximum time to wait for model responses.
	Timeout time.Duration `yaml:"timeout"`
	// MaxAttempts is the retry budget per endpoint.
	MaxAttempts int `yaml:"max_attempts"`
	// RetryBackoff is the initial retry backoff.
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// AnalysisConfig holds the review filtering and synthesis thresholds.
type AnalysisConfig struct {
	// MinConfidence rejects reviews below this self-reported confidence (0-100).
	MinConfidence int `yaml:"min_confidence"`
	// ExpertConfidence is the bar above which low domain relevance is forgiven (0-100).
	ExpertConfidence int `yaml:"expert_confidence"`
	// MinDomainRelevance rejects non-expert reviews whose domain scores below this (0-1).
	MinDomainRelevance float64 `yaml:"min_domain_relevance"`
	// GapRelevanceThreshold is the minimum relevance for a domain to deserve
	// an artificial gap-filling review (0-1).
	GapRelevanceThreshold float64 `yaml:"gap_relevance_threshold"`
	// SyntheticReviews enables artificial review generation for uncovered domains.
	SyntheticReviews bool `yaml:"synthetic_reviews"`
	// ForceReprocess re-runs classification and scoring even when cached
	// results exist.
	ForceReprocess bool `yaml:"force_reprocess"`
	// MaxConcurrentProjects bounds parallel project analysis in batch runs.
	MaxConcurrentProjects int `yaml:"max_concurrent_projects"`
}

// StorageConfig configures where analysis results are persisted.
type StorageConfig struct {
	// Backend selects the result store: "file" or "nats".
	Backend string `yaml:"backend"`
	// Dir is the directory for the file backend.
	Dir string `yaml:"dir"`
	// NATSURL is the server URL for the nats backend.
	NATSURL string `yaml:"nats_url"`
	// Bucket is the KV bucket name for the nats backend.
	Bucket string `yaml:"bucket"`
}

// EventsConfig configures pipeline progress event publishing.
type EventsConfig struct {
	// Enabled turns on NATS event publishing.
	Enabled bool `yaml:"enabled"`
	// URL is the NATS server URL (empty reuses storage.nats_url).
	URL string `yaml:"url"`
	// SubjectPrefix is prepended to stage event subjects.
	SubjectPrefix string `yaml:"subject_prefix"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	// Enabled turns on the metrics HTTP listener.
	Enabled bool `yaml:"enabled"`
	// Addr is the listen address for /metrics.
	Addr string `yaml:"addr"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			ProjectsDir: "projects",
			OutputDir:   "output",
			DataDir:     "data",
		},
		Ontology: OntologyConfig{
			Path:   filepath.Join("data", "ontology.yaml"),
			Watch:  false,
			Enrich: false,
		},
		LLM: LLMConfig{
			RegistryPath: "",
			Temperature:  0.2,
			Timeout:      3 * time.Minute,
			MaxAttempts:  3,
			RetryBackoff: 2 * time.Second,
		},
		Analysis: AnalysisConfig{
			MinConfidence:         40,
			ExpertConfidence:      80,
			MinDomainRelevance:    0.3,
			GapRelevanceThreshold: 0.2,
			SyntheticReviews:      true,
			ForceReprocess:        false,
			MaxConcurrentProjects: 4,
		},
		Storage: StorageConfig{
			Backend: "file",
			Dir:     filepath.Join("output", "results"),
			Bucket:  "semreview-results",
		},
		Events: EventsConfig{
			Enabled:       false,
			SubjectPrefix: "semreview.jobs",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Workspace.ProjectsDir == "" {
		return fmt.Errorf("workspace.projects_dir is required")
	}
	if c.Ontology.Path == "" {
		return fmt.Errorf("ontology.path is required")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 1 {
		return fmt.Errorf("llm.temperature must be between 0 and 1")
	}
	if c.LLM.MaxAttempts < 1 {
		return fmt.Errorf("llm.max_attempts must be at least 1")
	}
	if c.Analysis.MinConfidence < 0 || c.Analysis.MinConfidence > 100 {
		return fmt.Errorf("analysis.min_confidence must be between 0 and 100")
	}
	if c.Analysis.ExpertConfidence < 0 || c.Analysis.ExpertConfidence > 100 {
		return fmt.Errorf("analysis.expert_confidence must be between 0 and 100")
	}
	if c.Analysis.MinDomainRelevance < 0 || c.Analysis.MinDomainRelevance > 1 {
		return fmt.Errorf("analysis.min_domain_relevance must be between 0 and 1")
	}
	if c.Analysis.GapRelevanceThreshold < 0 || c.Analysis.GapRelevanceThreshold > 1 {
		return fmt.Errorf("analysis.gap_relevance_threshold must be between 0 and 1")
	}
	if c.Analysis.MaxConcurrentProjects < 1 {
		return fmt.Errorf("analysis.max_concurrent_projects must be at least 1")
	}
	switch c.Storage.Backend {
	case "file", "nats":
	default:
		return fmt.Errorf("storage.backend must be \"file\" or \"nats\", got %q", c.Storage.Backend)
	}
	if c.Storage.Backend == "nats" && c.Storage.NATSURL == "" {
		return fmt.Errorf("storage.nats_url is required for the nats backend")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Workspace
	if other.Workspace.ProjectsDir != "" {
		c.Workspace.ProjectsDir = other.Workspace.ProjectsDir
	}
	if other.Workspace.OutputDir != "" {
		c.Workspace.OutputDir = other.Workspace.OutputDir
	}
	if other.Workspace.DataDir != "" {
		c.Workspace.DataDir = other.Workspace.DataDir
	}

	// Ontology
	if other.Ontology.Path != "" {
		c.Ontology.Path = other.Ontology.Path
	}
	if other.Ontology.Watch {
		c.Ontology.Watch = true
	}
	if other.Ontology.Enrich {
		c.Ontology.Enrich = true
	}

	// LLM
	if other.LLM.RegistryPath != "" {
		c.LLM.RegistryPath = other.LLM.RegistryPath
	}
	if other.LLM.Temperature != 0 {
		c.LLM.Temperature = other.LLM.Temperature
	}
	if other.LLM.Timeout != 0 {
		c.LLM.Timeout = other.LLM.Timeout
	}
	if other.LLM.MaxAttempts != 0 {
		c.LLM.MaxAttempts = other.LLM.MaxAttempts
	}
	if other.LLM.RetryBackoff != 0 {
		c.LLM.RetryBackoff = other.LLM.RetryBackoff
	}

	// Analysis
	if other.Analysis.MinConfidence != 0 {
		c.Analysis.MinConfidence = other.Analysis.MinConfidence
	}
	if other.Analysis.ExpertConfidence != 0 {
		c.Analysis.ExpertConfidence = other.Analysis.ExpertConfidence
	}
	if other.Analysis.MinDomainRelevance != 0 {
		c.Analysis.MinDomainRelevance = other.Analysis.MinDomainRelevance
	}
	if other.Analysis.GapRelevanceThreshold != 0 {
		c.Analysis.GapRelevanceThreshold = other.Analysis.GapRelevanceThreshold
	}
	if other.Analysis.ForceReprocess {
		c.Analysis.ForceReprocess = true
	}
	if other.Analysis.MaxConcurrentProjects != 0 {
		c.Analysis.MaxConcurrentProjects = other.Analysis.MaxConcurrentProjects
	}

	// Storage
	if other.Storage.Backend != "" {
		c.Storage.Backend = other.Storage.Backend
	}
	if other.Storage.Dir != "" {
		c.Storage.Dir = other.Storage.Dir
	}
	if other.Storage.NATSURL != "" {
		c.Storage.NATSURL = other.Storage.NATSURL
	}
	if other.Storage.Bucket != "" {
		c.Storage.Bucket = other.Storage.Bucket
	}

	// Events
	if other.Events.Enabled {
		c.Events.Enabled = true
	}
	if other.Events.URL != "" {
		c.Events.URL = other.Events.URL
	}
	if other.Events.SubjectPrefix != "" {
		c.Events.SubjectPrefix = other.Events.SubjectPrefix
	}

	// Metrics
	if other.Metrics.Enabled {
		c.Metrics.Enabled = true
	}
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
}
