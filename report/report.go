// Package report renders completed analyses into reviewer-facing artifacts:
// a markdown feedback report, a structured JSON twin, and a chart-ready
// visualization payload. Chart rendering itself stays out; the visualization
// JSON carries everything a front end needs to draw one.
package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/c360studio/semreview/workflow"
)

// Writer persists report artifacts for analyzed projects under one directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger used to announce written artifacts.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWriter creates a writer that emits artifacts under dir.
func NewWriter(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Paths lists the artifacts one Write produced.
type Paths struct {
	Markdown      string
	Feedback      string
	Visualization string
}

// Write renders and persists the three artifacts for one analyzed project:
// <id>_feedback.md, <id>_feedback.json and <id>_visualization.json.
func (w *Writer) Write(project *workflow.Project, result *workflow.AnalysisResult) (Paths, error) {
	if project == nil || result == nil {
		return Paths{}, fmt.Errorf("project and result are required")
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create report directory: %w", err)
	}

	paths := Paths{
		Markdown:      filepath.Join(w.dir, project.ID+"_feedback.md"),
		Feedback:      filepath.Join(w.dir, project.ID+"_feedback.json"),
		Visualization: filepath.Join(w.dir, project.ID+"_visualization.json"),
	}

	if err := os.WriteFile(paths.Markdown, []byte(Render(project, result)), 0o644); err != nil {
		return Paths{}, fmt.Errorf("write markdown report: %w", err)
	}
	if err := writeJSON(paths.Feedback, BuildDocument(project, result)); err != nil {
		return Paths{}, err
	}
	if err := writeJSON(paths.Visualization, VisualizationData(project, result)); err != nil {
		return Paths{}, err
	}

	w.logger.Info("report written",
		"project_id", project.ID,
		"markdown", paths.Markdown)
	return paths, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Document is the JSON twin of the markdown report.
type Document struct {
	ProjectID          string                            `json:"project_id"`
	ProjectName        string                            `json:"project_name"`
	ProjectDescription string                            `json:"project_description"`
	OverallScore       float64                           `json:"overall_score"`
	FeedbackScores     map[string]float64                `json:"feedback_scores"`
	FinalReview        string                            `json:"final_review"`
	ReviewsByDomain    map[string][]ReviewEntry          `json:"reviews_by_domain"`
	Recommendations    []string                          `json:"recommendations"`
	Metadata           workflow.AnalysisMetadata         `json:"metadata"`
	DimensionStats     map[string]workflow.DimensionStat `json:"dimension_stats,omitempty"`
}

// ReviewEntry is one accepted review as it appears in the JSON report.
type ReviewEntry struct {
	ReviewerName    string             `json:"reviewer_name"`
	ExpertiseLevel  string             `json:"expertise_level"`
	ConfidenceScore int                `json:"confidence_score"`
	TextReview      string             `json:"text_review"`
	SentimentScores map[string]float64 `json:"sentiment_scores,omitempty"`
	IsArtificial    bool               `json:"is_artificial"`
}

// BuildDocument assembles the JSON report payload.
func BuildDocument(project *workflow.Project, result *workflow.AnalysisResult) *Document {
	byDomain := make(map[string][]ReviewEntry)
	for domain, reviews := range reviewsByDomain(project) {
		entries := make([]ReviewEntry, 0, len(reviews))
		for _, review := range reviews {
			entries = append(entries, ReviewEntry{
				ReviewerName:    review.ReviewerName,
				ExpertiseLevel:  review.ExpertiseLevel,
				ConfidenceScore: review.ConfidenceScore,
				TextReview:      review.Text,
				SentimentScores: review.SentimentScores,
				IsArtificial:    review.IsArtificial,
			})
		}
		byDomain[domain] = entries
	}

	return &Document{
		ProjectID:          project.ID,
		ProjectName:        projectName(project),
		ProjectDescription: project.Description,
		OverallScore:       result.OverallScore,
		FeedbackScores:     result.FeedbackScores,
		FinalReview:        result.FinalReview,
		ReviewsByDomain:    byDomain,
		Recommendations:    result.Recommendations,
		Metadata:           result.Metadata,
		DimensionStats:     result.DimensionStats,
	}
}

// Visualization is the chart-ready payload emitted next to the report.
type Visualization struct {
	ProjectName     string            `json:"project_name"`
	RadarChart      RadarChart        `json:"radar_chart"`
	DomainBreakdown []DomainBreakdown `json:"domain_breakdown"`
}

// RadarChart pairs dimension labels with their aggregated scores, in graph
// order, ready to plot.
type RadarChart struct {
	Dimensions []string  `json:"dimensions"`
	Scores     []float64 `json:"scores"`
}

// DomainBreakdown summarizes review coverage and raw per-dimension averages
// for one domain.
type DomainBreakdown struct {
	Name            string             `json:"name"`
	ReviewCount     int                `json:"review_count"`
	ArtificialCount int                `json:"artificial_count"`
	DimensionScores map[string]float64 `json:"dimension_scores"`
}

// VisualizationData assembles the visualization payload from an analyzed
// project and its result.
func VisualizationData(project *workflow.Project, result *workflow.AnalysisResult) *Visualization {
	viz := &Visualization{
		ProjectName: projectName(project),
		RadarChart: RadarChart{
			Dimensions: []string{},
			Scores:     []float64{},
		},
		DomainBreakdown: []DomainBreakdown{},
	}

	for _, id := range orderedDimensions(result) {
		viz.RadarChart.Dimensions = append(viz.RadarChart.Dimensions, displayName(id))
		viz.RadarChart.Scores = append(viz.RadarChart.Scores, result.FeedbackScores[id])
	}

	byDomain := reviewsByDomain(project)
	present := make(map[string]bool, len(byDomain))
	for id := range byDomain {
		present[id] = true
	}

	for _, id := range orderedDomains(result, present) {
		reviews := byDomain[id]
		breakdown := DomainBreakdown{
			Name:            domainDisplayName(result, id),
			ReviewCount:     len(reviews),
			DimensionScores: make(map[string]float64),
		}

		samples := make(map[string][]float64)
		for _, review := range reviews {
			if review.IsArtificial {
				breakdown.ArtificialCount++
			}
			for dim, score := range review.SentimentScores {
				if dim == "overall_sentiment" {
					continue
				}
				samples[dim] = append(samples[dim], score)
			}
		}
		for dim, values := range samples {
			sum := 0.0
			for _, v := range values {
				sum += v
			}
			breakdown.DimensionScores[displayName(dim)] = round2(sum / float64(len(values)))
		}

		viz.DomainBreakdown = append(viz.DomainBreakdown, breakdown)
	}

	return viz
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func projectName(project *workflow.Project) string {
	if project.Name != "" {
		return project.Name
	}
	return project.ID
}

// reviewsByDomain groups the accepted reviews by their classified domain.
// Reviews that somehow reach the report unclassified land under "unknown".
func reviewsByDomain(project *workflow.Project) map[string][]*workflow.Review {
	byDomain := make(map[string][]*workflow.Review)
	for _, review := range project.AcceptedReviews() {
		domain := review.Domain
		if domain == "" {
			domain = "unknown"
		}
		byDomain[domain] = append(byDomain[domain], review)
	}
	return byDomain
}

// domainDisplayName prefers the graph name captured in the insight over a
// prettified slug.
func domainDisplayName(result *workflow.AnalysisResult, id string) string {
	if insight, ok := result.DomainInsights[id]; ok && insight.DomainName != "" {
		return insight.DomainName
	}
	return displayName(id)
}

// orderedDimensions returns the scored dimension ids in graph order, with any
// stragglers appended alphabetically.
func orderedDimensions(result *workflow.AnalysisResult) []string {
	ordered := make([]string, 0, len(result.FeedbackScores))
	seen := make(map[string]bool, len(result.FeedbackScores))
	for _, id := range result.Metadata.DimensionsEvaluated {
		if _, ok := result.FeedbackScores[id]; ok && !seen[id] {
			ordered = append(ordered, id)
			seen[id] = true
		}
	}

	rest := make([]string, 0)
	for id := range result.FeedbackScores {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

// orderedDomains returns the domain ids in graph order, restricted to the
// given set, with any stragglers appended alphabetically.
func orderedDomains(result *workflow.AnalysisResult, present map[string]bool) []string {
	ordered := make([]string, 0, len(present))
	seen := make(map[string]bool, len(present))
	for _, id := range result.Metadata.DomainsUsed {
		if present[id] && !seen[id] {
			ordered = append(ordered, id)
			seen[id] = true
		}
	}

	rest := make([]string, 0)
	for id := range present {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}
