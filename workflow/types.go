// Package workflow implements the review analysis pipeline: classification,
// acceptance filtering, sentiment scoring, gap filling, aggregation, and
// narrative synthesis, orchestrated as a single sequential pass per project.
package workflow

import "fmt"

// OverallSentimentKey is the sentiment-score key holding the review's general
// positivity. It rides alongside dimension ids in SentimentScores but never
// feeds dimension aggregation.
const OverallSentimentKey = "overall_sentiment"

// State represents the pipeline's position in an analysis run.
type State string

const (
	// StateCreated indicates the pipeline has been constructed but not started.
	StateCreated State = "created"
	// StateClassifying indicates reviewers are being assigned domains and expertise levels.
	StateClassifying State = "classifying"
	// StateFiltering indicates reviews are being accepted or rejected.
	StateFiltering State = "filtering"
	// StateScoringHuman indicates accepted human reviews are being sentiment-scored.
	StateScoringHuman State = "scoring_human"
	// StateFillingGaps indicates artificial reviews are being synthesized for uncovered domains.
	StateFillingGaps State = "filling_gaps"
	// StateAggregating indicates per-dimension scores are being computed.
	StateAggregating State = "aggregating"
	// StateSynthesizing indicates the final narrative is being produced.
	StateSynthesizing State = "synthesizing"
	// StateCompleted indicates the analysis finished and a result is available.
	StateCompleted State = "completed"
	// StateFailed indicates the analysis stopped on an unrecoverable error.
	StateFailed State = "failed"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsTerminal returns true when no further transitions are possible.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}

// next maps each working state to its successor in the sequential pass.
var next = map[State]State{
	StateCreated:      StateClassifying,
	StateClassifying:  StateFiltering,
	StateFiltering:    StateScoringHuman,
	StateScoringHuman: StateFillingGaps,
	StateFillingGaps:  StateAggregating,
	StateAggregating:  StateSynthesizing,
	StateSynthesizing: StateCompleted,
}

// CanTransitionTo returns true if the state may move to the target. Every
// non-terminal state may fail; otherwise only the sequential successor is
// reachable.
func (s State) CanTransitionTo(target State) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StateFailed {
		return true
	}
	return next[s] == target
}

// Stage returns the short stage label used for capability routing, events,
// and metrics. Terminal and idle states have no stage.
func (s State) Stage() string {
	switch s {
	case StateClassifying:
		return "classify"
	case StateFiltering:
		return "filter"
	case StateScoringHuman:
		return "sentiment"
	case StateFillingGaps:
		return "gapfill"
	case StateAggregating:
		return "aggregate"
	case StateSynthesizing:
		return "narrative"
	default:
		return ""
	}
}

// Project is a hackathon submission under analysis. The pipeline treats it as
// read-only except for the computed fields on its reviews.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	WorkDone    string    `json:"work_done"`
	HackathonID string    `json:"hackathon_id,omitempty"`
	Reviews     []*Review `json:"reviews"`
}

// FullDescription renders the project in the layout the relevance scorer and
// prompt builders expect.
func (p *Project) FullDescription() string {
	return fmt.Sprintf("Project Name: %s\n\nProject Description: %s\n\nWork Done So Far: %s",
		p.Name, p.Description, p.WorkDone)
}

// AcceptedReviews returns the reviews that passed filtering, in submission
// order.
func (p *Project) AcceptedReviews() []*Review {
	accepted := make([]*Review, 0, len(p.Reviews))
	for _, review := range p.Reviews {
		if review.IsAccepted {
			accepted = append(accepted, review)
		}
	}
	return accepted
}

// Review is a single evaluation of a project. ReviewerName, Text,
// ConfidenceScore, Links, and IsArtificial are fixed at submission or
// generation time; Domain, ExpertiseLevel, RelevanceScore, SentimentScores,
// and IsAccepted are computed by the pipeline, once per analysis pass unless
// reprocessing is forced.
type Review struct {
	ID              string            `json:"id,omitempty"`
	ReviewerName    string            `json:"reviewer_name"`
	Text            string            `json:"text"`
	ConfidenceScore int               `json:"confidence_score"`
	Links           map[string]string `json:"links,omitempty"`
	IsArtificial    bool              `json:"is_artificial"`

	Domain          string             `json:"domain,omitempty"`
	ExpertiseLevel  string             `json:"expertise_level,omitempty"`
	RelevanceScore  float64            `json:"relevance_score"`
	SentimentScores map[string]float64 `json:"sentiment_scores,omitempty"`
	IsAccepted      bool               `json:"is_accepted"`
}

// AnalysisResult is the pipeline's output for one project.
type AnalysisResult struct {
	FeedbackScores  map[string]float64       `json:"feedback_scores"`
	OverallScore    float64                  `json:"overall_score"`
	FinalReview     string                   `json:"final_review"`
	DomainInsights  map[string]DomainInsight `json:"domain_insights"`
	Recommendations []string                 `json:"recommendations"`
	Metadata        AnalysisMetadata         `json:"metadata"`
	DimensionStats  map[string]DimensionStat `json:"dimension_stats,omitempty"`
}

// Narrative is the qualitative half of an analysis result: the synthesized
// review text, per-domain insights, and actionable recommendations.
type Narrative struct {
	FinalReview     string                   `json:"final_review"`
	DomainInsights  map[string]DomainInsight `json:"domain_insights"`
	Recommendations []string                 `json:"recommendations"`
}

// DomainInsight summarizes the accepted reviews of one domain.
type DomainInsight struct {
	DomainName      string   `json:"domain_name"`
	Summary         string   `json:"summary"`
	KeyPoints       []string `json:"key_points,omitempty"`
	Concerns        []string `json:"concerns,omitempty"`
	ReviewCount     int      `json:"review_count"`
	ArtificialCount int      `json:"artificial_count"`
}

// AnalysisMetadata records how the result was produced.
type AnalysisMetadata struct {
	TotalReviews        int      `json:"total_reviews"`
	AcceptedReviews     int      `json:"accepted_reviews"`
	HumanReviews        int      `json:"human_reviews"`
	ArtificialReviews   int      `json:"artificial_reviews"`
	ProcessingSeconds   float64  `json:"processing_seconds"`
	DimensionsEvaluated []string `json:"dimensions_evaluated"`
	DomainsUsed         []string `json:"domains_used"`
	DomainsAvailable    int      `json:"domains_available"`
}

// DimensionStat holds summary statistics of the raw unweighted samples
// behind one aggregated dimension score; they describe reviewer agreement,
// not the weighted mean.
type DimensionStat struct {
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	StdDev  float64 `json:"std_dev"`
	Samples int     `json:"samples"`
}
