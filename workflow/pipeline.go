package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/semreview/config"
	"github.com/c360studio/semreview/ontology"
)

// ReviewerClassifier assigns a domain and expertise level to one review.
type ReviewerClassifier interface {
	ClassifyReview(ctx context.Context, review *Review) error
	Reset()
}

// AcceptanceFilter marks each project review accepted or rejected and
// returns the accepted count.
type AcceptanceFilter interface {
	Apply(project *Project) int
}

// SentimentScorer rates review text per impact dimension. It never fails;
// an unreachable model yields neutral defaults.
type SentimentScorer interface {
	Score(ctx context.Context, reviewText string) map[string]float64
}

// GapFiller synthesizes accepted artificial reviews for relevant domains no
// accepted human review covers.
type GapFiller interface {
	FillGaps(ctx context.Context, project *Project) ([]*Review, error)
}

// ScoreAggregator reduces accepted reviews to per-dimension scores, summary
// statistics, and the overall project score.
type ScoreAggregator interface {
	Aggregate(reviews []*Review) map[string]float64
	Summary(reviews []*Review) map[string]DimensionStat
	Overall(scores map[string]float64) float64
}

// NarrativeSynthesizer produces the final review text, per-domain insights,
// and recommendations.
type NarrativeSynthesizer interface {
	Synthesize(ctx context.Context, project *Project, accepted []*Review, scores map[string]float64) (Narrative, error)
}

// Stages bundles the pipeline's processing components. Each port is
// implemented by its workflow subpackage and injected at construction, so
// the orchestrator carries no stage wiring of its own.
type Stages struct {
	Classifier  ReviewerClassifier
	Filter      AcceptanceFilter
	Scorer      SentimentScorer
	GapFiller   GapFiller
	Aggregator  ScoreAggregator
	Synthesizer NarrativeSynthesizer
}

func (s Stages) validate() error {
	switch {
	case s.Classifier == nil:
		return errors.New("classifier stage is required")
	case s.Filter == nil:
		return errors.New("filter stage is required")
	case s.Scorer == nil:
		return errors.New("sentiment scorer stage is required")
	case s.GapFiller == nil:
		return errors.New("gap filler stage is required")
	case s.Aggregator == nil:
		return errors.New("aggregator stage is required")
	case s.Synthesizer == nil:
		return errors.New("narrative synthesizer stage is required")
	}
	return nil
}

// Pipeline runs one project analysis as a strictly sequential pass through
// the stage ports. An instance is good for exactly one Analyze call; hosts
// construct one pipeline per project.
type Pipeline struct {
	jobID     string
	graph     *ontology.Graph
	stages    Stages
	cfg       config.AnalysisConfig
	observers []StageObserver
	logger    *slog.Logger

	mu    sync.Mutex
	state State
	stage string
	errs  []string
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithObserver registers an observer for state transitions. May be given
// multiple times; observers are notified in registration order.
func WithObserver(observer StageObserver) PipelineOption {
	return func(p *Pipeline) {
		if observer != nil {
			p.observers = append(p.observers, observer)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a pipeline over the given graph and stages.
func NewPipeline(graph *ontology.Graph, stages Stages, cfg config.AnalysisConfig, opts ...PipelineOption) (*Pipeline, error) {
	if graph == nil {
		return nil, errors.New("ontology graph is required")
	}
	if err := stages.validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		jobID:  uuid.NewString(),
		graph:  graph,
		stages: stages,
		cfg:    cfg,
		logger: slog.Default(),
		state:  StateCreated,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// JobID identifies this analysis run in events, logs, and metrics.
func (p *Pipeline) JobID() string {
	return p.jobID
}

// State returns the pipeline's current state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Stage returns the label of the last processing stage entered. It keeps
// that value after a failure, naming the stage the run reached.
func (p *Pipeline) Stage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stage
}

// Errors returns the human-readable errors collected so far, in order.
func (p *Pipeline) Errors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.errs...)
}

// Analyze runs the full pass over the project: classify reviewers, filter
// reviews, sentiment-score accepted human reviews, fill domain gaps with
// artificial reviews, aggregate dimension scores, and synthesize the
// narrative. The context deadline is honored between stages and inside every
// port call; on expiry the pipeline fails at the stage it reached. Reviews
// are mutated in place (computed fields only) and generated reviews are
// appended to the project.
func (p *Pipeline) Analyze(ctx context.Context, project *Project) (*AnalysisResult, error) {
	if project == nil {
		return nil, errors.New("project is required")
	}
	if err := p.begin(project); err != nil {
		return nil, err
	}

	start := time.Now()
	p.logger.Info("analysis started",
		"job_id", p.jobID,
		"project", project.ID,
		"reviews", len(project.Reviews))

	if err := p.graph.Validate(); err != nil {
		return nil, p.fail(project, fmt.Errorf("ontology graph: %w", err))
	}
	if err := p.classifyReviews(ctx, project); err != nil {
		return nil, p.fail(project, err)
	}

	p.advance(project) // filtering
	if err := ctx.Err(); err != nil {
		return nil, p.fail(project, err)
	}
	acceptedCount := p.stages.Filter.Apply(project)
	p.logger.Debug("reviews filtered",
		"job_id", p.jobID,
		"accepted", acceptedCount,
		"total", len(project.Reviews))

	p.advance(project) // scoring human reviews
	if err := p.scoreHumanReviews(ctx, project); err != nil {
		return nil, p.fail(project, err)
	}

	p.advance(project) // filling gaps
	if err := p.fillGaps(ctx, project); err != nil {
		return nil, p.fail(project, err)
	}

	p.advance(project) // aggregating
	if err := ctx.Err(); err != nil {
		return nil, p.fail(project, err)
	}
	accepted := project.AcceptedReviews()
	scores := p.stages.Aggregator.Aggregate(accepted)
	stats := p.stages.Aggregator.Summary(accepted)

	p.advance(project) // synthesizing
	narrative, err := p.stages.Synthesizer.Synthesize(ctx, project, accepted, scores)
	if err != nil {
		return nil, p.fail(project, err)
	}

	p.advance(project) // completed
	result := p.buildResult(project, accepted, scores, stats, narrative, time.Since(start))
	p.logger.Info("analysis completed",
		"job_id", p.jobID,
		"project", project.ID,
		"overall", result.OverallScore,
		"accepted", result.Metadata.AcceptedReviews,
		"artificial", result.Metadata.ArtificialReviews,
		"seconds", result.Metadata.ProcessingSeconds)
	return result, nil
}

// classifyReviews assigns domain and expertise to every review that needs
// it. Already-classified reviews are skipped unless ForceReprocess, which
// also drops the classifier's reviewer cache first.
func (p *Pipeline) classifyReviews(ctx context.Context, project *Project) error {
	if p.cfg.ForceReprocess {
		p.stages.Classifier.Reset()
	}
	for _, review := range project.Reviews {
		if err := ctx.Err(); err != nil {
			return err
		}
		if review.Domain != "" && !p.cfg.ForceReprocess {
			continue
		}
		if err := p.stages.Classifier.ClassifyReview(ctx, review); err != nil {
			return fmt.Errorf("classify review by %s: %w", review.ReviewerName, err)
		}
	}
	return nil
}

// scoreHumanReviews sentiment-scores accepted human reviews. Scores already
// present are kept unless ForceReprocess. Artificial reviews arrive scored
// from the gap filler and are never rescored here.
func (p *Pipeline) scoreHumanReviews(ctx context.Context, project *Project) error {
	for _, review := range project.Reviews {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !review.IsAccepted || review.IsArtificial {
			continue
		}
		if len(review.SentimentScores) > 0 && !p.cfg.ForceReprocess {
			continue
		}
		review.SentimentScores = p.stages.Scorer.Score(ctx, review.Text)
	}
	return nil
}

// fillGaps appends artificial reviews for uncovered relevant domains, unless
// synthetic reviews are disabled in the analysis config.
func (p *Pipeline) fillGaps(ctx context.Context, project *Project) error {
	if !p.cfg.SyntheticReviews {
		p.logger.Debug("synthetic reviews disabled, skipping gap filling", "job_id", p.jobID)
		return nil
	}
	generated, err := p.stages.GapFiller.FillGaps(ctx, project)
	if err != nil {
		return err
	}
	project.Reviews = append(project.Reviews, generated...)
	return nil
}

func (p *Pipeline) buildResult(project *Project, accepted []*Review, scores map[string]float64, stats map[string]DimensionStat, narrative Narrative, elapsed time.Duration) *AnalysisResult {
	humans, artificial := 0, 0
	for _, review := range project.Reviews {
		if review.IsArtificial {
			artificial++
		} else {
			humans++
		}
	}

	covered := make(map[string]bool, len(accepted))
	for _, review := range accepted {
		covered[review.Domain] = true
	}
	domains := p.graph.Domains()
	used := make([]string, 0, len(domains))
	for _, domain := range domains {
		if covered[domain.ID] {
			used = append(used, domain.ID)
		}
	}

	dims := p.graph.ImpactDimensions()
	evaluated := make([]string, 0, len(dims))
	for _, dim := range dims {
		evaluated = append(evaluated, dim.ID)
	}

	return &AnalysisResult{
		FeedbackScores:  scores,
		OverallScore:    p.stages.Aggregator.Overall(scores),
		FinalReview:     narrative.FinalReview,
		DomainInsights:  narrative.DomainInsights,
		Recommendations: narrative.Recommendations,
		DimensionStats:  stats,
		Metadata: AnalysisMetadata{
			TotalReviews:        len(project.Reviews),
			AcceptedReviews:     len(accepted),
			HumanReviews:        humans,
			ArtificialReviews:   artificial,
			ProcessingSeconds:   elapsed.Seconds(),
			DimensionsEvaluated: evaluated,
			DomainsUsed:         used,
			DomainsAvailable:    len(domains),
		},
	}
}

// begin moves Created to Classifying, rejecting reuse of a spent pipeline.
func (p *Pipeline) begin(project *Project) error {
	p.mu.Lock()
	if p.state != StateCreated {
		state := p.state
		p.mu.Unlock()
		return fmt.Errorf("pipeline %s is not reusable: state %s", p.jobID, state)
	}
	p.state = StateClassifying
	p.stage = StateClassifying.Stage()
	p.mu.Unlock()

	p.notify(project, StateCreated, StateClassifying, nil)
	return nil
}

// advance moves to the sequential successor state.
func (p *Pipeline) advance(project *Project) {
	p.mu.Lock()
	from := p.state
	to := next[from]
	p.state = to
	if stage := to.Stage(); stage != "" {
		p.stage = stage
	}
	p.mu.Unlock()

	p.notify(project, from, to, nil)
}

// fail records the error, moves to Failed, and returns the error the caller
// should surface. The stage label keeps the value of the stage reached.
func (p *Pipeline) fail(project *Project, err error) error {
	p.mu.Lock()
	p.errs = append(p.errs, err.Error())
	from := p.state
	stage := p.stage
	p.state = StateFailed
	p.mu.Unlock()

	p.notify(project, from, StateFailed, err)
	p.logger.Error("analysis failed",
		"job_id", p.jobID,
		"project", project.ID,
		"stage", stage,
		"error", err)
	return fmt.Errorf("analysis failed at %s: %w", stage, err)
}

func (p *Pipeline) notify(project *Project, from, to State, err error) {
	if len(p.observers) == 0 {
		return
	}
	t := Transition{
		JobID:     p.jobID,
		ProjectID: project.ID,
		From:      from,
		To:        to,
		Err:       err,
		At:        time.Now(),
	}
	for _, observer := range p.observers {
		observer.OnTransition(t)
	}
}
