package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/c360studio/semreview/config"
	"github.com/c360studio/semreview/events"
	"github.com/c360studio/semreview/ingest"
	"github.com/c360studio/semreview/llm"
	"github.com/c360studio/semreview/metrics"
	"github.com/c360studio/semreview/model"
	"github.com/c360studio/semreview/ontology"
	"github.com/c360studio/semreview/profile"
	"github.com/c360studio/semreview/report"
	"github.com/c360studio/semreview/storage"
	"github.com/c360studio/semreview/workflow"
	"github.com/c360studio/semreview/workflow/aggregation"
	"github.com/c360studio/semreview/workflow/classify"
	"github.com/c360studio/semreview/workflow/filter"
	"github.com/c360studio/semreview/workflow/gap"
	"github.com/c360studio/semreview/workflow/narrative"
	"github.com/c360studio/semreview/workflow/sentiment"
)

func init() {
	Register(newAnalyzeCommand)
}

type analyzeFlags struct {
	all            bool
	force          bool
	noSynthetic    bool
	timeout        time.Duration
	updateOntology bool
	metricsAddr    string
}

func newAnalyzeCommand() *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze [project-id...]",
		Short: "Run the review analysis pipeline over projects",
		Long: `Analyze runs the full pipeline for each named project: classify
reviewers into ontology domains, filter reviews by confidence and
relevance, sentiment-score accepted reviews, synthesize artificial
reviews for uncovered relevant domains, aggregate per-dimension
scores, and write the feedback report.

With --all, every project discovered under the workspace projects
directory is analyzed; independent projects run concurrently up to
the configured limit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flags.all && len(args) == 0 {
				return errors.New("name at least one project id or pass --all")
			}
			return runAnalyze(cmd.Context(), flags, args)
		},
	}

	cmd.Flags().BoolVar(&flags.all, "all", false, "Analyze every discovered project")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Reclassify and rescore reviews that already carry results")
	cmd.Flags().BoolVar(&flags.noSynthetic, "no-synthetic", false, "Skip artificial review generation for uncovered domains")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 10*time.Minute, "Per-project analysis deadline")
	cmd.Flags().BoolVar(&flags.updateOntology, "update-ontology", false, "Propose and apply ontology keyword additions after the batch")
	cmd.Flags().StringVar(&flags.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run")

	return cmd
}

func runAnalyze(ctx context.Context, flags analyzeFlags, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Analysis.ForceReprocess = cfg.Analysis.ForceReprocess || flags.force
	if flags.noSynthetic {
		cfg.Analysis.SyntheticReviews = false
	}
	if flags.metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = flags.metricsAddr
	}
	logger := slog.Default()

	ontStore := ontology.NewStore(cfg.Ontology.Path)
	graph, err := ontStore.Load()
	if err != nil {
		return err
	}
	if cfg.Ontology.Watch {
		watchCtx, stopWatch := context.WithCancel(ctx)
		defer stopWatch()
		go func() {
			if err := ontStore.Watch(watchCtx, graph); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("ontology watch stopped", "error", err)
			}
		}()
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: m.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("metrics listener stopped", "error", err)
			}
		}()
		defer srv.Close()
	}

	client, err := newLLMClient(cfg, m, logger)
	if err != nil {
		return err
	}

	store, err := openResultStore(ctx, cfg)
	if err != nil {
		return err
	}

	publisher, err := openEventPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()
	observers := []workflow.StageObserver{events.Observer(publisher, logger)}
	if m != nil {
		observers = append(observers, m.StageCollector())
	}

	loader := ingest.New(cfg.Workspace.ProjectsDir, ingest.WithLogger(logger))
	projectIDs := args
	if flags.all {
		projectIDs, err = loader.Projects()
		if err != nil {
			return err
		}
		if len(projectIDs) == 0 {
			return fmt.Errorf("no projects found under %s", cfg.Workspace.ProjectsDir)
		}
	}

	writer := report.NewWriter(cfg.Workspace.OutputDir, report.WithLogger(logger))
	enricher := profile.NewEnricher(profile.WithLogger(logger))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Analysis.MaxConcurrentProjects)
	for _, projectID := range projectIDs {
		group.Go(func() error {
			return analyzeOne(groupCtx, projectID, flags.timeout, cfg, graph, client, enricher, loader, store, writer, observers, logger)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	if flags.updateOntology || cfg.Ontology.Enrich {
		if err := enrichOntology(ctx, client, graph, ontStore, loader, projectIDs, logger); err != nil {
			logger.Warn("ontology enrichment skipped", "error", err)
		}
	}
	return nil
}

// analyzeOne runs the pipeline for a single project and persists the result.
func analyzeOne(ctx context.Context, projectID string, timeout time.Duration, cfg *config.Config, graph *ontology.Graph, client *llm.Client, enricher classify.Enricher, loader *ingest.Loader, store storage.Store, writer *report.Writer, observers []workflow.StageObserver, logger *slog.Logger) error {
	project, err := loader.Load(projectID)
	if err != nil {
		return fmt.Errorf("load project %s: %w", projectID, err)
	}

	stages := buildStages(client, graph, cfg.Analysis, enricher, logger)
	opts := []workflow.PipelineOption{workflow.WithLogger(logger)}
	for _, obs := range observers {
		opts = append(opts, workflow.WithObserver(obs))
	}
	pipeline, err := workflow.NewPipeline(graph, stages, cfg.Analysis, opts...)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	result, err := pipeline.Analyze(runCtx, project)
	if err != nil {
		return fmt.Errorf("project %s: %w", projectID, err)
	}

	if err := store.Put(ctx, &storage.Record{
		ProjectID:   projectID,
		ProjectName: project.Name,
		SavedAt:     time.Now().UTC(),
		Result:      result,
	}); err != nil {
		return fmt.Errorf("store result for %s: %w", projectID, err)
	}
	paths, err := writer.Write(project, result)
	if err != nil {
		return fmt.Errorf("write report for %s: %w", projectID, err)
	}
	logger.Info("project analyzed",
		"project", projectID,
		"overall", result.OverallScore,
		"report", paths.Markdown)
	return nil
}

// completerSource binds capabilities to completion ports; *llm.Client
// satisfies it.
type completerSource interface {
	For(capability string) llm.Completer
}

// buildStages wires the six pipeline stages over one graph and capability
// source. Each call produces a fresh classifier cache, scoped to one run.
func buildStages(src completerSource, graph *ontology.Graph, cfg config.AnalysisConfig, enricher classify.Enricher, logger *slog.Logger) workflow.Stages {
	scorer := sentiment.New(src.For(string(model.CapabilitySentiment)), graph, sentiment.WithLogger(logger))

	classifyOpts := []classify.Option{classify.WithLogger(logger)}
	if enricher != nil {
		classifyOpts = append(classifyOpts, classify.WithEnricher(enricher))
	}

	return workflow.Stages{
		Classifier:  classify.New(src.For(string(model.CapabilityClassification)), graph, classifyOpts...),
		Filter:      filter.New(graph, cfg, filter.WithLogger(logger)),
		Scorer:      scorer,
		GapFiller:   gap.NewFiller(src.For(string(model.CapabilityGeneration)), graph, scorer, cfg.GapRelevanceThreshold, gap.WithLogger(logger)),
		Aggregator:  aggregation.New(graph),
		Synthesizer: narrative.New(src.For(string(model.CapabilitySynthesis)), graph, narrative.WithLogger(logger)),
	}
}

// newLLMClient builds the shared completion client from config. A non-nil
// metrics value observes every endpoint attempt.
func newLLMClient(cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (*llm.Client, error) {
	registry := model.NewDefaultRegistry()
	if cfg.LLM.RegistryPath != "" {
		loaded, err := model.LoadFromFile(cfg.LLM.RegistryPath)
		if err != nil {
			return nil, fmt.Errorf("load model registry: %w", err)
		}
		registry = loaded
	}
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("model registry: %w", err)
	}
	model.InitGlobal(registry)

	retry := llm.DefaultRetryConfig()
	if cfg.LLM.MaxAttempts > 0 {
		retry.MaxAttempts = cfg.LLM.MaxAttempts
	}
	if cfg.LLM.RetryBackoff > 0 {
		retry.BackoffBase = cfg.LLM.RetryBackoff
	}

	opts := []llm.ClientOption{
		llm.WithRetryConfig(retry),
		llm.WithTemperature(cfg.LLM.Temperature),
		llm.WithLogger(logger),
	}
	if cfg.LLM.Timeout > 0 {
		opts = append(opts, llm.WithHTTPClient(&http.Client{Timeout: cfg.LLM.Timeout}))
	}
	if m != nil {
		opts = append(opts, llm.WithRequestObserver(m.RequestObserver()))
	}
	return llm.NewClient(registry, opts...), nil
}

// openResultStore builds the configured analysis-result store.
func openResultStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "nats":
		nc, err := nats.Connect(cfg.Storage.NATSURL)
		if err != nil {
			return nil, fmt.Errorf("connect result store: %w", err)
		}
		js, err := jetstream.New(nc)
		if err != nil {
			return nil, fmt.Errorf("result store jetstream: %w", err)
		}
		return storage.NewNATSStore(ctx, js, cfg.Storage.Bucket)
	default:
		return storage.NewFileStore(cfg.Storage.Dir)
	}
}

// openEventPublisher builds the stage-event publisher.
func openEventPublisher(cfg *config.Config, logger *slog.Logger) (events.Publisher, error) {
	if !cfg.Events.Enabled {
		return events.NewLogPublisher(logger), nil
	}
	url := cfg.Events.URL
	if url == "" {
		url = cfg.Storage.NATSURL
	}
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect event publisher: %w", err)
	}
	return events.NewNATSPublisher(nc, events.WithSubjectPrefix(cfg.Events.SubjectPrefix)), nil
}

// enrichOntology proposes keyword additions from the batch's project texts
// and applies them between runs, never during one.
func enrichOntology(ctx context.Context, client *llm.Client, graph *ontology.Graph, store *ontology.Store, loader *ingest.Loader, projectIDs []string, logger *slog.Logger) error {
	var texts []string
	for _, id := range projectIDs {
		project, err := loader.Load(id)
		if err != nil {
			continue
		}
		texts = append(texts, project.FullDescription())
	}
	if len(texts) == 0 {
		return errors.New("no project text available")
	}

	suggestions, err := ontology.Suggest(ctx, client.For(string(model.CapabilitySynthesis)), graph, strings.Join(texts, "\n\n---\n\n"))
	if err != nil {
		return err
	}
	if suggestions.Empty() {
		logger.Info("no ontology additions suggested")
		return nil
	}
	applied, err := suggestions.Apply(graph)
	if err != nil {
		return err
	}
	if applied == 0 {
		return nil
	}
	if err := store.Save(graph); err != nil {
		return err
	}
	logger.Info("ontology enriched", "additions", applied)
	return nil
}
