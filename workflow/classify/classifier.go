// Package classify assigns each reviewer to an ontology domain and an
// expertise level. The domain comes from a model completion over the review
// text, normalized against the live graph; external profile signals can
// override it through a small keyword rule table. Profiles are cached per
// run so a reviewer appearing in several projects is classified once.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"github.com/c360studio/semreview/llm"
	"github.com/c360studio/semreview/ontology"
	"github.com/c360studio/semreview/profile"
	"github.com/c360studio/semreview/workflow"
	"github.com/c360studio/semreview/workflow/prompts"
)

// Enricher supplies signals from a reviewer's external profile links.
// profile.Enricher fetches real pages; profile.Stub serves canned signals
// when outbound fetches are disabled.
type Enricher interface {
	Enrich(ctx context.Context, links map[string]string) *profile.Signals
}

// Result is a classified reviewer profile.
type Result struct {
	Domain         string           `json:"domain"`
	ExpertiseLevel string           `json:"expertise_level"`
	External       *profile.Signals `json:"external,omitempty"`
}

// externalRule maps profile keywords to a domain override. Rules are
// evaluated in order and the first hit wins. An empty domainID keeps the
// text-based classification.
type externalRule struct {
	domainID  string
	terms     []string // substring match
	wordTerms []string // whole-word match only
}

var externalRules = []externalRule{
	{domainID: "technical", terms: []string{"engineer", "developer"}},
	{domainID: "clinical", terms: []string{"physician", "clinic"}, wordTerms: []string{"md"}},
	{domainID: "business", terms: []string{"product", "market"}},
	{domainID: "design", terms: []string{"design"}},
	// Academic profiles say little about review perspective; keep the
	// text-based domain.
	{domainID: "", terms: []string{"research"}},
}

// Classifier classifies reviewers against the ontology graph.
type Classifier struct {
	completer llm.Completer
	graph     *ontology.Graph
	enricher  Enricher
	logger    *slog.Logger

	mu    sync.Mutex
	cache map[string]Result
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithEnricher enables external profile lookups.
func WithEnricher(e Enricher) Option {
	return func(c *Classifier) {
		c.enricher = e
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

// New creates a Classifier. Without WithEnricher, external links are
// ignored and classification relies on review text and confidence alone.
func New(completer llm.Completer, graph *ontology.Graph, opts ...Option) *Classifier {
	c := &Classifier{
		completer: completer,
		graph:     graph,
		logger:    slog.Default(),
		cache:     make(map[string]Result),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify determines the domain and expertise level for a reviewer. The
// result is cached by reviewer name for the lifetime of the Classifier.
//
// An unrecognizable completion falls back to the first domain in graph
// order; only completion failure or an empty graph returns an error.
func (c *Classifier) Classify(ctx context.Context, reviewerName, reviewText string, confidence int, links map[string]string) (Result, error) {
	c.mu.Lock()
	if cached, ok := c.cache[reviewerName]; ok {
		c.mu.Unlock()
		c.logger.Debug("reviewer profile cached", "reviewer", reviewerName, "domain", cached.Domain)
		return cached, nil
	}
	c.mu.Unlock()

	domains := c.graph.Domains()
	if len(domains) == 0 {
		return Result{}, fmt.Errorf("classify reviewer %q: ontology has no domains", reviewerName)
	}

	expertise := c.graph.ExpertiseLevelByConfidence(confidence)

	reply, err := c.completer.Complete(ctx, prompts.ReviewerClassification(reviewerName, reviewText, domains))
	if err != nil {
		return Result{}, fmt.Errorf("classify reviewer %q: %w", reviewerName, err)
	}

	domain, matched := matchDomain(reply, domains)
	if !matched {
		domain = domains[0].ID
		c.logger.Warn("classification ambiguous, using first domain",
			"reviewer", reviewerName,
			"domain", domain,
			"reply", truncate(reply, 80))
	}

	result := Result{Domain: domain, ExpertiseLevel: expertise}

	if c.enricher != nil && len(links) > 0 {
		c.logger.Info("checking external profiles", "reviewer", reviewerName, "links", len(links))
		result.External = c.enricher.Enrich(ctx, links)
		if override, ok := c.applyExternal(result.External); ok && override != domain {
			c.logger.Info("domain overridden by external profile",
				"reviewer", reviewerName,
				"from", domain,
				"to", override)
			result.Domain = override
		}
	}

	c.mu.Lock()
	c.cache[reviewerName] = result
	c.mu.Unlock()

	return result, nil
}

// ClassifyReview classifies one review in place, setting its Domain and
// ExpertiseLevel. It satisfies the pipeline's classifier port; callers decide
// whether an already-classified review should reach it at all.
func (c *Classifier) ClassifyReview(ctx context.Context, review *workflow.Review) error {
	result, err := c.Classify(ctx, review.ReviewerName, review.Text, review.ConfidenceScore, review.Links)
	if err != nil {
		return err
	}
	review.Domain = result.Domain
	review.ExpertiseLevel = result.ExpertiseLevel
	return nil
}

// Reset clears the per-run profile cache. Reprocessing a project with fresh
// classifications starts here.
func (c *Classifier) Reset() {
	c.mu.Lock()
	c.cache = make(map[string]Result)
	c.mu.Unlock()
}

// matchDomain normalizes a completion reply to a domain ID: an exact ID
// match wins, then the first domain in graph order whose ID, name, or
// keywords appear in the reply.
func matchDomain(reply string, domains []ontology.Domain) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(reply))
	if normalized == "" {
		return "", false
	}

	for _, d := range domains {
		if normalized == strings.ToLower(d.ID) {
			return d.ID, true
		}
	}

	for _, d := range domains {
		if strings.Contains(normalized, strings.ToLower(d.ID)) ||
			strings.Contains(normalized, strings.ToLower(d.Name)) {
			return d.ID, true
		}
		for _, kw := range d.Keywords {
			if kw != "" && strings.Contains(normalized, strings.ToLower(kw)) {
				return d.ID, true
			}
		}
	}

	return "", false
}

// applyExternal runs the override rule table against the collected signals.
// It returns the domain to use and whether any rule matched. Overrides to
// domains absent from the graph are dropped.
func (c *Classifier) applyExternal(signals *profile.Signals) (string, bool) {
	if signals.Empty() {
		return "", false
	}

	parts := make([]string, 0, len(signals.Titles)+len(signals.Snippets))
	parts = append(parts, signals.Titles...)
	parts = append(parts, signals.Snippets...)
	text := strings.ToLower(strings.Join(parts, " "))
	words := fieldWords(text)

	for _, rule := range externalRules {
		if !ruleMatches(rule, text, words) {
			continue
		}
		if rule.domainID == "" {
			return "", false
		}
		if _, ok := c.graph.DomainByID(rule.domainID); !ok {
			return "", false
		}
		return rule.domainID, true
	}
	return "", false
}

func ruleMatches(rule externalRule, text string, words map[string]bool) bool {
	for _, term := range rule.terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	for _, term := range rule.wordTerms {
		if words[term] {
			return true
		}
	}
	return false
}

// fieldWords splits lowercased text into a word set for whole-word terms
// like "md" that would otherwise match inside unrelated words.
func fieldWords(text string) map[string]bool {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make(map[string]bool, len(fields))
	for _, f := range fields {
		words[f] = true
	}
	return words
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
