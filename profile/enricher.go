package profile

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"sort"
	"time"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxSnippets = 3
	fetchConcurrency   = 3
)

// pageFetcher retrieves a single profile page.
type pageFetcher interface {
	Fetch(ctx context.Context, urlStr string) (*FetchResult, error)
}

// Enricher gathers signals from a reviewer's external profile links. Every
// link is fetched independently; a link that cannot be fetched or parsed is
// logged and skipped, so Enrich always returns usable (possibly empty)
// signals.
type Enricher struct {
	fetcher     pageFetcher
	converter   *Converter
	logger      *slog.Logger
	maxSnippets int
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithLogger sets the logger used for skipped-link reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) {
		e.logger = logger
	}
}

// WithTimeout sets the per-request fetch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Enricher) {
		e.fetcher = NewFetcher(timeout)
	}
}

// WithMaxSnippets caps the number of text snippets kept per link.
func WithMaxSnippets(n int) Option {
	return func(e *Enricher) {
		e.maxSnippets = n
	}
}

// NewEnricher creates an enricher with default fetch settings.
func NewEnricher(opts ...Option) *Enricher {
	e := &Enricher{
		fetcher:     NewFetcher(0),
		converter:   NewConverter(),
		logger:      slog.Default(),
		maxSnippets: defaultMaxSnippets,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich fetches every profile link and extracts titles and text snippets.
// Links are processed in sorted key order so results are deterministic.
func (e *Enricher) Enrich(ctx context.Context, links map[string]string) *Signals {
	signals := &Signals{}
	if len(links) == 0 {
		return signals
	}

	keys := make([]string, 0, len(links))
	for key := range links {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]*Signals, len(keys))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(fetchConcurrency)
	for i, key := range keys {
		i, key := i, key
		eg.Go(func() error {
			found, err := e.enrichOne(egctx, links[key])
			if err != nil {
				e.logger.Debug("profile link skipped",
					"link", key,
					"url", links[key],
					"error", err)
				return nil
			}
			out[i] = found
			return nil
		})
	}
	// Goroutines never return errors; failures are skipped above.
	_ = eg.Wait()

	for _, found := range out {
		signals.merge(found)
	}
	return signals
}

// enrichOne fetches a single page, isolates its main content, and converts
// it into a title plus snippets.
func (e *Enricher) enrichOne(ctx context.Context, rawURL string) (*Signals, error) {
	res, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	parsed, err := url.Parse(res.URL)
	if err != nil {
		return nil, err
	}

	title, content := "", res.Body
	article, err := readability.FromReader(bytes.NewReader(res.Body), parsed)
	if err == nil && article.Content != "" {
		title = article.Title
		content = []byte(article.Content)
	}

	pageTitle, snippets, err := e.converter.Convert(content, e.maxSnippets)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = pageTitle
	}

	found := &Signals{Snippets: snippets}
	if title != "" {
		found.Titles = []string{title}
	}
	return found, nil
}
