package graph

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360studio/semreview/export"
	"github.com/c360studio/semreview/ontology"
)

// conn is the slice of the NATS connection the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Flush() error
}

// Publisher sends ontology entities to the graph ingestion subject.
type Publisher struct {
	nc      conn
	subject string
	profile export.Profile
	logger  *slog.Logger
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithSubject overrides the ingestion subject.
func WithSubject(subject string) Option {
	return func(p *Publisher) {
		if subject != "" {
			p.subject = subject
		}
	}
}

// WithProfile selects the export vocabulary profile.
func WithProfile(profile export.Profile) Option {
	return func(p *Publisher) {
		p.profile = profile
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPublisher creates a publisher over an established NATS connection.
func NewPublisher(nc *nats.Conn, opts ...Option) *Publisher {
	p := &Publisher{
		nc:      nc,
		subject: IngestSubject,
		profile: export.ProfileMinimal,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PublishGraph flattens the ontology and publishes one message per entity.
// It returns the number of entities published. Publishing stops at the first
// transport error or context expiry; partial publishes are safe because the
// consumer upserts by entity ID.
func (p *Publisher) PublishGraph(ctx context.Context, g *ontology.Graph) (int, error) {
	exporter := export.NewExporter(p.profile)
	exporter.AddGraph(g)

	published := 0
	for _, payload := range Payloads(exporter, time.Now().UTC()) {
		if err := ctx.Err(); err != nil {
			return published, err
		}
		if err := payload.Validate(); err != nil {
			return published, fmt.Errorf("entity %s: %w", payload.EntityID, err)
		}
		data, err := payload.Marshal()
		if err != nil {
			return published, fmt.Errorf("marshal entity %s: %w", payload.EntityID, err)
		}
		if err := p.nc.Publish(p.subject, data); err != nil {
			return published, fmt.Errorf("publish entity %s: %w", payload.EntityID, err)
		}
		published++
	}

	if err := p.nc.Flush(); err != nil {
		return published, fmt.Errorf("flush graph publishes: %w", err)
	}
	p.logger.Info("ontology published to knowledge graph",
		"subject", p.subject,
		"entities", published)
	return published, nil
}
