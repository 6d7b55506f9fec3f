package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
)

// DefaultSubjectPrefix is the subject tree job events publish under; the
// project id becomes the final token.
const DefaultSubjectPrefix = "semreview.jobs"

// natsConn is the subset of *nats.Conn the publisher uses.
type natsConn interface {
	Publish(subject string, data []byte) error
	Flush() error
	Close()
}

// NATSPublisher publishes job events to a per-project NATS subject,
// `<prefix>.<project-id>`. Events are fire-and-forget core NATS messages;
// consumers that need replay should bind a JetStream stream to the subject
// tree on their side.
type NATSPublisher struct {
	nc     natsConn
	prefix string
}

// NATSOption configures a NATSPublisher.
type NATSOption func(*NATSPublisher)

// WithSubjectPrefix overrides the default subject prefix.
func WithSubjectPrefix(prefix string) NATSOption {
	return func(p *NATSPublisher) {
		if prefix != "" {
			p.prefix = strings.TrimSuffix(prefix, ".")
		}
	}
}

// NewNATSPublisher wraps an established NATS connection. The publisher does
// not own the connection's lifecycle until Close is called, which flushes
// pending messages and closes it.
func NewNATSPublisher(nc *nats.Conn, opts ...NATSOption) *NATSPublisher {
	p := &NATSPublisher{
		nc:     nc,
		prefix: DefaultSubjectPrefix,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Subject returns the subject one project's job events publish to.
func (p *NATSPublisher) Subject(projectID string) string {
	return p.prefix + "." + subjectToken(projectID)
}

// PublishStage sends the event. NATS publishes are synchronous buffer
// writes, so the context is checked once up front rather than threaded
// through the send.
func (p *NATSPublisher) PublishStage(ctx context.Context, ev JobEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context ended before publish: %w", err)
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal job event: %w", err)
	}

	if err := p.nc.Publish(p.Subject(ev.ProjectID), data); err != nil {
		return fmt.Errorf("publish job event: %w", err)
	}
	return nil
}

// Close flushes buffered messages and closes the connection.
func (p *NATSPublisher) Close() error {
	err := p.nc.Flush()
	p.nc.Close()
	if err != nil {
		return fmt.Errorf("flush pending events: %w", err)
	}
	return nil
}

// subjectToken makes an identifier safe to embed as a NATS subject token:
// anything outside [A-Za-z0-9_-] becomes '-'.
func subjectToken(s string) string {
	if s == "" {
		return "unknown"
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
