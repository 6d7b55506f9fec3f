// Package events publishes pipeline progress to external consumers. The
// orchestrator reports every state transition through an observer; this
// package turns those transitions into JobEvents and delivers them over a
// pluggable Publisher so dashboards and job queues can follow an analysis
// without polling.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/c360studio/semreview/workflow"
)

// publishTimeout bounds the delivery of a single event. Transitions are
// observed inline on the pipeline goroutine; a stuck broker must not stall
// an analysis.
const publishTimeout = 5 * time.Second

// JobEvent records one pipeline state change for a project analysis job.
type JobEvent struct {
	JobID     string    `json:"job_id"`
	ProjectID string    `json:"project_id"`
	Stage     string    `json:"stage,omitempty"`
	State     string    `json:"state"`
	Err       string    `json:"error,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher delivers job events to an external consumer.
type Publisher interface {
	PublishStage(ctx context.Context, ev JobEvent) error
	Close() error
}

// Noop discards every event. It is the publisher of record when event
// publishing is disabled.
type Noop struct{}

// PublishStage discards the event.
func (Noop) PublishStage(context.Context, JobEvent) error { return nil }

// Close is a no-op.
func (Noop) Close() error { return nil }

// LogPublisher writes events to a logger at debug level. Used in verbose
// runs where no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher that logs events instead of sending
// them anywhere. A nil logger uses slog.Default().
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

// PublishStage logs the event.
func (p *LogPublisher) PublishStage(_ context.Context, ev JobEvent) error {
	attrs := []any{
		"job_id", ev.JobID,
		"project_id", ev.ProjectID,
		"state", ev.State,
	}
	if ev.Stage != "" {
		attrs = append(attrs, "stage", ev.Stage)
	}
	if ev.Err != "" {
		attrs = append(attrs, "error", ev.Err)
	}
	p.logger.Debug("pipeline stage", attrs...)
	return nil
}

// Close is a no-op.
func (p *LogPublisher) Close() error { return nil }

// Observer adapts a Publisher to the pipeline's transition observer.
// Delivery failures are logged and swallowed: progress reporting never
// fails a run.
func Observer(pub Publisher, logger *slog.Logger) workflow.ObserverFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(t workflow.Transition) {
		ev := JobEvent{
			JobID:     t.JobID,
			ProjectID: t.ProjectID,
			Stage:     stageLabel(t),
			State:     string(t.To),
			At:        t.At,
		}
		if t.Err != nil {
			ev.Err = t.Err.Error()
		}

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := pub.PublishStage(ctx, ev); err != nil {
			logger.Warn("publish stage event",
				"job_id", ev.JobID,
				"project_id", ev.ProjectID,
				"state", ev.State,
				"error", err)
		}
	}
}

// stageLabel names the stage an event is about. Terminal states carry no
// stage of their own, so the label falls back to the stage just left: a
// Failed event then names the stage that failed.
func stageLabel(t workflow.Transition) string {
	if label := t.To.Stage(); label != "" {
		return label
	}
	return t.From.Stage()
}
