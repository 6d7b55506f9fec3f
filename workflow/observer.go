package workflow

import "time"

// Transition is one pipeline state change. Err is non-nil only when To is
// StateFailed.
type Transition struct {
	JobID     string    `json:"job_id"`
	ProjectID string    `json:"project_id"`
	From      State     `json:"from"`
	To        State     `json:"to"`
	Err       error     `json:"-"`
	At        time.Time `json:"at"`
}

// StageObserver receives pipeline state transitions: event publishers and
// metrics collectors hook in here. The pipeline calls observers inline on
// its own goroutine, so implementations that do real work should hand off
// and return quickly.
type StageObserver interface {
	OnTransition(t Transition)
}

// ObserverFunc adapts a function to the StageObserver interface.
type ObserverFunc func(Transition)

// OnTransition calls f.
func (f ObserverFunc) OnTransition(t Transition) { f(t) }

// MultiObserver fans each transition out to every observer in order. Nil
// entries are skipped, so callers can pass optional observers directly.
func MultiObserver(observers ...StageObserver) ObserverFunc {
	return func(t Transition) {
		for _, obs := range observers {
			if obs != nil {
				obs.OnTransition(t)
			}
		}
	}
}
