package profile

import (
	"context"
	"sort"
)

// stubSignals holds canned signals for the profile sources the ingestor
// recognizes. The text is deliberately neutral so stubbed runs classify
// reviewers the same way runs without profile access do.
var stubSignals = map[string]Signals{
	"linkedin": {
		Titles:   []string{"Professional Profile"},
		Snippets: []string{"Industry experience across multiple roles"},
	},
	"google_scholar": {
		Titles:   []string{"Scholar Profile"},
		Snippets: []string{"Published academic work with citations"},
	},
	"github": {
		Titles:   []string{"Code Profile"},
		Snippets: []string{"Public repositories and contribution history"},
	},
}

// Stub returns canned signals without any network access. It stands in for
// the Enricher in tests and in runs where outbound fetches are disabled.
type Stub struct{}

// NewStub creates a stub enricher.
func NewStub() *Stub {
	return &Stub{}
}

// Enrich returns canned signals for every recognized link key. Unrecognized
// keys are ignored.
func (s *Stub) Enrich(_ context.Context, links map[string]string) *Signals {
	signals := &Signals{}
	if len(links) == 0 {
		return signals
	}

	keys := make([]string, 0, len(links))
	for key := range links {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if canned, ok := stubSignals[key]; ok {
			signals.merge(&canned)
		}
	}
	return signals
}
