// Package llm provides the text-completion port the review pipeline depends
// on: a provider-agnostic client with capability routing, fallback chains,
// bounded retries, and response cleanup. Provider adapters live in
// llm/providers and register themselves at init.
package llm

import "context"

// Completer is the completion port consumed by the pipeline stages. A stage
// hands over a prompt and gets back cleaned completion text; everything else
// (provider choice, fallback, retries) happens behind the interface.
// Client.For binds a *Client to a capability to produce one;
// testutil.MockCompleter implements it for tests.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
