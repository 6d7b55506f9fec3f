// Package testutil provides test utilities for the llm package.
// It includes mock implementations for testing pipeline and LLM interactions.
package testutil

import (
	"context"
	"sync"
)

// MockCompleter is a thread-safe scripted llm.Completer for testing.
// It captures prompts passed to Complete() and returns configured responses.
//
// Usage:
//
//	// Single response mock
//	mock := &MockCompleter{
//	    Responses: []string{`{"innovation": 4.0}`},
//	}
//
//	// Multiple responses (consumed in sequence)
//	mock := &MockCompleter{
//	    Responses: []string{"technical", "business"},
//	}
//
//	// Error response
//	mock := &MockCompleter{
//	    Err: errors.New("connection failed"),
//	}
//
//	// Prompt-dependent behavior
//	mock := &MockCompleter{
//	    ReplyFunc: func(prompt string) (string, error) {
//	        if strings.Contains(prompt, "clinical") {
//	            return "", errors.New("boom")
//	        }
//	        return "REVIEW: fine\nCONFIDENCE: 90", nil
//	    },
//	}
type MockCompleter struct {
	mu        sync.Mutex
	prompts   []string
	Responses []string // Responses to return in sequence
	Err       error    // Error to return (takes precedence over Responses)

	// ReplyFunc takes precedence over Responses and Err when set.
	ReplyFunc func(prompt string) (string, error)

	callCount     int
	responseIndex int
}

// Complete implements llm.Completer.
// Returns the next response from Responses, or Err if set, or delegates to
// ReplyFunc when configured. Captures the prompt for verification in tests.
func (m *MockCompleter) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)
	m.callCount++

	if m.ReplyFunc != nil {
		return m.ReplyFunc(prompt)
	}

	if m.Err != nil {
		return "", m.Err
	}

	if m.responseIndex < len(m.Responses) {
		resp := m.Responses[m.responseIndex]
		m.responseIndex++
		return resp, nil
	}

	// Default response if no responses configured
	return "", nil
}

// Prompts returns a copy of all prompts passed to Complete().
func (m *MockCompleter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// LastPrompt returns the most recent prompt, or "" if none were captured.
func (m *MockCompleter) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// CallCount returns the number of times Complete() was called.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the mock's state (captured prompts, call count, response index).
// Useful for reusing the same mock instance across multiple test cases.
func (m *MockCompleter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.responseIndex = 0
	m.prompts = nil
}
