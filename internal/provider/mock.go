package provider

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is a scripted provider for tests. Responses are consumed in
// FIFO order; once the script is exhausted every call returns the default
// response, or the configured error.
type MockClient struct {
	mu sync.Mutex

	// script of responses, consumed front to back
	responses []string

	// Err, when set, is returned by every call after the script runs out
	Err error

	// DefaultContent is returned when the script is exhausted and Err is nil
	DefaultContent string

	// calls records every request made against the mock
	calls []RecordedCall
}

// RecordedCall captures one Chat invocation for assertions
type RecordedCall struct {
	Messages []Message
	Options  ChatOptions
}

// NewMockClient creates a mock that replays the given responses in order
func NewMockClient(responses ...string) *MockClient {
	return &MockClient{responses: responses}
}

// Chat implements Client
func (m *MockClient) Chat(_ context.Context, messages []Message, opts ChatOptions) (*ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, RecordedCall{Messages: messages, Options: opts})

	if len(m.responses) > 0 {
		content := m.responses[0]
		m.responses = m.responses[1:]
		return &ChatResponse{
			Content: content,
			Usage:   Usage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30},
			Model:   "mock",
		}, nil
	}

	if m.Err != nil {
		return nil, m.Err
	}

	return &ChatResponse{
		Content: m.DefaultContent,
		Usage:   Usage{TotalTokens: 1},
		Model:   "mock",
	}, nil
}

// Calls returns a copy of all recorded invocations
func (m *MockClient) Calls() []RecordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]RecordedCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns the number of Chat invocations so far
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// FailingClient always returns an error. Useful for exercising fallback
// paths.
type FailingClient struct {
	Reason string
}

// Chat implements Client
func (f *FailingClient) Chat(context.Context, []Message, ChatOptions) (*ChatResponse, error) {
	if f.Reason == "" {
		return nil, fmt.Errorf("provider unavailable")
	}
	return nil, fmt.Errorf("provider unavailable: %s", f.Reason)
}
