// Package provider defines the agent-calling capability injected into the
// swarm. Concrete HTTP clients, model routing, and any failover layer live
// behind this interface; the lifecycle only ever sees Chat.
package provider

import (
	"context"
	"time"
)

// Client is the single capability the swarm needs from an AI provider.
// The response content is raw model text; callers must never assume it is
// valid JSON.
type Client interface {
	// Chat sends a conversation and returns the model's reply.
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (*ChatResponse, error)
}

// Message represents a single message in a conversation
type Message struct {
	// Role is who sent the message: "user", "assistant", or "system"
	Role string `json:"role"`

	// Content is the message text
	Content string `json:"content"`
}

// ChatOptions contains per-call generation parameters
type ChatOptions struct {
	// System sets the system-level instructions for the call
	System string `json:"system,omitempty"`

	// MaxTokens limits the maximum response length
	// Set to 0 to use the provider default
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 = deterministic, 1.0+ = creative)
	Temperature float64 `json:"temperature,omitempty"`
}

// ChatResponse contains the model's reply
type ChatResponse struct {
	// Content is the raw generated text
	Content string `json:"content"`

	// Usage reports token consumption for the call
	Usage Usage `json:"usage"`

	// Model is the model that generated the response
	Model string `json:"model,omitempty"`

	// Latency is how long the generation took
	Latency time.Duration `json:"latency,omitempty"`
}

// Usage reports token consumption
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Role constants for conversation messages
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
