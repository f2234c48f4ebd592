package eventlog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Action classifies what a swarm event records.
type Action string

const (
	// ActionToolCall records a tool invocation by an agent
	ActionToolCall Action = "tool_call"

	// ActionLLMRequest records a model call made on behalf of an agent role
	ActionLLMRequest Action = "llm_request"

	// ActionGateCheck records a pass/fail checkpoint outcome
	ActionGateCheck Action = "gate_check"

	// ActionHandoff records control passing between stages or roles
	ActionHandoff Action = "handoff"

	// ActionReflection records a post-mortem note, e.g. on a fatal error
	ActionReflection Action = "reflection"
)

// Event is a single append-only audit record. Events are never mutated or
// deleted; their total order is file-append order.
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	AgentRole  string    `json:"agent_role,omitempty"`
	AgentTurn  int       `json:"agent_turn,omitempty"`
	Action     Action    `json:"action"`
	Input      string    `json:"input,omitempty"`
	Output     string    `json:"output,omitempty"`
	DurationMs int64     `json:"duration_ms,omitempty"`
}

// NewEvent creates an event with id and timestamp populated
func NewEvent(action Action) Event {
	return Event{
		ID:        newEventID(),
		Timestamp: time.Now().UTC(),
		Action:    action,
	}
}

// WithRole sets the agent role
func (e Event) WithRole(role string) Event {
	e.AgentRole = role
	return e
}

// WithTurn sets the agent turn counter
func (e Event) WithTurn(turn int) Event {
	e.AgentTurn = turn
	return e
}

// WithIO sets the input and output payloads
func (e Event) WithIO(input, output string) Event {
	e.Input = input
	e.Output = output
	return e
}

// WithDuration sets the duration in milliseconds
func (e Event) WithDuration(d time.Duration) Event {
	e.DurationMs = d.Milliseconds()
	return e
}

// newEventID builds an id from the current timestamp plus a random
// suffix. Ordering beyond file-append order is not guaranteed.
func newEventID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
