// Package agent turns raw provider text into typed, always-available
// results. Every role call goes through the same path: chat, record one
// llm_request event, best-effort decode, and fall back to a
// deterministic default when anything along the way fails. The swarm
// never stops because a model call did.
package agent

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/felixgeelhaar/swarm/internal/eventlog"
	"github.com/felixgeelhaar/swarm/internal/log"
	"github.com/felixgeelhaar/swarm/internal/provider"
)

// maxEventPayload bounds the input/output text recorded per event line
const maxEventPayload = 2000

// Invoker makes agent calls on behalf of the lifecycle stages.
type Invoker struct {
	client provider.Client
	events *eventlog.Log
	logger *log.Logger

	maxTokens   int
	temperature float64

	mu    sync.Mutex
	turns map[Role]int
}

// Option configures an Invoker
type Option func(*Invoker)

// WithEventLog records one llm_request event per call
func WithEventLog(events *eventlog.Log) Option {
	return func(inv *Invoker) {
		inv.events = events
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *log.Logger) Option {
	return func(inv *Invoker) {
		inv.logger = logger
	}
}

// WithGeneration sets the per-call generation parameters
func WithGeneration(maxTokens int, temperature float64) Option {
	return func(inv *Invoker) {
		inv.maxTokens = maxTokens
		inv.temperature = temperature
	}
}

// NewInvoker creates an invoker around a provider client
func NewInvoker(client provider.Client, opts ...Option) *Invoker {
	inv := &Invoker{
		client:      client,
		logger:      log.Global(),
		maxTokens:   4096,
		temperature: 0.7,
		turns:       make(map[Role]int),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// nextTurn increments and returns the per-role turn counter. Reviews fan
// out concurrently, so the counter is mutex-guarded.
func (inv *Invoker) nextTurn(role Role) int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.turns[role]++
	return inv.turns[role]
}

// record appends one llm_request event. Event write failures are logged
// and swallowed: audit loss must not fail the run.
func (inv *Invoker) record(role Role, turn int, input, output string, elapsed time.Duration) {
	if inv.events == nil {
		return
	}
	event := eventlog.NewEvent(eventlog.ActionLLMRequest).
		WithRole(role.String()).
		WithTurn(turn).
		WithIO(truncate(input), truncate(output)).
		WithDuration(elapsed)
	if err := inv.events.Append(event); err != nil {
		inv.logger.WithError(err).Warn("event append failed", "role", role.String())
	}
}

func truncate(s string) string {
	if len(s) <= maxEventPayload {
		return s
	}
	// back up to a rune boundary so the cut never splits a multi-byte rune
	cut := maxEventPayload
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "...[truncated]"
}

// Call chats with the provider as the given role and decodes the reply
// into T. The returned Result carries the provider or decode error; the
// typed helpers below always finish with UnwrapOr, so failures surface
// as defaults, never as errors.
func Call[T any](ctx context.Context, inv *Invoker, role Role, prompt string) Result[T] {
	turn := inv.nextTurn(role)
	start := time.Now()

	resp, err := inv.client.Chat(ctx, []provider.Message{
		{Role: provider.RoleUser, Content: prompt},
	}, provider.ChatOptions{
		System:      SystemPrompt(role),
		MaxTokens:   inv.maxTokens,
		Temperature: inv.temperature,
	})
	elapsed := time.Since(start)

	if err != nil {
		inv.record(role, turn, prompt, "", elapsed)
		inv.logger.WithError(err).Warn("provider call failed, using role default",
			"role", role.String(), "turn", turn)
		return Fail[T](err)
	}

	inv.record(role, turn, prompt, resp.Content, elapsed)

	var value T
	if err := Decode(resp.Content, &value); err != nil {
		inv.logger.WithError(err).Warn("agent response unparseable, using role default",
			"role", role.String(), "turn", turn)
		return Fail[T](err)
	}
	return Ok(value)
}

// Plan asks the product manager for a delivery plan
func (inv *Invoker) Plan(ctx context.Context, prompt string) PlanSummary {
	return Call[PlanSummary](ctx, inv, RoleProductManager, prompt).UnwrapOr(DefaultPlanSummary())
}

// ReviewPlan asks a planning reviewer (architect or best-practices) to
// assess the delivery plan
func (inv *Invoker) ReviewPlan(ctx context.Context, role Role, prompt string) PlanSummary {
	return Call[PlanSummary](ctx, inv, role, prompt).UnwrapOr(DefaultPlanSummary())
}

// DraftAcceptanceTests asks the TDD agent for RED-phase failing tests
func (inv *Invoker) DraftAcceptanceTests(ctx context.Context, prompt string) TestPlan {
	return Call[TestPlan](ctx, inv, RoleTDD, prompt).UnwrapOr(DefaultTestPlan())
}

// Implement asks the TDD agent for a GREEN-phase implementation pass
func (inv *Invoker) Implement(ctx context.Context, prompt string) Implementation {
	return Call[Implementation](ctx, inv, RoleTDD, prompt).UnwrapOr(DefaultImplementation())
}

// Review asks one independent reviewer to score the implementation
func (inv *Invoker) Review(ctx context.Context, role Role, prompt string) Review {
	return Call[Review](ctx, inv, role, prompt).UnwrapOr(DefaultReview())
}

// Synthesize asks the external reviewer to combine the reviews
func (inv *Invoker) Synthesize(ctx context.Context, prompt string) Synthesis {
	return Call[Synthesis](ctx, inv, RoleExternalReviewer, prompt).UnwrapOr(DefaultSynthesis())
}

// Integrate asks the integrator to assemble the delivered features
func (inv *Invoker) Integrate(ctx context.Context, prompt string) Integration {
	return Call[Integration](ctx, inv, RoleIntegrator, prompt).UnwrapOr(DefaultIntegration())
}

// Clarify asks the clarifier for questions and assumptions
func (inv *Invoker) Clarify(ctx context.Context, prompt string) Clarification {
	return Call[Clarification](ctx, inv, RoleClarifier, prompt).UnwrapOr(DefaultClarification())
}
