// Package pipeline runs one feature through the TDD gate state machine:
// acceptance-test-red, then a bounded implement loop of test, coverage,
// and review gates with a three-way concurrent review fan-out. Gate
// failures are data, not errors; only structural problems (a missing
// board entry, a failed board write) abort a feature.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/felixgeelhaar/swarm/internal/agent"
	"github.com/felixgeelhaar/swarm/internal/board"
	"github.com/felixgeelhaar/swarm/internal/domain"
	"github.com/felixgeelhaar/swarm/internal/eventlog"
	"github.com/felixgeelhaar/swarm/internal/knowledge"
	"github.com/felixgeelhaar/swarm/internal/log"
	"github.com/felixgeelhaar/swarm/internal/spec"
)

// Options are the run-wide thresholds applied to every feature.
type Options struct {
	ProjectPath   string
	MinScore      int
	MaxIterations int
	MinCoverage   float64
}

// Processor drives features through the gate pipeline.
type Processor struct {
	invoker   *agent.Invoker
	events    *eventlog.Log
	knowledge *knowledge.Base
	logger    *log.Logger
	opts      Options
}

// NewProcessor creates a processor. events and kb may be nil; audit
// sinks are optional and their write failures never fail a feature.
func NewProcessor(invoker *agent.Invoker, events *eventlog.Log, kb *knowledge.Base, logger *log.Logger, opts Options) *Processor {
	if logger == nil {
		logger = log.Global()
	}
	if opts.MaxIterations < 1 {
		opts.MaxIterations = 1
	}
	return &Processor{
		invoker:   invoker,
		events:    events,
		knowledge: kb,
		logger:    logger,
		opts:      opts,
	}
}

// Process runs one feature to a conclusion and returns its result along
// with the updated board. The board is flushed to disk at the outer task
// boundaries only: the acceptance task's pass/fail and the implement
// task's pass/fail. Inner sub-gates emit events but do not touch disk.
func (p *Processor) Process(ctx context.Context, f spec.Feature, b board.Board) (FeatureResult, board.Board, error) {
	logger := p.logger.With("feature", f.ID.String())
	logger.Info("feature pipeline started")

	plan := p.invoker.DraftAcceptanceTests(ctx, acceptancePrompt(f))

	acceptanceTask := domain.TaskIDFor(f.ID, domain.StageAcceptance)
	if plan.TestsWritten <= 0 || !plan.TestsFailing {
		reason := fmt.Sprintf("acceptance tests not in a failing state (written=%d failing=%t)",
			plan.TestsWritten, plan.TestsFailing)
		p.recordGate(f.ID, GateResult{Gate: GateAcceptance, Reason: reason, Details: plan.Summary})
		p.recordKnowledge(f.ID, knowledge.PatternFailure, GateAcceptance, reason)

		next, err := board.MarkFailed(b, acceptanceTask, reason)
		if err != nil {
			return FeatureResult{}, b, err
		}
		if err := board.SaveBoard(p.opts.ProjectPath, next); err != nil {
			return FeatureResult{}, b, err
		}

		logger.Warn("acceptance gate failed, skipping implement loop", "reason", reason)
		return FeatureResult{
			FeatureID:  f.ID,
			Iterations: 1,
			Notes:      []string{reason},
		}, next, nil
	}

	p.recordGate(f.ID, GateResult{Gate: GateAcceptance, Passed: true, Details: plan.Summary})
	next, err := board.MarkDone(b, acceptanceTask, plan.Summary)
	if err != nil {
		return FeatureResult{}, b, err
	}
	if err := board.SaveBoard(p.opts.ProjectPath, next); err != nil {
		return FeatureResult{}, b, err
	}
	b = next

	return p.implementLoop(ctx, f, b, plan, logger)
}

// implementLoop is the bounded GREEN/REFACTOR retry loop. Each iteration
// runs the test, coverage, and review gates in order; a sub-gate failure
// records a note and moves to the next iteration.
func (p *Processor) implementLoop(ctx context.Context, f spec.Feature, b board.Board, plan agent.TestPlan, logger *log.Logger) (FeatureResult, board.Board, error) {
	implementTask := domain.TaskIDFor(f.ID, domain.StageImplement)

	var notes []string
	lastScore := 0

	for iteration := 1; iteration <= p.opts.MaxIterations; iteration++ {
		impl := p.invoker.Implement(ctx, implementPrompt(f, plan, notes))

		if !impl.TestsPassing {
			reason := fmt.Sprintf("iteration %d: tests still failing", iteration)
			p.recordGate(f.ID, GateResult{Gate: GateTest, Reason: reason, Details: impl.Summary})
			p.recordKnowledge(f.ID, knowledge.PatternFailure, GateTest, reason)
			notes = append(notes, reason)
			continue
		}
		p.recordGate(f.ID, GateResult{Gate: GateTest, Passed: true})

		if impl.Coverage < p.opts.MinCoverage {
			reason := fmt.Sprintf("iteration %d: coverage %.0f%% below required %.0f%%",
				iteration, impl.Coverage*100, p.opts.MinCoverage*100)
			p.recordGate(f.ID, GateResult{Gate: GateCoverage, Reason: reason, Details: impl.Summary})
			p.recordKnowledge(f.ID, knowledge.PatternFailure, GateCoverage, reason)
			notes = append(notes, reason)
			continue
		}
		p.recordGate(f.ID, GateResult{Gate: GateCoverage, Passed: true})

		reviews := p.fanOutReviews(ctx, f, impl)
		synthesis := p.invoker.Synthesize(ctx, synthesisPrompt(f, impl, reviews))
		lastScore = synthesis.Score

		if synthesis.Score >= p.opts.MinScore {
			p.recordGate(f.ID, GateResult{Gate: GateReview, Passed: true,
				Details: fmt.Sprintf("score %d: %s", synthesis.Score, synthesis.Summary)})
			p.recordKnowledge(f.ID, knowledge.PatternSuccess, GateReview,
				fmt.Sprintf("approved at score %d after %d iteration(s)", synthesis.Score, iteration))

			note := fmt.Sprintf("score %d: %s", synthesis.Score, synthesis.Summary)
			next, err := board.MarkDone(b, implementTask, note)
			if err != nil {
				return FeatureResult{}, b, err
			}
			if err := board.SaveBoard(p.opts.ProjectPath, next); err != nil {
				return FeatureResult{}, b, err
			}

			logger.Info("feature delivered", "iterations", iteration, "score", synthesis.Score)
			return FeatureResult{
				FeatureID:   f.ID,
				Success:     true,
				Iterations:  iteration,
				ReviewScore: synthesis.Score,
				Notes:       notes,
			}, next, nil
		}

		reason := fmt.Sprintf("iteration %d: review score %d below %d", iteration, synthesis.Score, p.opts.MinScore)
		if len(synthesis.Blockers) > 0 {
			reason += "; blockers: " + strings.Join(synthesis.Blockers, "; ")
		}
		p.recordGate(f.ID, GateResult{Gate: GateReview, Reason: reason, Details: synthesis.Summary})
		p.recordKnowledge(f.ID, knowledge.PatternGotcha, GateReview, reason)
		notes = append(notes, reason)
	}

	// Exhaustion. Subsequent features keep running; this is an
	// escalation, not a fatal error.
	reason := fmt.Sprintf("exhausted %d iteration(s), last review score %d", p.opts.MaxIterations, lastScore)
	next, err := board.MarkFailed(b, implementTask, reason)
	if err != nil {
		return FeatureResult{}, b, err
	}
	if err := board.SaveBoard(p.opts.ProjectPath, next); err != nil {
		return FeatureResult{}, b, err
	}

	p.escalate(f.ID, reason)
	logger.Warn("feature escalated", "reason", reason)

	return FeatureResult{
		FeatureID:   f.ID,
		Iterations:  p.opts.MaxIterations,
		ReviewScore: lastScore,
		Notes:       notes,
	}, next, nil
}

// fanOutReviews invokes the three independent reviewers concurrently and
// waits for all of them. Individual reviewer failure already degrades to
// a default inside the invoker, so the join is unconditional.
func (p *Processor) fanOutReviews(ctx context.Context, f spec.Feature, impl agent.Implementation) []agent.Review {
	roles := agent.ReviewerRoles()
	reviews := make([]agent.Review, len(roles))

	var wg sync.WaitGroup
	for i, role := range roles {
		wg.Add(1)
		go func(i int, role agent.Role) {
			defer wg.Done()
			reviews[i] = p.invoker.Review(ctx, role, reviewPrompt(f, impl))
		}(i, role)
	}
	wg.Wait()

	return reviews
}

// recordGate appends one gate_check event. Audit write failures are
// logged and swallowed.
func (p *Processor) recordGate(featureID domain.FeatureID, result GateResult) {
	if p.events == nil {
		return
	}
	details, _ := json.Marshal(result)
	event := eventlog.NewEvent(eventlog.ActionGateCheck).
		WithIO(fmt.Sprintf("feature=%s gate=%s", featureID, result.Gate), string(details))
	if err := p.events.Append(event); err != nil {
		p.logger.WithError(err).Warn("gate event append failed", "gate", result.Gate)
	}
}

// recordKnowledge appends one learned pattern, best-effort
func (p *Processor) recordKnowledge(featureID domain.FeatureID, pattern knowledge.Pattern, gate, description string) {
	if p.knowledge == nil {
		return
	}
	entry := knowledge.Entry{
		FeatureID:   featureID.String(),
		Pattern:     pattern,
		Description: description,
		AgentRole:   agent.RoleTDD.String(),
		Gate:        gate,
	}
	if err := p.knowledge.Append(entry); err != nil {
		p.logger.WithError(err).Warn("knowledge append failed", "gate", gate)
	}
}

// escalate emits the non-fatal exhaustion notification as a handoff event
func (p *Processor) escalate(featureID domain.FeatureID, reason string) {
	if p.events == nil {
		return
	}
	event := eventlog.NewEvent(eventlog.ActionHandoff).
		WithRole(agent.RoleTDD.String()).
		WithIO(fmt.Sprintf("feature=%s", featureID), "escalated: "+reason)
	if err := p.events.Append(event); err != nil {
		p.logger.WithError(err).Warn("escalation event append failed")
	}
}

func acceptancePrompt(f spec.Feature) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Feature %s: %s\n", f.ID, f.Name)
	if f.Description != "" {
		fmt.Fprintf(&sb, "%s\n", f.Description)
	}
	sb.WriteString("Write failing acceptance tests for these criteria:\n")
	for _, c := range f.AcceptanceCriteria {
		fmt.Fprintf(&sb, "- %s\n", c)
	}
	return sb.String()
}

func implementPrompt(f spec.Feature, plan agent.TestPlan, notes []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Feature %s: %s\n", f.ID, f.Name)
	fmt.Fprintf(&sb, "Make the failing tests pass, then refactor. Test summary: %s\n", plan.Summary)
	if len(notes) > 0 {
		sb.WriteString("Previous iterations failed:\n")
		for _, n := range notes {
			fmt.Fprintf(&sb, "- %s\n", n)
		}
	}
	return sb.String()
}

func reviewPrompt(f spec.Feature, impl agent.Implementation) string {
	return fmt.Sprintf("Feature %s: %s\nImplementation summary: %s\nCoverage: %.0f%%",
		f.ID, f.Name, impl.Summary, impl.Coverage*100)
}

func synthesisPrompt(f spec.Feature, impl agent.Implementation, reviews []agent.Review) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Feature %s: %s\nImplementation summary: %s\n", f.ID, f.Name, impl.Summary)
	sb.WriteString("Independent reviews:\n")
	for i, r := range reviews {
		fmt.Fprintf(&sb, "- reviewer %d scored %d: %s\n", i+1, r.Score, r.Summary)
		for _, issue := range r.Issues {
			fmt.Fprintf(&sb, "  issue: %s\n", issue)
		}
	}
	return sb.String()
}
