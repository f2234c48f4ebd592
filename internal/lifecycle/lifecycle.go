// Package lifecycle sequences a swarm run through its stages: init,
// clarify, plan, feature_loop, integrate, output. Stages run strictly in
// order; an error escaping any stage is recorded as a single reflection
// event and returned to the caller unchanged.
package lifecycle

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/swarm/internal/agent"
	"github.com/felixgeelhaar/swarm/internal/board"
	"github.com/felixgeelhaar/swarm/internal/domain"
	"github.com/felixgeelhaar/swarm/internal/errors"
	"github.com/felixgeelhaar/swarm/internal/eventlog"
	"github.com/felixgeelhaar/swarm/internal/knowledge"
	"github.com/felixgeelhaar/swarm/internal/log"
	"github.com/felixgeelhaar/swarm/internal/pipeline"
	"github.com/felixgeelhaar/swarm/internal/schedule"
	"github.com/felixgeelhaar/swarm/internal/spec"
)

const (
	swarmDir        = ".swarm"
	specSummaryFile = "spec-summary.json"
	assumptionsFile = "assumptions.md"
)

// Options are the run parameters threaded through every stage.
type Options struct {
	ProjectPath   string
	OutputPath    string
	MinScore      int
	MaxIterations int
	MaxQuestions  int
	SkipClarify   bool
}

// Orchestrator drives one swarm run for one project path.
type Orchestrator struct {
	spec    *spec.ProjectSpec
	invoker *agent.Invoker
	events  *eventlog.Log
	kb      *knowledge.Base
	logger  *log.Logger
	opts    Options
}

// runContext carries the mutable state of a run between stages. It is
// plain stage-function plumbing; nothing here is package-level state.
type runContext struct {
	board     board.Board
	results   map[domain.FeatureID]pipeline.FeatureResult
	processed []domain.FeatureID
	plan      agent.PlanSummary
}

// NewOrchestrator creates an orchestrator. A relative OutputPath is
// resolved against the project path.
func NewOrchestrator(s *spec.ProjectSpec, invoker *agent.Invoker, events *eventlog.Log, kb *knowledge.Base, logger *log.Logger, opts Options) *Orchestrator {
	if logger == nil {
		logger = log.Global()
	}
	if !filepath.IsAbs(opts.OutputPath) {
		opts.OutputPath = filepath.Join(opts.ProjectPath, opts.OutputPath)
	}
	return &Orchestrator{
		spec:    s,
		invoker: invoker,
		events:  events,
		kb:      kb,
		logger:  logger.With("project", s.ProjectName),
		opts:    opts,
	}
}

// Run executes the full lifecycle and returns the final summary. Gate
// failures inside features do not fail the run; only structural errors
// do, and each one triggers exactly one reflection event before being
// returned as-is.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	rc := &runContext{results: make(map[domain.FeatureID]pipeline.FeatureResult)}

	stages := []struct {
		name string
		fn   func(context.Context, *runContext) error
	}{
		{"init", o.stageInit},
		{"clarify", o.stageClarify},
		{"plan", o.stagePlan},
		{"feature_loop", o.stageFeatureLoop},
		{"integrate", o.stageIntegrate},
	}

	for _, stage := range stages {
		o.logger.Info("stage started", "stage", stage.name)
		if err := stage.fn(ctx, rc); err != nil {
			o.reflect(stage.name, err)
			return nil, err
		}
		o.logger.Info("stage completed", "stage", stage.name)
	}

	summary, err := o.stageOutput(ctx, rc)
	if err != nil {
		o.reflect("output", err)
		return nil, err
	}
	return summary, nil
}

// stageInit persists the spec snapshot and creates the output workspace.
// Both operations are idempotent.
func (o *Orchestrator) stageInit(_ context.Context, _ *runContext) error {
	summary, err := spec.GenerateSummary(o.spec)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStageSummary, "generate spec summary", err)
	}

	path := filepath.Join(o.opts.ProjectPath, swarmDir, specSummaryFile)
	if err := spec.SaveSummary(summary, path); err != nil {
		return errors.Wrap(errors.ErrCodeStageSummary, "persist spec summary", err)
	}

	if err := os.MkdirAll(o.opts.OutputPath, 0750); err != nil {
		return errors.Wrap(errors.ErrCodeStageWorkspace, "create output workspace", err)
	}

	return nil
}

// stageClarify gathers bounded clarifying questions and records the
// working assumptions. The assumptions artifact is written even when
// clarification is skipped or yields no questions.
func (o *Orchestrator) stageClarify(ctx context.Context, _ *runContext) error {
	clar := agent.DefaultClarification()
	if !o.opts.SkipClarify {
		clar = o.invoker.Clarify(ctx, clarifyPrompt(o.spec))
	}
	if o.opts.MaxQuestions >= 0 && len(clar.Questions) > o.opts.MaxQuestions {
		clar.Questions = clar.Questions[:o.opts.MaxQuestions]
	}

	path := filepath.Join(o.opts.ProjectPath, swarmDir, assumptionsFile)
	if err := writeAssumptions(path, clar); err != nil {
		return errors.Wrap(errors.ErrCodeStageClarify, "write assumptions artifact", err)
	}

	o.handoff(agent.RoleClarifier, fmt.Sprintf("%d question(s), %d assumption(s) recorded",
		len(clar.Questions), len(clar.Assumptions)))
	return nil
}

// stagePlan runs the product-manager call, fans its summary out to the
// architect and best-practices reviewers concurrently, and creates the
// task board. The plan gate is always recorded as passed; no quality
// check exists for planning output.
func (o *Orchestrator) stagePlan(ctx context.Context, rc *runContext) error {
	rc.plan = o.invoker.Plan(ctx, planPrompt(o.spec))

	var wg sync.WaitGroup
	var architect, practices agent.PlanSummary
	wg.Add(2)
	go func() {
		defer wg.Done()
		architect = o.invoker.ReviewPlan(ctx, agent.RoleArchitect, planReviewPrompt(rc.plan))
	}()
	go func() {
		defer wg.Done()
		practices = o.invoker.ReviewPlan(ctx, agent.RoleBestPractices, planReviewPrompt(rc.plan))
	}()
	wg.Wait()

	o.logger.Debug("plan reviewed",
		"architect", architect.Summary, "best_practices", practices.Summary)

	b, err := board.CreateBoard(o.opts.ProjectPath, o.spec)
	if err != nil {
		return err
	}
	rc.board = b

	o.recordGate("plan", true, "no planning quality check performed")
	return nil
}

// stageFeatureLoop runs every feature through the gate pipeline, one at
// a time, in dependency order. A failed feature does not stop the loop,
// and features whose dependencies failed still run; the skipped blocking
// is surfaced as a warning and a handoff event.
func (o *Orchestrator) stageFeatureLoop(ctx context.Context, rc *runContext) error {
	processor := pipeline.NewProcessor(o.invoker, o.events, o.kb, o.logger, pipeline.Options{
		ProjectPath:   o.opts.ProjectPath,
		MinScore:      o.opts.MinScore,
		MaxIterations: o.opts.MaxIterations,
		MinCoverage:   o.spec.Quality.MinCoverage,
	})

	for _, f := range schedule.Order(o.spec.Features) {
		for _, dep := range f.Dependencies {
			if prior, ok := rc.results[domain.FeatureID(dep)]; ok && !prior.Success {
				o.logger.Warn("dependency failed, processing feature anyway",
					"feature", f.ID.String(), "dependency", dep)
				o.handoff(agent.RoleTDD, fmt.Sprintf(
					"feature %s proceeds although dependency %s failed", f.ID, dep))
			}
		}

		result, next, err := processor.Process(ctx, f, rc.board)
		if err != nil {
			return err
		}
		rc.board = next
		rc.results[f.ID] = result
		rc.processed = append(rc.processed, f.ID)
	}

	return nil
}

// stageIntegrate hands the full result map to the integrator agent. The
// integration board entry must already exist from the plan stage.
func (o *Orchestrator) stageIntegrate(ctx context.Context, rc *runContext) error {
	taskID := domain.IntegrationTaskID()
	if _, ok := rc.board.Get(taskID); !ok {
		return errors.NewBoardTaskMissingError(taskID.String())
	}

	integration := o.invoker.Integrate(ctx, integratePrompt(rc))

	var next board.Board
	var err error
	if integration.Success {
		next, err = board.MarkDone(rc.board, taskID, integration.Summary)
	} else {
		next, err = board.MarkFailed(rc.board, taskID, integration.Summary)
	}
	if err != nil {
		return err
	}
	if err := board.SaveBoard(o.opts.ProjectPath, next); err != nil {
		return errors.Wrap(errors.ErrCodeStageIntegrate, "persist integration outcome", err)
	}
	rc.board = next

	o.recordGate("integration", integration.Success, integration.Summary)
	return nil
}

// stageOutput computes the global score, writes the summary artifact,
// and records the final gate against the run's score threshold.
func (o *Orchestrator) stageOutput(_ context.Context, rc *runContext) (*Summary, error) {
	results := make([]pipeline.FeatureResult, 0, len(rc.processed))
	for _, id := range rc.processed {
		results = append(results, rc.results[id])
	}
	score := GlobalScore(results)

	summary := &Summary{
		ProjectName: o.spec.ProjectName,
		CompletedAt: time.Now().UTC(),
		Features:    results,
		TaskBoard:   rc.board.Stats(),
		GlobalScore: score,
	}

	path, err := WriteSummary(o.opts.OutputPath, summary)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStageArtifact, "write run summary", err)
	}

	o.recordGate("output", score >= o.opts.MinScore,
		fmt.Sprintf("global score %d against minimum %d", score, o.opts.MinScore))
	o.logger.Info("run completed", "global_score", score, "summary", path)

	return summary, nil
}

// reflect records exactly one reflection event for a fatal stage error.
// The error itself is returned to the caller unchanged by Run.
func (o *Orchestrator) reflect(stage string, stageErr error) {
	o.logger.WithError(stageErr).Error("stage failed", "stage", stage)
	if o.events == nil {
		return
	}
	event := eventlog.NewEvent(eventlog.ActionReflection).
		WithIO("stage="+stage, stageErr.Error())
	if err := o.events.Append(event); err != nil {
		o.logger.WithError(err).Warn("reflection event append failed")
	}
}

// recordGate appends a lifecycle-level gate_check event, best-effort
func (o *Orchestrator) recordGate(gate string, passed bool, reason string) {
	if o.events == nil {
		return
	}
	details, _ := json.Marshal(pipeline.GateResult{Gate: gate, Passed: passed, Reason: reason})
	event := eventlog.NewEvent(eventlog.ActionGateCheck).
		WithIO("gate="+gate, string(details))
	if err := o.events.Append(event); err != nil {
		o.logger.WithError(err).Warn("gate event append failed", "gate", gate)
	}
}

// handoff appends a handoff event, best-effort
func (o *Orchestrator) handoff(role agent.Role, note string) {
	if o.events == nil {
		return
	}
	event := eventlog.NewEvent(eventlog.ActionHandoff).
		WithRole(role.String()).
		WithIO("", note)
	if err := o.events.Append(event); err != nil {
		o.logger.WithError(err).Warn("handoff event append failed")
	}
}

func writeAssumptions(path string, clar agent.Clarification) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("# Working Assumptions\n\n")
	if len(clar.Questions) > 0 {
		sb.WriteString("## Open Questions\n\n")
		for _, q := range clar.Questions {
			fmt.Fprintf(&sb, "- %s\n", q)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("## Assumptions\n\n")
	if len(clar.Assumptions) == 0 {
		sb.WriteString("- none recorded\n")
	}
	for _, a := range clar.Assumptions {
		fmt.Fprintf(&sb, "- %s\n", a)
	}

	return os.WriteFile(path, []byte(sb.String()), 0600)
}

func clarifyPrompt(s *spec.ProjectSpec) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Project %s with %d feature(s):\n", s.ProjectName, len(s.Features))
	for _, f := range s.Features {
		fmt.Fprintf(&sb, "- %s: %s\n", f.ID, f.Name)
	}
	sb.WriteString("Which ambiguities would change how this is built?\n")
	return sb.String()
}

func planPrompt(s *spec.ProjectSpec) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Project %s", s.ProjectName)
	if len(s.TechStack) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(s.TechStack, ", "))
	}
	sb.WriteString("\nFeatures to deliver:\n")
	for _, f := range s.Features {
		fmt.Fprintf(&sb, "- %s: %s", f.ID, f.Name)
		if len(f.Dependencies) > 0 {
			fmt.Fprintf(&sb, " (depends on %s)", strings.Join(f.Dependencies, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func planReviewPrompt(plan agent.PlanSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Delivery plan: %s\n", plan.Summary)
	for _, n := range plan.Notes {
		fmt.Fprintf(&sb, "- %s\n", n)
	}
	return sb.String()
}

func integratePrompt(rc *runContext) string {
	var sb strings.Builder
	sb.WriteString("Feature outcomes:\n")
	for _, id := range rc.processed {
		r := rc.results[id]
		fmt.Fprintf(&sb, "- %s: success=%t iterations=%d score=%d\n",
			r.FeatureID, r.Success, r.Iterations, r.ReviewScore)
	}
	sb.WriteString("Integrate the successfully delivered features.\n")
	return sb.String()
}
