package lifecycle

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/swarm/internal/agent"
	"github.com/felixgeelhaar/swarm/internal/board"
	"github.com/felixgeelhaar/swarm/internal/domain"
	"github.com/felixgeelhaar/swarm/internal/eventlog"
	"github.com/felixgeelhaar/swarm/internal/knowledge"
	"github.com/felixgeelhaar/swarm/internal/provider"
	"github.com/felixgeelhaar/swarm/internal/spec"
)

const (
	planOK    = `{"summary": "deliver auth first, then profile", "notes": ["two features"]}`
	redOK     = `{"tests_written": 3, "tests_failing": true, "summary": "red phase"}`
	redFail   = `{"tests_written": 0, "tests_failing": false, "summary": "no tests produced"}`
	greenOK   = `{"tests_passing": true, "coverage": 0.95, "summary": "green phase"}`
	reviewOK  = `{"score": 90, "summary": "fine"}`
	synthPass = `{"verdict": "APPROVE", "score": 90, "summary": "approved"}`
	integOK   = `{"success": true, "summary": "assembled both features"}`
)

func twoFeatureSpec() *spec.ProjectSpec {
	return &spec.ProjectSpec{
		ProjectName: "demo",
		Features: []spec.Feature{
			{
				ID:                 "profile",
				Name:               "User profile",
				Dependencies:       []string{"auth"},
				AcceptanceCriteria: []string{"profile shows user data"},
			},
			{
				ID:                 "auth",
				Name:               "Authentication",
				AcceptanceCriteria: []string{"valid credentials create a session"},
			},
		},
		Quality: spec.QualityConfig{MinCoverage: 0.8},
	}
}

// passingFeature is the 6 responses one feature consumes when every gate
// passes on the first iteration.
func passingFeature() []string {
	return []string{redOK, greenOK, reviewOK, reviewOK, reviewOK, synthPass}
}

func newOrchestrator(t *testing.T, dir string, s *spec.ProjectSpec, client provider.Client, opts Options) *Orchestrator {
	t.Helper()

	events, err := eventlog.Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { events.Close() })

	kb, err := knowledge.Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { kb.Close() })

	inv := agent.NewInvoker(client, agent.WithEventLog(events))
	return NewOrchestrator(s, inv, events, kb, nil, opts)
}

func runOptions(dir string) Options {
	return Options{
		ProjectPath:   dir,
		OutputPath:    "output",
		MinScore:      85,
		MaxIterations: 3,
		MaxQuestions:  5,
		SkipClarify:   true,
	}
}

func TestRunDeliversAllStages(t *testing.T) {
	dir := t.TempDir()

	responses := []string{planOK, planOK, planOK}
	responses = append(responses, passingFeature()...) // auth runs first
	responses = append(responses, passingFeature()...) // then profile
	responses = append(responses, integOK)
	client := provider.NewMockClient(responses...)

	o := newOrchestrator(t, dir, twoFeatureSpec(), client, runOptions(dir))
	summary, err := o.Run(context.Background())
	require.NoError(t, err)

	// Dependency order: auth before profile despite input order
	require.Len(t, summary.Features, 2)
	assert.Equal(t, domain.FeatureID("auth"), summary.Features[0].FeatureID)
	assert.Equal(t, domain.FeatureID("profile"), summary.Features[1].FeatureID)
	assert.True(t, summary.Features[0].Success)
	assert.True(t, summary.Features[1].Success)
	assert.Equal(t, 90, summary.GlobalScore)
	assert.Equal(t, board.Stats{Total: 5, Done: 5}, summary.TaskBoard)

	// All run artifacts exist
	for _, rel := range []string{
		filepath.Join(".swarm", "spec-summary.json"),
		filepath.Join(".swarm", "assumptions.md"),
		filepath.Join(".swarm", "taskboard.json"),
		filepath.Join("output", SummaryFile),
	} {
		_, err := os.Stat(filepath.Join(dir, rel))
		assert.NoError(t, err, rel)
	}

	loaded, err := ReadSummary(filepath.Join(dir, "output", SummaryFile))
	require.NoError(t, err)
	assert.Equal(t, summary.GlobalScore, loaded.GlobalScore)
}

func TestRunContinuesPastFailedDependency(t *testing.T) {
	dir := t.TempDir()

	responses := []string{planOK, planOK, planOK}
	responses = append(responses, redFail)             // auth fails its acceptance gate
	responses = append(responses, passingFeature()...) // profile still runs
	responses = append(responses, integOK)
	client := provider.NewMockClient(responses...)

	o := newOrchestrator(t, dir, twoFeatureSpec(), client, runOptions(dir))
	summary, err := o.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Features, 2)
	assert.False(t, summary.Features[0].Success)
	assert.True(t, summary.Features[1].Success)

	// The skipped dependency blocking is observable as a handoff event
	events, err := eventlog.Read(dir)
	require.NoError(t, err)
	var warned bool
	for _, e := range events {
		if e.Action == eventlog.ActionHandoff && strings.Contains(e.Output, "dependency auth failed") {
			warned = true
		}
	}
	assert.True(t, warned, "expected a failed-dependency handoff event")
}

func TestStagePlanErrorReflectsOnceAndReturnsExactError(t *testing.T) {
	dir := t.TempDir()

	// Make the task board path unwritable so stagePlan's board creation
	// fails; init and clarify touch other files and succeed.
	require.NoError(t, os.MkdirAll(board.BoardPath(dir), 0750))

	client := provider.NewMockClient()
	client.DefaultContent = planOK

	o := newOrchestrator(t, dir, twoFeatureSpec(), client, runOptions(dir))

	eventsBefore, err := eventlog.Read(dir)
	require.NoError(t, err)

	summary, runErr := o.Run(context.Background())
	assert.Nil(t, summary)
	require.Error(t, runErr)

	eventsAfter, err := eventlog.Read(dir)
	require.NoError(t, err)

	var reflections []eventlog.Event
	for _, e := range eventsAfter[len(eventsBefore):] {
		if e.Action == eventlog.ActionReflection {
			reflections = append(reflections, e)
		}
	}
	require.Len(t, reflections, 1)
	assert.Equal(t, "stage=plan", reflections[0].Input)
	assert.Equal(t, runErr.Error(), reflections[0].Output)
}

func TestClarifyWritesAssumptionsEvenWhenSkipped(t *testing.T) {
	dir := t.TempDir()
	o := newOrchestrator(t, dir, &spec.ProjectSpec{ProjectName: "empty"},
		provider.NewMockClient(planOK, planOK, planOK, integOK), runOptions(dir))

	summary, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.GlobalScore)
	assert.Empty(t, summary.Features)

	data, err := os.ReadFile(filepath.Join(dir, ".swarm", "assumptions.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Working Assumptions")
	assert.Contains(t, string(data), "proceeding with the specification as written")
}

func TestClarifyBoundsQuestionCount(t *testing.T) {
	dir := t.TempDir()
	clarification := `{"questions": ["q1", "q2", "q3", "q4"], "assumptions": ["a1"]}`

	responses := []string{clarification, planOK, planOK, planOK, integOK}
	opts := runOptions(dir)
	opts.SkipClarify = false
	opts.MaxQuestions = 2

	o := newOrchestrator(t, dir, &spec.ProjectSpec{ProjectName: "empty"},
		provider.NewMockClient(responses...), opts)

	_, err := o.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".swarm", "assumptions.md"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "q1")
	assert.Contains(t, content, "q2")
	assert.NotContains(t, content, "q3")
	assert.Contains(t, content, "a1")
}

func TestIntegrationFailureIsRecordedNotFatal(t *testing.T) {
	dir := t.TempDir()
	integFail := `{"success": false, "summary": "feature results conflict"}`

	responses := []string{planOK, planOK, planOK}
	responses = append(responses, passingFeature()...)
	responses = append(responses, passingFeature()...)
	responses = append(responses, integFail)

	o := newOrchestrator(t, dir, twoFeatureSpec(), provider.NewMockClient(responses...), runOptions(dir))
	summary, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, board.Stats{Total: 5, Done: 4, Failed: 1}, summary.TaskBoard)

	persisted, err := board.LoadBoard(dir)
	require.NoError(t, err)
	entry, ok := persisted.Get(domain.IntegrationTaskID())
	require.True(t, ok)
	assert.Equal(t, board.StatusFailed, entry.Status)
	assert.Contains(t, entry.ResultSummary, "conflict")
}

func TestRunWithDeadProviderStillCompletes(t *testing.T) {
	dir := t.TempDir()
	s := &spec.ProjectSpec{
		ProjectName: "demo",
		Features: []spec.Feature{
			{ID: "auth", Name: "Authentication", AcceptanceCriteria: []string{"sessions work"}},
		},
		Quality: spec.QualityConfig{MinCoverage: 0.7},
	}

	o := newOrchestrator(t, dir, s, &provider.FailingClient{}, runOptions(dir))
	summary, err := o.Run(context.Background())
	require.NoError(t, err)

	// Defaults carry the run to completion, but the default synthesis
	// score never clears the review gate.
	require.Len(t, summary.Features, 1)
	assert.False(t, summary.Features[0].Success)
	assert.Equal(t, agent.DefaultSynthesis().Score, summary.GlobalScore)
}

func TestOutputPathResolvedAgainstProjectPath(t *testing.T) {
	dir := t.TempDir()
	o := newOrchestrator(t, dir, &spec.ProjectSpec{ProjectName: "empty"},
		provider.NewMockClient(planOK, planOK, planOK, integOK), runOptions(dir))

	_, err := o.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "output"), o.opts.OutputPath)
}
