package pipeline

import "github.com/felixgeelhaar/swarm/internal/domain"

// FeatureResult is the immutable outcome of one feature's pipeline.
// Exactly one exists per processed feature; it is created when the
// pipeline concludes and never mutated afterward.
type FeatureResult struct {
	FeatureID   domain.FeatureID `json:"feature_id"`
	Success     bool             `json:"success"`
	Iterations  int              `json:"iterations"`
	ReviewScore int              `json:"review_score"`
	Notes       []string         `json:"notes,omitempty"`
}

// GateResult is the ephemeral outcome of one checkpoint. Only its
// effects persist: a gate_check event, and for failures a note and a
// knowledge entry.
type GateResult struct {
	Gate    string `json:"gate"`
	Passed  bool   `json:"passed"`
	Reason  string `json:"reason,omitempty"`
	Details string `json:"details,omitempty"`
}

// Gate names in pipeline order
const (
	GateAcceptance = "acceptance-test-red"
	GateTest       = "test"
	GateCoverage   = "coverage"
	GateReview     = "review"
)
