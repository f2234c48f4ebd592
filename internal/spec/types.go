package spec

import "github.com/felixgeelhaar/swarm/internal/domain"

// ProjectSpec represents the parsed project specification handed to the
// swarm by the spec collaborator. It is created once per run and treated
// as immutable from then on.
type ProjectSpec struct {
	ProjectName string        `json:"project_name" yaml:"project_name"`
	TechStack   []string      `json:"tech_stack,omitempty" yaml:"tech_stack,omitempty"`
	Features    []Feature     `json:"features" yaml:"features"`
	Quality     QualityConfig `json:"quality" yaml:"quality"`
}

// Feature represents a specification-derived unit of work with acceptance
// criteria and declared dependencies on other features.
type Feature struct {
	ID                 domain.FeatureID `json:"id" yaml:"id"`
	Name               string           `json:"name" yaml:"name"`
	Description        string           `json:"description,omitempty" yaml:"description,omitempty"`
	Priority           domain.Priority  `json:"priority,omitempty" yaml:"priority,omitempty"`
	Dependencies       []string         `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	AcceptanceCriteria []string         `json:"acceptance_criteria" yaml:"acceptance_criteria"`
}

// QualityConfig carries run-wide quality thresholds from the spec.
type QualityConfig struct {
	// MinCoverage is the minimum test coverage required by the coverage
	// gate, expressed as a fraction (0.8 = 80%).
	MinCoverage float64 `json:"min_coverage" yaml:"min_coverage"`
}
