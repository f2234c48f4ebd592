package domain

import (
	"fmt"
	"regexp"
)

// Stage names for pipeline checkpoints tracked on the task board.
const (
	StageAcceptance  = "acceptance"
	StageImplement   = "implement"
	StageIntegration = "integration"
)

// TaskID identifies one task board entry. Task ids are derived
// deterministically from a feature id and a stage name, so a given
// feature checkpoint always maps to the same entry.
type TaskID string

var taskIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// maxTaskIDLen leaves room for a stage suffix on top of the feature id bound
const maxTaskIDLen = 120

// NewTaskID validates value and returns it as a TaskID
func NewTaskID(value string) (TaskID, error) {
	id := TaskID(value)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// TaskIDFor derives the task id for a feature's pipeline stage
func TaskIDFor(featureID FeatureID, stage string) TaskID {
	return TaskID(fmt.Sprintf("%s-%s", featureID.String(), stage))
}

// IntegrationTaskID returns the single run-wide integration task id
func IntegrationTaskID() TaskID {
	return TaskID(StageIntegration)
}

// Validate reports whether the id is a usable slug. Any id derived from
// a valid feature id passes.
func (t TaskID) Validate() error {
	switch {
	case t == "":
		return fmt.Errorf("task id is empty")
	case len(t) > maxTaskIDLen:
		return fmt.Errorf("task id %q is longer than %d characters", t, maxTaskIDLen)
	case !taskIDPattern.MatchString(string(t)):
		return fmt.Errorf("task id %q must be a lowercase slug starting with a letter", t)
	}
	return nil
}

// String returns the string representation
func (t TaskID) String() string {
	return string(t)
}
