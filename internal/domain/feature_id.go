package domain

import (
	"fmt"
	"regexp"
)

// FeatureID identifies one feature from the project spec. Task ids and
// event/knowledge records are keyed off it, so it must be a stable
// lowercase slug: a letter first, then letters, digits, or hyphens.
type FeatureID string

var featureIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// maxFeatureIDLen keeps derived task ids and file artifacts readable
const maxFeatureIDLen = 100

// NewFeatureID validates value and returns it as a FeatureID
func NewFeatureID(value string) (FeatureID, error) {
	id := FeatureID(value)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate reports whether the id is a usable slug
func (f FeatureID) Validate() error {
	switch {
	case f == "":
		return fmt.Errorf("feature id is empty")
	case len(f) > maxFeatureIDLen:
		return fmt.Errorf("feature id %q is longer than %d characters", f, maxFeatureIDLen)
	case !featureIDPattern.MatchString(string(f)):
		return fmt.Errorf("feature id %q must be a lowercase slug starting with a letter", f)
	}
	return nil
}

// String returns the string representation
func (f FeatureID) String() string {
	return string(f)
}
