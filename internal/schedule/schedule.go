// Package schedule orders features by their declared dependencies.
package schedule

import (
	"github.com/felixgeelhaar/swarm/internal/spec"
)

// Order returns the features sorted so that, for any acyclic input, every
// feature appears after all of its dependencies that exist in the set.
// The walk is depth-first in input order, so independent features keep
// their relative input position. Dependency ids that name no feature in
// the set are skipped silently. Cyclic inputs are not detected: the first
// node reached in a cycle is marked visited before its predecessor is
// appended, so the returned order will not satisfy that cycle's
// constraint, and no error is reported.
//
// Order is total; it never fails and never drops a feature.
func Order(features []spec.Feature) []spec.Feature {
	byID := make(map[string]spec.Feature, len(features))
	for _, f := range features {
		byID[f.ID.String()] = f
	}

	visited := make(map[string]bool, len(features))
	ordered := make([]spec.Feature, 0, len(features))

	var visit func(f spec.Feature)
	visit = func(f spec.Feature) {
		id := f.ID.String()
		if visited[id] {
			return
		}
		visited[id] = true

		for _, depID := range f.Dependencies {
			dep, ok := byID[depID]
			if !ok {
				continue
			}
			visit(dep)
		}

		ordered = append(ordered, f)
	}

	for _, f := range features {
		visit(f)
	}

	return ordered
}
