package domain

import "fmt"

// Priority ranks how important a feature is to the delivery: P0 must
// ship, P1 should ship, P2 is stretch. The scheduler ignores priority
// (ordering is dependency-driven); it is carried for planning output
// and artifacts.
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
)

// priorityOrder maps each priority to its urgency, most urgent first
var priorityOrder = map[Priority]int{
	PriorityP0: 0,
	PriorityP1: 1,
	PriorityP2: 2,
}

// NewPriority validates value and returns it as a Priority
func NewPriority(value string) (Priority, error) {
	p := Priority(value)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate reports whether the priority is one of the known levels
func (p Priority) Validate() error {
	if _, ok := priorityOrder[p]; !ok {
		return fmt.Errorf("unknown priority %q (expected P0, P1, or P2)", string(p))
	}
	return nil
}

// String returns the string representation
func (p Priority) String() string {
	return string(p)
}

// Outranks reports whether p is more urgent than other. Unknown
// priorities rank last.
func (p Priority) Outranks(other Priority) bool {
	return rank(p) < rank(other)
}

func rank(p Priority) int {
	if r, ok := priorityOrder[p]; ok {
		return r
	}
	return len(priorityOrder)
}
