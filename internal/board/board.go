// Package board tracks discrete work items for a swarm run. The board is
// a value type: transitions return a new board rather than mutating in
// place, and persistence is an explicit save.
package board

import (
	"time"

	"github.com/felixgeelhaar/swarm/internal/domain"
	"github.com/felixgeelhaar/swarm/internal/errors"
	"github.com/felixgeelhaar/swarm/internal/spec"
)

// Status is the lifecycle state of a single task board entry.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusFailed     Status = "failed"
)

// Entry is one pipeline checkpoint on the board.
type Entry struct {
	ID            domain.TaskID `json:"id"`
	Status        Status        `json:"status"`
	AssignedRole  string        `json:"assigned_role,omitempty"`
	ResultSummary string        `json:"result_summary,omitempty"`
}

// Board is the full set of tracked work items for a run.
type Board struct {
	Version     string                  `json:"version"`
	ProjectName string                  `json:"project_name"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	Entries     map[domain.TaskID]Entry `json:"entries"`
}

// Stats summarizes entry counts by terminal status.
type Stats struct {
	Total  int `json:"total"`
	Done   int `json:"done"`
	Failed int `json:"failed"`
}

// New builds a board from the project spec: one acceptance-test entry and
// one implement entry per feature, plus the single integration entry. IDs
// are derived deterministically from (feature, stage).
func New(s *spec.ProjectSpec) Board {
	now := time.Now().UTC()
	b := Board{
		Version:     "1.0",
		ProjectName: s.ProjectName,
		CreatedAt:   now,
		UpdatedAt:   now,
		Entries:     make(map[domain.TaskID]Entry, 2*len(s.Features)+1),
	}

	for _, f := range s.Features {
		acceptance := domain.TaskIDFor(f.ID, domain.StageAcceptance)
		b.Entries[acceptance] = Entry{
			ID:           acceptance,
			Status:       StatusPending,
			AssignedRole: "tdd",
		}

		implement := domain.TaskIDFor(f.ID, domain.StageImplement)
		b.Entries[implement] = Entry{
			ID:           implement,
			Status:       StatusPending,
			AssignedRole: "tdd",
		}
	}

	integration := domain.IntegrationTaskID()
	b.Entries[integration] = Entry{
		ID:           integration,
		Status:       StatusPending,
		AssignedRole: "integrator",
	}

	return b
}

// MarkInProgress returns a new board with the entry moved to in_progress
func MarkInProgress(b Board, taskID domain.TaskID, note string) (Board, error) {
	return transition(b, taskID, StatusInProgress, note)
}

// MarkDone returns a new board with the entry moved to done
func MarkDone(b Board, taskID domain.TaskID, note string) (Board, error) {
	return transition(b, taskID, StatusDone, note)
}

// MarkFailed returns a new board with the entry moved to failed
func MarkFailed(b Board, taskID domain.TaskID, note string) (Board, error) {
	return transition(b, taskID, StatusFailed, note)
}

// transition copies the board and applies one status change. A missing
// task id is a structural error; callers treat it as fatal.
func transition(b Board, taskID domain.TaskID, status Status, note string) (Board, error) {
	entry, ok := b.Entries[taskID]
	if !ok {
		return Board{}, errors.NewBoardTaskMissingError(taskID.String())
	}

	next := b.clone()
	entry.Status = status
	if note != "" {
		entry.ResultSummary = note
	}
	next.Entries[taskID] = entry
	next.UpdatedAt = time.Now().UTC()

	return next, nil
}

// clone returns a deep copy of the board
func (b Board) clone() Board {
	entries := make(map[domain.TaskID]Entry, len(b.Entries))
	for id, entry := range b.Entries {
		entries[id] = entry
	}
	next := b
	next.Entries = entries
	return next
}

// Stats counts entries by terminal status
func (b Board) Stats() Stats {
	stats := Stats{Total: len(b.Entries)}
	for _, entry := range b.Entries {
		switch entry.Status {
		case StatusDone:
			stats.Done++
		case StatusFailed:
			stats.Failed++
		}
	}
	return stats
}

// Get looks up an entry by task id
func (b Board) Get(taskID domain.TaskID) (Entry, bool) {
	entry, ok := b.Entries[taskID]
	return entry, ok
}
